// Package web holds the HTML templates, embedded so the binary and the tests do
// not depend on the working directory.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates
var files embed.FS

// FuncMap is shared by every page.
var FuncMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"formatDate": func(t time.Time) string {
		return t.Format("1/2/2006")
	},
}

// Renderer builds the multitemplate renderer: each page is its view file parsed
// together with the layout and every component.
func Renderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts := mustGlob("templates/layouts/*.html")
	components := mustGlob("templates/components/*.html")

	assemble := func(view string) []string {
		out := make([]string, 0, len(layouts)+len(components)+1)
		out = append(out, layouts...)
		out = append(out, components...)
		return append(out, view)
	}

	add := func(name, view string) {
		set := assemble(view)
		tmpl := template.Must(template.New(path.Base(set[0])).Funcs(FuncMap).ParseFS(files, set...))
		r.Add(name, tmpl)
	}

	add("hoot/list.html", "templates/views/hoot/list.html")
	add("hoot/detail.html", "templates/views/hoot/detail.html")
	add("error.html", "templates/views/error.html")

	return r
}

func mustGlob(pattern string) []string {
	matches, err := fs.Glob(files, pattern)
	if err != nil {
		panic(err)
	}
	return matches
}
