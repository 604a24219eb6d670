package detail

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"hootline/internal/models"
	"hootline/internal/utils"
)

// Fallbacks for optional hoot and comment fields.
const (
	FallbackCategory    = "UNCATEGORIZED"
	FallbackTitle       = "Untitled Hoot"
	FallbackBody        = "No content provided."
	FallbackCommentText = "(No text)"
	NoCommentsText      = "There are no comments."
)

// Page is everything the detail template (or the JSON API) needs to draw the view.
type Page struct {
	State  string `json:"state"`
	HootID string `json:"hootId"`

	// Error is set only in the errored state and is then the only thing shown.
	Error string `json:"error,omitempty"`
	// Notice carries a failed mutation's message alongside the loaded content.
	Notice string `json:"notice,omitempty"`

	Category string        `json:"category,omitempty"`
	Title    string        `json:"title,omitempty"`
	Body     string        `json:"body,omitempty"`
	BodyHTML template.HTML `json:"-"`
	Author   models.User   `json:"author"`
	Posted   time.Time     `json:"createdAt"`
	IsOwner  bool          `json:"isOwner"`
	EditURL  string        `json:"editUrl,omitempty"`

	Comments []CommentItem `json:"comments"`
}

type CommentItem struct {
	ID       string        `json:"_id"`
	Text     string        `json:"text"`
	TextHTML template.HTML `json:"-"`
	Author   models.User   `json:"author"`
	Posted   time.Time     `json:"createdAt"`
	CanEdit  bool          `json:"canEdit"`
	EditURL  string        `json:"editUrl,omitempty"`
}

func (p *Page) Loading() bool { return p.State == StateLoading.String() }
func (p *Page) Errored() bool { return p.State == StateErrored.String() }

// MarshalJSON leaves out the hoot fields until the hoot has loaded, so an
// errored page carries nothing but its error.
func (p Page) MarshalJSON() ([]byte, error) {
	if p.State != StateLoaded.String() {
		return json.Marshal(struct {
			State  string `json:"state"`
			HootID string `json:"hootId"`
			Error  string `json:"error,omitempty"`
		}{p.State, p.HootID, p.Error})
	}
	type page Page
	return json.Marshal(page(p))
}

// HasComments is false when the "no comments" placeholder should be drawn.
func (p *Page) HasComments() bool { return len(p.Comments) > 0 }

// Snapshot renders the current state into a Page.
func (v *View) Snapshot() *Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	page := &Page{State: v.state.String(), HootID: v.hootID}
	switch v.state {
	case StateErrored:
		page.Error = MsgLoadFailed
		return page
	case StateLoading:
		return page
	}

	hoot := v.hoot
	page.Notice = v.notice
	page.Category = FallbackCategory
	if hoot.Category != "" {
		page.Category = strings.ToUpper(hoot.Category)
	}
	page.Title = hoot.Title
	if page.Title == "" {
		page.Title = FallbackTitle
	}
	page.Body, page.BodyHTML = textOr(hoot.Text, FallbackBody)
	page.Author = hoot.Author
	page.Posted = hoot.CreatedAt
	page.IsOwner = v.user.SameUser(&hoot.Author)
	if page.IsOwner {
		page.EditURL = fmt.Sprintf("/hoots/%s/edit", url.PathEscape(v.hootID))
	}

	page.Comments = make([]CommentItem, len(hoot.Comments))
	for i, c := range hoot.Comments {
		item := CommentItem{
			ID:      c.ID,
			Author:  c.Author,
			Posted:  c.CreatedAt,
			CanEdit: v.user.SameUser(&hoot.Comments[i].Author),
		}
		item.Text, item.TextHTML = textOr(c.Text, FallbackCommentText)
		if item.CanEdit {
			item.EditURL = fmt.Sprintf("/hoots/%s/comments/%s/edit", url.PathEscape(v.hootID), url.PathEscape(c.ID))
		}
		page.Comments[i] = item
	}
	return page
}

// textOr renders text as markdown, or the fallback as plain text when text is empty.
func textOr(text, fallback string) (string, template.HTML) {
	if text == "" {
		return fallback, template.HTML(template.HTMLEscapeString(fallback))
	}
	return text, utils.RenderMarkdown(text)
}
