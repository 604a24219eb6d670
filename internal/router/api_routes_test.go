package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"hootline/internal/auth"
	"hootline/internal/detail"
	"hootline/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePage(t *testing.T, body []byte) detail.Page {
	t.Helper()
	var page detail.Page
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func TestAPIDetail(t *testing.T) {
	c := newClient(t, newFakeService(sampleHoot()), &owl)

	w := c.get("/api/hoots/h1")
	require.Equal(t, http.StatusOK, w.Code)

	page := decodePage(t, w.Body.Bytes())
	assert.Equal(t, "loaded", page.State)
	assert.Equal(t, "NEWS", page.Category)
	assert.Equal(t, "Owls at night", page.Title)
	assert.True(t, page.IsOwner)
	require.Len(t, page.Comments, 2)
	assert.False(t, page.Comments[0].CanEdit)
	assert.True(t, page.Comments[1].CanEdit)
}

func TestAPIDetailNotFound(t *testing.T) {
	c := newClient(t, newFakeService(), nil)

	w := c.get("/api/hoots/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), `"author"`)
	assert.NotContains(t, w.Body.String(), `"comments"`)

	page := decodePage(t, w.Body.Bytes())
	assert.Equal(t, "errored", page.State)
	assert.Equal(t, detail.MsgLoadFailed, page.Error)
	assert.Empty(t, page.Comments)
}

func TestAPICommentLifecycle(t *testing.T) {
	svc := newFakeService(sampleHoot())
	c := newClient(t, svc, &lark)
	c.get("/api/hoots/h1")

	w := c.postJSON("/api/hoots/h1/comments", `{"text":"from the api"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	page := decodePage(t, w.Body.Bytes())
	require.Len(t, page.Comments, 3)
	assert.Equal(t, "from the api", page.Comments[2].Text)
	assert.True(t, page.Comments[2].CanEdit)

	w = c.do(http.MethodDelete, "/api/hoots/h1/comments/c1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w.Body.Bytes())
	require.Len(t, page.Comments, 2)
	assert.Equal(t, "c2", page.Comments[0].ID)

	assert.Equal(t, 1, svc.showCalls)
}

func TestAPICommentErrors(t *testing.T) {
	svc := newFakeService(sampleHoot())
	c := newClient(t, svc, &owl)
	c.get("/api/hoots/h1")

	w := c.postJSON("/api/hoots/h1/comments", `{"text":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	page := decodePage(t, w.Body.Bytes())
	assert.Equal(t, detail.MsgAddCommentFailed, page.Notice)
	assert.Len(t, page.Comments, 2)

	svc.deleteErr = services.ErrNetwork
	w = c.do(http.MethodDelete, "/api/hoots/h1/comments/c1", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	page = decodePage(t, w.Body.Bytes())
	assert.Equal(t, detail.MsgDeleteCommentFailed, page.Notice)
	assert.Len(t, page.Comments, 2)
}

func TestAPIRequiresUser(t *testing.T) {
	c := newClient(t, newFakeService(sampleHoot()), nil)

	w := c.postJSON("/api/hoots/h1/comments", `{"text":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIDeleteHoot(t *testing.T) {
	svc := newFakeService(sampleHoot())
	c := newClient(t, svc, &owl)

	w := c.do(http.MethodDelete, "/api/hoots/h1", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"h1"}, svc.deletedHoots)
}

func TestAPIList(t *testing.T) {
	c := newClient(t, newFakeService(sampleHoot()), nil)

	w := c.get("/api/hoots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"_id":"h1"`)
}

func TestCORSPreflight(t *testing.T) {
	c := newClient(t, newFakeService(), nil)
	c.headers["Origin"] = "http://localhost:3000"
	c.headers["Access-Control-Request-Method"] = "POST"

	w := c.do(http.MethodOptions, "/api/hoots/h1/comments", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSessionSignInAndOut(t *testing.T) {
	c := newClient(t, newFakeService(sampleHoot()), nil)
	token, err := auth.IssueToken([]byte(testConfig().JWTSecret), owl, 0)
	require.NoError(t, err)

	w := c.postForm("/session", "token="+url.QueryEscape(token))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	body := c.get("/hoots/h1").Body.String()
	assert.Contains(t, body, "Welcome, owl")
	assert.Contains(t, body, `aria-label="Edit Hoot"`)

	w = c.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	body = c.get("/hoots/h1").Body.String()
	assert.NotContains(t, body, "Welcome, owl")
	assert.NotContains(t, body, "Edit Hoot")
}

func TestSessionRejectsBadToken(t *testing.T) {
	c := newClient(t, newFakeService(), nil)

	w := c.postForm("/session", "token=junk")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token.")

	w = c.postForm("/session", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
