package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hootline/internal/auth"
	"hootline/internal/config"
	"hootline/internal/models"
	"hootline/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	owl  = models.User{ID: "u1", Username: "owl"}
	lark = models.User{ID: "u2", Username: "lark"}
)

func sampleHoot() *models.Hoot {
	return &models.Hoot{
		ID:        "h1",
		Category:  "News",
		Title:     "Owls at night",
		Text:      "They hoot.",
		Author:    owl,
		CreatedAt: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		Comments: []models.Comment{
			{ID: "c1", Text: "first comment", Author: lark},
			{ID: "c2", Text: "second comment", Author: owl},
		},
	}
}

type fakeService struct {
	mu sync.Mutex

	hoots         map[string]*models.Hoot
	showErr       error
	createErr     error
	deleteErr     error
	deleteHootErr error
	nextComment   *models.Comment

	showCalls    int
	deletedHoots []string
}

func newFakeService(hoots ...*models.Hoot) *fakeService {
	f := &fakeService{hoots: make(map[string]*models.Hoot)}
	for _, h := range hoots {
		f.hoots[h.ID] = h
	}
	return f
}

func (f *fakeService) Index(ctx context.Context) ([]models.Hoot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Hoot
	for _, h := range f.hoots {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeService) Show(ctx context.Context, hootID string) (*models.Hoot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showCalls++
	if f.showErr != nil {
		return nil, f.showErr
	}
	h, ok := f.hoots[hootID]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *h
	cp.Comments = append([]models.Comment(nil), h.Comments...)
	return &cp, nil
}

func (f *fakeService) CreateComment(ctx context.Context, hootID string, form models.CommentForm) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.nextComment != nil {
		return f.nextComment, nil
	}
	user := auth.UserFrom(ctx)
	return &models.Comment{ID: "c-new", Text: form.Text, Author: *user}, nil
}

func (f *fakeService) DeleteComment(ctx context.Context, hootID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeService) DeleteHoot(ctx context.Context, hootID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteHootErr != nil {
		return f.deleteHootErr
	}
	f.deletedHoots = append(f.deletedHoots, hootID)
	delete(f.hoots, hootID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		GinMode:       gin.TestMode,
		SessionSecret: "session-secret",
		JWTSecret:     "jwt-secret",
		ViewCacheSize: 16,
		ViewTTL:       time.Minute,
		CORSOrigins:   []string{"http://localhost:3000"},
	}
}

// client drives the engine like a browser: it keeps cookies between requests and
// optionally sends a bearer token.
type client struct {
	t       *testing.T
	handler http.Handler
	token   string
	cookies map[string]*http.Cookie
	headers map[string]string
}

func newClient(t *testing.T, svc services.HootService, user *models.User) *client {
	t.Helper()
	return newClientWithConfig(t, testConfig(), svc, user)
}

func newClientWithConfig(t *testing.T, cfg *config.Config, svc services.HootService, user *models.User) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := &client{
		t:       t,
		handler: New(cfg, svc),
		cookies: make(map[string]*http.Cookie),
		headers: make(map[string]string),
	}
	if user != nil {
		token, err := auth.IssueToken([]byte(cfg.JWTSecret), *user, time.Hour)
		require.NoError(t, err)
		c.token = token
	}
	return c
}

func (c *client) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, "", nil)
}

func (c *client) postForm(path, form string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form))
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, "application/json", strings.NewReader(body))
}
