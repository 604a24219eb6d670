package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"hootline/internal/detail"
	"hootline/internal/middleware"
	"hootline/internal/models"
	"hootline/internal/services"

	"github.com/gin-gonic/gin"
)

const msgDeleteHootFailed = "Failed to delete hoot. Please try again."

type HootHandler struct {
	svc   services.HootService
	views *detail.Registry
}

func NewHootHandler(svc services.HootService, views *detail.Registry) *HootHandler {
	return &HootHandler{svc: svc, views: views}
}

func (h *HootHandler) List(c *gin.Context) {
	hoots, err := h.svc.Index(c.Request.Context())
	if err != nil {
		log.Printf("Error listing hoots: %v", err)
		RenderError(c, http.StatusBadGateway, "Unable to load hoots. Please refresh the page.")
		return
	}

	Render(c, http.StatusOK, "hoot/list.html", gin.H{
		"Hoots": hoots,
		"Title": "Hoots",
	})
}

// Detail mounts a fresh view for the visitor, so a page refresh always refetches.
func (h *HootHandler) Detail(c *gin.Context) {
	v := h.mount(c, c.Param("id"))
	h.renderDetail(c, v, nil)
}

func (h *HootHandler) CreateComment(c *gin.Context) {
	v := h.viewFor(c, c.Param("id"))

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("Error reading comment form: %v", err)
	}
	err := v.AddComment(c.Request.Context(), form)

	h.renderDetail(c, v, err)
}

func (h *HootHandler) DeleteComment(c *gin.Context) {
	v := h.viewFor(c, c.Param("id"))
	err := v.DeleteComment(c.Request.Context(), c.Param("commentId"))
	h.renderDetail(c, v, err)
}

func (h *HootHandler) Delete(c *gin.Context) {
	hootID := c.Param("id")
	v := h.viewFor(c, hootID)

	if err := v.DeleteHoot(c.Request.Context()); err != nil {
		log.Printf("Error deleting hoot %s: %v", hootID, err)
		RenderError(c, mutationStatus(err), msgDeleteHootFailed)
		return
	}
	Redirect(c, "/hoots")
}

// DeleteHoot is the delete callback every mounted view is given: it removes the
// hoot remotely and unmounts all views of it.
func (h *HootHandler) DeleteHoot(ctx context.Context, hootID string) error {
	if err := h.svc.DeleteHoot(ctx, hootID); err != nil {
		return err
	}
	h.views.Forget(hootID)
	return nil
}

func (h *HootHandler) mount(c *gin.Context, hootID string) *detail.View {
	v := detail.NewView(h.svc, middleware.CurrentUser(c), h.DeleteHoot)
	v.Mount(c.Request.Context(), hootID)
	h.views.Put(middleware.VisitorID(c), v)
	return v
}

// viewFor returns the visitor's mounted view of hootID, mounting one if it was
// evicted or never existed.
func (h *HootHandler) viewFor(c *gin.Context, hootID string) *detail.View {
	visitor := middleware.VisitorID(c)
	if v, ok := h.views.Get(visitor, hootID); ok {
		v.SetUser(middleware.CurrentUser(c))
		h.views.Put(visitor, v)
		return v
	}
	return h.mount(c, hootID)
}

// renderDetail draws the view. A failed mutation keeps its notice on the page and
// sets the status, except for HTMX requests: htmx only swaps 2xx responses.
func (h *HootHandler) renderDetail(c *gin.Context, v *detail.View, mutationErr error) {
	page := v.Snapshot()
	code := http.StatusOK
	switch {
	case page.Errored():
		code = loadStatus(v.LoadError())
	case mutationErr != nil && c.GetHeader("HX-Request") != "true":
		code = mutationStatus(mutationErr)
	}

	Render(c, code, "hoot/detail.html", gin.H{
		"Page":  page,
		"Title": page.Title,
	})
}

func loadStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	}
	return http.StatusBadGateway
}

func mutationStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, detail.ErrNotLoaded):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}
