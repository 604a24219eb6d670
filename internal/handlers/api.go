package handlers

import (
	"log"
	"net/http"

	"hootline/internal/models"

	"github.com/gin-gonic/gin"
)

// JSON flavour of the hoot pages. Every response carries the view's page model.

func (h *HootHandler) ListJSON(c *gin.Context) {
	hoots, err := h.svc.Index(c.Request.Context())
	if err != nil {
		log.Printf("Error listing hoots: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to load hoots. Please refresh the page."})
		return
	}
	c.JSON(http.StatusOK, hoots)
}

func (h *HootHandler) DetailJSON(c *gin.Context) {
	v := h.mount(c, c.Param("id"))
	page := v.Snapshot()
	code := http.StatusOK
	if page.Errored() {
		code = loadStatus(v.LoadError())
	}
	c.JSON(code, page)
}

func (h *HootHandler) CreateCommentJSON(c *gin.Context) {
	v := h.viewFor(c, c.Param("id"))

	var form models.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Printf("Error reading comment body: %v", err)
	}
	err := v.AddComment(c.Request.Context(), form)

	code := mutationStatus(err)
	if err == nil {
		code = http.StatusCreated
	}
	c.JSON(code, v.Snapshot())
}

func (h *HootHandler) DeleteCommentJSON(c *gin.Context) {
	v := h.viewFor(c, c.Param("id"))
	err := v.DeleteComment(c.Request.Context(), c.Param("commentId"))
	c.JSON(mutationStatus(err), v.Snapshot())
}

func (h *HootHandler) DeleteJSON(c *gin.Context) {
	hootID := c.Param("id")
	v := h.viewFor(c, hootID)

	if err := v.DeleteHoot(c.Request.Context()); err != nil {
		log.Printf("Error deleting hoot %s: %v", hootID, err)
		c.JSON(mutationStatus(err), gin.H{"error": msgDeleteHootFailed})
		return
	}
	c.Status(http.StatusNoContent)
}
