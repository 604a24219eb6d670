package handlers

import (
	"log"
	"net/http"

	"hootline/internal/auth"
	"hootline/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionHandler keeps the token issued by the hoot API in the cookie session.
// Signing in itself happens against the API.
type SessionHandler struct {
	secret []byte
}

func NewSessionHandler(secret []byte) *SessionHandler {
	return &SessionHandler{secret: secret}
}

func (h *SessionHandler) Create(c *gin.Context) {
	token := c.PostForm("token")
	if token == "" {
		RenderError(c, http.StatusBadRequest, "A token is required.")
		return
	}

	if _, err := auth.ParseToken(h.secret, token); err != nil {
		log.Printf("Rejected session token: %v", err)
		RenderError(c, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.TokenKey, token)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
		RenderError(c, http.StatusInternalServerError, "Unable to sign in. Please try again.")
		return
	}
	Redirect(c, "/hoots")
}

func (h *SessionHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.TokenKey)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
	Redirect(c, "/hoots")
}
