package middleware

import (
	"log"
	"net/http"
	"strings"

	"hootline/internal/auth"
	"hootline/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CheckUserKey = "user"
	TokenKey     = "token"
	VisitorKey   = "visitor"
)

// AuthRequired ensures a user is signed in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
				return
			}
			c.Redirect(http.StatusFound, "/hoots")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session token (or an Authorization bearer token) to a
// user, stores both on the gin context and on the request context so services
// can act on the user's behalf.
func LoadUser(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		fromSession := true
		token, _ := session.Get(TokenKey).(string)
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
			fromSession = false
		}

		if token != "" {
			user, err := auth.ParseToken(secret, token)
			if err != nil {
				log.Printf("Token validation error: %v", err)
				if fromSession {
					session.Delete(TokenKey)
					if err := session.Save(); err != nil {
						log.Printf("Failed to save session: %v", err)
					}
				}
			} else {
				c.Set(CheckUserKey, user)
				c.Set(TokenKey, token)
				ctx := auth.WithToken(auth.WithUser(c.Request.Context(), user), token)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

// Visitor gives every browser session a stable key for per-visitor state.
func Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		visitor, _ := session.Get(VisitorKey).(string)
		if visitor == "" {
			visitor = uuid.NewString()
			session.Set(VisitorKey, visitor)
			if err := session.Save(); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
		}
		c.Set(VisitorKey, visitor)
		c.Next()
	}
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(CheckUserKey); exists {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}

func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}
