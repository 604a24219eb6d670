package services

import (
	"context"
	"errors"

	"hootline/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNetwork      = errors.New("network error")
)

// HootService is the remote service layer the hoot pages talk to. The acting user
// and bearer token travel on ctx (see package auth).
type HootService interface {
	Index(ctx context.Context) ([]models.Hoot, error)
	Show(ctx context.Context, hootID string) (*models.Hoot, error)
	CreateComment(ctx context.Context, hootID string, form models.CommentForm) (*models.Comment, error)
	DeleteComment(ctx context.Context, hootID, commentID string) error
	DeleteHoot(ctx context.Context, hootID string) error
}
