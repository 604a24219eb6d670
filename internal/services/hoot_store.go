package services

import (
	"context"
	"errors"
	"fmt"

	"hootline/internal/auth"
	"hootline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HootStore serves hoots straight from PostgreSQL when no remote API is configured.
type HootStore struct {
	db *gorm.DB
}

func NewHootStore(db *gorm.DB) *HootStore {
	return &HootStore{db: db}
}

func (s *HootStore) Index(ctx context.Context) ([]models.Hoot, error) {
	var hoots []models.Hoot
	if err := s.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&hoots).Error; err != nil {
		return nil, fmt.Errorf("list hoots: %w", err)
	}
	return hoots, nil
}

func (s *HootStore) Show(ctx context.Context, hootID string) (*models.Hoot, error) {
	var hoot models.Hoot
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Where("id = ?", hootID).
		First(&hoot).Error
	if err != nil {
		return nil, storeError("show hoot "+hootID, err)
	}
	return &hoot, nil
}

func (s *HootStore) CreateComment(ctx context.Context, hootID string, form models.CommentForm) (*models.Comment, error) {
	user := auth.UserFrom(ctx)
	if user == nil {
		return nil, ErrUnauthorized
	}
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		HootID:   hootID,
		Text:     form.Text,
		AuthorID: user.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Hoot{}).Where("id = ?", hootID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		// Token users may not have a row yet
		author := models.User{ID: user.ID, Username: user.Username}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username"}),
		}).Create(&author).Error; err != nil {
			return err
		}

		return tx.Omit("Author").Create(&comment).Error
	})
	if err != nil {
		return nil, storeError("create comment on "+hootID, err)
	}

	comment.Author = *user
	return &comment, nil
}

func (s *HootStore) DeleteComment(ctx context.Context, hootID, commentID string) error {
	user := auth.UserFrom(ctx)
	if user == nil {
		return ErrUnauthorized
	}

	var comment models.Comment
	if err := s.db.WithContext(ctx).Where("id = ? AND hoot_id = ?", commentID, hootID).First(&comment).Error; err != nil {
		return storeError("delete comment "+commentID, err)
	}
	if comment.AuthorID != user.ID {
		return fmt.Errorf("delete comment %s: %w", commentID, ErrUnauthorized)
	}

	if err := s.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return storeError("delete comment "+commentID, err)
	}
	return nil
}

func (s *HootStore) DeleteHoot(ctx context.Context, hootID string) error {
	user := auth.UserFrom(ctx)
	if user == nil {
		return ErrUnauthorized
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hoot models.Hoot
		if err := tx.Where("id = ?", hootID).First(&hoot).Error; err != nil {
			return storeError("delete hoot "+hootID, err)
		}
		if hoot.AuthorID != user.ID {
			return fmt.Errorf("delete hoot %s: %w", hootID, ErrUnauthorized)
		}

		if err := tx.Where("hoot_id = ?", hootID).Delete(&models.Comment{}).Error; err != nil {
			return storeError("delete hoot "+hootID, err)
		}
		if err := tx.Delete(&hoot).Error; err != nil {
			return storeError("delete hoot "+hootID, err)
		}
		return nil
	})
}

func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
