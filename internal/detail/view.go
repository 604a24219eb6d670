// Package detail implements the hoot detail view: it loads one hoot, mediates
// comment mutations against the hoot service and keeps the local copy shown to the
// user in step with what the service confirmed.
package detail

import (
	"context"
	"errors"
	"log"
	"sync"

	"hootline/internal/models"
	"hootline/internal/services"
)

// Messages shown to the user. The wording never depends on the underlying error.
const (
	MsgLoadFailed          = "Unable to load hoot details. Please refresh the page."
	MsgAddCommentFailed    = "Failed to add comment. Please try again."
	MsgDeleteCommentFailed = "Failed to delete comment. Please try again."
)

// ErrNotLoaded is returned for mutations attempted before the hoot has loaded.
var ErrNotLoaded = errors.New("hoot not loaded")

// ErrNoComment is returned when the service reports success without a comment.
var ErrNoComment = errors.New("hoot service returned no comment")

type State int

const (
	StateLoading State = iota
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	}
	return "loading"
}

// DeleteHootFunc is supplied by whoever owns hoot deletion and navigation.
type DeleteHootFunc func(ctx context.Context, hootID string) error

// View holds the display state for a single hoot.
type View struct {
	svc      services.HootService
	onDelete DeleteHootFunc

	mu       sync.Mutex
	user     *models.User
	hootID   string
	gen      uint64
	state    State
	hoot     *models.Hoot
	loadErr  error
	notice   string
	deleting map[string]bool
}

// NewView creates an unmounted view acting for user (nil when anonymous).
func NewView(svc services.HootService, user *models.User, onDelete DeleteHootFunc) *View {
	return &View{
		svc:      svc,
		user:     user,
		onDelete: onDelete,
		deleting: make(map[string]bool),
	}
}

// Mount points the view at hootID and fetches it. Every call issues exactly one
// fetch; if another Mount starts before this one's response arrives, the older
// response is dropped.
func (v *View) Mount(ctx context.Context, hootID string) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.hootID = hootID
	v.state = StateLoading
	v.hoot = nil
	v.loadErr = nil
	v.notice = ""
	v.deleting = make(map[string]bool)
	v.mu.Unlock()

	hoot, err := v.svc.Show(ctx, hootID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		log.Printf("Discarding stale response for hoot %s", hootID)
		return
	}
	if err != nil {
		log.Printf("Error fetching hoot %s: %v", hootID, err)
		v.state = StateErrored
		v.loadErr = err
		return
	}
	if hoot.Comments == nil {
		hoot.Comments = []models.Comment{}
	}
	v.hoot = hoot
	v.state = StateLoaded
}

// AddComment creates a comment and appends the one the service returned.
func (v *View) AddComment(ctx context.Context, form models.CommentForm) error {
	hootID, gen, ok := v.loaded()
	if !ok {
		return ErrNotLoaded
	}

	if err := form.Validate(); err != nil {
		v.fail(gen, MsgAddCommentFailed, "Error adding comment", err)
		return errors.Join(services.ErrValidation, err)
	}

	comment, err := v.svc.CreateComment(ctx, hootID, form)
	if err == nil && comment == nil {
		err = ErrNoComment
	}
	if err != nil {
		v.fail(gen, MsgAddCommentFailed, "Error adding comment", err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.gen && v.hoot != nil {
		v.hoot.Comments = append(v.hoot.Comments, *comment)
		v.notice = ""
	}
	return nil
}

// DeleteComment removes a comment once the service confirms the deletion. A
// second delete for a comment whose deletion is still in flight does nothing.
func (v *View) DeleteComment(ctx context.Context, commentID string) error {
	v.mu.Lock()
	if v.state != StateLoaded {
		v.mu.Unlock()
		return ErrNotLoaded
	}
	if v.deleting[commentID] {
		v.mu.Unlock()
		return nil
	}
	v.deleting[commentID] = true
	hootID, gen := v.hootID, v.gen
	v.mu.Unlock()

	err := v.svc.DeleteComment(ctx, hootID, commentID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return err
	}
	delete(v.deleting, commentID)
	if err != nil {
		log.Printf("Error deleting comment: %v", err)
		v.notice = MsgDeleteCommentFailed
		return err
	}

	kept := v.hoot.Comments[:0:0]
	for _, c := range v.hoot.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	v.hoot.Comments = kept
	v.notice = ""
	return nil
}

// DeleteHoot hands the hoot to the delete callback. The view's own state is left
// untouched; navigating away is the caller's business.
func (v *View) DeleteHoot(ctx context.Context) error {
	v.mu.Lock()
	hootID := v.hootID
	v.mu.Unlock()

	if v.onDelete == nil || hootID == "" {
		return nil
	}
	return v.onDelete(ctx, hootID)
}

// SetUser switches the acting user, e.g. after sign-in on a mounted view.
func (v *View) SetUser(user *models.User) {
	v.mu.Lock()
	v.user = user
	v.mu.Unlock()
}

func (v *View) HootID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hootID
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// LoadError is the error behind StateErrored, nil otherwise.
func (v *View) LoadError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

// Comments returns a copy of the current comment sequence.
func (v *View) Comments() []models.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hoot == nil {
		return nil
	}
	out := make([]models.Comment, len(v.hoot.Comments))
	copy(out, v.hoot.Comments)
	return out
}

// Notice is the last mutation error message, empty if none.
func (v *View) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}

func (v *View) loaded() (string, uint64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hootID, v.gen, v.state == StateLoaded
}

func (v *View) fail(gen uint64, msg, logPrefix string, err error) {
	log.Printf("%s: %v", logPrefix, err)
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.gen {
		v.notice = msg
	}
}
