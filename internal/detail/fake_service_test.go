package detail

import (
	"context"
	"sync"

	"hootline/internal/models"
)

// fakeService is an in-memory HootService whose calls can be made to fail.
type fakeService struct {
	mu sync.Mutex

	hoots     map[string]*models.Hoot
	showErr   error
	createErr error
	deleteErr error

	// showHook runs before Show returns, letting tests interleave calls.
	showHook func(hootID string)
	// deleteHook runs inside DeleteComment before it returns.
	deleteHook func(commentID string)

	showCalls   []string
	createCalls []models.CommentForm
	deleteCalls []string
	nextComment *models.Comment
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
	f.showCalls = append(f.showCalls, hootID)
	hook := f.showHook
	err := f.showErr
	h, ok := f.hoots[hootID]
	f.mu.Unlock()

	if hook != nil {
		hook(hootID)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotFound
	}
	cp := *h
	cp.Comments = append([]models.Comment(nil), h.Comments...)
	return &cp, nil
}

func (f *fakeService) CreateComment(ctx context.Context, hootID string, form models.CommentForm) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, form)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.nextComment, nil
}

func (f *fakeService) DeleteComment(ctx context.Context, hootID, commentID string) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, commentID)
	hook := f.deleteHook
	err := f.deleteErr
	f.mu.Unlock()

	if hook != nil {
		hook(commentID)
	}
	return err
}

func (f *fakeService) DeleteHoot(ctx context.Context, hootID string) error {
	return nil
}
