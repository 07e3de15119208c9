package notes

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps repository operations with note creation rules
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// Post stores a new note with a fresh id and the current UTC time.
func (s *Service) Post(ctx context.Context, content, ip string) (*Note, error) {
	n := &Note{
		ID:      uuid.NewString(),
		Content: content,
		Date:    FormatDate(s.now()),
		IP:      ip,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List returns every note, newest first.
func (s *Service) List(ctx context.Context) ([]*Note, error) {
	return s.repo.List(ctx)
}

// Get returns the note with the given id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
