package ngwords

import (
	"context"
	"strings"

	"github.com/litey/litey-go/internal/content"
)

// Service exposes the banned word list.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

func (s *Service) Add(ctx context.Context, word string) error {
	return s.repo.Insert(ctx, word)
}

func (s *Service) Remove(ctx context.Context, word string) error {
	return s.repo.Delete(ctx, word)
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Joined returns the words newline-joined, the wire form of GET /api/ng/get.
func (s *Service) Joined(ctx context.Context) (string, error) {
	words, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(words, "\n"), nil
}

// Mask loads the current list and applies it to text.
func (s *Service) Mask(ctx context.Context, text string) (string, error) {
	words, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	return content.ReplaceNGWords(text, words), nil
}
