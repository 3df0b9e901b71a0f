package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Service manages system preferences and the quick-note scratchpad.
type Service interface {
	GetPreferences(ctx context.Context) (Preferences, error)
	UpdatePreferences(ctx context.Context, req UpdatePreferencesRequest) (Preferences, error)
	ListNotes(ctx context.Context) ([]string, error)
	AddNote(ctx context.Context, req AddNoteRequest) ([]string, error)
	RemoveNote(ctx context.Context, index int) ([]string, error)
}

type service struct {
	repo Repository
}

// NewService creates a new settings service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetPreferences(ctx context.Context) (Preferences, error) {
	p, found, err := s.repo.LoadPreferences(ctx)
	if err != nil {
		return Preferences{}, err
	}
	if !found {
		return DefaultPreferences(), nil
	}
	return p, nil
}

func (s *service) UpdatePreferences(ctx context.Context, req UpdatePreferencesRequest) (Preferences, error) {
	p, err := s.GetPreferences(ctx)
	if err != nil {
		return Preferences{}, err
	}
	if req.DarkMode != nil {
		p.DarkMode = *req.DarkMode
	}
	if req.DefaultServiceMode != nil {
		p.DefaultServiceMode = *req.DefaultServiceMode
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.TimeFormat != nil {
		p.TimeFormat = *req.TimeFormat
	}
	if req.Language != nil {
		p.Language = *req.Language
	}
	if err := s.repo.SavePreferences(ctx, p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (s *service) ListNotes(ctx context.Context) ([]string, error) {
	return s.repo.LoadNotes(ctx)
}

func (s *service) AddNote(ctx context.Context, req AddNoteRequest) ([]string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", apperr.ErrValidation)
	}
	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}
	notes = append(notes, text)
	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *service) RemoveNote(ctx context.Context, index int) ([]string, error) {
	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(notes) {
		return nil, fmt.Errorf("%w: no note at index %d", apperr.ErrNotFound, index)
	}
	notes = append(notes[:index], notes[index+1:]...)
	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}
