package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/tlink/internal/repository"
)

// Service handles project lookups.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Get fetches a project by id. The service has no direct call for this, so
// the full project list is scanned.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: project with id %s", repository.ErrNotFound, id)
}

// GetByName fetches a project by name.
func (s *Service) GetByName(ctx context.Context, name string) (*Project, error) {
	res, err := s.repo.GetTestProjectByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting project %q: %w", name, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok {
		return nil, fmt.Errorf("%w: project %s", repository.ErrNotFound, name)
	}
	return FromRecord(rec), nil
}

// IDByName returns the id of the project called name.
func (s *Service) IDByName(ctx context.Context, name string) (string, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("%w: project %s", repository.ErrNotFound, name)
}

// List returns every project visible to the developer key.
func (s *Service) List(ctx context.Context) ([]*Project, error) {
	res, err := s.repo.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	projects := make([]*Project, 0, len(res.Records))
	for _, rec := range res.Records {
		projects = append(projects, FromRecord(rec))
	}
	s.logger.Debug("projects listed", "count", len(projects))
	return projects, nil
}
