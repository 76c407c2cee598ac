package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/tlink/internal/repository"
)

// Service handles plan and build lookups.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new plan service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// ByName fetches a plan by project name and plan name.
func (s *Service) ByName(ctx context.Context, projectName, planName string) (*Plan, error) {
	res, err := s.repo.GetTestPlanByName(ctx, projectName, planName)
	if err != nil {
		return nil, fmt.Errorf("getting test plan %q: %w", planName, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok {
		return nil, fmt.Errorf("%w: test plan %s in project %s", repository.ErrNotFound, planName, projectName)
	}
	return planFromRecord(rec), nil
}

// BuildByName fetches the plan, then scans its builds for buildName.
func (s *Service) BuildByName(ctx context.Context, projectName, planName, buildName string) (*Build, error) {
	p, err := s.ByName(ctx, projectName, planName)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.GetBuildsForTestPlan(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("listing builds of test plan %s: %w", p.ID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	for _, rec := range res.Records {
		if rec.String("name") == buildName {
			return buildFromRecord(rec), nil
		}
	}
	s.logger.Debug("build not found", "plan_id", p.ID, "build", buildName, "builds", len(res.Records))
	return nil, fmt.Errorf("%w: build %s does not exist for test plan %s", repository.ErrNotFound, buildName, planName)
}

// LatestBuild returns the build with the highest id in the plan.
func (s *Service) LatestBuild(ctx context.Context, projectName, planName string) (*Build, error) {
	p, err := s.ByName(ctx, projectName, planName)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.GetLatestBuildForTestPlan(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("getting latest build of test plan %s: %w", p.ID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok {
		return nil, fmt.Errorf("%w: test plan %s has no build", repository.ErrNotFound, planName)
	}
	return buildFromRecord(rec), nil
}

// ForProject lists the plans of a project. A project without plans yields an
// empty list.
func (s *Service) ForProject(ctx context.Context, projectID string) ([]*Plan, error) {
	res, err := s.repo.GetProjectTestPlans(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing test plans of project %s: %w", projectID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	plans := make([]*Plan, 0, len(res.Records))
	for _, rec := range res.Records {
		plans = append(plans, planFromRecord(rec))
	}
	return plans, nil
}
