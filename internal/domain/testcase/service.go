package testcase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/tlink/internal/repository"
)

// Service assembles test cases and answers case lookups.
type Service struct {
	repo   Repository
	suites SuiteResolver
	plans  PlanFinder
	logger *slog.Logger
}

// NewService creates a new test case service.
func NewService(repo Repository, suites SuiteResolver, plans PlanFinder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, suites: suites, plans: plans, logger: logger}
}

// Get fetches a test case and resolves its suite chain. When both ids are
// set the external id wins.
func (s *Service) Get(ctx context.Context, sel Selector) (*Case, error) {
	if sel.ID == "" && sel.ExternalID == "" {
		return nil, fmt.Errorf("%w: test case id or external id is required", repository.ErrInvalidArgument)
	}

	res, err := s.repo.GetTestCase(ctx, sel.ID, sel.ExternalID, sel.Version)
	if err != nil {
		return nil, fmt.Errorf("getting test case: %w", err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok {
		return nil, repository.NewRemoteError("(getTestCase) - empty response for test case %s%s", sel.ID, sel.ExternalID)
	}

	tc := fromRecord(rec)
	tc.Suite, err = s.suites.Resolve(ctx, rec.String("testsuite_id"))
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// GetByExternalID fetches the latest version of a case by external id.
func (s *Service) GetByExternalID(ctx context.Context, externalID string) (*Case, error) {
	return s.Get(ctx, Selector{ExternalID: externalID})
}

// IDByName returns the id of the single case called caseName in the named
// suite and project.
func (s *Service) IDByName(ctx context.Context, caseName, suiteName, projectName string) (string, error) {
	res, err := s.repo.GetTestCaseIDByName(ctx, caseName, suiteName, projectName)
	if err != nil {
		return "", fmt.Errorf("finding test case %q: %w", caseName, err)
	}
	if err := res.Err(); err != nil {
		return "", err
	}

	switch len(res.Records) {
	case 0:
		return "", fmt.Errorf("%w: test case %s in suite %s", repository.ErrNotFound, caseName, suiteName)
	case 1:
	default:
		return "", fmt.Errorf("%w: %d test cases named %s in suite %s of project %s; suite names must be unique within a project",
			repository.ErrAmbiguous, len(res.Records), caseName, suiteName, projectName)
	}

	match := res.Records[0]
	if match.String("name") != caseName {
		return "", repository.NewRemoteError("(getTestCaseIDByName) - unexpected response: asked for %q, got %q", caseName, match.String("name"))
	}
	return match.String("id"), nil
}

// ForPlan assembles every case linked to a plan, in ascending id order.
func (s *Service) ForPlan(ctx context.Context, projectName, planName string) ([]*Case, error) {
	p, err := s.plans.ByName(ctx, projectName, planName)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.GetTestCasesForTestPlan(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("listing test cases of plan %s: %w", p.ID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	ids := res.Keys()
	cases := make([]*Case, 0, len(ids))
	for _, id := range ids {
		tc, err := s.Get(ctx, Selector{ID: id})
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	s.logger.Debug("plan cases assembled", "plan_id", p.ID, "count", len(cases))
	return cases, nil
}

// CustomFieldValue reads a design-scope custom field of the case version.
func (s *Service) CustomFieldValue(ctx context.Context, fieldName string, tc *Case) (string, error) {
	if tc == nil || tc.Suite == nil || tc.Suite.Project == nil {
		return "", fmt.Errorf("%w: test case with a resolved project is required", repository.ErrInvalidArgument)
	}
	res, err := s.repo.GetTestCaseCustomFieldDesignValue(ctx, tc.ExternalID, tc.Version, tc.Suite.Project.ID, fieldName)
	if err != nil {
		return "", fmt.Errorf("reading custom field %s: %w", fieldName, err)
	}
	if err := res.Err(); err != nil {
		return "", err
	}
	if rec, ok := res.First(); ok {
		return rec.String("value"), nil
	}
	return res.Scalar(), nil
}
