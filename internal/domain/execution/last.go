package execution

import (
	"context"
	"fmt"

	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/repository"
)

// notExecutedID is the id TestLink answers with when a case has no execution.
const notExecutedID = "-1"

// LastResult is the most recent execution of a case in a plan, across builds.
type LastResult struct {
	ExecutionID string  `json:"execution_id"`
	Verdict     Verdict `json:"verdict"`
	Notes       string  `json:"notes,omitempty"`
	Version     string  `json:"version,omitempty"`
}

// LastResult looks up the last execution of tc in the plan named planName of
// the case's project. It returns ErrNotFound when the case never ran there.
func (r *Reporter) LastResult(ctx context.Context, planName string, tc *testcase.Case) (*LastResult, error) {
	if tc == nil || tc.Suite == nil || tc.Suite.Project == nil {
		return nil, fmt.Errorf("%w: test case with a resolved project is required", repository.ErrInvalidArgument)
	}
	if planName == "" {
		return nil, fmt.Errorf("%w: test plan name is required", repository.ErrInvalidArgument)
	}

	p, err := r.plans.ByName(ctx, tc.Suite.Project.Name, planName)
	if err != nil {
		return nil, err
	}
	res, err := r.results.GetLastExecutionResult(ctx, p.ID, tc.ID)
	if err != nil {
		return nil, fmt.Errorf("getting last execution of test case %s: %w", tc.ID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok || rec.String("id") == notExecutedID {
		return nil, fmt.Errorf("%w: test case %s has no execution in test plan %s", repository.ErrNotFound, tc.ID, planName)
	}
	return &LastResult{
		ExecutionID: rec.String("id"),
		Verdict:     Verdict(rec.String("status")),
		Notes:       rec.String("notes"),
		Version:     rec.String("tcversion_number"),
	}, nil
}
