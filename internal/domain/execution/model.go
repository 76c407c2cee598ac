package execution

import (
	"fmt"
	"time"

	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/repository"
)

// ReportRequest describes one result to commit.
type ReportRequest struct {
	Verdict   Verdict
	Case      *testcase.Case
	Notes     string
	PlanName  string
	BuildName string
}

// Validate checks the request before any remote call is made.
func (r ReportRequest) Validate() error {
	if !r.Verdict.Valid() {
		return fmt.Errorf("%w: test result must be 'p', 'f' or 'b', got %q", repository.ErrInvalidArgument, string(r.Verdict))
	}
	if r.Case == nil {
		return fmt.Errorf("%w: test case is required", repository.ErrInvalidArgument)
	}
	if r.Case.Suite == nil || r.Case.Suite.Project == nil {
		return fmt.Errorf("%w: test case %s has no resolved project", repository.ErrInvalidArgument, r.Case.ID)
	}
	if r.PlanName == "" {
		return fmt.Errorf("%w: test plan name is required", repository.ErrInvalidArgument)
	}
	if r.BuildName == "" {
		return fmt.Errorf("%w: build name is required", repository.ErrInvalidArgument)
	}
	return nil
}

// Entry is one committed execution kept in the local journal.
type Entry struct {
	ID             string    `json:"id"`
	ExecutionID    string    `json:"execution_id"`
	CaseID         string    `json:"case_id"`
	CaseExternalID string    `json:"case_external_id,omitempty"`
	CaseName       string    `json:"case_name"`
	ProjectName    string    `json:"project_name"`
	PlanID         string    `json:"plan_id"`
	PlanName       string    `json:"plan_name"`
	BuildName      string    `json:"build_name"`
	Verdict        Verdict   `json:"verdict"`
	Notes          string    `json:"notes,omitempty"`
	ReportedAt     time.Time `json:"reported_at"`
}

// ListOptions provides filtering options for the journal.
type ListOptions struct {
	CaseID   string
	PlanName string
	Limit    int
	Offset   int
}
