package execution

import (
	"context"

	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/transport"
)

// Repository provides the raw result calls.
type Repository interface {
	GetLastExecutionResult(ctx context.Context, planID, caseID string) (transport.Result, error)
	ReportTCResult(ctx context.Context, caseID, planID, buildName, status, notes string) (transport.Result, error)
}

// PlanFinder looks plans and builds up by name.
type PlanFinder interface {
	ByName(ctx context.Context, projectName, planName string) (*plan.Plan, error)
	BuildByName(ctx context.Context, projectName, planName, buildName string) (*plan.Build, error)
}

// Journal keeps committed executions.
type Journal interface {
	Log(ctx context.Context, entry *Entry) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}
