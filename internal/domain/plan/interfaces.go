package plan

import (
	"context"

	"github.com/ganot/tlink/internal/transport"
)

// Repository provides raw plan and build calls.
type Repository interface {
	GetProjectTestPlans(ctx context.Context, projectID string) (transport.Result, error)
	GetTestPlanByName(ctx context.Context, projectName, planName string) (transport.Result, error)
	GetBuildsForTestPlan(ctx context.Context, planID string) (transport.Result, error)
	GetLatestBuildForTestPlan(ctx context.Context, planID string) (transport.Result, error)
}
