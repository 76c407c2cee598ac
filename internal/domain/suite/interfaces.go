package suite

import (
	"context"

	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/transport"
)

// Repository provides raw test suite calls.
type Repository interface {
	GetTestSuiteByID(ctx context.Context, suiteID string) (transport.Result, error)
}

// ProjectGetter fetches the project a root suite hangs from.
type ProjectGetter interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
