package project

import (
	"context"

	"github.com/ganot/tlink/internal/transport"
)

// Repository provides raw project calls.
type Repository interface {
	GetProjects(ctx context.Context) (transport.Result, error)
	GetTestProjectByName(ctx context.Context, projectName string) (transport.Result, error)
}
