// Package app wires the TestLink client services over one remote caller.
package app

import (
	"log/slog"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/remote"
	"github.com/ganot/tlink/internal/transport"
)

// App holds the services built over a single TestLink connection.
type App struct {
	Remote   *remote.Client
	Projects *project.Service
	Suites   *suite.Resolver
	Cases    *testcase.Service
	Plans    *plan.Service
	Reporter *execution.Reporter
	History  *execution.History
}

// New builds every service over caller. journal may be nil, in which case
// committed executions are not kept locally.
func New(caller transport.Caller, journal execution.Journal, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client := remote.New(caller)
	projectSvc := project.NewService(client, logger)
	resolver := suite.NewResolver(client, projectSvc, logger)
	planSvc := plan.NewService(client, logger)
	caseSvc := testcase.NewService(client, resolver, planSvc, logger)

	return &App{
		Remote:   client,
		Projects: projectSvc,
		Suites:   resolver,
		Cases:    caseSvc,
		Plans:    planSvc,
		Reporter: execution.NewReporter(client, planSvc, journal, logger),
		History:  execution.NewHistory(journal, logger),
	}
}
