package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/domain/testcase"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	GetByName(ctx context.Context, name string) (*project.Project, error)
	List(ctx context.Context) ([]*project.Project, error)
}

// SuiteService resolves suite chains.
type SuiteService interface {
	Resolve(ctx context.Context, suiteID string) (*suite.Suite, error)
}

// CaseService defines test case operations needed by MCP.
type CaseService interface {
	Get(ctx context.Context, sel testcase.Selector) (*testcase.Case, error)
	IDByName(ctx context.Context, caseName, suiteName, projectName string) (string, error)
	ForPlan(ctx context.Context, projectName, planName string) ([]*testcase.Case, error)
	CustomFieldValue(ctx context.Context, fieldName string, tc *testcase.Case) (string, error)
}

// PlanService defines plan and build lookups needed by MCP.
type PlanService interface {
	ByName(ctx context.Context, projectName, planName string) (*plan.Plan, error)
	BuildByName(ctx context.Context, projectName, planName, buildName string) (*plan.Build, error)
	LatestBuild(ctx context.Context, projectName, planName string) (*plan.Build, error)
	ForProject(ctx context.Context, projectID string) ([]*plan.Plan, error)
}

// ResultReporter commits test results.
type ResultReporter interface {
	Report(ctx context.Context, req execution.ReportRequest) (string, error)
	LastResult(ctx context.Context, planName string, tc *testcase.Case) (*execution.LastResult, error)
}

// HistoryService lists journaled executions.
type HistoryService interface {
	List(ctx context.Context, opts execution.ListOptions) ([]execution.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Suites   SuiteService
	Cases    CaseService
	Plans    PlanService
	Reporter ResultReporter
	History  HistoryService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tlink",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	cfg.Logger.Debug("mcp server configured", "transport", cfg.TransportMode)
	return server
}
