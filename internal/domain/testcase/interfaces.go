package testcase

import (
	"context"

	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/transport"
)

// Repository provides raw test case calls.
type Repository interface {
	GetTestCase(ctx context.Context, caseID, externalID, version string) (transport.Result, error)
	GetTestCaseIDByName(ctx context.Context, caseName, suiteName, projectName string) (transport.Result, error)
	GetTestCasesForTestPlan(ctx context.Context, planID string) (transport.Result, error)
	GetTestCaseCustomFieldDesignValue(ctx context.Context, externalID, version, projectID, fieldName string) (transport.Result, error)
}

// SuiteResolver resolves the suite chain owning a case.
type SuiteResolver interface {
	Resolve(ctx context.Context, suiteID string) (*suite.Suite, error)
}

// PlanFinder looks plans up by name.
type PlanFinder interface {
	ByName(ctx context.Context, projectName, planName string) (*plan.Plan, error)
}
