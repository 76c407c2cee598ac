package mocks

import (
	"context"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/mock"
)

func result(args mock.Arguments) (transport.Result, error) {
	if res, ok := args.Get(0).(transport.Result); ok {
		return res, args.Error(1)
	}
	return transport.Result{}, args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) GetProjects(ctx context.Context) (transport.Result, error) {
	return result(m.Called(ctx))
}

func (m *ProjectRepository) GetTestProjectByName(ctx context.Context, projectName string) (transport.Result, error) {
	return result(m.Called(ctx, projectName))
}

// SuiteRepository is a mock for suite.Repository.
type SuiteRepository struct {
	mock.Mock
}

func (m *SuiteRepository) GetTestSuiteByID(ctx context.Context, suiteID string) (transport.Result, error) {
	return result(m.Called(ctx, suiteID))
}

// CaseRepository is a mock for testcase.Repository.
type CaseRepository struct {
	mock.Mock
}

func (m *CaseRepository) GetTestCase(ctx context.Context, caseID, externalID, version string) (transport.Result, error) {
	return result(m.Called(ctx, caseID, externalID, version))
}

func (m *CaseRepository) GetTestCaseIDByName(ctx context.Context, caseName, suiteName, projectName string) (transport.Result, error) {
	return result(m.Called(ctx, caseName, suiteName, projectName))
}

func (m *CaseRepository) GetTestCasesForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return result(m.Called(ctx, planID))
}

func (m *CaseRepository) GetTestCaseCustomFieldDesignValue(ctx context.Context, externalID, version, projectID, fieldName string) (transport.Result, error) {
	return result(m.Called(ctx, externalID, version, projectID, fieldName))
}

// PlanRepository is a mock for plan.Repository.
type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) GetProjectTestPlans(ctx context.Context, projectID string) (transport.Result, error) {
	return result(m.Called(ctx, projectID))
}

func (m *PlanRepository) GetTestPlanByName(ctx context.Context, projectName, planName string) (transport.Result, error) {
	return result(m.Called(ctx, projectName, planName))
}

func (m *PlanRepository) GetBuildsForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return result(m.Called(ctx, planID))
}

func (m *PlanRepository) GetLatestBuildForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return result(m.Called(ctx, planID))
}

// ResultRepository is a mock for execution.Repository.
type ResultRepository struct {
	mock.Mock
}

func (m *ResultRepository) GetLastExecutionResult(ctx context.Context, planID, caseID string) (transport.Result, error) {
	return result(m.Called(ctx, planID, caseID))
}

func (m *ResultRepository) ReportTCResult(ctx context.Context, caseID, planID, buildName, status, notes string) (transport.Result, error) {
	return result(m.Called(ctx, caseID, planID, buildName, status, notes))
}

// Journal is a mock for execution.Journal.
type Journal struct {
	mock.Mock
}

func (m *Journal) Log(ctx context.Context, entry *execution.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Journal) List(ctx context.Context, opts execution.ListOptions) ([]execution.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]execution.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
