package testcase_test

import (
	"context"
	"testing"

	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/require"
)

type stubSuites struct {
	resolved []string
}

func (s *stubSuites) Resolve(_ context.Context, suiteID string) (*suite.Suite, error) {
	s.resolved = append(s.resolved, suiteID)
	return &suite.Suite{
		ID:      suiteID,
		Name:    "S1",
		IsRoot:  true,
		Project: &project.Project{ID: "24", Name: "Automatique", Active: true},
	}, nil
}

type stubPlans struct{}

func (stubPlans) ByName(_ context.Context, projectName, planName string) (*plan.Plan, error) {
	return &plan.Plan{ID: "33", Name: planName, Active: true, Open: true}, nil
}

func caseRecord(id, name, executionType string) transport.Result {
	return transport.Decode([]any{map[string]any{
		"testcase_id":         id,
		"full_tc_external_id": "auto-" + id,
		"version":             "1",
		"active":              "1",
		"is_open":             "0",
		"name":                name,
		"summary":             "summary",
		"preconditions":       "none",
		"execution_type":      executionType,
		"testsuite_id":        "7",
	}})
}

func TestCaseService_GetRequiresSelector(t *testing.T) {
	repo := &mocks.CaseRepository{}
	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)

	_, err := svc.Get(context.Background(), testcase.Selector{Version: "1"})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
	repo.AssertNotCalled(t, "GetTestCase")
}

func TestCaseService_GetMapsFields(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCase", ctx, "5", "", "").Return(caseRecord("5", "test1", "2"), nil)
	suites := &stubSuites{}

	svc := testcase.NewService(repo, suites, stubPlans{}, nil)
	tc, err := svc.Get(ctx, testcase.Selector{ID: "5"})
	require.NoError(t, err)

	require.Equal(t, "5", tc.ID)
	require.Equal(t, "auto-5", tc.ExternalID)
	require.Equal(t, "1", tc.Version)
	require.True(t, tc.Active)
	require.False(t, tc.Open)
	require.Equal(t, testcase.ExecutionAuto, tc.ExecutionType)
	require.Equal(t, "Automatique", tc.Suite.Project.Name)
	require.Equal(t, []string{"7"}, suites.resolved)
}

func TestExecutionTypeFromCode(t *testing.T) {
	tests := map[string]testcase.ExecutionType{
		"2": testcase.ExecutionAuto,
		"1": testcase.ExecutionManual,
		"0": testcase.ExecutionManual,
		"":  testcase.ExecutionManual,
	}
	for code, want := range tests {
		require.Equal(t, want, testcase.ExecutionTypeFromCode(code), "code %q", code)
	}
}

func TestCaseService_GetByExternalIDRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCase", ctx, "", "Id not known", "").Return(transport.Decode([]any{
		map[string]any{"code": "5040", "message": "Test Case External ID (Id not known) does not exist"},
	}), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	_, err := svc.GetByExternalID(ctx, "Id not known")
	require.True(t, repository.IsRemote(err))
}

func TestCaseService_IDByName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCaseIDByName", ctx, "Fin de programme", "Séquence 2", "Test 2").Return(transport.Decode([]any{
		map[string]any{"id": "31", "name": "Fin de programme", "tsuite_name": "Séquence 2"},
	}), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	id, err := svc.IDByName(ctx, "Fin de programme", "Séquence 2", "Test 2")
	require.NoError(t, err)
	require.Equal(t, "31", id)
}

func TestCaseService_IDByNameAmbiguous(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCaseIDByName", ctx, "Initialisation", "Séquence 1", "Test 2").Return(transport.Decode([]any{
		map[string]any{"id": "12", "name": "Initialisation"},
		map[string]any{"id": "19", "name": "Initialisation"},
	}), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	_, err := svc.IDByName(ctx, "Initialisation", "Séquence 1", "Test 2")
	require.ErrorIs(t, err, repository.ErrAmbiguous)
}

func TestCaseService_IDByNameUnexpectedName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCaseIDByName", ctx, "test1", "S1", "Automatique").Return(transport.Decode([]any{
		map[string]any{"id": "12", "name": "test10"},
	}), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	_, err := svc.IDByName(ctx, "test1", "S1", "Automatique")
	require.True(t, repository.IsRemote(err))
}

func TestCaseService_IDByNameRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCaseIDByName", ctx, "x", "S1", "Automatique").Return(transport.Decode([]any{
		map[string]any{"code": "5030", "message": "Cannot find matching test case. No testcase name has been provided"},
	}), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	_, err := svc.IDByName(ctx, "x", "S1", "Automatique")
	require.EqualError(t, err, "Cannot find matching test case. No testcase name has been provided")
}

func TestCaseService_ForPlan(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCasesForTestPlan", ctx, "33").Return(transport.Decode(map[string]any{
		"12": []any{map[string]any{"tcase_id": "12"}},
		"5":  []any{map[string]any{"tcase_id": "5"}},
	}), nil)
	repo.On("GetTestCase", ctx, "5", "", "").Return(caseRecord("5", "test1", "2"), nil)
	repo.On("GetTestCase", ctx, "12", "", "").Return(caseRecord("12", "test2", "1"), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	cases, err := svc.ForPlan(ctx, "Automatique", "FullAuto")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Equal(t, "test1", cases[0].Name)
	require.Equal(t, "test2", cases[1].Name)
	require.Equal(t, testcase.ExecutionManual, cases[1].ExecutionType)
}

func TestCaseService_CustomFieldValue(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CaseRepository{}
	repo.On("GetTestCaseCustomFieldDesignValue", ctx, "auto-5", "1", "24", "AutomaticTestFunction").
		Return(transport.Decode("Fonction_auto-5"), nil)
	repo.On("GetTestCase", ctx, "5", "", "").Return(caseRecord("5", "test1", "2"), nil)

	svc := testcase.NewService(repo, &stubSuites{}, stubPlans{}, nil)
	tc, err := svc.Get(ctx, testcase.Selector{ID: "5"})
	require.NoError(t, err)

	value, err := svc.CustomFieldValue(ctx, "AutomaticTestFunction", tc)
	require.NoError(t, err)
	require.Equal(t, "Fonction_auto-5", value)

	_, err = svc.CustomFieldValue(ctx, "AutomaticTestFunction", &testcase.Case{ID: "5"})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}
