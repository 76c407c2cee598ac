package execution_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePlans struct {
	plan    *plan.Plan
	build   *plan.Build
	planErr error
	calls   int
}

func (f *fakePlans) ByName(_ context.Context, _, _ string) (*plan.Plan, error) {
	f.calls++
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fakePlans) BuildByName(_ context.Context, _, _, buildName string) (*plan.Build, error) {
	f.calls++
	if f.build == nil || f.build.Name != buildName {
		return nil, repository.ErrNotFound
	}
	return f.build, nil
}

func usablePlans() *fakePlans {
	return &fakePlans{
		plan:  &plan.Plan{ID: "33", Name: "FullAuto", ProjectID: "24", Active: true, Open: true},
		build: &plan.Build{ID: "2", Name: "V0.1", PlanID: "33", Active: true, Open: true},
	}
}

func automaticCase(active bool) *testcase.Case {
	return &testcase.Case{
		ID:         "5",
		ExternalID: "auto-1",
		Name:       "test1",
		Suite: &suite.Suite{
			ID:      "7",
			Name:    "S1",
			IsRoot:  true,
			Project: &project.Project{ID: "24", Name: "Automatique", Active: active},
		},
	}
}

func request(verdict execution.Verdict, notes string) execution.ReportRequest {
	return execution.ReportRequest{
		Verdict:   verdict,
		Case:      automaticCase(true),
		Notes:     notes,
		PlanName:  "FullAuto",
		BuildName: "V0.1",
	}
}

func success(id string) transport.Result {
	return transport.Decode([]any{map[string]any{
		"status": true, "operation": "reportTCResult", "overwrite": false, "message": "Success!", "id": id,
	}})
}

func TestReporter_InvalidVerdictMakesNoCalls(t *testing.T) {
	results := &mocks.ResultRepository{}
	plans := usablePlans()
	reporter := execution.NewReporter(results, plans, nil, nil)

	_, err := reporter.Report(context.Background(), request("x", ""))
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
	require.Zero(t, plans.calls)
	results.AssertNotCalled(t, "ReportTCResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReporter_MissingFieldsAreArgumentErrors(t *testing.T) {
	reporter := execution.NewReporter(&mocks.ResultRepository{}, usablePlans(), nil, nil)
	ctx := context.Background()

	noCase := request(execution.VerdictPass, "")
	noCase.Case = nil
	_, err := reporter.Report(ctx, noCase)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	noBuild := request(execution.VerdictPass, "")
	noBuild.BuildName = ""
	_, err = reporter.Report(ctx, noBuild)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	unresolved := request(execution.VerdictPass, "")
	unresolved.Case.Suite = nil
	_, err = reporter.Report(ctx, unresolved)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func TestReporter_Success(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	journal := &mocks.Journal{}
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "p", "custom").Return(success("4711"), nil)
	journal.On("Log", ctx, mock.MatchedBy(func(e *execution.Entry) bool {
		return e.ExecutionID == "4711" && e.CaseID == "5" && e.PlanID == "33" &&
			e.Verdict == execution.VerdictPass && e.ProjectName == "Automatique" && e.ID != ""
	})).Return(nil)

	id, err := execution.NewReporter(results, usablePlans(), journal, nil).Report(ctx, request(execution.VerdictPass, "custom"))
	require.NoError(t, err)
	require.Equal(t, "4711", id)
	results.AssertExpectations(t)
	journal.AssertExpectations(t)
}

func TestReporter_NotesPolicy(t *testing.T) {
	ctx := context.Background()

	results := &mocks.ResultRepository{}
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "b", mock.MatchedBy(func(notes string) bool {
		return strings.HasSuffix(notes, " - Test performed automatically")
	})).Return(success("1"), nil).Once()
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "f", "").Return(success("2"), nil).Once()

	reporter := execution.NewReporter(results, usablePlans(), nil, nil)
	_, err := reporter.Report(ctx, request(execution.VerdictBlocked, ""))
	require.NoError(t, err)
	_, err = reporter.Report(ctx, request(execution.VerdictFail, execution.BlankNotes))
	require.NoError(t, err)
	results.AssertExpectations(t)
}

func TestReporter_InactiveProject(t *testing.T) {
	results := &mocks.ResultRepository{}
	plans := usablePlans()
	req := request(execution.VerdictPass, "")
	req.Case = automaticCase(false)

	_, err := execution.NewReporter(results, plans, nil, nil).Report(context.Background(), req)
	require.True(t, repository.IsRemote(err))
	require.Contains(t, err.Error(), "Automatique")
	require.Zero(t, plans.calls)
}

func TestReporter_ClosedPlan(t *testing.T) {
	results := &mocks.ResultRepository{}
	plans := usablePlans()
	plans.plan.Open = false

	_, err := execution.NewReporter(results, plans, nil, nil).Report(context.Background(), request(execution.VerdictPass, ""))
	require.True(t, repository.IsRemote(err))
	require.Contains(t, err.Error(), "FullAuto")
	results.AssertNotCalled(t, "ReportTCResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReporter_ClosedBuild(t *testing.T) {
	results := &mocks.ResultRepository{}
	plans := usablePlans()
	plans.build.Open = false

	_, err := execution.NewReporter(results, plans, nil, nil).Report(context.Background(), request(execution.VerdictPass, ""))
	require.True(t, repository.IsRemote(err))
	require.Contains(t, err.Error(), "V0.1")
	results.AssertNotCalled(t, "ReportTCResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReporter_UnknownBuild(t *testing.T) {
	results := &mocks.ResultRepository{}
	req := request(execution.VerdictPass, "")
	req.BuildName = "V9.9"

	_, err := execution.NewReporter(results, usablePlans(), nil, nil).Report(context.Background(), req)
	require.ErrorIs(t, err, repository.ErrNotFound)
	results.AssertNotCalled(t, "ReportTCResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReporter_PlanLookupFails(t *testing.T) {
	plans := usablePlans()
	plans.planErr = repository.NewRemoteError("Test plan (Nope) does not exist")

	_, err := execution.NewReporter(&mocks.ResultRepository{}, plans, nil, nil).Report(context.Background(), request(execution.VerdictPass, ""))
	require.EqualError(t, err, "Test plan (Nope) does not exist")
}

func TestReporter_CommitRejected(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "p", "n").Return(transport.Decode([]any{
		map[string]any{"code": "3000", "message": "Test Case ID 5 is not linked to test plan 33"},
	}), nil)
	journal := &mocks.Journal{}

	_, err := execution.NewReporter(results, usablePlans(), journal, nil).Report(ctx, request(execution.VerdictPass, "n"))
	require.EqualError(t, err, "Test Case ID 5 is not linked to test plan 33")
	journal.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestReporter_TransportFailure(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "p", "n").Return(transport.Result{}, errors.New("connection refused"))

	_, err := execution.NewReporter(results, usablePlans(), nil, nil).Report(ctx, request(execution.VerdictPass, "n"))
	require.ErrorContains(t, err, "connection refused")
	require.False(t, repository.IsRemote(err))
}

func TestReporter_JournalFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	results.On("ReportTCResult", ctx, "5", "33", "V0.1", "p", "n").Return(success("9"), nil)
	journal := &mocks.Journal{}
	journal.On("Log", ctx, mock.Anything).Return(errors.New("database is locked"))

	id, err := execution.NewReporter(results, usablePlans(), journal, nil).Report(ctx, request(execution.VerdictPass, "n"))
	require.NoError(t, err)
	require.Equal(t, "9", id)
}
