package execution_test

import (
	"context"
	"testing"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/require"
)

func TestReporter_LastResult(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	results.On("GetLastExecutionResult", ctx, "33", "5").Return(transport.Decode([]any{
		map[string]any{"id": "412", "status": "f", "notes": "timeout", "tcversion_number": "3"},
	}), nil)

	r := execution.NewReporter(results, usablePlans(), nil, nil)
	last, err := r.LastResult(ctx, "FullAuto", automaticCase(true))
	require.NoError(t, err)
	require.Equal(t, &execution.LastResult{
		ExecutionID: "412",
		Verdict:     execution.VerdictFail,
		Notes:       "timeout",
		Version:     "3",
	}, last)
}

func TestReporter_LastResultNeverExecuted(t *testing.T) {
	ctx := context.Background()
	results := &mocks.ResultRepository{}
	results.On("GetLastExecutionResult", ctx, "33", "5").Return(transport.Decode([]any{
		map[string]any{"id": -1},
	}), nil)

	r := execution.NewReporter(results, usablePlans(), nil, nil)
	_, err := r.LastResult(ctx, "FullAuto", automaticCase(true))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReporter_LastResultRequiresPlan(t *testing.T) {
	results := &mocks.ResultRepository{}
	plans := usablePlans()

	r := execution.NewReporter(results, plans, nil, nil)
	_, err := r.LastResult(context.Background(), "", automaticCase(true))
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
	require.Zero(t, plans.calls)
	results.AssertNotCalled(t, "GetLastExecutionResult")
}
