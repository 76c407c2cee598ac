package execution_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestHistory_ListDefaults(t *testing.T) {
	ctx := context.Background()
	journal := &mocks.Journal{}
	entries := []execution.Entry{{ID: "a", ExecutionID: "101"}}
	journal.On("List", ctx, execution.ListOptions{CaseID: "5", Limit: 50}).Return(entries, nil)

	got, err := execution.NewHistory(journal, nil).List(ctx, execution.ListOptions{CaseID: "5", Offset: -3})
	require.NoError(t, err)
	require.Equal(t, entries, got)
	journal.AssertExpectations(t)
}

func TestHistory_ListError(t *testing.T) {
	ctx := context.Background()
	journal := &mocks.Journal{}
	journal.On("List", ctx, execution.ListOptions{Limit: 10}).Return(nil, errors.New("disk I/O error"))

	_, err := execution.NewHistory(journal, nil).List(ctx, execution.ListOptions{Limit: 10})
	require.ErrorContains(t, err, "listing executions")
}

func TestHistory_Disabled(t *testing.T) {
	_, err := execution.NewHistory(nil, nil).List(context.Background(), execution.ListOptions{})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}
