package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/stretchr/testify/require"
)

func entry(executionID, caseID, planName string, verdict execution.Verdict, at time.Time) *execution.Entry {
	return &execution.Entry{
		ExecutionID:    executionID,
		CaseID:         caseID,
		CaseExternalID: "auto-" + caseID,
		CaseName:       "test" + caseID,
		ProjectName:    "Automatique",
		PlanID:         "33",
		PlanName:       planName,
		BuildName:      "V0.1",
		Verdict:        verdict,
		ReportedAt:     at,
	}
}

func TestJournalRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewJournalRepository(db)

	base := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	first := entry("101", "5", "FullAuto", execution.VerdictPass, base)
	first.Notes = "custom"
	second := entry("102", "5", "FullAuto", execution.VerdictFail, base.Add(time.Minute))

	require.NoError(t, repo.Log(ctx, first))
	require.NoError(t, repo.Log(ctx, second))
	require.NotEmpty(t, first.ID)

	entries, err := repo.List(ctx, execution.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "102", entries[0].ExecutionID)
	require.Equal(t, "101", entries[1].ExecutionID)

	got := entries[1]
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "auto-5", got.CaseExternalID)
	require.Equal(t, "custom", got.Notes)
	require.Equal(t, execution.VerdictPass, got.Verdict)
	require.True(t, base.Equal(got.ReportedAt))
	require.Empty(t, entries[0].Notes)
}

func TestJournalRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewJournalRepository(db)

	base := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Log(ctx, entry("1", "5", "FullAuto", execution.VerdictPass, base)))
	require.NoError(t, repo.Log(ctx, entry("2", "6", "FullAuto", execution.VerdictBlocked, base.Add(time.Second))))
	require.NoError(t, repo.Log(ctx, entry("3", "5", "Nightly", execution.VerdictFail, base.Add(2*time.Second))))

	entries, err := repo.List(ctx, execution.ListOptions{CaseID: "5"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, execution.ListOptions{CaseID: "5", PlanName: "FullAuto"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "1", entries[0].ExecutionID)

	entries, err = repo.List(ctx, execution.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "2", entries[0].ExecutionID)
}

func TestJournalRepository_DuplicateExecution(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewJournalRepository(db)

	at := time.Now()
	require.NoError(t, repo.Log(ctx, entry("7", "5", "FullAuto", execution.VerdictPass, at)))
	require.NoError(t, repo.Log(ctx, entry("7", "5", "FullAuto", execution.VerdictPass, at)))

	entries, err := repo.List(ctx, execution.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
