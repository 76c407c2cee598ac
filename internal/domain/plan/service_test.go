package plan_test

import (
	"context"
	"testing"

	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/require"
)

func fullAuto() transport.Result {
	return transport.Decode([]any{map[string]any{
		"id": "33", "name": "FullAuto", "notes": "", "active": "1", "is_open": "1", "testproject_id": "24",
	}})
}

func TestPlanService_ByName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetTestPlanByName", ctx, "Automatique", "FullAuto").Return(fullAuto(), nil)

	svc := plan.NewService(repo, nil)
	p, err := svc.ByName(ctx, "Automatique", "FullAuto")
	require.NoError(t, err)
	require.Equal(t, "33", p.ID)
	require.Equal(t, "24", p.ProjectID)
	require.True(t, p.Usable())
}

func TestPlanService_ByNameRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetTestPlanByName", ctx, "Test 2", "Name Error").Return(transport.Decode([]any{
		map[string]any{"code": "3033", "message": "Test plan (Name Error) does not exist"},
	}), nil)

	svc := plan.NewService(repo, nil)
	_, err := svc.ByName(ctx, "Test 2", "Name Error")
	require.True(t, repository.IsRemote(err))
	require.EqualError(t, err, "Test plan (Name Error) does not exist")
}

func TestPlanService_BuildByName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetTestPlanByName", ctx, "Automatique", "FullAuto").Return(fullAuto(), nil)
	repo.On("GetBuildsForTestPlan", ctx, "33").Return(transport.Decode([]any{
		map[string]any{"id": "1", "name": "V0.0", "active": "0", "is_open": "0", "testplan_id": "33"},
		map[string]any{"id": "2", "name": "V0.1", "active": "1", "is_open": "1", "testplan_id": "33"},
	}), nil)

	svc := plan.NewService(repo, nil)
	b, err := svc.BuildByName(ctx, "Automatique", "FullAuto", "V0.1")
	require.NoError(t, err)
	require.Equal(t, "2", b.ID)
	require.True(t, b.Usable())

	_, err = svc.BuildByName(ctx, "Automatique", "FullAuto", "V9")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Contains(t, err.Error(), "V9")
}

func TestPlanService_BuildByNameNoBuilds(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetTestPlanByName", ctx, "Automatique", "FullAuto").Return(fullAuto(), nil)
	repo.On("GetBuildsForTestPlan", ctx, "33").Return(transport.Decode(""), nil)

	svc := plan.NewService(repo, nil)
	_, err := svc.BuildByName(ctx, "Automatique", "FullAuto", "V0.1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_LatestBuild(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetTestPlanByName", ctx, "Automatique", "FullAuto").Return(fullAuto(), nil)
	repo.On("GetLatestBuildForTestPlan", ctx, "33").Return(transport.Decode(map[string]any{
		"id": "2", "name": "V0.1", "active": "1", "is_open": "1",
	}), nil)

	svc := plan.NewService(repo, nil)
	b, err := svc.LatestBuild(ctx, "Automatique", "FullAuto")
	require.NoError(t, err)
	require.Equal(t, "V0.1", b.Name)
}

func TestPlanService_ForProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PlanRepository{}
	repo.On("GetProjectTestPlans", ctx, "24").Return(transport.Decode([]any{
		map[string]any{"id": "33", "name": "FullAuto", "active": "1", "is_open": "1", "testproject_id": "24"},
		map[string]any{"id": "34", "name": "Archive", "active": "1", "is_open": "0", "testproject_id": "24"},
	}), nil)
	repo.On("GetProjectTestPlans", ctx, "52").Return(transport.Decode(""), nil)

	svc := plan.NewService(repo, nil)
	plans, err := svc.ForProject(ctx, "24")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.True(t, plans[0].Usable())
	require.False(t, plans[1].Usable())

	plans, err = svc.ForProject(ctx, "52")
	require.NoError(t, err)
	require.Empty(t, plans)
}
