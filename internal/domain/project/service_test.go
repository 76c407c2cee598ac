package project_test

import (
	"context"
	"testing"

	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/repository/mocks"
	"github.com/ganot/tlink/internal/transport"
	"github.com/stretchr/testify/require"
)

func projectList() transport.Result {
	return transport.Decode([]any{
		map[string]any{"id": "24", "name": "Automatique", "active": "1", "is_public": "1"},
		map[string]any{"id": "52", "name": "Test 2", "active": "0", "is_public": "0"},
	})
}

func TestProjectService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetProjects", ctx).Return(projectList(), nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Get(ctx, "52")
	require.NoError(t, err)
	require.Equal(t, &project.Project{ID: "52", Name: "Test 2"}, proj)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetProjects", ctx).Return(projectList(), nil)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, "99")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_GetByName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetTestProjectByName", ctx, "Automatique").Return(transport.Decode([]any{
		map[string]any{"id": "24", "name": "Automatique", "active": "1", "is_public": "0"},
	}), nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.GetByName(ctx, "Automatique")
	require.NoError(t, err)
	require.Equal(t, "24", proj.ID)
	require.True(t, proj.Active)
	require.False(t, proj.Public)
}

func TestProjectService_GetByNameRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetTestProjectByName", ctx, "Unknown project").Return(transport.Decode([]any{
		map[string]any{"code": "7011", "message": "Test Project (Unknown project) does not exist"},
	}), nil)

	svc := project.NewService(repo, nil)
	_, err := svc.GetByName(ctx, "Unknown project")

	var remoteErr *repository.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "Test Project (Unknown project) does not exist", remoteErr.Message)
}

func TestProjectService_IDByName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GetProjects", ctx).Return(projectList(), nil)

	svc := project.NewService(repo, nil)
	id, err := svc.IDByName(ctx, "Automatique")
	require.NoError(t, err)
	require.Equal(t, "24", id)

	_, err = svc.IDByName(ctx, "Nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
