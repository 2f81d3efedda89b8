package services

import (
	"testing"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardSvc(env *testEnv) BoardService {
	return NewBoardService(env.boardRepo, env.projectRepo, env.permissions, env.audit)
}

func TestCreateBoardAssignsMonotonicPositions(t *testing.T) {
	env := newTestEnv(t)
	svc := newBoardSvc(env)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	project, first, _ := env.createChain(t, owner)
	require.EqualValues(t, 0, first.Position)

	second, err := svc.CreateBoard(actorInfo(owner), dto.CreateBoardRequest{
		Name: "Sprint2", ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.Position)

	// positions are never reused, even after a delete
	require.NoError(t, svc.DeleteBoard(actorInfo(owner), second.ID))

	third, err := svc.CreateBoard(actorInfo(owner), dto.CreateBoardRequest{
		Name: "Sprint3", ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, third.Position)
}

func TestListBoardsOrderedByPosition(t *testing.T) {
	env := newTestEnv(t)
	svc := newBoardSvc(env)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	project, _, _ := env.createChain(t, owner)

	for _, name := range []string{"Sprint2", "Sprint3"} {
		_, err := svc.CreateBoard(actorInfo(owner), dto.CreateBoardRequest{
			Name: name, ProjectID: project.ID,
		})
		require.NoError(t, err)
	}

	boards, err := svc.ListBoards(actorInfo(owner), project.ID)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Equal(t, []string{"Sprint1", "Sprint2", "Sprint3"},
		[]string{boards[0].Name, boards[1].Name, boards[2].Name})
}

func TestCreateBoardDeniedForStranger(t *testing.T) {
	env := newTestEnv(t)
	svc := newBoardSvc(env)

	owner := env.createUser(t, "owner@example.com", domain.RoleMember)
	stranger := env.createUser(t, "stranger@example.com", domain.RoleMember)
	project, _, _ := env.createChain(t, owner)

	_, err := svc.CreateBoard(actorInfo(stranger), dto.CreateBoardRequest{
		Name: "Nope", ProjectID: project.ID,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}
