package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_tracker/internal/feature/goal/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// mockGoalRepository is a mock implementation of GoalRepository.
type mockGoalRepository struct {
	FindByIDFunc        func(ctx context.Context, id int64) (*entity.Goal, error)
	FindAllByUserIDFunc func(ctx context.Context, userID int64) ([]entity.Goal, error)
	SaveFunc            func(ctx context.Context, g *entity.Goal) (int64, error)
	UpdateFunc          func(ctx context.Context, g *entity.Goal) error
	DeleteByIDFunc      func(ctx context.Context, id int64) error

	calls []string
}

func (m *mockGoalRepository) FindByID(ctx context.Context, id int64) (*entity.Goal, error) {
	m.calls = append(m.calls, "FindByID")
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrGoalNotFound
}

func (m *mockGoalRepository) FindAll(ctx context.Context) ([]entity.Goal, error) {
	m.calls = append(m.calls, "FindAll")
	return []entity.Goal{}, nil
}

func (m *mockGoalRepository) FindAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error) {
	m.calls = append(m.calls, "FindAllByUserID")
	if m.FindAllByUserIDFunc != nil {
		return m.FindAllByUserIDFunc(ctx, userID)
	}
	return []entity.Goal{}, nil
}

func (m *mockGoalRepository) Save(ctx context.Context, g *entity.Goal) (int64, error) {
	m.calls = append(m.calls, "Save")
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, g)
	}
	return 1, nil
}

func (m *mockGoalRepository) Update(ctx context.Context, g *entity.Goal) error {
	m.calls = append(m.calls, "Update")
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, g)
	}
	return nil
}

func (m *mockGoalRepository) DeleteByID(ctx context.Context, id int64) error {
	m.calls = append(m.calls, "DeleteByID")
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func TestGoalUsecase_Create(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"valid", CreateInput{UserID: 1, Description: " Trip ", TargetAmount: decimal.NewFromInt(500)}, nil},
		{"non-positive user", CreateInput{UserID: 0, Description: "Trip", TargetAmount: decimal.NewFromInt(500)}, apperr.ErrInvalidArgument},
		{"blank description", CreateInput{UserID: 1, Description: "  ", TargetAmount: decimal.NewFromInt(500)}, apperr.ErrInvalidArgument},
		{"zero target", CreateInput{UserID: 1, Description: "Trip"}, apperr.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *entity.Goal
			repo := &mockGoalRepository{SaveFunc: func(_ context.Context, g *entity.Goal) (int64, error) {
				saved = g
				return 8, nil
			}}

			id, err := NewGoalUsecase(repo).Create(context.Background(), tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(8), id)
			assert.Equal(t, "Trip", saved.Description)
		})
	}
}

func TestGoalUsecase_Update_KeepsOmittedFields(t *testing.T) {
	var stored *entity.Goal
	repo := &mockGoalRepository{
		FindByIDFunc: func(_ context.Context, id int64) (*entity.Goal, error) {
			return &entity.Goal{ID: id, UserID: 3, Description: "Trip", TargetAmount: decimal.NewFromInt(500)}, nil
		},
		UpdateFunc: func(_ context.Context, g *entity.Goal) error {
			stored = g
			return nil
		},
	}
	target := decimal.NewFromInt(900)

	err := NewGoalUsecase(repo).Update(context.Background(), UpdateInput{ID: 4, TargetAmount: &target})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(3), stored.UserID)
	assert.Equal(t, "Trip", stored.Description)
	assert.True(t, target.Equal(stored.TargetAmount))
}

func TestGoalUsecase_Update_NotFound(t *testing.T) {
	repo := &mockGoalRepository{}

	err := NewGoalUsecase(repo).Update(context.Background(), UpdateInput{ID: 4})

	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.Equal(t, []string{"FindByID"}, repo.calls)
}

func TestGoalUsecase_Delete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		repo := &mockGoalRepository{}
		assert.ErrorIs(t, NewGoalUsecase(repo).Delete(context.Background(), 0), apperr.ErrInvalidArgument)
		assert.Empty(t, repo.calls)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &mockGoalRepository{}
		assert.ErrorIs(t, NewGoalUsecase(repo).Delete(context.Background(), 2), ErrGoalNotFound)
		assert.Equal(t, []string{"FindByID"}, repo.calls)
	})

	t.Run("existing", func(t *testing.T) {
		repo := &mockGoalRepository{FindByIDFunc: func(_ context.Context, id int64) (*entity.Goal, error) {
			return &entity.Goal{ID: id}, nil
		}}
		require.NoError(t, NewGoalUsecase(repo).Delete(context.Background(), 2))
		assert.Equal(t, []string{"FindByID", "DeleteByID"}, repo.calls)
	})
}

func TestGoalUsecase_GetAllByUserID_InvalidUser(t *testing.T) {
	repo := &mockGoalRepository{}

	_, err := NewGoalUsecase(repo).GetAllByUserID(context.Background(), -1)

	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Empty(t, repo.calls)
}
