package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// GoalService guards the single-active-goal invariant: creation always
// replaces whatever goal exists.
type GoalService struct {
	storage *storage.SQLiteRepository
}

func NewGoalService(storage *storage.SQLiteRepository) *GoalService {
	return &GoalService{storage: storage}
}

// LatestGoal returns the active goal, or core.ErrNotFound when none is set.
func (s *GoalService) LatestGoal(ctx context.Context) (core.Goal, error) {
	return s.storage.LatestGoal(ctx)
}

// ReplaceGoal validates and installs a new goal, discarding all prior ones.
func (s *GoalService) ReplaceGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	replaced, err := s.storage.ReplaceGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("replace goal: %w", err)
	}
	return replaced, nil
}
