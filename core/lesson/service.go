package lesson

import (
	"context"
	"errors"
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core"
)

var (
	// errors
	ErrNotFound         = errors.New("lesson not found")
	ErrProgressNotFound = errors.New("progress not found")
)

type (
	Repository interface {
		// ListLessons returns all lessons ordered by OrderIndex.
		ListLessons(ctx context.Context) ([]Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		// ListLessonSteps returns the steps of a lesson ordered by StepNumber; empty for unknown lessons.
		ListLessonSteps(ctx context.Context, lessonID string) ([]Step, error)
		ListLessonsWithProgress(ctx context.Context, userID string) ([]WithProgress, error)

		GetProgress(ctx context.Context, userID, lessonID string) (Progress, error)
		ListUserProgress(ctx context.Context, userID string) ([]Progress, error)
		// UpdateProgress creates or overwrites the Progress of (userID, lessonID), keeping its ID.
		UpdateProgress(ctx context.Context, userID, lessonID string, currentStep int, completed bool) (Progress, error)
		// GetProgressStats counts the lessons userID completed out of all lessons.
		GetProgressStats(ctx context.Context, userID string) (Stats, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every lesson, paired with userID's progress when userID is set.
func (svc *Service) List(ctx context.Context, userID string) ([]WithProgress, error) {
	userID = core.CleanString(userID)
	if userID != "" {
		return svc.repo.ListLessonsWithProgress(ctx, userID)
	}

	lessons, err := svc.repo.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]WithProgress, 0, len(lessons))
	for _, l := range lessons {
		res = append(res, WithProgress{Lesson: l})
	}
	return res, nil
}

func (svc *Service) Detail(ctx context.Context, id, userID string) (Detail, error) {
	l, err := svc.repo.GetLessonByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	steps, err := svc.repo.ListLessonSteps(ctx, id)
	if err != nil {
		return Detail{}, pkgerrors.Wrap(err, "listing lesson steps")
	}
	// seed validation guarantees TotalSteps steps; anything else means the store is corrupt
	if len(steps) != l.TotalSteps {
		return Detail{}, core.NewShutdownError(
			fmt.Sprintf("integrity issue: lesson %q has %d steps, want %d", id, len(steps), l.TotalSteps),
		)
	}

	detail := Detail{Lesson: l, Steps: steps}
	if userID = core.CleanString(userID); userID != "" {
		prog, err := svc.repo.GetProgress(ctx, userID, id)
		switch {
		case err == nil:
			detail.Progress = &prog
		case !errors.Is(err, ErrProgressNotFound):
			return Detail{}, pkgerrors.Wrap(err, "getting progress")
		}
	}
	return detail, nil
}

// UpdateProgress records a validated ProgressUpdate. The lesson is not checked for existence and
// CurrentStep may exceed its TotalSteps.
func (svc *Service) UpdateProgress(ctx context.Context, lessonID string, pu ProgressUpdate) (Progress, error) {
	return svc.repo.UpdateProgress(ctx, pu.UserID, lessonID, *pu.CurrentStep, pu.Completed)
}

// UserProgress returns all the progress records of userID, in no particular order.
func (svc *Service) UserProgress(ctx context.Context, userID string) ([]Progress, error) {
	return svc.repo.ListUserProgress(ctx, core.CleanString(userID))
}

func (svc *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	return svc.repo.GetProgressStats(ctx, core.CleanString(userID))
}

// NewStats computes the completion percentage, rounded half away from zero; 0 when total is 0.
func NewStats(completed, total int) Stats {
	var pct int
	if total > 0 {
		pct = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return Stats{Completed: completed, Total: total, Percentage: pct}
}
