package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/lesson"
)

type lessonRepository struct {
	db       *lessonTable
	progress *progressTable
	now      func() time.Time
}

var _ lesson.Repository = (*lessonRepository)(nil)

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db.lesson, progress: db.progress, now: db.now}
}

func (repo *lessonRepository) ListLessons(ctx context.Context) ([]lesson.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.lessons(), nil
}

// lessons must be called with the read lock held.
func (repo *lessonRepository) lessons() []lesson.Lesson {
	lessons := make([]lesson.Lesson, 0, len(repo.db.lessons))
	for _, l := range repo.db.lessons {
		lessons = append(lessons, *l)
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].OrderIndex < lessons[j].OrderIndex })
	return lessons
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.lessons[id]; ok {
		return *l, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) ListLessonSteps(_ context.Context, lessonID string) ([]lesson.Step, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	steps := make([]lesson.Step, 0)
	for _, s := range repo.db.steps {
		if s.LessonID == lessonID {
			steps = append(steps, *s)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepNumber < steps[j].StepNumber })
	return steps, nil
}

func (repo *lessonRepository) ListLessonsWithProgress(ctx context.Context, userID string) ([]lesson.WithProgress, error) {
	lessons, err := repo.ListLessons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing lessons")
	}
	progress, err := repo.ListUserProgress(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing user progress")
	}

	byLesson := make(map[string]lesson.Progress, len(progress))
	for _, p := range progress {
		byLesson[p.LessonID] = p
	}

	res := make([]lesson.WithProgress, 0, len(lessons))
	for _, l := range lessons {
		lwp := lesson.WithProgress{Lesson: l}
		if p, ok := byLesson[l.ID]; ok {
			lwp.Progress = &p
		}
		res = append(res, lwp)
	}
	return res, nil
}

func (repo *lessonRepository) GetProgress(_ context.Context, userID, lessonID string) (lesson.Progress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	if p, ok := repo.progress.rows[progressKey{userID: userID, lessonID: lessonID}]; ok {
		return *p, nil
	}
	return lesson.Progress{}, lesson.ErrProgressNotFound
}

func (repo *lessonRepository) ListUserProgress(ctx context.Context, userID string) ([]lesson.Progress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	progress := make([]lesson.Progress, 0)
	for key, p := range repo.progress.rows {
		if key.userID == userID {
			progress = append(progress, *p)
		}
	}
	return progress, nil
}

func (repo *lessonRepository) UpdateProgress(
	_ context.Context,
	userID, lessonID string,
	currentStep int,
	completed bool,
) (lesson.Progress, error) {
	repo.progress.Lock()
	defer repo.progress.Unlock()

	key := progressKey{userID: userID, lessonID: lessonID}
	prog := lesson.Progress{
		UserID:         userID,
		LessonID:       lessonID,
		CurrentStep:    currentStep,
		Completed:      completed,
		LastAccessedAt: repo.now(),
	}
	if existing, ok := repo.progress.rows[key]; ok {
		prog.ID = existing.ID
	} else {
		prog.ID = uuid.NewString()
	}
	repo.progress.rows[key] = &prog
	return prog, nil
}

func (repo *lessonRepository) GetProgressStats(ctx context.Context, userID string) (lesson.Stats, error) {
	lessons, err := repo.ListLessons(ctx)
	if err != nil {
		return lesson.Stats{}, errors.Wrap(err, "listing lessons")
	}
	progress, err := repo.ListUserProgress(ctx, userID)
	if err != nil {
		return lesson.Stats{}, errors.Wrap(err, "listing user progress")
	}

	var completed int
	for _, p := range progress {
		if p.Completed {
			completed++
		}
	}
	return lesson.NewStats(completed, len(lessons)), nil
}
