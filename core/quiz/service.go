package quiz

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core/user"
)

type (
	Repository interface {
		// ListQuestions returns the questions ordered by OrderIndex, each with its options ordered by OrderIndex.
		ListQuestions(ctx context.Context) ([]QuestionWithOptions, error)
	}

	// UserCreator creates the learner profile of a quiz taker.
	UserCreator interface {
		Create(ctx context.Context, nu user.NewUser) (user.User, error)
	}

	Service struct {
		repo  Repository
		users UserCreator
	}
)

func NewService(repo Repository, users UserCreator) *Service {
	return &Service{repo: repo, users: users}
}

func (svc *Service) Questions(ctx context.Context) ([]QuestionWithOptions, error) {
	return svc.repo.ListQuestions(ctx)
}

// Submit scores a validated Submission and creates the quiz taker's profile.
func (svc *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	level, style := Score(sub.Answers)

	usr, err := svc.users.Create(ctx, user.NewUser{
		Name:                 sub.UserName,
		DigitalLiteracyLevel: level,
		LearningStyle:        style,
		QuizCompleted:        true,
		TextSizePreference:   user.TextSizeLarge,
		HighContrastMode:     false,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "creating user")
	}

	return Result{
		UserID:               usr.ID,
		Name:                 usr.Name,
		DigitalLiteracyLevel: level,
		LearningStyle:        style,
	}, nil
}
