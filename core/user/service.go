package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		// UpdateUser replaces the stored User having usr.ID.
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	id := nu.ID
	if id == "" {
		id = uuid.NewString()
	}
	textSize := nu.TextSizePreference
	if textSize == "" {
		textSize = TextSizeMedium
	}
	usr := User{
		ID:                   id,
		Name:                 nu.Name,
		Email:                strPtr(nu.Email),
		DigitalLiteracyLevel: strPtr(nu.DigitalLiteracyLevel),
		LearningStyle:        strPtr(nu.LearningStyle),
		QuizCompleted:        nu.QuizCompleted,
		TextSizePreference:   textSize,
		HighContrastMode:     nu.HighContrastMode,
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

// Update merges the set fields of uu into the User having the given id.
func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if uu.Name != nil {
		usr.Name = *uu.Name
	}
	if uu.Email != nil {
		usr.Email = uu.Email
	}
	if uu.TextSizePreference != nil {
		usr.TextSizePreference = *uu.TextSizePreference
	}
	if uu.HighContrastMode != nil {
		usr.HighContrastMode = *uu.HighContrastMode
	}
	return svc.repo.UpdateUser(ctx, usr)
}
