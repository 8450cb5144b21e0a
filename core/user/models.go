package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/wiseconnect/core"
)

// Digital literacy levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Learning styles
const (
	StyleVisual   = "visual"
	StyleAuditory = "auditory"
	StyleMixed    = "mixed"
)

// Text sizes
const (
	TextSizeSmall      = "small"
	TextSizeMedium     = "medium"
	TextSizeLarge      = "large"
	TextSizeExtraLarge = "extra-large"
)

var TextSizes = []string{TextSizeSmall, TextSizeMedium, TextSizeLarge, TextSizeExtraLarge}

// User is a learner profile. It is created when a quiz is submitted.
type User struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Email                *string `json:"email"`
	DigitalLiteracyLevel *string `json:"digitalLiteracyLevel"`
	LearningStyle        *string `json:"learningStyle"`
	QuizCompleted        bool    `json:"quizCompleted"`
	TextSizePreference   string  `json:"textSizePreference"`
	HighContrastMode     bool    `json:"highContrastMode"`
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	ID                   string // optional; generated when empty
	Name                 string
	Email                string
	DigitalLiteracyLevel string
	LearningStyle        string
	QuizCompleted        bool
	TextSizePreference   string
	HighContrastMode     bool
}

// UpdateUser defines what information may be provided to modify an existing User.
// Nil fields are left unchanged.
type UpdateUser struct {
	Name               *string `json:"name"`
	Email              *string `json:"email" validate:"omitempty,email"`
	TextSizePreference *string `json:"textSizePreference" validate:"omitempty,textsize"`
	HighContrastMode   *bool   `json:"highContrastMode"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Name = cleanOptional(uu.Name)
	uu.Email = cleanOptional(uu.Email, true /* lower */)
	uu.TextSizePreference = cleanOptional(uu.TextSizePreference, true /* lower */)
	return validate.Struct(uu)
}

// cleanOptional cleans the pointed string. Blank values become nil.
func cleanOptional(s *string, lower ...bool) *string {
	if s == nil {
		return nil
	}
	cleaned := core.CleanString(*s, lower...)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
