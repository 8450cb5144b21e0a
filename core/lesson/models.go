package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/wiseconnect/core"
)

type Lesson struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	IconName         string `json:"iconName"`
	OrderIndex       int    `json:"orderIndex"`
	TotalSteps       int    `json:"totalSteps"`
	Difficulty       string `json:"difficulty"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type Step struct {
	ID               string  `json:"id"`
	LessonID         string  `json:"lessonId"`
	StepNumber       int     `json:"stepNumber"` // 1-based
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	TipText          *string `json:"tipText"`
	ImagePlaceholder *string `json:"imagePlaceholder"`
}

// Progress records how far a user went through a lesson. There is at most one per (UserID, LessonID).
type Progress struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	LessonID       string    `json:"lessonId"`
	CurrentStep    int       `json:"currentStep"`
	Completed      bool      `json:"completed"`
	LastAccessedAt time.Time `json:"lastAccessedAt"` // UTC
}

type WithProgress struct {
	Lesson
	Progress *Progress `json:"progress,omitempty"`
}

// Detail is a lesson with its steps and, if a user was given, the user's progress.
type Detail struct {
	Lesson   Lesson    `json:"lesson"`
	Steps    []Step    `json:"steps"`
	Progress *Progress `json:"progress"`
}

type Stats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProgressUpdate contains the information needed to record a user's progress through a lesson.
type ProgressUpdate struct {
	UserID      string `json:"userId" validate:"notblank"`
	CurrentStep *int   `json:"currentStep" validate:"required,min=0"`
	Completed   bool   `json:"completed"`
}

func (pu *ProgressUpdate) Validate(validate *validator.Validate) error {
	pu.UserID = core.CleanString(pu.UserID)
	return validate.Struct(pu)
}
