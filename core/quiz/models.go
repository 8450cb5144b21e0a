package quiz

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/wiseconnect/core"
)

// LearningStyleQuestionID is the id of the only question whose answer is a learning style.
const LearningStyleQuestionID = "q4"

// Question types
const (
	TypeLiteracy      = "literacy"
	TypeLearningStyle = "learning_style"
)

type Question struct {
	ID           string `json:"id"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	OrderIndex   int    `json:"orderIndex"`
}

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	OptionText string `json:"optionText"`
	Value      string `json:"value"`
	OrderIndex int    `json:"orderIndex"`
}

type QuestionWithOptions struct {
	Question
	Options []Option `json:"options"`
}

// Answer is one quiz answer. Empty values are accepted: they score as beginner, or as mixed on the
// learning style question.
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedValue string `json:"selectedValue"`
}

// Submission is a completed quiz.
type Submission struct {
	UserName string   `json:"userName" validate:"notblank"`
	Answers  []Answer `json:"answers" validate:"required,dive"`
}

func (s *Submission) Validate(validate *validator.Validate) error {
	s.UserName = core.CleanString(s.UserName)
	for i := range s.Answers {
		s.Answers[i].QuestionID = core.CleanString(s.Answers[i].QuestionID)
		s.Answers[i].SelectedValue = core.CleanString(s.Answers[i].SelectedValue)
	}
	return validate.Struct(s)
}

// Result is the outcome of a Submission.
type Result struct {
	UserID               string `json:"userId"`
	Name                 string `json:"name"`
	DigitalLiteracyLevel string `json:"digitalLiteracyLevel"`
	LearningStyle        string `json:"learningStyle"`
}
