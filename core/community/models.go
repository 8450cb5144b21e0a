package community

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/wiseconnect/core"
)

// Categories
const (
	CategoryNeedHelp         = "need_help"
	CategoryLearningTips     = "learning_tips"
	CategoryGeneralQuestions = "general_questions"

	// CategoryAll is a list filter matching every category.
	CategoryAll = "all"
)

var Categories = []string{CategoryNeedHelp, CategoryLearningTips, CategoryGeneralQuestions}

type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	RepliesCount int       `json:"repliesCount"`
}

type Reply struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

type PostDetail struct {
	Post    Post    `json:"post"`
	Replies []Reply `json:"replies"`
}

// NewPost contains information needed to create a new Post.
type NewPost struct {
	UserID   string `json:"userId" validate:"notblank"`
	UserName string `json:"userName" validate:"notblank"`
	Category string `json:"category" validate:"notblank,oneof=need_help learning_tips general_questions"`
	Title    string `json:"title" validate:"notblank"`
	Content  string `json:"content" validate:"notblank"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.UserID = core.CleanString(np.UserID)
	np.UserName = core.CleanString(np.UserName)
	np.Category = core.CleanString(np.Category, true /* lower */)
	np.Title = core.CleanString(np.Title)
	np.Content = core.CleanString(np.Content)
	return validate.Struct(np)
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
