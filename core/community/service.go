package community

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/wiseconnect/core"
)

var (
	// errors
	ErrNotFound = errors.New("post not found")
)

type (
	Repository interface {
		// ListPosts returns the posts of a category (all posts when category is empty or CategoryAll),
		// newest first.
		ListPosts(ctx context.Context, category string) ([]Post, error)
		GetPostByID(ctx context.Context, id string) (Post, error)
		CreatePost(ctx context.Context, post Post) (Post, error)
		// ListReplies returns the replies of a post, oldest first.
		ListReplies(ctx context.Context, postID string) ([]Reply, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, category string) ([]Post, error) {
	return svc.repo.ListPosts(ctx, core.CleanString(category, true /* lower */))
}

func (svc *Service) Detail(ctx context.Context, id string) (PostDetail, error) {
	post, err := svc.repo.GetPostByID(ctx, id)
	if err != nil {
		return PostDetail{}, err
	}
	replies, err := svc.repo.ListReplies(ctx, id)
	if err != nil {
		return PostDetail{}, pkgerrors.Wrap(err, "listing replies")
	}
	return PostDetail{Post: post, Replies: replies}, nil
}

// Create stores a validated NewPost.
func (svc *Service) Create(ctx context.Context, np NewPost) (Post, error) {
	post := Post{
		ID:        uuid.NewString(),
		UserID:    np.UserID,
		UserName:  np.UserName,
		Category:  np.Category,
		Title:     np.Title,
		Content:   np.Content,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreatePost(ctx, post)
}
