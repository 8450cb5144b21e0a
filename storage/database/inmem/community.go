package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/wiseconnect/core/community"
)

type communityRepository struct {
	db  *communityTable
	now func() time.Time
}

var _ community.Repository = (*communityRepository)(nil)

func NewCommunityRepository(db *DB) community.Repository {
	return &communityRepository{db: db.community, now: db.now}
}

func (repo *communityRepository) ListPosts(_ context.Context, category string) ([]community.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	all := category == "" || category == community.CategoryAll
	posts := make([]community.Post, 0, len(repo.db.posts))
	for _, p := range repo.db.posts {
		if all || p.Category == category {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return repo.db.postSeq[posts[i].ID] > repo.db.postSeq[posts[j].ID]
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (repo *communityRepository) GetPostByID(_ context.Context, id string) (community.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.posts[id]; ok {
		return *p, nil
	}
	return community.Post{}, community.ErrNotFound
}

func (repo *communityRepository) CreatePost(_ context.Context, post community.Post) (community.Post, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = repo.now()
	}
	post.RepliesCount = 0
	repo.db.insertPost(&post)
	return post, nil
}

func (repo *communityRepository) ListReplies(_ context.Context, postID string) ([]community.Reply, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	replies := make([]community.Reply, 0)
	for _, r := range repo.db.replies {
		if r.PostID == postID {
			replies = append(replies, *r)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].CreatedAt.Before(replies[j].CreatedAt) })
	return replies, nil
}
