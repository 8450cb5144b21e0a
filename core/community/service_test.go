package community_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/testutil"
)

func TestService_List(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	ids := func(posts []community.Post) []string {
		res := make([]string, 0, len(posts))
		for _, p := range posts {
			res = append(res, p.ID)
		}
		return res
	}

	posts, err := env.CommunitySvc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"post-1", "post-2", "post-3"}, ids(posts))

	posts, err = env.CommunitySvc.List(ctx, " ALL ")
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	posts, err = env.CommunitySvc.List(ctx, community.CategoryGeneralQuestions)
	require.NoError(t, err)
	assert.Equal(t, []string{"post-3"}, ids(posts))

	posts, err = env.CommunitySvc.List(ctx, "gardening")
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestService_CreateAndDetail(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	_, err := env.CommunitySvc.Detail(ctx, "post-nope")
	assert.True(t, errors.Is(err, community.ErrNotFound))

	post, err := env.CommunitySvc.Create(ctx, community.NewPost{
		UserID:   "u1",
		UserName: "Pat",
		Category: community.CategoryLearningTips,
		Title:    "Zoom in with two fingers",
		Content:  "Pinch outwards on a photo.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, 0, post.RepliesCount)
	assert.Equal(t, "UTC", post.CreatedAt.Location().String())

	detail, err := env.CommunitySvc.Detail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.Post.ID)
	assert.NotNil(t, detail.Replies)
	assert.Empty(t, detail.Replies)

	posts, err := env.CommunitySvc.List(ctx, community.CategoryLearningTips)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestNewPost_Validate(t *testing.T) {
	env := testutil.NewEnv(t)

	np := community.NewPost{UserID: " u1", UserName: "Pat ", Category: " Need_Help ", Title: " Help ", Content: " Please "}
	require.NoError(t, np.Validate(env.Validate))
	assert.Equal(t, community.NewPost{UserID: "u1", UserName: "Pat", Category: "need_help", Title: "Help", Content: "Please"}, np)

	np = community.NewPost{UserID: "u1", UserName: "Pat", Category: "sports", Title: "Go", Content: "team"}
	err := np.Validate(env.Validate)
	var vErrs validator.ValidationErrors
	if assert.True(t, errors.As(err, &vErrs)) {
		require.Len(t, vErrs, 1)
		assert.Equal(t, "category", vErrs[0].Field())
		assert.Equal(t, "oneof", vErrs[0].Tag())
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range community.Categories {
		assert.True(t, community.IsValidCategory(c))
	}
	assert.False(t, community.IsValidCategory(community.CategoryAll))
	assert.False(t, community.IsValidCategory("Need_Help"))
}

func TestService_List_newestFirst(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	older := testutil.CreatePost(t, env.CommunityRepo, "u1", "Pat", community.CategoryNeedHelp, "Where is the camera")
	newer := testutil.CreatePost(t, env.CommunityRepo, "u2", "Sam", community.CategoryNeedHelp, "My screen is dark")
	require.False(t, newer.CreatedAt.Before(older.CreatedAt))

	posts, err := env.CommunitySvc.List(ctx, community.CategoryNeedHelp)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post-2", posts[2].ID)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}
}
