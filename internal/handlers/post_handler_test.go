package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, env *testEnv, uid, content string) models.Post {
	t.Helper()
	h := env.postHandler()
	c, rec := env.jsonContext(http.MethodPost, uid, `{"content":"`+content+`"}`)
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	return post
}

func TestCreateAndListPosts(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")

	post := createPost(t, env, "alice", "hello")
	assert.Equal(t, "alice", post.UserID)
	assert.Equal(t, "alice", post.Username)

	h := env.postHandler()
	c, rec := env.jsonContext(http.MethodGet, "alice", "")
	require.NoError(t, h.GetPosts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
	assert.Equal(t, 0, posts[0].LikesCount)
	assert.Equal(t, 0, posts[0].CommentsCount)
	assert.Empty(t, posts[0].Likes)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")

	h := env.postHandler()
	c, _ := env.jsonContext(http.MethodPost, "alice", `{"content":""}`)
	err := h.CreatePost(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func toggleLike(t *testing.T, env *testEnv, uid, postID string) bool {
	t.Helper()
	h := env.postHandler()
	c, rec := env.jsonContext(http.MethodPost, uid, "")
	c.SetParamNames("id")
	c.SetParamValues(postID)
	require.NoError(t, h.ToggleLike(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Liked bool `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Liked
}

func TestToggleLikeIsSelfInverse(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "hello")

	assert.True(t, toggleLike(t, env, "bob", post.ID.Hex()))
	assert.False(t, toggleLike(t, env, "bob", post.ID.Hex()))

	stored, err := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LikesCount)
	assert.Empty(t, stored.Likes)
}

func TestSequentialLikesFromDistinctUsers(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	post := createPost(t, env, "alice", "hello")

	likers := []string{"bob", "carol", "dave"}
	for _, uid := range likers {
		env.addUser(uid, uid)
		assert.True(t, toggleLike(t, env, uid, post.ID.Hex()))
	}

	stored, err := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, len(likers), stored.LikesCount)
	assert.Len(t, stored.Likes, len(likers))
}

func TestLikeNotifiesPostOwner(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "a post worth liking")

	toggleLike(t, env, "bob", post.ID.Hex())

	notifications, err := env.notifications.GetByUserID(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationLike, notifications[0].Type)
	assert.Equal(t, "bob", notifications[0].FromUserID)
	assert.Equal(t, "a post worth liking", notifications[0].PostPreview)
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	post := createPost(t, env, "alice", "hello")

	toggleLike(t, env, "alice", post.ID.Hex())

	notifications, err := env.notifications.GetByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestDeletePostOnlyByOwner(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "hello")

	h := env.postHandler()
	c, _ := env.jsonContext(http.MethodDelete, "bob", "")
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())
	err := h.DeletePost(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	c, rec := env.jsonContext(http.MethodDelete, "alice", "")
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = env.posts.GetPostByID(context.Background(), post.ID.Hex())
	assert.Error(t, err)
}

func TestDeletePostLeavesCommentsBehind(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "hello")

	addComment(t, env, "bob", post.ID.Hex(), "nice")

	h := env.postHandler()
	c, _ := env.jsonContext(http.MethodDelete, "alice", "")
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())
	require.NoError(t, h.DeletePost(c))

	// No cascade: the orphaned comment row survives the post.
	comments, err := env.comments.GetCommentsByPostID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
