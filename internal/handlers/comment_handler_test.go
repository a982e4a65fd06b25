package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addComment(t *testing.T, env *testEnv, uid, postID, content string) models.Comment {
	t.Helper()
	h := env.commentHandler()
	c, rec := env.jsonContext(http.MethodPost, uid, `{"content":"`+content+`"}`)
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	require.NoError(t, h.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	return comment
}

func addReply(t *testing.T, env *testEnv, uid, postID, commentID, content string) models.Reply {
	t.Helper()
	h := env.commentHandler()
	c, rec := env.jsonContext(http.MethodPost, uid, `{"content":"`+content+`"}`)
	c.SetParamNames("post_id", "comment_id")
	c.SetParamValues(postID, commentID)
	require.NoError(t, h.CreateReply(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reply models.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	return reply
}

func listComments(t *testing.T, env *testEnv, postID string) []models.Comment {
	t.Helper()
	h := env.commentHandler()
	c, rec := env.jsonContext(http.MethodGet, "alice", "")
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	require.NoError(t, h.GetCommentsByPostID(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	return comments
}

func TestCommentWithNestedReply(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "hello")

	comment := addComment(t, env, "bob", post.ID.Hex(), "nice")
	addReply(t, env, "alice", post.ID.Hex(), comment.ID.Hex(), "thanks")

	comments := listComments(t, env, post.ID.Hex())
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Content)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "thanks", comments[0].Replies[0].Content)
	assert.Equal(t, comment.ID.Hex(), comments[0].Replies[0].CommentID)

	// Replies are excluded from the post's comment counter.
	stored, err := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CommentsCount)
}

func TestReplyToUnknownCommentRejected(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	post := createPost(t, env, "alice", "hello")

	h := env.commentHandler()
	c, _ := env.jsonContext(http.MethodPost, "alice", `{"content":"orphan"}`)
	c.SetParamNames("post_id", "comment_id")
	c.SetParamValues(post.ID.Hex(), "000000000000000000000000")
	err := h.CreateReply(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestSequentialCommentsCount(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "hello")

	const n = 5
	for i := 0; i < n; i++ {
		addComment(t, env, "bob", post.ID.Hex(), "another one")
	}

	stored, err := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, n, stored.CommentsCount)
}

func TestCommentsOrderedNewestFirst(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	post := createPost(t, env, "alice", "hello")

	addComment(t, env, "alice", post.ID.Hex(), "first")
	time.Sleep(time.Millisecond)
	addComment(t, env, "alice", post.ID.Hex(), "second")

	comments := listComments(t, env, post.ID.Hex())
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
}

func TestCommentNotifiesPostOwner(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	env.addUser("bob", "bob")
	post := createPost(t, env, "alice", "a post")

	addComment(t, env, "bob", post.ID.Hex(), "nice")

	notifications, err := env.notifications.GetByUserID(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	assert.Equal(t, "nice", notifications[0].CommentPreview)
	assert.Equal(t, "a post", notifications[0].PostPreview)
}

func TestSelfCommentDoesNotNotify(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice")
	post := createPost(t, env, "alice", "hello")

	addComment(t, env, "alice", post.ID.Hex(), "talking to myself")

	notifications, err := env.notifications.GetByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
