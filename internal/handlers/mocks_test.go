package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository lets tests force storage failures that the in-memory
// repositories never produce.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func mockPostEnv(posts repositories.PostRepository) (*testEnv, *PostHandler) {
	env := newTestEnv()
	broadcaster := realtime.NewBroadcaster(realtime.NewHub(), posts, env.notifications)
	h := NewPostHandler(posts, env.users, env.notifications, broadcaster)
	return env, h
}

func TestGetPostsStorageFailure(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetAllPosts", mock.Anything).Return(nil, errors.New("connection reset"))

	env, h := mockPostEnv(posts)
	c, _ := env.jsonContext(http.MethodGet, "alice", "")
	err := h.GetPosts(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	posts.AssertExpectations(t)
}

func TestCreatePostStorageFailure(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("CreatePost", mock.Anything, mock.AnythingOfType("*models.Post")).Return(errors.New("write concern timeout"))

	env, h := mockPostEnv(posts)
	env.addUser("alice", "alice")

	c, _ := env.jsonContext(http.MethodPost, "alice", `{"content":"hello"}`)
	err := h.CreatePost(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	posts.AssertExpectations(t)
}

func TestToggleLikeStorageFailure(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "p1").Return(&models.Post{UserID: "bob", Content: "x"}, nil)
	posts.On("ToggleLike", mock.Anything, "p1", "alice").Return(false, errors.New("session expired"))

	env, h := mockPostEnv(posts)
	c, _ := env.jsonContext(http.MethodPost, "alice", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	err := h.ToggleLike(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	posts.AssertExpectations(t)
}
