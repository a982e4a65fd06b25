package handlers

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/devhasib/buzznet/backend/internal/middleware"
	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// testEnv wires the in-memory repositories, the realtime broadcaster and an
// Echo instance for handler tests.
type testEnv struct {
	e             *echo.Echo
	users         *repositories.InMemoryUserRepository
	posts         *repositories.InMemoryPostRepository
	comments      *repositories.InMemoryCommentRepository
	friendships   *repositories.InMemoryFriendshipRepository
	reactions     *repositories.InMemoryReactionRepository
	notifications *repositories.InMemoryNotificationRepository
	broadcaster   *realtime.Broadcaster
}

func newTestEnv() *testEnv {
	env := &testEnv{
		e:             echo.New(),
		users:         repositories.NewInMemoryUserRepository(),
		posts:         repositories.NewInMemoryPostRepository(),
		comments:      repositories.NewInMemoryCommentRepository(),
		friendships:   repositories.NewInMemoryFriendshipRepository(),
		reactions:     repositories.NewInMemoryReactionRepository(),
		notifications: repositories.NewInMemoryNotificationRepository(),
	}
	env.broadcaster = realtime.NewBroadcaster(realtime.NewHub(), env.posts, env.notifications)
	return env
}

func (env *testEnv) postHandler() *PostHandler {
	return NewPostHandler(env.posts, env.users, env.notifications, env.broadcaster)
}

func (env *testEnv) commentHandler() *CommentHandler {
	return NewCommentHandler(env.comments, env.posts, env.users, env.notifications, env.broadcaster)
}

func (env *testEnv) friendshipHandler() *FriendshipHandler {
	return NewFriendshipHandler(env.friendships, env.users, env.notifications, env.broadcaster)
}

func (env *testEnv) reactionHandler() *ReactionHandler {
	return NewReactionHandler(env.reactions)
}

func (env *testEnv) notificationHandler() *NotificationHandler {
	return NewNotificationHandler(env.notifications, env.broadcaster)
}

func (env *testEnv) userHandler() *UserHandler {
	return NewUserHandler(env.users, env.posts)
}

// addUser seeds a user profile and returns it
func (env *testEnv) addUser(uid, username string) *models.User {
	user := &models.User{
		UID:      uid,
		Email:    username + "@example.com",
		Username: username,
		Name:     username + " example",
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username,
		Friends:  []string{},
	}
	if err := env.users.CreateUser(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// jsonContext builds an authenticated echo context carrying a JSON body
func (env *testEnv) jsonContext(method, uid, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.ContextUIDKey, uid)
	}
	return c, rec
}
