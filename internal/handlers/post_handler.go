package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	broadcaster            *realtime.Broadcaster
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, broadcaster *realtime.Broadcaster) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		broadcaster:            broadcaster,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
}

// CreatePost creates a post authored by the current user. The author's
// username and avatar are denormalized onto the post document.
func (h *PostHandler) CreatePost(c echo.Context) error {
	uid := currentUID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByUID(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	post := &models.Post{
		UserID:   user.UID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Content:  req.Content,
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.broadcaster.PostsChanged(ctx)
	return c.JSON(http.StatusCreated, post)
}

// GetPosts returns the full post feed, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// DeletePost hard-deletes a post. Only the author may delete; comments,
// replies and reaction buckets are intentionally left behind.
func (h *PostHandler) DeletePost(c echo.Context) error {
	uid := currentUID(c)
	postID := c.Param("id")

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if post.UserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.broadcaster.PostsChanged(ctx)
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike adds or removes the current user's like on a post. Liking
// someone else's post also writes a like notification for the author.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	uid := currentUID(c)
	postID := c.Param("id")

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	liked, err := h.postRepository.ToggleLike(ctx, postID, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if liked && post.UserID != uid {
		if user, err := h.userRepository.GetUserByUID(ctx, uid); err == nil {
			notification := &models.Notification{
				UserID:       post.UserID,
				Type:         models.NotificationLike,
				FromUserID:   user.UID,
				FromUsername: user.Username,
				FromAvatar:   user.Avatar,
				Message:      "liked your post",
				PostPreview:  preview(post.Content),
			}
			if err := h.notificationRepository.Create(ctx, notification); err == nil {
				h.broadcaster.NotificationsChanged(ctx, post.UserID)
			}
		}
	}

	h.broadcaster.PostsChanged(ctx)
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}

// preview truncates content for embedding in notification rows
func preview(content string) string {
	const max = 80
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
