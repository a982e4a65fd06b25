package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository // to maintain comment counts
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	broadcaster            *realtime.Broadcaster
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, broadcaster *realtime.Broadcaster) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		broadcaster:            broadcaster,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.POST("/posts/:post_id/comments/:comment_id/replies", h.CreateReply)
}

// CreateComment creates a comment and bumps the post's comment counter. The
// two writes are separate operations; a failure after the insert leaves the
// counter behind by one.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	uid := currentUID(c)
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByUID(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   user.UID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementCommentsCount(ctx, postID); err == nil {
		h.broadcaster.PostsChanged(ctx)
	}

	if post.UserID != uid {
		notification := &models.Notification{
			UserID:         post.UserID,
			Type:           models.NotificationComment,
			FromUserID:     user.UID,
			FromUsername:   user.Username,
			FromAvatar:     user.Avatar,
			Message:        "commented on your post",
			PostPreview:    preview(post.Content),
			CommentPreview: preview(req.Content),
		}
		if err := h.notificationRepository.Create(ctx, notification); err == nil {
			h.broadcaster.NotificationsChanged(ctx, post.UserID)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// CreateReply creates a reply attached to one comment. Replies do not count
// toward the post's comment counter.
func (h *CommentHandler) CreateReply(c echo.Context) error {
	uid := currentUID(c)
	postID := c.Param("post_id")
	commentID := c.Param("comment_id")

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := h.commentRepository.GetCommentByID(ctx, commentID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByUID(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	reply := &models.Reply{
		PostID:    postID,
		CommentID: commentID,
		UserID:    user.UID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Content:   req.Content,
	}
	if err := h.commentRepository.CreateReply(ctx, reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetCommentsByPostID retrieves a post's comments newest first, each expanded
// with its replies oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")

	ctx := c.Request().Context()
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	commentIDs := make([]string, len(comments))
	for i, comment := range comments {
		commentIDs[i] = comment.ID.Hex()
	}
	replies, err := h.commentRepository.GetRepliesByCommentIDs(ctx, commentIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i := range comments {
		comments[i].Replies = replies[comments[i].ID.Hex()]
		if comments[i].Replies == nil {
			comments[i].Replies = []models.Reply{}
		}
	}

	return c.JSON(http.StatusOK, comments)
}
