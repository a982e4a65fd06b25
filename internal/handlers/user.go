package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user directory HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository // for a user's post listing
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterUserRoutes registers user directory routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/me", h.GetMyProfile)
	g.PUT("/users/me", h.UpdateProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetMyProfile returns the authenticated user's own profile
func (h *UserHandler) GetMyProfile(c echo.Context) error {
	uid := currentUID(c)
	user, err := h.userRepository.GetUserByUID(c.Request().Context(), uid)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser retrieves a user profile by UID
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByUID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile merges the provided profile fields into the authenticated
// user's document. Fields not present are left untouched; username collisions
// are not checked.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := currentUID(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.userRepository.UpdateProfile(ctx, uid, req.Fields()); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByUID(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers matches the query term case-insensitively against usernames and
// display names
func (h *UserHandler) SearchUsers(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search term")
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), term)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserPosts retrieves all posts authored by a user
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}
