package handlers

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/devhasib/buzznet/backend/pkg/avatar"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles account creation and session exchange. The actual
// credential check lives in Firebase; this handler only creates the Firebase
// user at signup and verifies ID tokens at login. Without a Firebase client
// (dev mode) accounts get locally generated UIDs and sessions are plain HMAC
// JWTs.
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
}

// Signup creates the authentication principal and the user profile document.
// The avatar URL is derived deterministically from the username.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	var uid string
	if h.firebaseAuth != nil {
		params := (&auth.UserToCreate{}).
			Email(req.Email).
			Password(req.Password).
			DisplayName(req.Username)
		record, err := h.firebaseAuth.CreateUser(ctx, params)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		uid = record.UID
	} else {
		uid = uuid.NewString()
	}

	user := &models.User{
		UID:      uid,
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Bio:      "",
		Avatar:   avatar.URLFor(req.Username),
		Friends:  []string{},
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.mintToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// Login verifies a Firebase ID token and returns the profile together with a
// session token for this API
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase authentication is not configured")
	}

	ctx := c.Request().Context()
	decoded, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user, err := h.userRepository.GetUserByUID(ctx, decoded.UID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.mintToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

func (h *AuthHandler) mintToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UID:   user.UID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
