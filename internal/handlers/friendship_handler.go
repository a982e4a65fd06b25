package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles the friend-request lifecycle and friendship
// queries. Accepting a request mutates both users' friends sets so the
// relation stays symmetric.
type FriendshipHandler struct {
	friendshipRepository   repositories.FriendshipRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	broadcaster            *realtime.Broadcaster
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, broadcaster *realtime.Broadcaster) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository:   friendshipRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		broadcaster:            broadcaster,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/requests", h.SendFriendRequest)
	g.GET("/friends/requests", h.GetFriendRequests)
	g.PUT("/friends/requests/:id/accept", h.AcceptFriendRequest)
	g.DELETE("/friends/requests/:id", h.DeclineFriendRequest)
	g.GET("/friends/status/:id", h.CheckFriendship)
	g.DELETE("/friends/:id", h.RemoveFriend)
}

// SendFriendRequest sends a friend request and notifies the recipient. A
// request for the same ordered sender/recipient pair may exist at most once,
// whatever its status.
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	uid := currentUID(c)

	var req models.SendFriendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.ToUserID == uid {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	}

	ctx := c.Request().Context()
	sender, err := h.userRepository.GetUserByUID(ctx, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	if _, err := h.userRepository.GetUserByUID(ctx, req.ToUserID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Recipient user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	friendRequest := &models.FriendRequest{
		FromUserID:   sender.UID,
		ToUserID:     req.ToUserID,
		FromUsername: sender.Username,
		FromAvatar:   sender.Avatar,
	}
	if err := h.friendshipRepository.CreateRequest(ctx, friendRequest); err != nil {
		if err == repositories.ErrDuplicateRequest {
			return echo.NewHTTPError(http.StatusConflict, "Friend request already sent")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notification := &models.Notification{
		UserID:       req.ToUserID,
		Type:         models.NotificationFriendRequest,
		FromUserID:   sender.UID,
		FromUsername: sender.Username,
		FromAvatar:   sender.Avatar,
		Message:      "sent you a friend request",
	}
	if err := h.notificationRepository.Create(ctx, notification); err == nil {
		h.broadcaster.NotificationsChanged(ctx, req.ToUserID)
	}

	return c.JSON(http.StatusCreated, friendRequest)
}

// GetFriendRequests retrieves the pending requests addressed to the current user
func (h *FriendshipHandler) GetFriendRequests(c echo.Context) error {
	requests, err := h.friendshipRepository.GetPendingRequests(c.Request().Context(), currentUID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, requests)
}

// AcceptFriendRequest marks a request accepted, adds each user to the other's
// friends set, and notifies the original sender. Only the recipient may
// accept. Re-accepting is harmless: the set additions are idempotent.
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	uid := currentUID(c)
	requestID := c.Param("id")

	ctx := c.Request().Context()
	friendRequest, err := h.friendshipRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if friendRequest.ToUserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to accept this friend request")
	}

	if err := h.friendshipRepository.UpdateStatus(ctx, requestID, models.FriendRequestAccepted); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.AddFriend(ctx, friendRequest.FromUserID, friendRequest.ToUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.AddFriend(ctx, friendRequest.ToUserID, friendRequest.FromUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Notify the original sender; the accepter sees the result directly.
	accepter, err := h.userRepository.GetUserByUID(ctx, friendRequest.ToUserID)
	if err == nil {
		notification := &models.Notification{
			UserID:       friendRequest.FromUserID,
			Type:         models.NotificationFriendAccept,
			FromUserID:   accepter.UID,
			FromUsername: accepter.Username,
			FromAvatar:   accepter.Avatar,
			Message:      "accepted your friend request",
		}
		if err := h.notificationRepository.Create(ctx, notification); err == nil {
			h.broadcaster.NotificationsChanged(ctx, friendRequest.FromUserID)
		}
	}

	friendRequest.Status = models.FriendRequestAccepted
	return c.JSON(http.StatusOK, friendRequest)
}

// DeclineFriendRequest hard-deletes a pending request. No notification is
// emitted. Only the recipient may decline.
func (h *FriendshipHandler) DeclineFriendRequest(c echo.Context) error {
	uid := currentUID(c)
	requestID := c.Param("id")

	ctx := c.Request().Context()
	friendRequest, err := h.friendshipRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if friendRequest.ToUserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to decline this friend request")
	}

	if err := h.friendshipRepository.DeleteRequest(ctx, requestID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckFriendship reports whether the current user's friends set contains the
// given user
func (h *FriendshipHandler) CheckFriendship(c echo.Context) error {
	uid := currentUID(c)
	otherID := c.Param("id")

	user, err := h.userRepository.GetUserByUID(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	isFriend := false
	for _, f := range user.Friends {
		if f == otherID {
			isFriend = true
			break
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": otherID, "is_friend": isFriend})
}

// RemoveFriend removes the friendship symmetrically from both users
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	uid := currentUID(c)
	friendID := c.Param("id")

	ctx := c.Request().Context()
	if err := h.userRepository.RemoveFriend(ctx, uid, friendID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.RemoveFriend(ctx, friendID, uid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
