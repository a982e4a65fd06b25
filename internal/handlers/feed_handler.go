package handlers

import (
	"log"
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the two live subscription streams over websockets: the
// global post feed and the per-user notification feed. Every frame is the
// complete, freshly ordered result set, never a diff; the first frame arrives
// immediately on connect.
type FeedHandler struct {
	broadcaster *realtime.Broadcaster
	upgrader    websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(broadcaster *realtime.Broadcaster) *FeedHandler {
	return &FeedHandler{
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// RegisterFeedRoutes registers the websocket subscription routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/ws/posts", h.SubscribePosts)
	g.GET("/ws/notifications", h.SubscribeNotifications)
}

// SubscribePosts streams full post-feed snapshots to the client
func (h *FeedHandler) SubscribePosts(c echo.Context) error {
	initial, err := h.broadcaster.PostsSnapshot(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.stream(c, realtime.TopicPosts, initial)
}

// SubscribeNotifications streams the current user's notification snapshots
func (h *FeedHandler) SubscribeNotifications(c echo.Context) error {
	uid := currentUID(c)
	initial, err := h.broadcaster.NotificationsSnapshot(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.stream(c, realtime.NotificationTopic(uid), initial)
}

func (h *FeedHandler) stream(c echo.Context, topic string, initial []byte) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		return nil
	}

	id, frames := h.broadcaster.Hub().Subscribe(topic)
	defer h.broadcaster.Hub().Unsubscribe(topic, id)

	// Reader goroutine only watches for the client closing the connection.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-frames:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Printf("dropping subscriber on %s: %v\n", topic, err)
				return nil
			}
		case <-closed:
			return nil
		}
	}
}
