package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/devhasib/buzznet/backend/internal/repositories"
)

// TopicPosts is the hub topic carrying the global post feed
const TopicPosts = "posts"

// NotificationTopic returns the per-user hub topic for notification snapshots
func NotificationTopic(uid string) string {
	return "notifications:" + uid
}

// Broadcaster turns repository state changes into snapshot frames. Mutating
// handlers call PostsChanged or NotificationsChanged after a write; the
// broadcaster re-queries the full ordered result set and pushes it to every
// subscriber of the topic. Push is best-effort: query or encode failures are
// logged and the frame is skipped.
type Broadcaster struct {
	hub           *Hub
	posts         repositories.PostRepository
	notifications repositories.NotificationRepository
}

// NewBroadcaster creates a Broadcaster on top of a hub and the two
// subscribable repositories
func NewBroadcaster(hub *Hub, posts repositories.PostRepository, notifications repositories.NotificationRepository) *Broadcaster {
	return &Broadcaster{hub: hub, posts: posts, notifications: notifications}
}

// Hub exposes the underlying hub for subscription handling
func (b *Broadcaster) Hub() *Hub {
	return b.hub
}

// PostsSnapshot returns the current full post feed encoded as one frame
func (b *Broadcaster) PostsSnapshot(ctx context.Context) ([]byte, error) {
	posts, err := b.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(posts)
}

// PostsChanged re-queries the post feed and broadcasts the snapshot
func (b *Broadcaster) PostsChanged(ctx context.Context) {
	payload, err := b.PostsSnapshot(ctx)
	if err != nil {
		log.Printf("posts snapshot broadcast skipped: %v\n", err)
		return
	}
	b.hub.Broadcast(TopicPosts, payload)
}

// NotificationsSnapshot returns a user's current notification feed encoded as
// one frame
func (b *Broadcaster) NotificationsSnapshot(ctx context.Context, uid string) ([]byte, error) {
	notifications, err := b.notifications.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return json.Marshal(notifications)
}

// NotificationsChanged re-queries a user's notifications and broadcasts the
// snapshot on their topic
func (b *Broadcaster) NotificationsChanged(ctx context.Context, uid string) {
	payload, err := b.NotificationsSnapshot(ctx, uid)
	if err != nil {
		log.Printf("notification snapshot broadcast skipped for %s: %v\n", uid, err)
		return
	}
	b.hub.Broadcast(NotificationTopic(uid), payload)
}
