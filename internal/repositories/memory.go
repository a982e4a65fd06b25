package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of every repository interface. They back the test
// suite and keep the store swappable: core logic only ever sees the
// interfaces, never a concrete client.

// InMemoryUserRepository implements UserRepository with a map
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewInMemoryUserRepository creates an empty InMemoryUserRepository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]models.User)}
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Friends == nil {
		user.Friends = []string{}
	}
	user.CreatedAt = time.Now()
	r.users[user.UID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetUserByUID(_ context.Context, uid string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	copied := user
	copied.Friends = append([]string(nil), user.Friends...)
	return &copied, nil
}

func (r *InMemoryUserRepository) UpdateProfile(_ context.Context, uid string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			user.Name = v
		case "username":
			user.Username = v
		case "bio":
			user.Bio = v
		case "avatar":
			user.Avatar = v
		}
	}
	r.users[uid] = user
	return nil
}

func (r *InMemoryUserRepository) SearchUsers(_ context.Context, term string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(term)
	matched := []models.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (r *InMemoryUserRepository) AddFriend(_ context.Context, uid, friendUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return ErrNotFound
	}
	for _, f := range user.Friends {
		if f == friendUID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendUID)
	r.users[uid] = user
	return nil
}

func (r *InMemoryUserRepository) RemoveFriend(_ context.Context, uid, friendUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return ErrNotFound
	}
	kept := user.Friends[:0]
	for _, f := range user.Friends {
		if f != friendUID {
			kept = append(kept, f)
		}
	}
	user.Friends = kept
	r.users[uid] = user
	return nil
}

// InMemoryPostRepository implements PostRepository with a map
type InMemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

// NewInMemoryPostRepository creates an empty InMemoryPostRepository
func NewInMemoryPostRepository() *InMemoryPostRepository {
	return &InMemoryPostRepository{posts: make(map[string]models.Post)}
}

func (r *InMemoryPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.Likes = []string{}
	post.LikesCount = 0
	post.CommentsCount = 0
	post.CreatedAt = time.Now()
	r.posts[post.ID.Hex()] = *post
	return nil
}

func (r *InMemoryPostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := post
	copied.Likes = append([]string(nil), post.Likes...)
	return &copied, nil
}

func (r *InMemoryPostRepository) GetAllPosts(_ context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *InMemoryPostRepository) GetPostsByUserID(_ context.Context, userID string) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := []models.Post{}
	for _, p := range r.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *InMemoryPostRepository) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *InMemoryPostRepository) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return false, ErrNotFound
	}

	for i, uid := range post.Likes {
		if uid == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			post.LikesCount--
			r.posts[postID] = post
			return false, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	post.LikesCount++
	r.posts[postID] = post
	return true, nil
}

func (r *InMemoryPostRepository) IncrementCommentsCount(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return ErrNotFound
	}
	post.CommentsCount++
	r.posts[postID] = post
	return nil
}

// InMemoryCommentRepository implements CommentRepository with slices
type InMemoryCommentRepository struct {
	mu       sync.RWMutex
	comments []models.Comment
	replies  []models.Reply
}

// NewInMemoryCommentRepository creates an empty InMemoryCommentRepository
func NewInMemoryCommentRepository() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{}
}

func (r *InMemoryCommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	stored := *comment
	stored.Replies = nil
	r.comments = append(r.comments, stored)
	return nil
}

func (r *InMemoryCommentRepository) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.comments {
		if c.ID.Hex() == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryCommentRepository) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comments := []models.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *InMemoryCommentRepository) CreateReply(_ context.Context, reply *models.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()
	r.replies = append(r.replies, *reply)
	return nil
}

func (r *InMemoryCommentRepository) GetRepliesByCommentIDs(_ context.Context, commentIDs []string) (map[string][]models.Reply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	grouped := make(map[string][]models.Reply)
	for _, reply := range r.replies {
		if wanted[reply.CommentID] {
			grouped[reply.CommentID] = append(grouped[reply.CommentID], reply)
		}
	}
	return grouped, nil
}

// InMemoryFriendshipRepository implements FriendshipRepository with a map
type InMemoryFriendshipRepository struct {
	mu       sync.RWMutex
	requests map[string]models.FriendRequest
}

// NewInMemoryFriendshipRepository creates an empty InMemoryFriendshipRepository
func NewInMemoryFriendshipRepository() *InMemoryFriendshipRepository {
	return &InMemoryFriendshipRepository{requests: make(map[string]models.FriendRequest)}
}

func (r *InMemoryFriendshipRepository) CreateRequest(_ context.Context, req *models.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.FromUserID == req.FromUserID && existing.ToUserID == req.ToUserID {
			return ErrDuplicateRequest
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = models.FriendRequestPending
	req.CreatedAt = time.Now()
	r.requests[req.ID.Hex()] = *req
	return nil
}

func (r *InMemoryFriendshipRepository) GetRequestByID(_ context.Context, id string) (*models.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := req
	return &copied, nil
}

func (r *InMemoryFriendshipRepository) GetPendingRequests(_ context.Context, toUserID string) ([]models.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	requests := []models.FriendRequest{}
	for _, req := range r.requests {
		if req.ToUserID == toUserID && req.Status == models.FriendRequestPending {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

func (r *InMemoryFriendshipRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	r.requests[id] = req
	return nil
}

func (r *InMemoryFriendshipRepository) DeleteRequest(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

// InMemoryReactionRepository implements ReactionRepository with nested maps
type InMemoryReactionRepository struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]string // (itemType/itemID) -> emoji -> uids
}

// NewInMemoryReactionRepository creates an empty InMemoryReactionRepository
func NewInMemoryReactionRepository() *InMemoryReactionRepository {
	return &InMemoryReactionRepository{buckets: make(map[string]map[string][]string)}
}

func bucketKey(itemType, itemID string) string {
	return itemType + "/" + itemID
}

func (r *InMemoryReactionRepository) ToggleReaction(_ context.Context, itemType, itemID, userID, emoji, _ string) error {
	if !models.ValidReactionItemType(itemType) {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bucketKey(itemType, itemID)
	bucket, ok := r.buckets[key]
	if !ok {
		r.buckets[key] = map[string][]string{emoji: {userID}}
		return nil
	}

	members := bucket[emoji]
	for i, uid := range members {
		if uid == userID {
			bucket[emoji] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	bucket[emoji] = append(members, userID)
	return nil
}

func (r *InMemoryReactionRepository) GetReactions(_ context.Context, itemType, itemID string) (models.ReactionSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reactions := models.ReactionSet{}
	bucket, ok := r.buckets[bucketKey(itemType, itemID)]
	if !ok {
		return reactions, nil
	}
	for emoji, uids := range bucket {
		if len(uids) > 0 {
			reactions[emoji] = append([]string(nil), uids...)
		}
	}
	return reactions, nil
}

// InMemoryNotificationRepository implements NotificationRepository with a slice
type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

// NewInMemoryNotificationRepository creates an empty InMemoryNotificationRepository
func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{}
}

func (r *InMemoryNotificationRepository) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *InMemoryNotificationRepository) GetByID(_ context.Context, id string) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.notifications {
		if n.ID.Hex() == id {
			copied := n
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryNotificationRepository) GetByUserID(_ context.Context, userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notifications := []models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *InMemoryNotificationRepository) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryNotificationRepository) MarkAsRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID.Hex() == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryNotificationRepository) MarkAllAsRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			r.notifications[i].Read = true
		}
	}
	return nil
}
