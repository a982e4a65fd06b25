package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *InMemoryUserRepository, uid, username string) {
	t.Helper()
	err := repo.CreateUser(context.Background(), &models.User{
		UID:      uid,
		Email:    username + "@example.com",
		Username: username,
		Name:     username,
	})
	require.NoError(t, err)
}

func TestUserProfileMerge(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()
	seedUser(t, repo, "u1", "alice")

	require.NoError(t, repo.UpdateProfile(ctx, "u1", map[string]string{"bio": "hi", "name": "Alice W"}))

	user, err := repo.GetUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "hi", user.Bio)
	assert.Equal(t, "Alice W", user.Name)
	assert.Equal(t, "alice", user.Username)

	assert.Equal(t, ErrNotFound, repo.UpdateProfile(ctx, "ghost", map[string]string{"bio": "x"}))
}

func TestSearchUsersMatchesUsernameAndName(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()
	seedUser(t, repo, "u1", "alice")
	seedUser(t, repo, "u2", "bob")
	require.NoError(t, repo.UpdateProfile(ctx, "u2", map[string]string{"name": "Alister"}))

	users, err := repo.SearchUsers(ctx, "ALI")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.SearchUsers(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAddFriendIsIdempotent(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()
	seedUser(t, repo, "u1", "alice")

	require.NoError(t, repo.AddFriend(ctx, "u1", "u2"))
	require.NoError(t, repo.AddFriend(ctx, "u1", "u2"))

	user, err := repo.GetUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, user.Friends)

	require.NoError(t, repo.RemoveFriend(ctx, "u1", "u2"))
	user, err = repo.GetUserByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, user.Friends)
}

func TestToggleLikeKeepsCountInSync(t *testing.T) {
	repo := NewInMemoryPostRepository()
	ctx := context.Background()

	post := &models.Post{UserID: "u1", Username: "alice", Content: "hello"}
	require.NoError(t, repo.CreatePost(ctx, post))
	id := post.ID.Hex()

	for i := 0; i < 3; i++ {
		liked, err := repo.ToggleLike(ctx, id, "u2")
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, liked)

		got, err := repo.GetPostByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, len(got.Likes), got.LikesCount)
	}

	_, err := repo.ToggleLike(ctx, "missing", "u2")
	assert.Equal(t, ErrNotFound, err)
}

func TestGetAllPostsNewestFirst(t *testing.T) {
	repo := NewInMemoryPostRepository()
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreatePost(ctx, &models.Post{UserID: "u1", Content: content}))
		time.Sleep(time.Millisecond)
	}

	posts, err := repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Content)
	assert.Equal(t, "first", posts[2].Content)
}

func TestRepliesGroupedByComment(t *testing.T) {
	repo := NewInMemoryCommentRepository()
	ctx := context.Background()

	c1 := &models.Comment{PostID: "p1", UserID: "u1", Content: "one"}
	c2 := &models.Comment{PostID: "p1", UserID: "u2", Content: "two"}
	require.NoError(t, repo.CreateComment(ctx, c1))
	require.NoError(t, repo.CreateComment(ctx, c2))

	require.NoError(t, repo.CreateReply(ctx, &models.Reply{CommentID: c1.ID.Hex(), UserID: "u2", Content: "r1"}))
	require.NoError(t, repo.CreateReply(ctx, &models.Reply{CommentID: c1.ID.Hex(), UserID: "u1", Content: "r2"}))

	grouped, err := repo.GetRepliesByCommentIDs(ctx, []string{c1.ID.Hex(), c2.ID.Hex()})
	require.NoError(t, err)
	assert.Len(t, grouped[c1.ID.Hex()], 2)
	assert.Empty(t, grouped[c2.ID.Hex()])
}

func TestDuplicateFriendRequestRejectedByStore(t *testing.T) {
	repo := NewInMemoryFriendshipRepository()
	ctx := context.Background()

	first := &models.FriendRequest{FromUserID: "u1", ToUserID: "u2", FromUsername: "alice"}
	require.NoError(t, repo.CreateRequest(ctx, first))
	assert.Equal(t, models.FriendRequestPending, first.Status)

	dup := &models.FriendRequest{FromUserID: "u1", ToUserID: "u2", FromUsername: "alice"}
	assert.Equal(t, ErrDuplicateRequest, repo.CreateRequest(ctx, dup))

	// Opposite direction is a distinct request.
	reverse := &models.FriendRequest{FromUserID: "u2", ToUserID: "u1", FromUsername: "bob"}
	require.NoError(t, repo.CreateRequest(ctx, reverse))
}

func TestPendingRequestsExcludeAccepted(t *testing.T) {
	repo := NewInMemoryFriendshipRepository()
	ctx := context.Background()

	req := &models.FriendRequest{FromUserID: "u1", ToUserID: "u2"}
	require.NoError(t, repo.CreateRequest(ctx, req))

	pending, err := repo.GetPendingRequests(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.UpdateStatus(ctx, req.ID.Hex(), models.FriendRequestAccepted))
	pending, err = repo.GetPendingRequests(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReactionToggleAtStoreLevel(t *testing.T) {
	repo := NewInMemoryReactionRepository()
	ctx := context.Background()

	require.NoError(t, repo.ToggleReaction(ctx, models.ReactionItemPost, "p1", "u1", "👍", ""))
	require.NoError(t, repo.ToggleReaction(ctx, models.ReactionItemPost, "p1", "u2", "👍", ""))

	reactions, err := repo.GetReactions(ctx, models.ReactionItemPost, "p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, reactions["👍"])

	// Toggling off removes the uid; an empty emoji set disappears entirely.
	require.NoError(t, repo.ToggleReaction(ctx, models.ReactionItemPost, "p1", "u1", "👍", ""))
	require.NoError(t, repo.ToggleReaction(ctx, models.ReactionItemPost, "p1", "u2", "👍", ""))
	reactions, err = repo.GetReactions(ctx, models.ReactionItemPost, "p1")
	require.NoError(t, err)
	_, present := reactions["👍"]
	assert.False(t, present)
}

func TestReactionBucketsIsolatedByItemType(t *testing.T) {
	repo := NewInMemoryReactionRepository()
	ctx := context.Background()

	require.NoError(t, repo.ToggleReaction(ctx, models.ReactionItemComment, "x1", "u1", "🔥", ""))

	reactions, err := repo.GetReactions(ctx, models.ReactionItemReply, "x1")
	require.NoError(t, err)
	assert.Empty(t, reactions)

	assert.Equal(t, ErrNotFound, repo.ToggleReaction(ctx, "pages", "x1", "u1", "🔥", ""))
}

func TestMarkAllAsReadScopedToUser(t *testing.T) {
	repo := NewInMemoryNotificationRepository()
	ctx := context.Background()

	for _, uid := range []string{"u1", "u1", "u2"} {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			UserID:     uid,
			Type:       models.NotificationLike,
			FromUserID: "u3",
		}))
	}

	require.NoError(t, repo.MarkAllAsRead(ctx, "u1"))

	count, err := repo.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.GetUnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkAsReadUnknownID(t *testing.T) {
	repo := NewInMemoryNotificationRepository()
	assert.Equal(t, ErrNotFound, repo.MarkAsRead(context.Background(), "000000000000000000000000"))
}
