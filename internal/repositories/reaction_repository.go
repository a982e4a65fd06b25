package repositories

import (
	"context"
	"fmt"

	"github.com/devhasib/buzznet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReactionRepository defines the interface for emoji reaction buckets. A
// bucket is keyed by (itemType, itemID); absence of a bucket means zero
// reactions.
type ReactionRepository interface {
	ToggleReaction(ctx context.Context, itemType, itemID, userID, emoji, parentID string) error
	GetReactions(ctx context.Context, itemType, itemID string) (models.ReactionSet, error)
}

// MongoReactionRepository implements ReactionRepository for MongoDB. Each
// item type gets its own collection (postReactions, commentReactions,
// replyReactions); the bucket document's key is the item ID and each emoji is
// a top-level array field of reacting UIDs.
type MongoReactionRepository struct {
	db *mongo.Database
}

// NewMongoReactionRepository creates a new MongoReactionRepository
func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{db: db}
}

func (r *MongoReactionRepository) bucketCollection(itemType string) (*mongo.Collection, error) {
	if !models.ValidReactionItemType(itemType) {
		return nil, fmt.Errorf("unknown reaction item type %q", itemType)
	}
	return r.db.Collection(itemType + "Reactions"), nil
}

// ToggleReaction adds the user to the emoji's set, or removes them if already
// present. Two sequential identical calls net to the original state. Creating
// the bucket on first reaction and toggling are separate paths.
func (r *MongoReactionRepository) ToggleReaction(ctx context.Context, itemType, itemID, userID, emoji, parentID string) error {
	coll, err := r.bucketCollection(itemType)
	if err != nil {
		return err
	}

	var bucket bson.M
	err = coll.FindOne(ctx, bson.M{"_id": itemID}).Decode(&bucket)
	if err == mongo.ErrNoDocuments {
		doc := bson.M{
			"_id":      itemID,
			"itemId":   itemID,
			"parentId": parentID,
			emoji:      []string{userID},
		}
		_, err = coll.InsertOne(ctx, doc)
		return err
	}
	if err != nil {
		return err
	}

	reacted := false
	if members, ok := bucket[emoji].(primitive.A); ok {
		for _, m := range members {
			if uid, ok := m.(string); ok && uid == userID {
				reacted = true
				break
			}
		}
	}

	var update bson.M
	if reacted {
		update = bson.M{"$pull": bson.M{emoji: userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{emoji: userID}}
	}
	_, err = coll.UpdateOne(ctx, bson.M{"_id": itemID}, update)
	return err
}

// GetReactions returns the emoji-to-users map for an item, or an empty map if
// the item has no bucket.
func (r *MongoReactionRepository) GetReactions(ctx context.Context, itemType, itemID string) (models.ReactionSet, error) {
	coll, err := r.bucketCollection(itemType)
	if err != nil {
		return nil, err
	}

	var bucket bson.M
	err = coll.FindOne(ctx, bson.M{"_id": itemID}).Decode(&bucket)
	if err == mongo.ErrNoDocuments {
		return models.ReactionSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	reactions := models.ReactionSet{}
	for key, value := range bucket {
		if key == "_id" || key == "itemId" || key == "parentId" {
			continue
		}
		members, ok := value.(primitive.A)
		if !ok {
			continue
		}
		uids := make([]string, 0, len(members))
		for _, m := range members {
			if uid, ok := m.(string); ok {
				uids = append(uids, uid)
			}
		}
		if len(uids) > 0 {
			reactions[key] = uids
		}
	}
	return reactions, nil
}
