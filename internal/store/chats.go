package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

type Chats struct {
	coll *mongo.Collection
}

func (c *Chats) Create(ctx context.Context, chat *domain.Chat) error {
	_, err := c.coll.InsertOne(ctx, chat)
	return err
}

func (c *Chats) ByID(ctx context.Context, id domain.ChatID) (*domain.Chat, error) {
	var chat domain.Chat
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindIndividual returns an existing one-on-one chat between the two users,
// or ErrNotFound. Keeps chat creation idempotent per pair.
func (c *Chats) FindIndividual(ctx context.Context, a, b domain.UserID) (*domain.Chat, error) {
	var chat domain.Chat
	err := c.coll.FindOne(ctx, bson.M{
		"type":    domain.ChatIndividual,
		"members": bson.M{"$all": bson.A{a, b}},
	}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ForUser lists every chat the user is a member of, most recently updated
// first.
func (c *Chats) ForUser(ctx context.Context, id domain.UserID) ([]domain.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := c.coll.Find(ctx, bson.M{"members": id}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Chat
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MemberIDs is the membership query the realtime fan-out depends on. It is
// re-fetched per send rather than mirrored, so membership changes apply
// immediately.
func (c *Chats) MemberIDs(ctx context.Context, id domain.ChatID) ([]domain.UserID, error) {
	var doc struct {
		Members []domain.UserID `bson:"members"`
	}
	opts := options.FindOne().SetProjection(bson.M{"members": 1})
	err := c.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Members, nil
}

func (c *Chats) SetLastMessage(ctx context.Context, id domain.ChatID, msg *domain.Message) error {
	res, err := c.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_message": msg, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
