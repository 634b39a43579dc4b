package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// HistoryLimit caps how many messages a chat-history reply carries.
const HistoryLimit = 100

type Messages struct {
	coll *mongo.Collection
}

func (m *Messages) Append(ctx context.Context, msg *domain.Message) error {
	_, err := m.coll.InsertOne(ctx, msg)
	return err
}

// ForChat returns up to HistoryLimit messages of a chat in chronological
// order.
func (m *Messages) ForChat(ctx context.Context, id domain.ChatID) ([]domain.Message, error) {
	// Newest first, capped, then reversed so the client renders in order.
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(HistoryLimit)
	cur, err := m.coll.Find(ctx, bson.M{"chat_id": id}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var newest []domain.Message
	if err := cur.All(ctx, &newest); err != nil {
		return nil, err
	}
	out := make([]domain.Message, len(newest))
	for i, msg := range newest {
		out[len(newest)-1-i] = msg
	}
	return out, nil
}
