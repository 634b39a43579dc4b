package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

type Users struct {
	coll *mongo.Collection
}

func (u *Users) Create(ctx context.Context, user *domain.User) error {
	// Duplicate check by query rather than relying on an index existing.
	err := u.coll.FindOne(ctx, bson.M{"username": user.Username}).Err()
	if err == nil {
		return ErrDuplicateUsername
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	_, err = u.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUsername
	}
	return err
}

func (u *Users) ByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"_id": id})
}

func (u *Users) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"username": username})
}

func (u *Users) ByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"refresh_token": token})
}

func (u *Users) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := u.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRefreshToken stores the refresh token on the user document; pass an empty
// token to log the user out.
func (u *Users) SetRefreshToken(ctx context.Context, id domain.UserID, token string) error {
	res, err := u.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"refresh_token": token, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddContact is idempotent: adding an already-saved contact is a no-op.
func (u *Users) AddContact(ctx context.Context, id, contact domain.UserID) error {
	res, err := u.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"contacts": contact},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Contacts resolves the saved contact ids of a user into their public
// projections.
func (u *Users) Contacts(ctx context.Context, id domain.UserID) ([]domain.Contact, error) {
	user, err := u.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(user.Contacts) == 0 {
		return []domain.Contact{}, nil
	}
	cur, err := u.coll.Find(ctx, bson.M{"_id": bson.M{"$in": user.Contacts}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Contact, 0, len(user.Contacts))
	for cur.Next(ctx) {
		var c domain.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}
