package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) portsrepo.UserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

var _ portsrepo.UserRepository = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) CreateUser(ctx context.Context, user domain.User) (string, error) {
	res, err := r.coll.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	user := toDomainUser(doc)
	return &user, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindUserByAnonymousName(ctx context.Context, anonymousName string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"anonymous_name": anonymousName})
}

func (r *MongoUserRepository) FindUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"referral_code": code})
}

func (r *MongoUserRepository) SetPoints(ctx context.Context, userID string, points int) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"points": points}})
	if err != nil {
		return fmt.Errorf("failed to set points: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"points": delta}})
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) SetReferralCode(ctx context.Context, userID, code string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"referral_code": code}})
	if err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *MongoUserRepository) IncrementReferralCount(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"referral_count": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment referral count: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoUserRepository) ListTopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0, limit)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, toDomainUser(doc))
	}
	return users, cursor.Err()
}
