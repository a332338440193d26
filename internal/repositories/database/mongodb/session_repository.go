package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

type MongoRefreshTokenRepository struct {
	coll *mongo.Collection
}

func newMongoRefreshTokenRepository(db *mongo.Database) portsrepo.RefreshTokenRepository {
	return &MongoRefreshTokenRepository{coll: db.Collection(refreshTokensCollection)}
}

var _ portsrepo.RefreshTokenRepository = (*MongoRefreshTokenRepository)(nil)

func (r *MongoRefreshTokenRepository) Insert(ctx context.Context, token domain.RefreshToken) (string, error) {
	doc := refreshTokenDocument{
		Username:     token.Username,
		Token:        token.Token,
		CreatedAt:    token.CreatedAt,
		LastActivity: token.LastActivity,
		ExpiresAt:    token.ExpiresAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoRefreshTokenRepository) DeleteByUsername(ctx context.Context, username string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *MongoRefreshTokenRepository) FindByUsernameAndToken(ctx context.Context, username, token string) (*domain.RefreshToken, error) {
	var doc refreshTokenDocument
	if err := r.coll.FindOne(ctx, bson.M{"username": username, "token": token}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	record := toDomainRefreshToken(doc)
	return &record, nil
}

func (r *MongoRefreshTokenRepository) FindLiveByUsername(ctx context.Context, username string, now time.Time) (*domain.RefreshToken, error) {
	filter := bson.M{"username": username, "expires_at": bson.M{"$gt": now}}
	var doc refreshTokenDocument
	if err := r.coll.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	record := toDomainRefreshToken(doc)
	return &record, nil
}

// Rotate swaps the token value in a single update, so the old value stops
// matching the moment the new one is stored.
func (r *MongoRefreshTokenRepository) Rotate(ctx context.Context, id, newToken string, expiresAt, lastActivity time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"token":         newToken,
		"expires_at":    expiresAt,
		"last_activity": lastActivity,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to rotate: record gone")
	}
	return nil
}

func (r *MongoRefreshTokenRepository) TouchActivity(ctx context.Context, username string, at time.Time) error {
	_, err := r.coll.UpdateMany(ctx, bson.M{"username": username}, bson.M{"$set": bson.M{"last_activity": at}})
	if err != nil {
		return fmt.Errorf("failed to touch activity: %w", err)
	}
	return nil
}

type MongoOTPRepository struct {
	coll *mongo.Collection
}

func newMongoOTPRepository(db *mongo.Database) portsrepo.OTPRepository {
	return &MongoOTPRepository{coll: db.Collection(otpsCollection)}
}

var _ portsrepo.OTPRepository = (*MongoOTPRepository)(nil)

func (r *MongoOTPRepository) Insert(ctx context.Context, otp domain.OTP) (string, error) {
	doc := otpDocument{
		Email:     otp.Email,
		Code:      otp.Code,
		CreatedAt: otp.CreatedAt,
		ExpiresAt: otp.ExpiresAt,
		Used:      otp.Used,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert otp: %w", err)
	}
	return insertedID(res), nil
}

func (r *MongoOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to delete otps: %w", err)
	}
	return nil
}

func (r *MongoOTPRepository) FindLive(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error) {
	filter := bson.M{
		"email":      email,
		"code":       code,
		"used":       false,
		"expires_at": bson.M{"$gt": now},
	}
	var doc otpDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	otp := toDomainOTP(doc)
	return &otp, nil
}

func (r *MongoOTPRepository) MarkUsed(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"used": true}})
	if err != nil {
		return fmt.Errorf("failed to mark otp used: %w", err)
	}
	return nil
}
