package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
)

// objectID parses a hex document ID. Malformed IDs map to ErrNotFound so that
// handlers return 404 instead of 500 for garbage path parameters.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", apperrors.ErrNotFound, id)
	}
	return oid, nil
}

// mapFindErr converts driver sentinel errors to application errors.
func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrNotFound
	}
	return err
}

// mapWriteErr converts unique index violations to ErrDuplicate.
func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicate
	}
	return err
}

// insertedID extracts the hex ID from an insert result.
func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.InsertedID)
}
