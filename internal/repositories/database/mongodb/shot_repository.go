package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

type MongoShotRepository struct {
	contentCollection
}

func newMongoShotRepository(db *mongo.Database) portsrepo.ShotRepository {
	return &MongoShotRepository{contentCollection{
		coll:         db.Collection(shotsCollection),
		searchFields: []string{"caption", "tags"},
	}}
}

var _ portsrepo.ShotRepository = (*MongoShotRepository)(nil)

func (r *MongoShotRepository) Create(ctx context.Context, shot domain.Shot) (string, error) {
	res, err := r.coll.InsertOne(ctx, toShotDocument(shot))
	if err != nil {
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoShotRepository) FindByID(ctx context.Context, id string) (*domain.Shot, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc shotDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	shot := toDomainShot(doc)
	return &shot, nil
}

func (r *MongoShotRepository) Update(ctx context.Context, id string, upd portsrepo.ShotUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Caption != nil {
		set["caption"] = *upd.Caption
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.MatureContent != nil {
		set["mature_content"] = *upd.MatureContent
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update shot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoShotRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

func (r *MongoShotRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Shot, int64, error) {
	cursor, total, err := r.find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	shots := make([]domain.Shot, 0, filter.PageSize)
	for cursor.Next(ctx) {
		var doc shotDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode shot: %w", err)
		}
		shots = append(shots, toDomainShot(doc))
	}
	return shots, total, cursor.Err()
}
