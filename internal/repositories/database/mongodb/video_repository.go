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

type MongoVideoRepository struct {
	contentCollection
}

func newMongoVideoRepository(db *mongo.Database) portsrepo.VideoRepository {
	return &MongoVideoRepository{contentCollection{
		coll:         db.Collection(videosCollection),
		searchFields: []string{"caption", "tags"},
	}}
}

var _ portsrepo.VideoRepository = (*MongoVideoRepository)(nil)

func (r *MongoVideoRepository) Create(ctx context.Context, video domain.Video) (string, error) {
	res, err := r.coll.InsertOne(ctx, toVideoDocument(video))
	if err != nil {
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoVideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc videoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	video := toDomainVideo(doc)
	return &video, nil
}

func (r *MongoVideoRepository) Update(ctx context.Context, id string, upd portsrepo.VideoUpdate) error {
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
		return fmt.Errorf("failed to update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoVideoRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

func (r *MongoVideoRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Video, int64, error) {
	cursor, total, err := r.find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	videos := make([]domain.Video, 0, filter.PageSize)
	for cursor.Next(ctx) {
		var doc videoDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode video: %w", err)
		}
		videos = append(videos, toDomainVideo(doc))
	}
	return videos, total, cursor.Err()
}

func (r *MongoVideoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
