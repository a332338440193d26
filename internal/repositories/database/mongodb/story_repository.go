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

type MongoStoryRepository struct {
	contentCollection
}

func newMongoStoryRepository(db *mongo.Database) portsrepo.StoryRepository {
	return &MongoStoryRepository{contentCollection{
		coll:         db.Collection(storiesCollection),
		searchFields: []string{"title", "description", "tags"},
	}}
}

var _ portsrepo.StoryRepository = (*MongoStoryRepository)(nil)

func (r *MongoStoryRepository) Create(ctx context.Context, story domain.Story) (string, error) {
	res, err := r.coll.InsertOne(ctx, toStoryDocument(story))
	if err != nil {
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoStoryRepository) FindByID(ctx context.Context, id string) (*domain.Story, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc storyDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	story := toDomainStory(doc)
	return &story, nil
}

func (r *MongoStoryRepository) Update(ctx context.Context, id string, upd portsrepo.StoryUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.CoverImage != nil {
		set["cover_image"] = *upd.CoverImage
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.MatureContent != nil {
		set["mature_content"] = *upd.MatureContent
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoStoryRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

func (r *MongoStoryRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Story, int64, error) {
	cursor, total, err := r.find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	stories := make([]domain.Story, 0, filter.PageSize)
	for cursor.Next(ctx) {
		var doc storyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode story: %w", err)
		}
		stories = append(stories, toDomainStory(doc))
	}
	return stories, total, cursor.Err()
}
