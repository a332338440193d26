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

type MongoChapterRepository struct {
	coll *mongo.Collection
}

func newMongoChapterRepository(db *mongo.Database) portsrepo.ChapterRepository {
	return &MongoChapterRepository{coll: db.Collection(chaptersCollection)}
}

var _ portsrepo.ChapterRepository = (*MongoChapterRepository)(nil)

func (r *MongoChapterRepository) Create(ctx context.Context, chapter domain.Chapter) (string, error) {
	res, err := r.coll.InsertOne(ctx, toChapterDocument(chapter))
	if err != nil {
		// The (story_id, chapter_number) unique index backs number uniqueness.
		return "", mapWriteErr(err)
	}
	return insertedID(res), nil
}

func (r *MongoChapterRepository) FindByID(ctx context.Context, id string) (*domain.Chapter, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc chapterDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	chapter := toDomainChapter(doc)
	return &chapter, nil
}

func (r *MongoChapterRepository) FindByStoryAndNumber(ctx context.Context, storyID string, number int) (*domain.Chapter, error) {
	var doc chapterDocument
	if err := r.coll.FindOne(ctx, bson.M{"story_id": storyID, "chapter_number": number}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	chapter := toDomainChapter(doc)
	return &chapter, nil
}

func (r *MongoChapterRepository) ListByStory(ctx context.Context, storyID string) ([]domain.Chapter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "chapter_number", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"story_id": storyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer cursor.Close(ctx)

	chapters := make([]domain.Chapter, 0)
	for cursor.Next(ctx) {
		var doc chapterDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode chapter: %w", err)
		}
		chapters = append(chapters, toDomainChapter(doc))
	}
	return chapters, cursor.Err()
}

func (r *MongoChapterRepository) CountByStory(ctx context.Context, storyID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"story_id": storyID})
	if err != nil {
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return int(n), nil
}

func (r *MongoChapterRepository) Update(ctx context.Context, id string, upd portsrepo.ChapterUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.ChapterNumber != nil {
		set["chapter_number"] = *upd.ChapterNumber
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoChapterRepository) SetPublished(ctx context.Context, id string, published bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"published": published, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoChapterRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	if res.DeletedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoChapterRepository) DeleteByStory(ctx context.Context, storyID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"story_id": storyID})
	if err != nil {
		return fmt.Errorf("failed to delete story chapters: %w", err)
	}
	return nil
}
