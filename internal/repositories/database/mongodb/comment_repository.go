package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func newMongoCommentRepository(db *mongo.Database) portsrepo.CommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentsCollection)}
}

var _ portsrepo.CommentRepository = (*MongoCommentRepository)(nil)

func (r *MongoCommentRepository) Create(ctx context.Context, comment domain.Comment) (string, error) {
	res, err := r.coll.InsertOne(ctx, toCommentDocument(comment))
	if err != nil {
		return "", fmt.Errorf("failed to insert comment: %w", err)
	}
	return insertedID(res), nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	comment := toDomainComment(doc)
	return &comment, nil
}

func targetField(target domain.CommentTarget) string {
	switch target {
	case domain.CommentOnVideo:
		return "video_id"
	case domain.CommentOnChapter:
		return "chapter_id"
	default:
		return "story_id"
	}
}

func (r *MongoCommentRepository) ListByTarget(ctx context.Context, target domain.CommentTarget, targetID string) ([]domain.Comment, error) {
	// Chapter comments order by text anchor first so inline threads line up
	// with the prose; everything else is chronological.
	sort := bson.D{{Key: "created_at", Value: 1}}
	if target == domain.CommentOnChapter {
		sort = bson.D{{Key: "text_position", Value: 1}, {Key: "created_at", Value: 1}}
	}

	cursor, err := r.coll.Find(ctx, bson.M{targetField(target): targetID}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := make([]domain.Comment, 0)
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comments = append(comments, toDomainComment(doc))
	}
	return comments, cursor.Err()
}

func (r *MongoCommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoCommentRepository) Vote(ctx context.Context, id string, up bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	field := "downvotes"
	if up {
		field = "upvotes"
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("failed to vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoCommentRepository) ListChildIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx,
		bson.M{"parent_comment_id": bson.M{"$in": parentIDs}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode reply id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

func (r *MongoCommentRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			return err
		}
		oids = append(oids, oid)
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByStory(ctx context.Context, storyID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"story_id": storyID})
	if err != nil {
		return fmt.Errorf("failed to delete story comments: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"video_id": videoID})
	if err != nil {
		return fmt.Errorf("failed to delete video comments: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByChapter(ctx context.Context, chapterID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"chapter_id": chapterID})
	if err != nil {
		return fmt.Errorf("failed to delete chapter comments: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) SumLikesByUser(ctx context.Context, userID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$likes"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum comment likes: %w", err)
	}
	defer cursor.Close(ctx)

	var out struct {
		Total int `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&out); err != nil {
			return 0, fmt.Errorf("failed to decode like total: %w", err)
		}
	}
	return out.Total, cursor.Err()
}
