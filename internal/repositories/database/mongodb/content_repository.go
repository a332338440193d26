package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

// contentCollection implements the engagement, moderation and stats operations
// shared by stories, videos and shots. The concrete repositories embed it and
// add type-specific CRUD on top.
type contentCollection struct {
	coll *mongo.Collection
	// searchFields are the document fields matched by the feed search regex.
	searchFields []string
}

// likeResult carries the counters the like operations project out.
type likeResult struct {
	ID    primitive.ObjectID `bson:"_id"`
	Likes int                `bson:"likes"`
}

// AddLike adds the user to the liked_by set and bumps the counter in one atomic
// update. The filter only matches when the user is not in the set, so repeated
// calls do not double count; the post-update document reports the new total.
func (c *contentCollection) AddLike(ctx context.Context, id, userID string) (int, bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, false, err
	}

	filter := bson.M{"_id": oid, "liked_by": bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{"liked_by": userID}, "$inc": bson.M{"likes": 1}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var res likeResult
	err = c.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res)
	if err == nil {
		return res.Likes, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, fmt.Errorf("failed to add like: %w", err)
	}

	// Either the item does not exist or the user already liked it.
	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"likes": 1})).Decode(&res); err != nil {
		return 0, false, mapFindErr(err)
	}
	return res.Likes, false, nil
}

// RemoveLike is the inverse of AddLike: it only matches when the user is in the
// liked_by set.
func (c *contentCollection) RemoveLike(ctx context.Context, id, userID string) (int, bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, false, err
	}

	filter := bson.M{"_id": oid, "liked_by": userID}
	update := bson.M{"$pull": bson.M{"liked_by": userID}, "$inc": bson.M{"likes": -1}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var res likeResult
	err = c.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res)
	if err == nil {
		return res.Likes, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, fmt.Errorf("failed to remove like: %w", err)
	}

	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"likes": 1})).Decode(&res); err != nil {
		return 0, false, mapFindErr(err)
	}
	return res.Likes, false, nil
}

func (c *contentCollection) ListLikedIDs(ctx context.Context, userID string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := c.coll.Find(ctx, bson.M{"liked_by": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked items: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var res likeResult
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode liked item: %w", err)
		}
		ids = append(ids, res.ID.Hex())
	}
	return ids, cursor.Err()
}

// SubmitForReview moves a draft or rejected item to pending. The source states
// are part of the filter, so a concurrent transition makes this a no-op.
func (c *contentCollection) SubmitForReview(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": oid, "status": bson.M{"$in": bson.A{string(domain.StatusDraft), string(domain.StatusRejected)}}}
	update := bson.M{"$set": bson.M{
		"status":           string(domain.StatusPending),
		"rejection_reason": "",
		"updated_at":       time.Now(),
	}}
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to submit for review: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Moderate resolves a pending item. Approval stamps published_at; rejection
// stores the reason.
func (c *contentCollection) Moderate(ctx context.Context, id string, approved bool, reason string, publishedAt time.Time) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	set := bson.M{"updated_at": time.Now()}
	if approved {
		set["status"] = string(domain.StatusApproved)
		set["published_at"] = publishedAt
		set["rejection_reason"] = ""
	} else {
		set["status"] = string(domain.StatusRejected)
		set["rejection_reason"] = reason
	}

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to moderate: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (c *contentCollection) CountByAuthor(ctx context.Context, authorID string, status domain.ModerationStatus) (int, error) {
	filter := bson.M{"author_id": authorID}
	if status != "" {
		filter["status"] = string(status)
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count by author: %w", err)
	}
	return int(n), nil
}

func (c *contentCollection) SumLikesByAuthor(ctx context.Context, authorID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"author_id": authorID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$likes"}}}},
	}
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum likes: %w", err)
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

// query translates a ContentFilter into a bson filter.
func (c *contentCollection) query(filter portsrepo.ContentFilter) bson.M {
	q := bson.M{}
	if filter.AuthorID != "" {
		q["author_id"] = filter.AuthorID
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		or := make(bson.A, 0, len(c.searchFields))
		for _, field := range c.searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": regex}})
		}
		q["$or"] = or
	}
	return q
}

// find runs the filtered, sorted, paginated query and the matching count.
// Callers decode the cursor into their document type and must close it.
func (c *contentCollection) find(ctx context.Context, filter portsrepo.ContentFilter) (*mongo.Cursor, int64, error) {
	q := c.query(filter)

	total, err := c.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count content: %w", err)
	}

	sortField := filter.SortField
	if sortField == "" {
		sortField = "created_at"
	}
	dir := 1
	if filter.SortDesc {
		dir = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize))

	cursor, err := c.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query content: %w", err)
	}
	return cursor, total, nil
}

func (c *contentCollection) deleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if res.DeletedCount == 0 {
		return mapFindErr(mongo.ErrNoDocuments)
	}
	return nil
}
