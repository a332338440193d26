package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all MongoDB-backed repositories.
func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newMongoUserRepository(db),
		RefreshTokenRepo: newMongoRefreshTokenRepository(db),
		OTPRepo:          newMongoOTPRepository(db),
		StoryRepo:        newMongoStoryRepository(db),
		VideoRepo:        newMongoVideoRepository(db),
		ShotRepo:         newMongoShotRepository(db),
		ChapterRepo:      newMongoChapterRepository(db),
		CommentRepo:      newMongoCommentRepository(db),
	}
}
