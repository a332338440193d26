package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// Document structs mirror the domain types with bson field names. Conversion
// helpers keep the mapping in one place.

type userDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username,omitempty"`
	Email         string             `bson:"email,omitempty"`
	PasswordHash  string             `bson:"password_hash"`
	AnonymousName string             `bson:"anonymous_name"`
	Role          string             `bson:"role"`
	IsActive      bool               `bson:"is_active"`
	Points        int                `bson:"points"`
	ReferralCode  string             `bson:"referral_code,omitempty"`
	ReferralCount int                `bson:"referral_count"`
	CreatedAt     time.Time          `bson:"created_at"`
	DeactivatedAt *time.Time         `bson:"deactivated_at,omitempty"`
}

func toUserDocument(u domain.User) userDocument {
	return userDocument{
		Username:      u.Username,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		AnonymousName: u.AnonymousName,
		Role:          string(u.Role),
		IsActive:      u.IsActive,
		Points:        u.Points,
		ReferralCode:  u.ReferralCode,
		ReferralCount: u.ReferralCount,
		CreatedAt:     u.CreatedAt,
		DeactivatedAt: u.DeactivatedAt,
	}
}

func toDomainUser(d userDocument) domain.User {
	return domain.User{
		UserID:        d.ID.Hex(),
		Username:      d.Username,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		AnonymousName: d.AnonymousName,
		Role:          domain.UserRole(d.Role),
		IsActive:      d.IsActive,
		Points:        d.Points,
		ReferralCode:  d.ReferralCode,
		ReferralCount: d.ReferralCount,
		CreatedAt:     d.CreatedAt,
		DeactivatedAt: d.DeactivatedAt,
	}
}

type refreshTokenDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Token        string             `bson:"token"`
	CreatedAt    time.Time          `bson:"created_at"`
	LastActivity time.Time          `bson:"last_activity"`
	ExpiresAt    time.Time          `bson:"expires_at"`
}

func toDomainRefreshToken(d refreshTokenDocument) domain.RefreshToken {
	return domain.RefreshToken{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Token:        d.Token,
		CreatedAt:    d.CreatedAt,
		LastActivity: d.LastActivity,
		ExpiresAt:    d.ExpiresAt,
	}
}

type otpDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Code      string             `bson:"code"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Used      bool               `bson:"used"`
}

func toDomainOTP(d otpDocument) domain.OTP {
	return domain.OTP{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Code:      d.Code,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		Used:      d.Used,
	}
}

type storyDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Title               string             `bson:"title"`
	Description         string             `bson:"description"`
	CoverImage          string             `bson:"cover_image,omitempty"`
	Tags                []string           `bson:"tags"`
	MatureContent       bool               `bson:"mature_content"`
	AuthorID            string             `bson:"author_id"`
	AuthorAnonymousName string             `bson:"author_anonymous_name"`
	Status              string             `bson:"status"`
	Likes               int                `bson:"likes"`
	LikedBy             []string           `bson:"liked_by"`
	TotalReads          int                `bson:"total_reads"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
	PublishedAt         *time.Time         `bson:"published_at,omitempty"`
	RejectionReason     string             `bson:"rejection_reason,omitempty"`
}

func toStoryDocument(s domain.Story) storyDocument {
	return storyDocument{
		Title:               s.Title,
		Description:         s.Description,
		CoverImage:          s.CoverImage,
		Tags:                s.Tags,
		MatureContent:       s.MatureContent,
		AuthorID:            s.AuthorID,
		AuthorAnonymousName: s.AuthorAnonymousName,
		Status:              string(s.Status),
		Likes:               s.Likes,
		LikedBy:             s.LikedBy,
		TotalReads:          s.TotalReads,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		PublishedAt:         s.PublishedAt,
		RejectionReason:     s.RejectionReason,
	}
}

func toDomainStory(d storyDocument) domain.Story {
	return domain.Story{
		ID:                  d.ID.Hex(),
		Title:               d.Title,
		Description:         d.Description,
		CoverImage:          d.CoverImage,
		Tags:                d.Tags,
		MatureContent:       d.MatureContent,
		AuthorID:            d.AuthorID,
		AuthorAnonymousName: d.AuthorAnonymousName,
		Status:              domain.ModerationStatus(d.Status),
		Likes:               d.Likes,
		LikedBy:             d.LikedBy,
		TotalReads:          d.TotalReads,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		PublishedAt:         d.PublishedAt,
		RejectionReason:     d.RejectionReason,
	}
}

type videoDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	VideoURL            string             `bson:"video_url"`
	Caption             string             `bson:"caption"`
	Tags                []string           `bson:"tags"`
	MatureContent       bool               `bson:"mature_content"`
	AuthorID            string             `bson:"author_id"`
	AuthorAnonymousName string             `bson:"author_anonymous_name"`
	Status              string             `bson:"status"`
	Likes               int                `bson:"likes"`
	LikedBy             []string           `bson:"liked_by"`
	Views               int                `bson:"views"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
	PublishedAt         *time.Time         `bson:"published_at,omitempty"`
	RejectionReason     string             `bson:"rejection_reason,omitempty"`
}

func toVideoDocument(v domain.Video) videoDocument {
	return videoDocument{
		VideoURL:            v.VideoURL,
		Caption:             v.Caption,
		Tags:                v.Tags,
		MatureContent:       v.MatureContent,
		AuthorID:            v.AuthorID,
		AuthorAnonymousName: v.AuthorAnonymousName,
		Status:              string(v.Status),
		Likes:               v.Likes,
		LikedBy:             v.LikedBy,
		Views:               v.Views,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		PublishedAt:         v.PublishedAt,
		RejectionReason:     v.RejectionReason,
	}
}

func toDomainVideo(d videoDocument) domain.Video {
	return domain.Video{
		ID:                  d.ID.Hex(),
		VideoURL:            d.VideoURL,
		Caption:             d.Caption,
		Tags:                d.Tags,
		MatureContent:       d.MatureContent,
		AuthorID:            d.AuthorID,
		AuthorAnonymousName: d.AuthorAnonymousName,
		Status:              domain.ModerationStatus(d.Status),
		Likes:               d.Likes,
		LikedBy:             d.LikedBy,
		Views:               d.Views,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		PublishedAt:         d.PublishedAt,
		RejectionReason:     d.RejectionReason,
	}
}

type shotDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	ImageURL            string             `bson:"image_url"`
	Caption             string             `bson:"caption"`
	Tags                []string           `bson:"tags"`
	MatureContent       bool               `bson:"mature_content"`
	AuthorID            string             `bson:"author_id"`
	AuthorAnonymousName string             `bson:"author_anonymous_name"`
	Status              string             `bson:"status"`
	Likes               int                `bson:"likes"`
	LikedBy             []string           `bson:"liked_by"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
	PublishedAt         *time.Time         `bson:"published_at,omitempty"`
	RejectionReason     string             `bson:"rejection_reason,omitempty"`
}

func toShotDocument(s domain.Shot) shotDocument {
	return shotDocument{
		ImageURL:            s.ImageURL,
		Caption:             s.Caption,
		Tags:                s.Tags,
		MatureContent:       s.MatureContent,
		AuthorID:            s.AuthorID,
		AuthorAnonymousName: s.AuthorAnonymousName,
		Status:              string(s.Status),
		Likes:               s.Likes,
		LikedBy:             s.LikedBy,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		PublishedAt:         s.PublishedAt,
		RejectionReason:     s.RejectionReason,
	}
}

func toDomainShot(d shotDocument) domain.Shot {
	return domain.Shot{
		ID:                  d.ID.Hex(),
		ImageURL:            d.ImageURL,
		Caption:             d.Caption,
		Tags:                d.Tags,
		MatureContent:       d.MatureContent,
		AuthorID:            d.AuthorID,
		AuthorAnonymousName: d.AuthorAnonymousName,
		Status:              domain.ModerationStatus(d.Status),
		Likes:               d.Likes,
		LikedBy:             d.LikedBy,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		PublishedAt:         d.PublishedAt,
		RejectionReason:     d.RejectionReason,
	}
}

type chapterDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	StoryID       string             `bson:"story_id"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	ChapterNumber int                `bson:"chapter_number"`
	Published     bool               `bson:"published"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toChapterDocument(c domain.Chapter) chapterDocument {
	return chapterDocument{
		StoryID:       c.StoryID,
		Title:         c.Title,
		Content:       c.Content,
		ChapterNumber: c.ChapterNumber,
		Published:     c.Published,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toDomainChapter(d chapterDocument) domain.Chapter {
	return domain.Chapter{
		ID:            d.ID.Hex(),
		StoryID:       d.StoryID,
		Title:         d.Title,
		Content:       d.Content,
		ChapterNumber: d.ChapterNumber,
		Published:     d.Published,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type commentDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Content         string             `bson:"content"`
	StoryID         string             `bson:"story_id,omitempty"`
	VideoID         string             `bson:"video_id,omitempty"`
	ChapterID       string             `bson:"chapter_id,omitempty"`
	SelectedText    string             `bson:"selected_text,omitempty"`
	TextPosition    *int               `bson:"text_position,omitempty"`
	ParentCommentID string             `bson:"parent_comment_id,omitempty"`
	UserID          string             `bson:"user_id"`
	AnonymousName   string             `bson:"anonymous_name"`
	Upvotes         int                `bson:"upvotes"`
	Downvotes       int                `bson:"downvotes"`
	Likes           int                `bson:"likes"`
	LikedBy         []string           `bson:"liked_by"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toCommentDocument(c domain.Comment) commentDocument {
	return commentDocument{
		Content:         c.Content,
		StoryID:         c.StoryID,
		VideoID:         c.VideoID,
		ChapterID:       c.ChapterID,
		SelectedText:    c.SelectedText,
		TextPosition:    c.TextPosition,
		ParentCommentID: c.ParentCommentID,
		UserID:          c.UserID,
		AnonymousName:   c.AnonymousName,
		Upvotes:         c.Upvotes,
		Downvotes:       c.Downvotes,
		Likes:           c.Likes,
		LikedBy:         c.LikedBy,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toDomainComment(d commentDocument) domain.Comment {
	return domain.Comment{
		ID:              d.ID.Hex(),
		Content:         d.Content,
		StoryID:         d.StoryID,
		VideoID:         d.VideoID,
		ChapterID:       d.ChapterID,
		SelectedText:    d.SelectedText,
		TextPosition:    d.TextPosition,
		ParentCommentID: d.ParentCommentID,
		UserID:          d.UserID,
		AnonymousName:   d.AnonymousName,
		Upvotes:         d.Upvotes,
		Downvotes:       d.Downvotes,
		Likes:           d.Likes,
		LikedBy:         d.LikedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
