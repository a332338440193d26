package domain

import "time"

// ModerationStatus is the four-state moderation label shared by stories, videos
// and shots. Only approved items appear in public feeds.
type ModerationStatus string

const (
	StatusDraft    ModerationStatus = "draft"
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// CanSubmit reports whether an item in this status may be submitted for review.
func (s ModerationStatus) CanSubmit() bool {
	return s == StatusDraft || s == StatusRejected
}

// DefaultRejectionReason is stored when an admin rejects without giving a reason.
const DefaultRejectionReason = "Does not meet community guidelines"

// Story is a multi-chapter written work.
type Story struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	CoverImage          string           `json:"coverImage,omitempty"`
	Tags                []string         `json:"tags"`
	MatureContent       bool             `json:"matureContent"`
	AuthorID            string           `json:"authorID"`
	AuthorAnonymousName string           `json:"authorAnonymousName"`
	Status              ModerationStatus `json:"status"`
	Likes               int              `json:"likes"`
	LikedBy             []string         `json:"-"`
	TotalReads          int              `json:"totalReads"`
	ChapterCount        int              `json:"chapterCount"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	PublishedAt         *time.Time       `json:"publishedAt,omitempty"`
	RejectionReason     string           `json:"rejectionReason,omitempty"`
}

// Video is a single uploaded clip with a caption.
type Video struct {
	ID                  string           `json:"id"`
	VideoURL            string           `json:"videoURL"`
	Caption             string           `json:"caption"`
	Tags                []string         `json:"tags"`
	MatureContent       bool             `json:"matureContent"`
	AuthorID            string           `json:"authorID"`
	AuthorAnonymousName string           `json:"authorAnonymousName"`
	Status              ModerationStatus `json:"status"`
	Likes               int              `json:"likes"`
	LikedBy             []string         `json:"-"`
	Views               int              `json:"views"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	PublishedAt         *time.Time       `json:"publishedAt,omitempty"`
	RejectionReason     string           `json:"rejectionReason,omitempty"`
}

// Shot is a single image post.
type Shot struct {
	ID                  string           `json:"id"`
	ImageURL            string           `json:"imageURL"`
	Caption             string           `json:"caption"`
	Tags                []string         `json:"tags"`
	MatureContent       bool             `json:"matureContent"`
	AuthorID            string           `json:"authorID"`
	AuthorAnonymousName string           `json:"authorAnonymousName"`
	Status              ModerationStatus `json:"status"`
	Likes               int              `json:"likes"`
	LikedBy             []string         `json:"-"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	PublishedAt         *time.Time       `json:"publishedAt,omitempty"`
	RejectionReason     string           `json:"rejectionReason,omitempty"`
}

// VisibleTo implements the cross-cutting visibility rule: approved items are
// public, everything else is visible only to the author or an admin.
func VisibleTo(status ModerationStatus, authorID string, viewer *User) bool {
	if status == StatusApproved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.UserID == authorID || viewer.IsAdmin()
}
