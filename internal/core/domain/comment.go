package domain

import "time"

// CommentTarget identifies the kind of content a comment is attached to.
type CommentTarget string

const (
	CommentOnStory   CommentTarget = "story"
	CommentOnVideo   CommentTarget = "video"
	CommentOnChapter CommentTarget = "chapter"
)

// Comment is attached to exactly one of story, video or chapter, optionally as a
// reply to a parent comment. Chapter comments may anchor to a text selection.
type Comment struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	StoryID         string    `json:"storyID,omitempty"`
	VideoID         string    `json:"videoID,omitempty"`
	ChapterID       string    `json:"chapterID,omitempty"`
	SelectedText    string    `json:"selectedText,omitempty"`
	TextPosition    *int      `json:"textPosition,omitempty"`
	ParentCommentID string    `json:"parentCommentID,omitempty"`
	UserID          string    `json:"userID"`
	AnonymousName   string    `json:"anonymousName"`
	Upvotes         int       `json:"upvotes"`
	Downvotes       int       `json:"downvotes"`
	Likes           int       `json:"likes"`
	LikedBy         []string  `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CommentNode is a comment with its nested replies, as returned by tree retrieval.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree assembles flat comments into nested nodes, preserving input
// order among siblings. Only roots (no parent, or parent missing from the input
// set) appear at the top level.
func BuildCommentTree(comments []Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	order := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		n := &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
		nodes[n.ID] = n
		order = append(order, n)
	}

	roots := make([]*CommentNode, 0)
	for _, n := range order {
		if n.ParentCommentID != "" {
			if parent, ok := nodes[n.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
