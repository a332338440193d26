package domain

import "time"

// Chapter belongs to exactly one story. ChapterNumber is unique per story.
type Chapter struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"storyID"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ChapterNumber int       `json:"chapterNumber"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
