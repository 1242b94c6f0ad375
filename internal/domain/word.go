package domain

import "time"

// SystemUserID owns the shared word pool seeded at startup.
const SystemUserID = 0

// MyWordsCategory is the reserved category holding user-added words.
const MyWordsCategory = "My Words"

// Word represents a word-translation pair
type Word struct {
	ID          int       `json:"id"`
	UserID      int64     `json:"userId"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	CategoryID  *int      `json:"categoryId,omitempty"`
	IsCustom    bool      `json:"isCustom"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups words by topic
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
