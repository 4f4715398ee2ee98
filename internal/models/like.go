package models

import "time"

// Like represents a like on a post. The composite unique index is the
// source of truth for "at most one like per (user, post)"; a duplicate
// insert is rejected by the store, not by a pre-check.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
