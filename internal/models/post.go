package models

import "time"

// Post is proof that a goal was nailed. Immutable after creation;
// removed only by the account cascade.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	GoalID      uint      `json:"goal_id" gorm:"index"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePostRequest defines the request body for posting goal proof
type CreatePostRequest struct {
	GoalID      uint   `json:"goal_id" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	Description string `json:"description" validate:"omitempty,max=500"`
}
