package models

import "time"

// GoalStatus is the closed set of states a goal can be in
type GoalStatus string

const (
	GoalStatusPending   GoalStatus = "pending"
	GoalStatusNailedIt  GoalStatus = "nail it"
	GoalStatusFailedOut GoalStatus = "failed out"
)

// Valid reports whether s is one of the known goal states
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusPending, GoalStatusNailedIt, GoalStatusFailedOut:
		return true
	}
	return false
}

// Terminal reports whether s ends a goal (no further transitions)
func (s GoalStatus) Terminal() bool {
	return s == GoalStatusNailedIt || s == GoalStatusFailedOut
}

// Goal is a timed commitment. Only Status changes after creation.
type Goal struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index"`
	Title     string     `json:"title" gorm:"size:200"`
	Duration  int        `json:"duration"` // minutes
	Status    GoalStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateGoalRequest defines the request body for creating a goal
type CreateGoalRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Duration int    `json:"duration" validate:"required,min=1"`
}

// UpdateGoalStatusRequest defines the request body for resolving a goal
type UpdateGoalStatusRequest struct {
	Status GoalStatus `json:"status" validate:"required,oneof='nail it' 'failed out'"`
}
