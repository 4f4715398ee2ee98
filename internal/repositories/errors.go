package repositories

import "errors"

// Sentinel errors handlers translate into HTTP status codes.
var (
	ErrLikeNotFound         = errors.New("like not found")
	ErrBookmarkNotFound     = errors.New("bookmark not found")
	ErrFollowNotFound       = errors.New("follow relationship not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
