package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalStatusValid(t *testing.T) {
	assert.True(t, GoalStatusPending.Valid())
	assert.True(t, GoalStatusNailedIt.Valid())
	assert.True(t, GoalStatusFailedOut.Valid())
	assert.False(t, GoalStatus("").Valid())
	assert.False(t, GoalStatus("done").Valid())
}

func TestGoalStatusTerminal(t *testing.T) {
	assert.False(t, GoalStatusPending.Terminal())
	assert.True(t, GoalStatusNailedIt.Terminal())
	assert.True(t, GoalStatusFailedOut.Terminal())
}

func TestNotificationTypeValid(t *testing.T) {
	assert.True(t, NotificationLike.Valid())
	assert.True(t, NotificationComment.Valid())
	assert.True(t, NotificationFollow.Valid())
	assert.False(t, NotificationType("mention").Valid())
}
