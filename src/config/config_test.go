package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWindows(t *testing.T) {
	assert.NoError(t, ValidateWindows(1, 7))
	assert.NoError(t, ValidateWindows(0, 0))
	assert.NoError(t, ValidateWindows(7, 7))

	assert.Error(t, ValidateWindows(-1, 7))
	assert.Error(t, ValidateWindows(1, -7))
	assert.Error(t, ValidateWindows(8, 7))
}

func TestWindowDefaults(t *testing.T) {
	t.Setenv("EXPIRED_GRACE_DAYS", "")
	t.Setenv("LOOKAHEAD_DAYS", "")
	assert.Equal(t, DEFAULT_EXPIRED_GRACE_DAYS, ExpiredGraceDays())
	assert.Equal(t, DEFAULT_LOOKAHEAD_DAYS, LookaheadDays())

	t.Setenv("EXPIRED_GRACE_DAYS", "2")
	assert.Equal(t, 2, ExpiredGraceDays())

	t.Setenv("EXPIRED_GRACE_DAYS", "not-a-number")
	assert.Equal(t, DEFAULT_EXPIRED_GRACE_DAYS, ExpiredGraceDays())
}
