package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmailRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, emailRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, emailRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, emailRetryBackoff(3))
	assert.Equal(t, 16*time.Minute, emailRetryBackoff(5))
	// capped at 30 minutes from the 6th attempt on
	assert.Equal(t, 30*time.Minute, emailRetryBackoff(6))
	assert.Equal(t, 30*time.Minute, emailRetryBackoff(12))
}
