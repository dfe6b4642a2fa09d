package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
)

func TestNewEntry(t *testing.T) {
	track := catalog.Track{ID: "t1", Title: "Night Drive"}

	a := NewEntry(track, OriginUser)
	b := NewEntry(track, OriginAutoplay)

	assert.NotEmpty(t, a.InstanceID)
	assert.NotEqual(t, a.InstanceID, b.InstanceID, "same track must get distinct instance ids")
	assert.Equal(t, track, a.Track)
	assert.Equal(t, OriginUser, a.Origin)
	assert.Equal(t, OriginAutoplay, b.Origin)
	assert.WithinDuration(t, time.Now(), a.AddedAt, time.Minute)
}

func TestRepeatModeCycle(t *testing.T) {
	assert.Equal(t, RepeatAll, RepeatOff.Next())
	assert.Equal(t, RepeatOne, RepeatAll.Next())
	assert.Equal(t, RepeatOff, RepeatOne.Next())
}
