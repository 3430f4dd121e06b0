package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStateID(t *testing.T) {
	for id := StateLoading; id <= StateArrived; id++ {
		assert.True(t, ValidStateID(id))
	}
	assert.False(t, ValidStateID(0))
	assert.False(t, ValidStateID(5))
	assert.False(t, ValidStateID(-1))
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Loading", StateLabel(StateLoading))
	assert.Equal(t, "Ready to depart", StateLabel(StateReadyToDepart))
	assert.Equal(t, "In transit", StateLabel(StateInTransit))
	assert.Equal(t, "Arrived", StateLabel(StateArrived))
	assert.Equal(t, "Unknown", StateLabel(9))
}

func TestInLoadingLeg(t *testing.T) {
	// only a single-row history marks the loading leg; the modulo keeps the
	// historical classification for larger counts
	assert.True(t, InLoadingLeg(1))
	assert.False(t, InLoadingLeg(2))
	assert.False(t, InLoadingLeg(3))
	assert.False(t, InLoadingLeg(4))
	assert.True(t, InLoadingLeg(5))
}
