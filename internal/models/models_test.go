package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionWireMapping(t *testing.T) {
	d, err := DirectionFromWire("right")
	require.NoError(t, err)
	assert.Equal(t, DirectionPositive, d)
	assert.Equal(t, "right", d.Wire())

	d, err = DirectionFromWire("left")
	require.NoError(t, err)
	assert.Equal(t, DirectionNegative, d)
	assert.Equal(t, "left", d.Wire())

	for _, bad := range []string{"", "up", "positive", "Right"} {
		_, err := DirectionFromWire(bad)
		assert.Error(t, err, "wire direction %q", bad)
	}
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, DirectionPositive.Valid())
	assert.True(t, DirectionNegative.Valid())
	assert.False(t, Direction("right").Valid(), "wire values are not storage values")
	assert.False(t, Direction("").Valid())
}
