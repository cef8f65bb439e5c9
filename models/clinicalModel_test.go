package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantSetAddIsIdempotent(t *testing.T) {
	set := NewParticipantSet(3)

	assert.True(t, set.Add(5))
	assert.False(t, set.Add(5))
	assert.True(t, set.Contains(3))
	assert.True(t, set.Contains(5))
	assert.Equal(t, []uint{3, 5}, set.IDs())
}

func TestParticipantSetValueScanRoundTrip(t *testing.T) {
	set := NewParticipantSet(9, 2, 4)

	value, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, "[2,4,9]", value)

	var decoded ParticipantSet
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, set.IDs(), decoded.IDs())
}

func TestParticipantSetScanNil(t *testing.T) {
	var set ParticipantSet
	require.NoError(t, set.Scan(nil))
	assert.Empty(t, set.IDs())
}

func TestParticipantSetJSON(t *testing.T) {
	data, err := json.Marshal(NewParticipantSet(7, 1))
	require.NoError(t, err)
	assert.JSONEq(t, "[1,7]", string(data))

	var set ParticipantSet
	require.NoError(t, json.Unmarshal([]byte("[4,4,6]"), &set))
	assert.Equal(t, []uint{4, 6}, set.IDs())
}
