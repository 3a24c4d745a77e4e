package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalFrequencies_Deterministic(t *testing.T) {
	freq := map[string]int{"b": 1, "a": 2, " ": 3}

	first, err := marshalFrequencies(freq)
	require.NoError(t, err)
	second, err := marshalFrequencies(freq)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, `{" ":3,"a":2,"b":1}`, first)
}

func TestMarshalFrequencies_Nil(t *testing.T) {
	got, err := marshalFrequencies(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestUnmarshalFrequencies(t *testing.T) {
	got, err := unmarshalFrequencies(`{"a":2,"é":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "é": 1}, got)

	empty, err := unmarshalFrequencies("")
	require.NoError(t, err)
	assert.NotNil(t, empty)

	_, err = unmarshalFrequencies("not json")
	assert.Error(t, err)
}
