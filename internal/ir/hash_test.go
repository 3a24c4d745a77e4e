package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterminism(t *testing.T) {
	id1 := Fingerprint("hello world")
	id2 := Fingerprint("hello world")

	assert.Equal(t, id1, id2, "Fingerprint must be deterministic")
	assert.Len(t, id1, 64, "SHA-256 hex is 64 characters")
}

func TestFingerprintKnownVectors(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, Fingerprint(tt.value))
		})
	}
}

func TestFingerprintIsCaseSensitive(t *testing.T) {
	assert.NotEqual(t, Fingerprint("Racecar"), Fingerprint("racecar"))
	assert.NotEqual(t, Fingerprint("a "), Fingerprint("a"), "whitespace is not trimmed")
}
