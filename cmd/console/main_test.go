package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed("")
	require.NoError(t, err)
	require.Nil(t, seed)

	seed, err = parseSeed("42")
	require.NoError(t, err)
	require.Equal(t, uint64(42), *seed)

	_, err = parseSeed("-1")
	require.Error(t, err)
}

func TestParseIndex(t *testing.T) {
	testCases := []struct {
		line  string
		index int
		ok    bool
	}{
		{"7", 7, true},
		{" 12\r", 12, true},
		{"0", 0, true},
		{"-3", 0, false},
		{"seven", 0, false},
		{"", 0, false},
	}
	for _, test := range testCases {
		index, err := parseIndex(test.line)
		if !test.ok {
			require.Error(t, err, "line %q", test.line)
			continue
		}
		require.NoError(t, err, "line %q", test.line)
		require.Equal(t, test.index, index)
	}
}
