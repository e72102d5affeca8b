package crmdeploy

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalConfirmer(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"Y\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"whatever\n", true, false},
	}

	for _, tc := range cases {
		c := NewTerminalConfirmer(strings.NewReader(tc.input), io.Discard)
		got, err := c.Confirm(KeyDeploy, "continue?", tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q def %v", tc.input, tc.def)
	}
}

func TestTerminalConfirmerEOF(t *testing.T) {
	c := NewTerminalConfirmer(strings.NewReader(""), io.Discard)
	_, err := c.Confirm(KeyDeploy, "continue?", false)
	require.Error(t, err)
}

func TestStaticConfirmer(t *testing.T) {
	c := StaticConfirmer{Default: true, Answers: map[string]bool{KeyFixtures: false}}

	got, err := c.Confirm(KeyDeploy, "", false)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = c.Confirm(KeyFixtures, "", true)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAssumeYesConfirmer(t *testing.T) {
	c := AssumeYesConfirmer()

	for key, want := range map[string]bool{
		KeyDeploy:       true,
		KeyOverwrite:    true,
		KeyDumpDB:       true,
		KeyFixtures:     true,
		KeyRecreateVenv: false,
		KeySuperuser:    false,
	} {
		got, err := c.Confirm(key, "", false)
		require.NoError(t, err)
		assert.Equal(t, want, got, "key %s", key)
	}
}
