package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"dev", "wordspace version dev\n"},
		{"v0.3.1", "wordspace version v0.3.1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			setupTestServices(t, false)
			original := version
			SetVersion(tt.version)
			t.Cleanup(func() { version = original })

			out, err := execute(t, "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCmd_NeedsNoServices(t *testing.T) {
	SetServices(Services{})
	t.Cleanup(func() { resetFlags(rootCmd) })

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "wordspace version")
}
