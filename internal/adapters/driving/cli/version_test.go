package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pagelift version dev")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { version = "dev" })

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pagelift version 1.2.3")
}

func TestSetVersion_EmptyKeepsDefault(t *testing.T) {
	SetVersion("")
	assert.Equal(t, "dev", version)
}
