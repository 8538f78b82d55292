package preflight

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMasscanConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "masscan.conf")
	require.NoError(t, os.WriteFile(file, []byte("rate = 10000\n"), 0o600))

	assert.NoError(t, CheckMasscanConfig(file))

	err := CheckMasscanConfig(filepath.Join(dir, "missing.conf"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	assert.ErrorContains(t, CheckMasscanConfig(dir), "not a regular file")
	assert.ErrorContains(t, CheckMasscanConfig(""), "empty")
}
