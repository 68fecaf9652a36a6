package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTargetsFrom_FirstColumnBelowHeader(t *testing.T) {
	csvData := "profile_url,notes\n/in/alice,hiring manager\n/in/bob,\nhttps://www.linkedin.com/in/carol,referral\n"

	targets, err := ReadTargetsFrom(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"/in/alice", "/in/bob", "https://www.linkedin.com/in/carol"}, targets)
}

func TestReadTargetsFrom_SkipsBlankRows(t *testing.T) {
	csvData := "profile_url\n/in/alice\n   \n/in/bob\n"

	targets, err := ReadTargetsFrom(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"/in/alice", "/in/bob"}, targets)
}

func TestReadTargetsFrom_HeaderOnly(t *testing.T) {
	targets, err := ReadTargetsFrom(strings.NewReader("profile_url\n"))
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestReadTargets_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.csv")
	require.NoError(t, os.WriteFile(path, []byte("url\n/in/alice\n"), 0o644))

	targets, err := ReadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/in/alice"}, targets)
}

func TestReadTargets_MissingFile(t *testing.T) {
	_, err := ReadTargets(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
