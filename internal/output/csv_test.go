package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-harvester/internal/types"
)

func TestWrite_SerializesMappingsAsJSON(t *testing.T) {
	alice := types.NewProfileRecord("/in/alice")
	alice.Name = "Alice"
	alice.Bio = "ML Engineer"
	alice.Experience["Google"] = "ML Engineer"
	alice.Socials["GitHub"] = "alicez"
	alice.Status = types.StatusSuccess

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, types.BatchResult{alice}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"target", "name", "bio", "socials", "experience", "education", "certifications", "projects",
	}, rows[0])
	assert.Equal(t, []string{
		"/in/alice", "Alice", "ML Engineer",
		`{"GitHub":"alicez"}`, `{"Google":"ML Engineer"}`, "{}", "{}", "{}",
	}, rows[1])
}

func TestWrite_FailedRecordHasEmptyMappingsNeverNull(t *testing.T) {
	bob := types.NewProfileRecord("/in/bob")
	bob.Status = types.StatusFailed

	// A nil map must still encode as {}.
	bob.Projects = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, types.BatchResult{bob}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, cell := range rows[1][3:] {
		assert.Equal(t, "{}", cell)
	}
	assert.NotContains(t, buf.String(), "null")
}

func TestWrite_PreservesRecordOrder(t *testing.T) {
	records := types.BatchResult{
		types.NewProfileRecord("/in/c"),
		types.NewProfileRecord("/in/a"),
		types.NewProfileRecord("/in/b"),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "/in/c", rows[1][0])
	assert.Equal(t, "/in/a", rows[2][0])
	assert.Equal(t, "/in/b", rows[3][0])
}

func TestWriteCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, types.BatchResult{types.NewProfileRecord("/in/a")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/in/a")
}
