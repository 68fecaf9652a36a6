package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileRecord_MapsAreNonNil(t *testing.T) {
	rec := NewProfileRecord("/in/alice")

	assert.Equal(t, "/in/alice", rec.Target)
	assert.NotNil(t, rec.Socials)
	assert.NotNil(t, rec.Experience)
	assert.NotNil(t, rec.Education)
	assert.NotNil(t, rec.Certifications)
	assert.NotNil(t, rec.Projects)
	assert.Empty(t, rec.Errors)
}

func TestProfileRecord_EmptyMapsSerializeAsBraces(t *testing.T) {
	rec := NewProfileRecord("/in/alice")

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"socials":{}`)
	assert.Contains(t, string(data), `"experience":{}`)
	assert.NotContains(t, string(data), "null")
}

func TestSectionResult_Constructors(t *testing.T) {
	p := Present("ML Engineer")
	assert.True(t, p.IsPresent())
	assert.False(t, p.IsFailed())
	assert.Equal(t, "ML Engineer", p.Value)

	a := Absent[string]()
	assert.Equal(t, SectionAbsent, a.Status)
	assert.False(t, a.IsPresent())
	assert.False(t, a.IsFailed())

	f := Failed[map[string]string]("selector blew up")
	assert.True(t, f.IsFailed())
	assert.Equal(t, "selector blew up", f.Reason)
}
