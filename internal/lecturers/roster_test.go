package lecturers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	roster, err := Parse([]byte(`[
		{"fullname": "Budi Santoso", "nidn": "0401018801"},
		{"fullname": "Siti Rahayu", "nidn": "0402028902"}
	]`))
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Budi Santoso", roster[0].FullName)
	assert.Equal(t, "0401018801", roster[0].NIDN)
}

func TestParseRejectsMissingFields(t *testing.T) {
	_, err := Parse([]byte(`[{"fullname": "No NIDN"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid roster record 0")

	_, err = Parse([]byte(`[{"nidn": "0401018801"}]`))
	require.Error(t, err)
}

func TestParseRejectsEmptyRoster(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster is empty")
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"fullname": "Budi Santoso", "nidn": "0401018801"}]`), 0o600))

	roster, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
