package adjust

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/surf-session-bot/internal/domain"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "ajustes_spots.json"))
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := tempStore(t)
	adj, err := s.Get("miramar", "general")
	require.NoError(t, err)
	assert.True(t, adj.IsZero())
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ajustes_spots.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := NewFileStore(path)
	adj, err := s.Get("miramar", "general")
	require.NoError(t, err)
	assert.True(t, adj.IsZero())

	// A write after corruption starts from an empty store.
	require.NoError(t, s.Set("miramar", "general", domain.ParamHeightDelta, 0.2))
	adj, err = s.Get("miramar", "general")
	require.NoError(t, err)
	require.NotNil(t, adj.HeightDelta)
	assert.Equal(t, 0.2, *adj.HeightDelta)
}

func TestFileStore_SetOneParameterAtATime(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("miramar", "general", domain.ParamHeightDelta, 0.2))
	adj, err := s.Get("miramar", "general")
	require.NoError(t, err)
	require.NotNil(t, adj.HeightDelta)
	assert.Equal(t, 0.2, *adj.HeightDelta)
	assert.Nil(t, adj.PeriodFactor)

	// Second parameter lands without clobbering the first.
	require.NoError(t, s.Set("miramar", "general", domain.ParamPeriodFactor, 1.1))
	adj, err = s.Get("miramar", "general")
	require.NoError(t, err)
	require.NotNil(t, adj.HeightDelta)
	require.NotNil(t, adj.PeriodFactor)
	assert.Equal(t, 0.2, *adj.HeightDelta)
	assert.Equal(t, 1.1, *adj.PeriodFactor)
}

func TestFileStore_EntriesAreIndependent(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("miramar", "general", domain.ParamHeightDelta, 0.2))
	require.NoError(t, s.Set("necochea", "escollera", domain.ParamHeightDelta, -0.1))

	adj, err := s.Get("miramar", "general")
	require.NoError(t, err)
	assert.Equal(t, 0.2, *adj.HeightDelta)

	adj, err = s.Get("necochea", "escollera")
	require.NoError(t, err)
	assert.Equal(t, -0.1, *adj.HeightDelta)
}

func TestFileStore_RejectsUnknownParameter(t *testing.T) {
	s := tempStore(t)
	err := s.Set("miramar", "general", "factor_viento", 2.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown adjustment parameter")
}

func TestFileStore_FileFormatIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ajustes_spots.json")
	s := NewFileStore(path)
	require.NoError(t, s.Set("miramar", "general", domain.ParamHeightDelta, 0.2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"miramar/general":{"delta_altura":0.2}}`, string(data))
	// Human-diffable: indented, one key per line, trailing newline.
	assert.Contains(t, string(data), "\n  \"miramar/general\"")
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestKey(t *testing.T) {
	assert.Equal(t, "miramar/general", Key("miramar", "general"))
}
