package dictionary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteMigrations(t *testing.T) {
	s, _ := openTestStore(t)

	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	// Re-running is a no-op.
	require.NoError(t, MigrateDB(s.db))
	v, err = s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestSQLiteReplaceAndLoad(t *testing.T) {
	s, path := openTestStore(t)

	empty, err := s.Load()
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	require.NoError(t, s.Replace(Builtin(), "builtin"))
	idx, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Builtin().WordList(), idx.WordList())
	assert.Equal(t, Builtin().Bucket("ব"), idx.Bucket("ব"), "bucket order survives")

	small, err := NewIndex(WordList{"ক": {"কথা"}})
	require.NoError(t, err)
	require.NoError(t, s.Replace(small, "test.json"))

	idx, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	imports, err := s.Imports()
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, "test.json", imports[0].Source)
	assert.Equal(t, 1, imports[0].WordCount)
	assert.Equal(t, "builtin", imports[1].Source)
	assert.Equal(t, Digest(small), imports[0].Digest)
	assert.Equal(t, Digest(Builtin()), imports[1].Digest)

	require.NoError(t, s.Close())
	res := LoadOrBuiltin(path)
	require.False(t, res.Fallback(), "%v", res.Err)
	assert.Equal(t, SourceSQLite, res.Source)
	assert.Equal(t, []string{"কথা"}, res.Index.Bucket("ক"))
}

func TestDigest(t *testing.T) {
	a, err := NewIndex(WordList{"ক": {"কথা", "কলম"}})
	require.NoError(t, err)
	b, err := NewIndex(WordList{"ক": {"কলম", "কথা"}})
	require.NoError(t, err)

	assert.Len(t, Digest(a), 64)
	again, err := NewIndex(a.WordList())
	require.NoError(t, err)
	assert.Equal(t, Digest(a), Digest(again))
	assert.NotEqual(t, Digest(a), Digest(b), "bucket order is part of the digest")
}
