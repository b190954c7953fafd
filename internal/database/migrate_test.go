package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	migration := `
-- leading comment
CREATE TABLE a (
    id INT -- inline comments stay
);

  -- indented comment
CREATE INDEX a_id ON a (id);
;
`
	got := SplitStatements(migration)
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE a (\n    id INT -- inline comments stay\n)", got[0])
	assert.Equal(t, "CREATE INDEX a_id ON a (id)", got[1])
}

func TestSplitStatements_Empty(t *testing.T) {
	assert.Empty(t, SplitStatements(""))
	assert.Empty(t, SplitStatements("-- only a comment\n;\n"))
}

func TestDefaultMigrationEmbedded(t *testing.T) {
	migration, err := ReadEmbedded(DefaultMigration)
	require.NoError(t, err)

	statements := SplitStatements(migration)
	require.Len(t, statements, 2)
	assert.True(t, strings.HasPrefix(statements[0], "CREATE TABLE IF NOT EXISTS session"))
	assert.Contains(t, statements[0], "token_hash CHAR(64)")
	assert.True(t, strings.HasPrefix(statements[1], "CREATE INDEX session_expires"))
}

func TestReadEmbedded_Missing(t *testing.T) {
	_, err := ReadEmbedded("migrations/nope.sql")
	assert.Error(t, err)
}
