package office

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationPath = "../../../../migrations/001_init.sql"

var columnLine = regexp.MustCompile(`^\s*([a-z_]+)\s+[A-Z]`)

// tableColumns колонки таблицы из CREATE TABLE в миграции
func tableColumns(t *testing.T, table string) map[string]bool {
	t.Helper()

	content, err := os.ReadFile(migrationPath)
	require.NoError(t, err)

	header := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(string(content), header)
	require.NotEqual(t, -1, start, "table %s is not declared in migration", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(string(content)[start+len(header):], "\n") {
		if strings.HasPrefix(line, ");") {
			break
		}
		if m := columnLine.FindStringSubmatch(line); m != nil {
			columns[m[1]] = true
		}
	}
	return columns
}

func TestMigration_DeclaresOfficeColumns(t *testing.T) {
	columns := tableColumns(t, tableOffices)

	for _, column := range append(officeColumns, columnDeletedAt) {
		assert.True(t, columns[column], "offices.%s is queried but missing in migration", column)
	}
}
