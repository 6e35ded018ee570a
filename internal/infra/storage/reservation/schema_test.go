package reservation

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

func TestMigration_DeclaresReservationColumns(t *testing.T) {
	columns := tableColumns(t, "reservations")

	for _, column := range reservationColumns {
		name := strings.TrimPrefix(column, "r.")
		assert.True(t, columns[name], "reservations.%s is selected but missing in migration", name)
	}
	for _, column := range insertColumns {
		assert.True(t, columns[column], "reservations.%s is inserted but missing in migration", column)
	}
}

func TestMigration_DeclaresJoinedOfficeColumns(t *testing.T) {
	columns := tableColumns(t, "offices")

	// host-фильтр: JOIN offices o ON o.id = r.office_id WHERE o.user_id = ?
	assert.True(t, columns["id"])
	assert.True(t, columns["user_id"])
}

func TestMigration_DeclaresOverlapConstraint(t *testing.T) {
	content, err := os.ReadFile(migrationPath)
	require.NoError(t, err)

	assert.Contains(t, string(content), "CONSTRAINT reservations_no_overlap EXCLUDE USING gist")
	assert.Contains(t, string(content), "daterange(start_date, end_date, '[]') WITH &&")
}
