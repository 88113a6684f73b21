package sqlite

import "fmt"

// migration is one schema upgrade step. Applying migrations[i] moves the
// database from version i to version i+1.
type migration struct {
	name string
	sql  string
}

// migrations is append-only: never edit or reorder a released step.
var migrations = []migration{
	{
		name: "index associations by tag name",
		sql:  `CREATE INDEX IF NOT EXISTS idx_bookmark_tag_tag_name ON bookmark_tag (tag_name);`,
	},
}

// LatestVersion is the schema version a fully migrated database reports.
func LatestVersion() int {
	return len(migrations)
}

// pendingMigrations returns the steps still to apply to a database at
// version from, in order. A version newer than this build knows about is
// rejected rather than silently ignored.
func pendingMigrations(from int) ([]migration, error) {
	if from < 0 {
		return nil, fmt.Errorf("negative version %d", from)
	}
	if from > len(migrations) {
		return nil, fmt.Errorf("version %d is newer than the latest known version %d", from, len(migrations))
	}
	return migrations[from:], nil
}
