package contestmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Migration IDs are derived from file names; discovery must run before
	// any MustRegister call in this package.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
