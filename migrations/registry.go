package migrations

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	cmis "github.com/goliatone/go-cmis"
	persistence "github.com/goliatone/go-persistence-bun"
)

// ProfileTable is the table owned by the connection profile store.
const ProfileTable = "cmis_connection_profiles"

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const schemaRoot = "data/sql/migrations"

// Schema is one dialect's migration tree.
type Schema struct {
	Dialect string
	FS      fs.FS
}

// SQLRegistrar accepts SQL migration trees. *persistence.Client satisfies it.
type SQLRegistrar interface {
	RegisterSQLMigrations(migrations ...fs.FS) *persistence.Migrations
}

// NormalizeDialect maps driver and dialect spellings onto DialectPostgres or
// DialectSQLite.
func NormalizeDialect(dialect string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql", "pg", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
}

// Schemas returns the validated postgres and sqlite trees found under
// data/sql/migrations in root, or in the embedded schema when root is nil.
func Schemas(root fs.FS) ([]Schema, error) {
	if root == nil {
		root = cmis.GetMigrationsFS()
	}
	base, err := fs.Sub(root, schemaRoot)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve %s: %w", schemaRoot, err)
	}
	sqliteFS, err := fs.Sub(base, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite tree: %w", err)
	}

	schemas := []Schema{
		{Dialect: DialectPostgres, FS: base},
		{Dialect: DialectSQLite, FS: sqliteFS},
	}
	for _, schema := range schemas {
		if err := validateSchema(schema); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

// SchemaFor returns the embedded tree for dialect.
func SchemaFor(dialect string) (Schema, error) {
	normalized, err := NormalizeDialect(dialect)
	if err != nil {
		return Schema{}, err
	}
	schemas, err := Schemas(nil)
	if err != nil {
		return Schema{}, err
	}
	for _, schema := range schemas {
		if schema.Dialect == normalized {
			return schema, nil
		}
	}
	return Schema{}, fmt.Errorf("migrations: no schema for %s", normalized)
}

// Register hands the embedded tree for dialect to registrar, typically the
// go-persistence-bun client that will run Migrate.
func Register(registrar SQLRegistrar, dialect string) (Schema, error) {
	if registrar == nil {
		return Schema{}, fmt.Errorf("migrations: registrar is required")
	}
	schema, err := SchemaFor(dialect)
	if err != nil {
		return Schema{}, err
	}
	registrar.RegisterSQLMigrations(schema.FS)
	return schema, nil
}

// validateSchema requires every up migration to have a down counterpart and
// the profile table pair to be present.
func validateSchema(schema Schema) error {
	ups, err := fs.Glob(schema.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("migrations: glob %s: %w", schema.Dialect, err)
	}
	hasProfiles := false
	for _, up := range ups {
		stem := strings.TrimSuffix(up, ".up.sql")
		if _, err := fs.Stat(schema.FS, stem+".down.sql"); err != nil {
			return fmt.Errorf("migrations: %s migration %s has no down file", schema.Dialect, stem)
		}
		if strings.HasSuffix(path.Base(stem), "_"+ProfileTable) {
			hasProfiles = true
		}
	}
	if !hasProfiles {
		return fmt.Errorf("migrations: %s tree has no %s migration pair", schema.Dialect, ProfileTable)
	}
	return nil
}
