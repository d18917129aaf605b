package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	cmis "github.com/goliatone/go-cmis"
	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
)

type recordingRegistrar struct {
	trees []fs.FS
}

func (r *recordingRegistrar) RegisterSQLMigrations(migrations ...fs.FS) *persistence.Migrations {
	r.trees = append(r.trees, migrations...)
	return nil
}

func TestSchemas_ReturnsPostgresAndSQLite(t *testing.T) {
	schemas, err := Schemas(nil)
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}
	for _, schema := range schemas {
		up := "00001_" + ProfileTable + ".up.sql"
		if _, err := fs.Stat(schema.FS, up); err != nil {
			t.Fatalf("expected %s in %s tree: %v", up, schema.Dialect, err)
		}
	}
	if schemas[0].Dialect != DialectPostgres || schemas[1].Dialect != DialectSQLite {
		t.Fatalf("unexpected dialect order: %s, %s", schemas[0].Dialect, schemas[1].Dialect)
	}
}

func TestSchemas_RejectsTreeWithoutProfilePair(t *testing.T) {
	tree := fstest.MapFS{
		"data/sql/migrations/00001_other.up.sql":          &fstest.MapFile{Data: []byte("SELECT 1;")},
		"data/sql/migrations/00001_other.down.sql":        &fstest.MapFile{Data: []byte("SELECT 1;")},
		"data/sql/migrations/sqlite/00001_other.up.sql":   &fstest.MapFile{Data: []byte("SELECT 1;")},
		"data/sql/migrations/sqlite/00001_other.down.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	_, err := Schemas(tree)
	if err == nil || !strings.Contains(err.Error(), ProfileTable) {
		t.Fatalf("expected missing profile pair error, got %v", err)
	}
}

func TestSchemas_RejectsUpWithoutDown(t *testing.T) {
	tree := fstest.MapFS{
		"data/sql/migrations/00001_cmis_connection_profiles.up.sql":          &fstest.MapFile{Data: []byte("SELECT 1;")},
		"data/sql/migrations/sqlite/00001_cmis_connection_profiles.up.sql":   &fstest.MapFile{Data: []byte("SELECT 1;")},
		"data/sql/migrations/sqlite/00001_cmis_connection_profiles.down.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	_, err := Schemas(tree)
	if err == nil || !strings.Contains(err.Error(), "no down file") {
		t.Fatalf("expected missing down file error, got %v", err)
	}
}

func TestNormalizeDialect(t *testing.T) {
	for raw, want := range map[string]string{
		"postgres":   DialectPostgres,
		" PG ":       DialectPostgres,
		"postgresql": DialectPostgres,
		"sqlite3":    DialectSQLite,
		"SQLite":     DialectSQLite,
	} {
		got, err := NormalizeDialect(raw)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %q (%v)", raw, want, got, err)
		}
	}
	if _, err := NormalizeDialect("mysql"); err == nil {
		t.Fatalf("expected unsupported dialect error")
	}
}

func TestRegister_HandsDialectTreeToRegistrar(t *testing.T) {
	registrar := &recordingRegistrar{}
	schema, err := Register(registrar, "sqlite3")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if schema.Dialect != DialectSQLite {
		t.Fatalf("expected sqlite schema, got %s", schema.Dialect)
	}
	if len(registrar.trees) != 1 {
		t.Fatalf("expected one registered tree, got %d", len(registrar.trees))
	}
	if _, err := fs.Stat(registrar.trees[0], "00001_"+ProfileTable+".down.sql"); err != nil {
		t.Fatalf("expected sqlite profile migrations in registered tree: %v", err)
	}

	if _, err := Register(nil, DialectSQLite); err == nil {
		t.Fatalf("expected registrar to be required")
	}
	if _, err := Register(registrar, "mysql"); err == nil {
		t.Fatalf("expected unsupported dialect to fail")
	}
}

func TestProfileMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := cmis.GetMigrationsFS()
	paths := []string{
		"data/sql/migrations/00001_cmis_connection_profiles.up.sql",
		"data/sql/migrations/00001_cmis_connection_profiles.down.sql",
		"data/sql/migrations/sqlite/00001_cmis_connection_profiles.up.sql",
		"data/sql/migrations/sqlite/00001_cmis_connection_profiles.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}

func TestSQLiteProfileMigration_ApplyAndRollback(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrations-profiles?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	sqliteMigrations, err := fs.Sub(cmis.GetMigrationsFS(), "data/sql/migrations/sqlite")
	if err != nil {
		t.Fatalf("resolve sqlite migrations: %v", err)
	}
	ctx := context.Background()

	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_cmis_connection_profiles.up.sql"); err != nil {
		t.Fatalf("apply up: %v", err)
	}
	insert := `INSERT INTO cmis_connection_profiles (id, name, parameters) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, insert, "p1", "dev", "{}"); err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	if _, err := db.ExecContext(ctx, insert, "p2", "dev", "{}"); err == nil {
		t.Fatalf("expected unique profile name violation")
	}

	if err := execSQLMigration(ctx, db, sqliteMigrations, "00001_cmis_connection_profiles.down.sql"); err != nil {
		t.Fatalf("apply down: %v", err)
	}
	var count int
	if err := db.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		"cmis_connection_profiles",
	).Scan(&count); err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected profile table to be dropped")
	}
}

func execSQLMigration(ctx context.Context, db *sql.DB, fsys fs.FS, filename string) error {
	content, err := fs.ReadFile(fsys, filepath.Clean(filename))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(content))
	return err
}
