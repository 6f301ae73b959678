package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skill-vault/internal/config"
	"skill-vault/internal/database"
	"skill-vault/internal/database/migration"
	dbpostgres "skill-vault/internal/database/postgres"
	"skill-vault/internal/domain/skill"
	"skill-vault/internal/repository"

	"github.com/google/uuid"
)

// End-to-end check of the storage invariants against a real Postgres:
// transactional create, cascade delete with its subskill count, prune
// retain/remove, dictionary upsert idempotence and the any-of tag
// filter. Values carry a per-run suffix so reruns on a shared test
// database do not collide.
func TestIntegration_SkillCatalogPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	suffix := uuid.NewString()[:8]
	defer cleanupCatalog(ctx, db, suffix)

	dict := repository.NewPostgresDictionaryRepository(db)
	queries := repository.NewPostgresSkillQueryRepository()
	skills := repository.NewPostgresSkillRepository(db, dict, queries)
	maint := repository.NewPostgresMaintenanceRepository(db)

	// Dictionary upsert idempotence: resolving the same value twice
	// yields the same id and exactly one row.
	goName := "Go-" + suffix
	id1, err := dict.ResolveName(ctx, db, goName)
	if err != nil {
		t.Fatalf("resolve name: %v", err)
	}
	id2, err := dict.ResolveName(ctx, db, goName)
	if err != nil {
		t.Fatalf("resolve name again: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("resolve name: expected stable id, got %d then %d", id1, id2)
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM names WHERE name = $1`, goName); n != 1 {
		t.Fatalf("resolve name: expected 1 dictionary row, got %d", n)
	}

	// Create atomicity: a subskill failure mid-transaction leaves no
	// trace of the parent, not even its dictionary row.
	atomicName := "Atomic-" + suffix
	_, err = skills.Create(ctx, skill.Input{
		Name:        strPtr(atomicName),
		Proficiency: intPtr(80),
		Subskills:   &[]skill.Input{{Proficiency: intPtr(50)}},
	})
	if err == nil {
		t.Fatalf("create: expected failure on nameless subskill")
	}
	if n := countRows(t, ctx, db,
		`SELECT COUNT(*) FROM skills s JOIN names n ON n.id = s.name_id WHERE n.name = $1`, atomicName); n != 0 {
		t.Fatalf("create atomicity: expected 0 skill rows after rollback, got %d", n)
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM names WHERE name = $1`, atomicName); n != 0 {
		t.Fatalf("create atomicity: expected dictionary row rolled back, got %d", n)
	}

	// Seed two top-level skills for the filter and cascade checks.
	backendTag := "backend-" + suffix
	cloudTag := "cloud-" + suffix

	platform, err := skills.Create(ctx, skill.Input{
		Name:        strPtr("Platform-" + suffix),
		Proficiency: intPtr(90),
		Tags:        &[]string{backendTag, cloudTag},
		Subskills: &[]skill.Input{
			{Name: strPtr("Kubernetes-" + suffix), Proficiency: intPtr(70)},
			{Name: strPtr("Terraform-" + suffix), Proficiency: intPtr(60)},
		},
	})
	if err != nil {
		t.Fatalf("create platform: %v", err)
	}
	if len(platform.Subskills) != 2 {
		t.Fatalf("create platform: expected 2 subskills, got %d", len(platform.Subskills))
	}

	data, err := skills.Create(ctx, skill.Input{
		Name:        strPtr("Data-" + suffix),
		Proficiency: intPtr(40),
		Tags:        &[]string{cloudTag},
	})
	if err != nil {
		t.Fatalf("create data: %v", err)
	}

	// Tag filter is any-of, and a skill matching several of the
	// requested tags still counts once.
	union := skill.ListFilter{Tags: []string{backendTag, cloudTag}}
	if n, err := queries.Count(ctx, db, union); err != nil || n != 2 {
		t.Fatalf("tag union count: expected 2, got %d (err=%v)", n, err)
	}
	items, err := queries.List(ctx, db, union, 10, 0)
	if err != nil {
		t.Fatalf("tag union list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("tag union list: expected 2 skills, got %d", len(items))
	}
	if items[0].ID != platform.ID || items[1].ID != data.ID {
		t.Fatalf("tag union list: expected ids [%d %d], got [%d %d]",
			platform.ID, data.ID, items[0].ID, items[1].ID)
	}
	if n, err := queries.Count(ctx, db, skill.ListFilter{Tags: []string{backendTag}}); err != nil || n != 1 {
		t.Fatalf("single tag count: expected 1, got %d (err=%v)", n, err)
	}

	// Cascade delete reports the subskill count and removes the tree.
	deleted, err := skills.Delete(ctx, platform.ID)
	if err != nil {
		t.Fatalf("delete platform: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("delete platform: expected 2 cascade-deleted subskills, got %d", deleted)
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM skills WHERE parent_id = $1`, platform.ID); n != 0 {
		t.Fatalf("delete platform: expected 0 child rows, got %d", n)
	}
	if _, err := queries.GetByID(ctx, db, platform.ID); !errors.Is(err, repository.ErrSkillNotFound) {
		t.Fatalf("delete platform: expected ErrSkillNotFound, got %v", err)
	}

	// Prune removes what the delete orphaned and keeps what the
	// surviving skill still references.
	res, err := maint.Prune(ctx)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	for _, want := range []string{"Platform-" + suffix, "Kubernetes-" + suffix, "Terraform-" + suffix} {
		if !containsEntry(res.Names, want) {
			t.Fatalf("prune: expected orphaned name %q removed", want)
		}
	}
	if !containsEntry(res.Tags, backendTag) {
		t.Fatalf("prune: expected orphaned tag %q removed", backendTag)
	}
	if containsEntry(res.Tags, cloudTag) {
		t.Fatalf("prune: tag %q is still referenced and must be retained", cloudTag)
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM names WHERE name = $1`, "Data-"+suffix); n != 1 {
		t.Fatalf("prune: expected referenced name retained")
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM tags WHERE tag = $1`, cloudTag); n != 1 {
		t.Fatalf("prune: expected referenced tag retained")
	}
	if n := countRows(t, ctx, db, `SELECT COUNT(*) FROM names WHERE name = $1`, "Platform-"+suffix); n != 0 {
		t.Fatalf("prune: expected orphaned name gone from dictionary")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLVAULT_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLVAULT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/catalog_postgres_test.go
	// module root: ../../
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

// cleanupCatalog removes every row carrying this run's suffix. Skills
// go first so the tag associations cascade before the tag rows.
func cleanupCatalog(ctx context.Context, db database.DB, suffix string) {
	_, _ = db.Exec(ctx,
		`DELETE FROM skills WHERE name_id IN (SELECT id FROM names WHERE name LIKE '%-' || $1)`, suffix)
	_, _ = db.Exec(ctx, `DELETE FROM names WHERE name LIKE '%-' || $1`, suffix)
	_, _ = db.Exec(ctx, `DELETE FROM tags WHERE tag LIKE '%-' || $1`, suffix)
}

func countRows(t *testing.T, ctx context.Context, db database.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		t.Fatalf("count query: %v", err)
	}
	return n
}

func containsEntry(entries []repository.DictionaryEntry, value string) bool {
	for _, e := range entries {
		if e.Value == value {
			return true
		}
	}
	return false
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
