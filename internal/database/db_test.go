package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "unimatch-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func sampleUniversities() []university.University {
	return []university.University{
		{
			ID: "seoul-001", Name: "서울대학교", Region: "서울특별시", Type: "일반대학", EstType: "국립",
			Departments: []university.Department{
				{ID: "snu-cs", DepartmentName: "컴퓨터공학부", AdmissionType: university.AdmissionComprehensive,
					MinGrade: university.Float64(1.0), MaxGrade: university.Float64(1.5)},
				{ID: "snu-med", DepartmentName: "의예과", AdmissionType: university.AdmissionComprehensive,
					MinGrade: university.Float64(1.0), MaxGrade: university.Float64(1.0)},
			},
		},
		{
			ID: "seoul-002", Name: "연세대학교", Region: "서울특별시", Type: "일반대학", EstType: "사립",
			Departments: []university.Department{
				{ID: "yonsei-econ", DepartmentName: "경제학부", AdmissionType: university.AdmissionSubject,
					MinGrade: university.Float64(1.5), MaxGrade: university.Float64(2.5)},
				{ID: "yonsei-new", DepartmentName: "신설학과"},
			},
		},
		{
			ID: "busan-001", Name: "부산대학교", Region: "부산광역시", Type: "일반대학", EstType: "국립",
			Departments: []university.Department{
				{ID: "pnu-cse", DepartmentName: "정보컴퓨터공학부",
					MinGrade: university.Float64(2.0), MaxGrade: university.Float64(3.0)},
			},
		},
	}
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("expected non-nil database")
	}

	for _, table := range []string{"universities", "departments", "imports"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "reopen.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	u := sampleUniversities()[0]
	if err := db.UpsertUniversity(ctx, &u); err != nil {
		t.Fatalf("UpsertUniversity failed: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	fetched, err := db.GetUniversity(ctx, u.ID)
	if err != nil || fetched == nil {
		t.Fatalf("expected university after reopen, got %v, %v", fetched, err)
	}
}

func TestUniversityCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Create without an ID
	u := &university.University{
		Name:   "아주대학교",
		Region: "경기도",
		Departments: []university.Department{
			{ID: "ajou-sw", DepartmentName: "소프트웨어학과", MinGrade: university.Float64(2.0), MaxGrade: university.Float64(3.5)},
		},
	}
	if err := db.UpsertUniversity(ctx, u); err != nil {
		t.Fatalf("UpsertUniversity failed: %v", err)
	}
	if u.ID == "" {
		t.Error("expected ID to be set after upsert")
	}

	// Read
	fetched, err := db.GetUniversity(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUniversity failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected university to be found")
	}
	if fetched.Name != "아주대학교" {
		t.Errorf("expected Name=아주대학교, got %s", fetched.Name)
	}
	if len(fetched.Departments) != 1 || fetched.Departments[0].UniversityName != "아주대학교" {
		t.Errorf("expected normalized department, got %+v", fetched.Departments)
	}
	if *fetched.Departments[0].MaxGrade != 3.5 {
		t.Errorf("expected MaxGrade=3.5, got %v", *fetched.Departments[0].MaxGrade)
	}

	// Update
	u.Region = "경기도 수원시"
	if err := db.UpsertUniversity(ctx, u); err != nil {
		t.Fatalf("second UpsertUniversity failed: %v", err)
	}
	fetched, _ = db.GetUniversity(ctx, u.ID)
	if fetched.Region != "경기도 수원시" {
		t.Errorf("expected updated region, got %s", fetched.Region)
	}

	// Delete
	if err := db.DeleteUniversity(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUniversity failed: %v", err)
	}
	fetched, err = db.GetUniversity(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUniversity failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected university to be deleted")
	}

	var deptCount int
	db.QueryRow("SELECT COUNT(*) FROM departments WHERE university_id = ?", u.ID).Scan(&deptCount)
	if deptCount != 0 {
		t.Errorf("expected departments to cascade, got %d", deptCount)
	}

	if err := db.DeleteUniversity(ctx, u.ID); err == nil {
		t.Error("expected error deleting missing university")
	}
}

func TestUpsertRequiresName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.UpsertUniversity(context.Background(), &university.University{ID: "x"}); err == nil {
		t.Error("expected error for nameless university")
	}
}

func TestGetUniversityByName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.LoadUniversities(ctx, "test", sampleUniversities()); err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}

	found, err := db.GetUniversityByName(ctx, " 연세대학교 ")
	if err != nil {
		t.Fatalf("GetUniversityByName failed: %v", err)
	}
	if found == nil || found.ID != "seoul-002" {
		t.Errorf("expected seoul-002, got %+v", found)
	}

	missing, err := db.GetUniversityByName(ctx, "없는대학교")
	if err != nil {
		t.Fatalf("GetUniversityByName failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestListUniversities(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.LoadUniversities(ctx, "test", sampleUniversities()); err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}

	seoul := "서울"
	national := "국립"

	tests := []struct {
		name string
		opts ListOptions
		want int
	}{
		{"all", ListOptions{}, 3},
		{"region substring", ListOptions{Region: &seoul}, 2},
		{"est type", ListOptions{EstType: &national}, 2},
		{"region and est type", ListOptions{Region: &seoul, EstType: &national}, 1},
		{"limit", ListOptions{Limit: 2}, 2},
		{"offset", ListOptions{Limit: 2, Offset: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListUniversities(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListUniversities failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d universities, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFetchAllUniversitiesEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := db.FetchAllUniversities(context.Background())
	if err != nil {
		t.Fatalf("FetchAllUniversities failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestSearchUniversities(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.LoadUniversities(ctx, "test", sampleUniversities()); err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}

	// Matches a department name in two universities
	results, err := db.SearchUniversities(ctx, "컴퓨터")
	if err != nil {
		t.Fatalf("SearchUniversities failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}

	// Matches a university name
	results, _ = db.SearchUniversities(ctx, "연세")
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	imp, err := db.LoadUniversities(ctx, "fixture.json", sampleUniversities())
	if err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}
	if imp.Universities != 3 || imp.Departments != 5 {
		t.Errorf("unexpected import counts: %+v", imp)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.Universities != 3 {
		t.Errorf("expected 3 universities, got %d", stats.Universities)
	}
	if stats.Departments != 5 {
		t.Errorf("expected 5 departments, got %d", stats.Departments)
	}
	if stats.Malformed != 1 {
		t.Errorf("expected 1 malformed department, got %d", stats.Malformed)
	}
	if stats.ByRegion["서울특별시"] != 2 {
		t.Errorf("expected 2 in 서울특별시, got %d", stats.ByRegion["서울특별시"])
	}
	if stats.ByAdmission["comprehensive"] != 2 {
		t.Errorf("expected 2 comprehensive, got %d", stats.ByAdmission["comprehensive"])
	}
	if stats.MinGrade == nil || *stats.MinGrade != 1.0 {
		t.Errorf("expected MinGrade=1.0, got %v", stats.MinGrade)
	}
	if stats.MaxGrade == nil || *stats.MaxGrade != 3.0 {
		t.Errorf("expected MaxGrade=3.0, got %v", stats.MaxGrade)
	}
	if stats.LastImport == nil || stats.LastImport.Source != "fixture.json" {
		t.Errorf("expected last import from fixture.json, got %+v", stats.LastImport)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Universities != 0 || stats.Departments != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
	if stats.MinGrade != nil || stats.LastImport != nil {
		t.Errorf("expected nil aggregates, got %+v", stats)
	}
}

func TestLoadRejectsDuplicateDepartmentIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	universities := []university.University{
		{ID: "dup-001", Name: "중복대학교", Departments: []university.Department{
			{ID: "same", DepartmentName: "국문학과", MinGrade: university.Float64(2), MaxGrade: university.Float64(3)},
			{ID: "same", DepartmentName: "영문학과", MinGrade: university.Float64(2), MaxGrade: university.Float64(4)},
		}},
	}

	if _, err := db.LoadUniversities(ctx, "dup.json", universities); err == nil {
		t.Fatal("expected error for duplicate department id")
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Universities != 0 || stats.Departments != 0 || stats.LastImport != nil {
		t.Errorf("expected failed load to be rolled back, got %+v", stats)
	}
}

func TestImportCountsMatchStoredRows(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	imp, err := db.LoadUniversities(ctx, "test", sampleUniversities())
	if err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM departments").Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != imp.Departments {
		t.Errorf("import reports %d departments, %d stored", imp.Departments, rows)
	}
}

func TestSchemaVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations failed: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}

	v, err := db.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if want := migrations[len(migrations)-1].Version; v != want {
		t.Errorf("expected schema version %d, got %d", want, v)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.LoadUniversities(ctx, "test", sampleUniversities()); err != nil {
		t.Fatalf("LoadUniversities failed: %v", err)
	}
	if err := db.migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	got, err := db.FetchAllUniversities(ctx)
	if err != nil {
		t.Fatalf("FetchAllUniversities failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected data to survive migrate, got %d universities", len(got))
	}
}

func TestTransactionRollsBack(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO imports (id, source, imported_at) VALUES ('x', 'test', CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM imports").Scan(&n)
	if n != 0 {
		t.Errorf("expected rollback, found %d imports", n)
	}
}
