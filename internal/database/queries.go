package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// UpsertUniversity inserts or replaces a university document
func (db *DB) UpsertUniversity(ctx context.Context, u *university.University) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := upsertTx(ctx, tx, u, time.Now())
		return err
	})
}

// LoadUniversities upserts a batch of documents in one transaction and records the import
func (db *DB) LoadUniversities(ctx context.Context, source string, universities []university.University) (*Import, error) {
	imp := &Import{
		ID:         uuid.New().String(),
		Source:     source,
		ImportedAt: time.Now(),
	}

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for i := range universities {
			n, err := upsertTx(ctx, tx, &universities[i], imp.ImportedAt)
			if err != nil {
				return fmt.Errorf("university %q: %w", universities[i].Name, err)
			}
			imp.Universities++
			imp.Departments += n
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO imports (id, source, universities, departments, imported_at)
			VALUES (?, ?, ?, ?, ?)
		`, imp.ID, imp.Source, imp.Universities, imp.Departments, imp.ImportedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// upsertTx writes one document and mirrors its departments, returning the department count
func upsertTx(ctx context.Context, tx *sql.Tx, u *university.University, now time.Time) (int, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Name == "" {
		return 0, fmt.Errorf("university %s has no name", u.ID)
	}
	u.Normalize()

	doc, err := json.Marshal(u)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO universities (id, name, region, type, est_type, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, region = excluded.region, type = excluded.type,
			est_type = excluded.est_type, document = excluded.document, updated_at = excluded.updated_at
	`, u.ID, u.Name, u.Region, u.Type, u.EstType, string(doc), now, now)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM departments WHERE university_id = ?`, u.ID); err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(u.Departments))
	for i, d := range u.Departments {
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", u.ID, i)
		}
		if seen[id] {
			return 0, fmt.Errorf("university %s: duplicate department id %q", u.ID, id)
		}
		seen[id] = true

		_, err := tx.ExecContext(ctx, `
			INSERT INTO departments (university_id, id, department_name, admission_type, min_grade, max_grade)
			VALUES (?, ?, ?, ?, ?, ?)
		`, u.ID, id, d.DepartmentName, NullString(string(d.AdmissionType)),
			NullFloat64(d.MinGrade), NullFloat64(d.MaxGrade))
		if err != nil {
			return 0, err
		}
	}

	return len(u.Departments), nil
}

// GetUniversity retrieves a university by ID
func (db *DB) GetUniversity(ctx context.Context, id string) (*university.University, error) {
	var doc string
	err := db.QueryRowContext(ctx, `SELECT document FROM universities WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(doc)
}

// GetUniversityByName retrieves a university by exact name, ignoring surrounding whitespace
func (db *DB) GetUniversityByName(ctx context.Context, name string) (*university.University, error) {
	var doc string
	err := db.QueryRowContext(ctx, `
		SELECT document FROM universities WHERE name = TRIM(?)
		ORDER BY updated_at DESC LIMIT 1
	`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(doc)
}

// ListUniversities retrieves universities with optional filters, ordered by name
func (db *DB) ListUniversities(ctx context.Context, opts ListOptions) ([]university.University, error) {
	query := `SELECT document FROM universities WHERE 1=1`
	args := []interface{}{}

	if opts.Region != nil {
		query += " AND region LIKE ?"
		args = append(args, "%"+*opts.Region+"%")
	}
	if opts.Type != nil {
		query += " AND type = ?"
		args = append(args, *opts.Type)
	}
	if opts.EstType != nil {
		query += " AND est_type = ?"
		args = append(args, *opts.EstType)
	}
	if opts.Name != nil {
		query += " AND LOWER(name) LIKE LOWER(?)"
		args = append(args, "%"+*opts.Name+"%")
	}

	query += " ORDER BY name, id"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	return db.queryDocuments(ctx, query, args...)
}

// FetchAllUniversities returns every stored document
func (db *DB) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	return db.ListUniversities(ctx, ListOptions{})
}

// SearchUniversities finds universities whose name or any department name contains query
func (db *DB) SearchUniversities(ctx context.Context, query string) ([]university.University, error) {
	pattern := "%" + query + "%"
	return db.queryDocuments(ctx, `
		SELECT document FROM universities u
		WHERE LOWER(u.name) LIKE LOWER(?)
		   OR EXISTS (
			SELECT 1 FROM departments d
			WHERE d.university_id = u.id AND LOWER(d.department_name) LIKE LOWER(?)
		   )
		ORDER BY u.name, u.id
	`, pattern, pattern)
}

// DeleteUniversity removes a university and its departments
func (db *DB) DeleteUniversity(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM universities WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("university not found: %s", id)
	}
	return nil
}

// GetStats returns aggregate statistics over the stored dataset
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByRegion:    map[string]int{},
		ByEstType:   map[string]int{},
		ByAdmission: map[string]int{},
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM universities`).Scan(&stats.Universities); err != nil {
		return nil, err
	}

	var minGrade, maxGrade, avgMin sql.NullFloat64
	if err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN min_grade IS NULL OR max_grade IS NULL THEN 1 ELSE 0 END), 0),
			MIN(min_grade), MAX(max_grade), AVG(min_grade)
		FROM departments
	`).Scan(&stats.Departments, &stats.Malformed, &minGrade, &maxGrade, &avgMin); err != nil {
		return nil, err
	}
	stats.MinGrade = Float64Ptr(minGrade)
	stats.MaxGrade = Float64Ptr(maxGrade)
	stats.AvgMinGrade = Float64Ptr(avgMin)

	if err := db.countInto(ctx, stats.ByRegion, `
		SELECT region, COUNT(*) FROM universities WHERE region != '' GROUP BY region
	`); err != nil {
		return nil, err
	}
	if err := db.countInto(ctx, stats.ByEstType, `
		SELECT est_type, COUNT(*) FROM universities WHERE est_type != '' GROUP BY est_type
	`); err != nil {
		return nil, err
	}
	if err := db.countInto(ctx, stats.ByAdmission, `
		SELECT admission_type, COUNT(*) FROM departments WHERE admission_type IS NOT NULL GROUP BY admission_type
	`); err != nil {
		return nil, err
	}

	last, err := db.LastImport(ctx)
	if err != nil {
		return nil, err
	}
	stats.LastImport = last

	return stats, nil
}

// LastImport returns the most recent bulk load, or nil
func (db *DB) LastImport(ctx context.Context) (*Import, error) {
	imp := &Import{}
	err := db.QueryRowContext(ctx, `
		SELECT id, source, universities, departments, imported_at
		FROM imports ORDER BY imported_at DESC LIMIT 1
	`).Scan(&imp.ID, &imp.Source, &imp.Universities, &imp.Departments, &imp.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return imp, nil
}

func (db *DB) countInto(ctx context.Context, dst map[string]int, query string) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		dst[key] = n
	}
	return rows.Err()
}

func (db *DB) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]university.University, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	universities := []university.University{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		u, err := decodeDocument(doc)
		if err != nil {
			return nil, err
		}
		universities = append(universities, *u)
	}
	return universities, rows.Err()
}

func decodeDocument(doc string) (*university.University, error) {
	u := &university.University{}
	if err := json.Unmarshal([]byte(doc), u); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	u.Normalize()
	return u, nil
}
