package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsSubmissionTable(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO report_submissions (
			request_id, report_type, reporting_year, client_name,
			submitted_at, report_id, download_url, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"REQ-1-aaaaaaaa", "P&L", 2025, "Acme Corporation",
		time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		"RPT-1", "https://documents.invalid/reports/RPT-1.docx",
		time.Date(2025, 3, 14, 9, 26, 55, 0, time.UTC),
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM report_submissions WHERE request_id = ?", "REQ-1-aaaaaaaa").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_DuplicateRequestIDRejected(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	insert := `INSERT INTO report_submissions (
		request_id, report_type, reporting_year, client_name,
		submitted_at, report_id, download_url, generated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err = db.Exec(insert, "REQ-dup", "CashFlow", 2024, "Globex", now, "RPT-1", nil, nil)
	require.NoError(t, err)

	_, err = db.Exec(insert, "REQ-dup", "CashFlow", 2024, "Globex", now, "RPT-2", nil, nil)
	assert.Error(t, err)
}
