package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SubmissionTableSchema = `
	CREATE TABLE IF NOT EXISTS report_submissions (
		request_id VARCHAR NOT NULL,
		report_type VARCHAR NOT NULL,
		reporting_year INTEGER NOT NULL,
		client_name VARCHAR NOT NULL,
		submitted_at TIMESTAMP NOT NULL,
		report_id VARCHAR NOT NULL,
		download_url VARCHAR,
		generated_at TIMESTAMP,
		PRIMARY KEY (request_id)
	);
`

var bootQueries = []string{
	SubmissionTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
