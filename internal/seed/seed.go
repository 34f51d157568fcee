// Package seed loads the development dataset into an empty schema. Records
// are read as loose JSON objects and projected into COPY rows with
// queryutil.FormatObjectToRows.
package seed

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/queryutil"
)

//go:embed data/*.json
var embedded embed.FS

// Table maps a dataset file to the columns copied from each record.
type Table struct {
	Name    string
	File    string
	Columns []string
}

// Tables in insertion order; foreign keys point backwards only.
var Tables = []Table{
	{Name: "topics", File: "topics.json", Columns: []string{"slug", "description"}},
	{Name: "users", File: "users.json", Columns: []string{"username", "name", "avatar_url"}},
	{
		Name:    "articles",
		File:    "articles.json",
		Columns: []string{"title", "topic", "author", "body", "created_at", "votes", "article_img_url"},
	},
	{
		Name:    "comments",
		File:    "comments.json",
		Columns: []string{"body", "article_id", "author", "votes", "created_at"},
	},
}

const truncateSQL = `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`

// Dataset holds the records of each table, keyed by table name.
type Dataset map[string][]map[string]any

// Embedded returns the dataset compiled into the binary.
func Embedded() (Dataset, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}

	return Read(sub)
}

// Read parses one JSON array per table from fsys.
func Read(fsys fs.FS) (Dataset, error) {
	ds := make(Dataset, len(Tables))

	for _, t := range Tables {
		data, err := fs.ReadFile(fsys, t.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", t.File, err)
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		var records []map[string]any
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", t.File, err)
		}

		for i, rec := range records {
			if err := normalize(rec); err != nil {
				return nil, fmt.Errorf("%s record %d: %w", t.File, i, err)
			}
		}

		ds[t.Name] = records
	}

	return ds, nil
}

// normalize converts JSON numbers to int64 and created_at to time.Time so
// the values encode as the column types.
func normalize(rec map[string]any) error {
	for k, v := range rec {
		switch val := v.(type) {
		case json.Number:
			n, ok := queryutil.AsInteger(val)
			if !ok {
				return fmt.Errorf("%s: %s is not an integer", k, val)
			}

			rec[k] = n
		case string:
			if k != "created_at" {
				continue
			}

			ts, err := time.Parse(time.RFC3339, val)
			if err != nil {
				return fmt.Errorf("created_at: %w", err)
			}

			rec[k] = ts
		}
	}

	return nil
}

// Rows projects records into COPY rows in column order.
func Rows(records []map[string]any, columns []string) [][]any {
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, queryutil.FormatObjectToRows(rec, columns)[0])
	}

	return rows
}

// Load empties every table, resets the serial ids and copies ds in. Run it
// inside a transaction so a failure leaves the previous data in place.
func Load(ctx context.Context, db database.DBTX, ds Dataset, logger *zap.SugaredLogger) error {
	if _, err := db.Exec(ctx, truncateSQL); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	for _, t := range Tables {
		n, err := db.CopyFrom(ctx, pgx.Identifier{t.Name}, t.Columns, pgx.CopyFromRows(Rows(ds[t.Name], t.Columns)))
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", t.Name, err)
		}

		logger.Infow("seeded table", "table", t.Name, "rows", n)
	}

	return nil
}
