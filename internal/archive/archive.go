// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive stores derived scaling series in a SQL database so
// that charts can be compared across runs of the tool.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sparrust/scaleplot/runseries"
)

// DB is a SQL archive of charts. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertChart *sql.Stmt
	insertPoint *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Every connection to ":memory:" is a distinct database,
		// and sqlite serializes writers anyway.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Charts (
	ChartID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255),
	Metric VARCHAR(32),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Points (
	ChartID BIGINT UNSIGNED,
	PointID BIGINT UNSIGNED,
	Runtime VARCHAR(255),
	Label VARCHAR(255),
	Workers INT,
	Value DOUBLE,
	Err DOUBLE,
	Baseline BOOLEAN,
	PRIMARY KEY (ChartID, PointID),
	FOREIGN KEY (ChartID) REFERENCES Charts(ChartID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ChartsName ON Charts(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertChart, err = db.sql.Prepare("INSERT INTO Charts(Name, Metric, Created) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertPoint, err = db.sql.Prepare("INSERT INTO Points(ChartID, PointID, Runtime, Label, Workers, Value, Err, Baseline) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Chart is an archived chart.
type Chart struct {
	ID      int64
	Name    string
	Metric  runseries.Metric
	Created time.Time
	Series  []*runseries.Series
}

// Save archives series under name in a single transaction and
// returns the new chart's ID.
func (db *DB) Save(ctx context.Context, name string, series []*runseries.Series) (id int64, err error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("no series to archive")
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertChart).ExecContext(ctx, name, series[0].Metric.String(), now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ins := tx.StmtContext(ctx, db.insertPoint)
	pointID := 0
	for _, s := range series {
		for _, p := range s.Points {
			if _, err = ins.ExecContext(ctx, id, pointID, s.Runtime, s.Label, p.Workers, p.Value, p.Err, p.Baseline); err != nil {
				return 0, err
			}
			pointID++
		}
	}
	return id, tx.Commit()
}

// Load returns the archived chart with the given ID.
func (db *DB) Load(ctx context.Context, id int64) (*Chart, error) {
	c := &Chart{ID: id}
	var metric string
	var created int64
	err := db.sql.QueryRowContext(ctx, "SELECT Name, Metric, Created FROM Charts WHERE ChartID = ?", id).Scan(&c.Name, &metric, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chart %d not found", id)
	} else if err != nil {
		return nil, err
	}
	if c.Metric, err = runseries.ParseMetric(metric); err != nil {
		return nil, err
	}
	c.Created = time.Unix(created, 0)

	rows, err := db.sql.QueryContext(ctx, "SELECT Runtime, Label, Workers, Value, Err, Baseline FROM Points WHERE ChartID = ? ORDER BY PointID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cur *runseries.Series
	for rows.Next() {
		var runtime, label string
		var p runseries.Point
		if err := rows.Scan(&runtime, &label, &p.Workers, &p.Value, &p.Err, &p.Baseline); err != nil {
			return nil, err
		}
		if cur == nil || cur.Runtime != runtime {
			cur = &runseries.Series{Runtime: runtime, Label: label, Metric: c.Metric}
			c.Series = append(c.Series, cur)
		}
		cur.Points = append(cur.Points, p)
	}
	return c, rows.Err()
}

// Latest returns the ID of the most recently archived chart with the
// given name, or 0 if there is none.
func (db *DB) Latest(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.sql.QueryRowContext(ctx, "SELECT ChartID FROM Charts WHERE Name = ? ORDER BY ChartID DESC LIMIT 1", name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return id, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertChart, db.insertPoint} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
