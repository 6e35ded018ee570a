package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DefaultPoolStatsInterval период сбора статистики connection pool
const DefaultPoolStatsInterval = 15 * time.Second

// Recorder получатель метрик БД (реализуется pkg/metrics)
type Recorder interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBPoolStats(stats sql.DBStats)
}

// DB обёртка над *sql.DB, замеряющая длительность запросов
type DB struct {
	db       *sql.DB
	recorder Recorder
}

// Wrap оборачивает *sql.DB. recorder может быть nil - тогда метрики не пишутся
func Wrap(db *sql.DB, recorder Recorder) *DB {
	return &DB{db: db, recorder: recorder}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stop
func WrapWithDefault(db *sql.DB, recorder Recorder, stop <-chan struct{}) *DB {
	wrapped := Wrap(db, recorder)
	if recorder != nil {
		go wrapped.CollectPoolStats(DefaultPoolStatsInterval, stop)
	}
	return wrapped
}

// CollectPoolStats периодически отправляет sql.DBStats в recorder
func (d *DB) CollectPoolStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.recorder.SetDBPoolStats(d.db.Stats())
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.recorder.SetDBPoolStats(d.db.Stats())
		}
	}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию; запросы внутри неё тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, recorder: d.recorder}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.recorder == nil {
		return
	}
	d.recorder.ObserveDBQuery(operationName(query), time.Since(start), err)
}

// Tx обёртка над *sql.Tx
type Tx struct {
	tx       *sql.Tx
	recorder Recorder
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe(query, start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) observe(query string, start time.Time, err error) {
	if t.recorder == nil {
		return
	}
	t.recorder.ObserveDBQuery(operationName(query), time.Since(start), err)
}

// operationName первое слово запроса в нижнем регистре: select, insert, update, delete
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
