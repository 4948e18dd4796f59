// Copyright 2026 Ameya-bit
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package safequery

import (
	"context"
	"database/sql"
	"time"
)

// Aliases for the database/sql types that flow through the wrappers
// unchanged, so application code never imports database/sql itself.
type (
	// Result is database/sql's Result.
	Result = sql.Result
	// Row is database/sql's Row.
	Row = sql.Row
	// Rows is database/sql's Rows.
	Rows = sql.Rows
	// Stmt is database/sql's Stmt. Its Exec and Query take only
	// placeholder arguments, so handing it out is safe.
	Stmt = sql.Stmt
	// NullString is database/sql's NullString.
	NullString = sql.NullString
	// TxOptions is database/sql's TxOptions.
	TxOptions = sql.TxOptions
)

// ErrNoRows is database/sql's ErrNoRows.
var ErrNoRows = sql.ErrNoRows

// DB wraps sql.DB; every query-shaped method takes a TrustedQuery.
type DB struct {
	db *sql.DB
}

// Open opens a database handle the way sql.Open does. The driver must
// have been registered, usually by a blank import.
func Open(driverName, dataSourceName string) (DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	return DB{db}, err
}

// Close closes the handle.
func (db DB) Close() error { return db.db.Close() }

// Ping verifies the connection.
func (db DB) Ping() error { return db.db.Ping() }

// PingContext verifies the connection.
func (db DB) PingContext(ctx context.Context) error { return db.db.PingContext(ctx) }

// Exec runs query with the given placeholder arguments.
func (db DB) Exec(query TrustedQuery, args ...interface{}) (Result, error) {
	return db.db.Exec(query.s, args...)
}

// ExecContext runs query with the given placeholder arguments.
func (db DB) ExecContext(ctx context.Context, query TrustedQuery, args ...interface{}) (Result, error) {
	return db.db.ExecContext(ctx, query.s, args...)
}

// Query runs query and returns the rows.
func (db DB) Query(query TrustedQuery, args ...interface{}) (*Rows, error) {
	return db.db.Query(query.s, args...)
}

// QueryContext runs query and returns the rows.
func (db DB) QueryContext(ctx context.Context, query TrustedQuery, args ...interface{}) (*Rows, error) {
	return db.db.QueryContext(ctx, query.s, args...)
}

// QueryRow runs query and returns at most one row.
func (db DB) QueryRow(query TrustedQuery, args ...interface{}) *Row {
	return db.db.QueryRow(query.s, args...)
}

// QueryRowContext runs query and returns at most one row.
func (db DB) QueryRowContext(ctx context.Context, query TrustedQuery, args ...interface{}) *Row {
	return db.db.QueryRowContext(ctx, query.s, args...)
}

// Prepare prepares query for repeated execution.
func (db DB) Prepare(query TrustedQuery) (*Stmt, error) {
	return db.db.Prepare(query.s)
}

// PrepareContext prepares query for repeated execution.
func (db DB) PrepareContext(ctx context.Context, query TrustedQuery) (*Stmt, error) {
	return db.db.PrepareContext(ctx, query.s)
}

// Begin starts a transaction.
func (db DB) Begin() (Tx, error) {
	tx, err := db.db.Begin()
	return Tx{tx}, err
}

// BeginTx starts a transaction with the given options.
func (db DB) BeginTx(ctx context.Context, opts *TxOptions) (Tx, error) {
	tx, err := db.db.BeginTx(ctx, opts)
	return Tx{tx}, err
}

// SetMaxOpenConns bounds the pool like sql.DB.SetMaxOpenConns.
func (db DB) SetMaxOpenConns(n int) { db.db.SetMaxOpenConns(n) }

// SetMaxIdleConns bounds idle connections like sql.DB.SetMaxIdleConns.
func (db DB) SetMaxIdleConns(n int) { db.db.SetMaxIdleConns(n) }

// SetConnMaxLifetime bounds connection reuse like
// sql.DB.SetConnMaxLifetime.
func (db DB) SetConnMaxLifetime(d time.Duration) { db.db.SetConnMaxLifetime(d) }

// Tx wraps sql.Tx the way DB wraps sql.DB.
type Tx struct {
	tx *sql.Tx
}

// Exec runs query within the transaction.
func (tx Tx) Exec(query TrustedQuery, args ...interface{}) (Result, error) {
	return tx.tx.Exec(query.s, args...)
}

// ExecContext runs query within the transaction.
func (tx Tx) ExecContext(ctx context.Context, query TrustedQuery, args ...interface{}) (Result, error) {
	return tx.tx.ExecContext(ctx, query.s, args...)
}

// Query runs query within the transaction.
func (tx Tx) Query(query TrustedQuery, args ...interface{}) (*Rows, error) {
	return tx.tx.Query(query.s, args...)
}

// QueryContext runs query within the transaction.
func (tx Tx) QueryContext(ctx context.Context, query TrustedQuery, args ...interface{}) (*Rows, error) {
	return tx.tx.QueryContext(ctx, query.s, args...)
}

// QueryRow runs query within the transaction, returning at most one row.
func (tx Tx) QueryRow(query TrustedQuery, args ...interface{}) *Row {
	return tx.tx.QueryRow(query.s, args...)
}

// QueryRowContext runs query within the transaction, returning at most
// one row.
func (tx Tx) QueryRowContext(ctx context.Context, query TrustedQuery, args ...interface{}) *Row {
	return tx.tx.QueryRowContext(ctx, query.s, args...)
}

// Commit commits the transaction.
func (tx Tx) Commit() error { return tx.tx.Commit() }

// Rollback aborts the transaction.
func (tx Tx) Rollback() error { return tx.tx.Rollback() }
