// Package sqlite implementa el almacenamiento local del modo degradado: el
// espejo de solo lectura de las tablas de referencia y el spool de auditoría
// pendiente de subir. Un único archivo sqlite en modo WAL.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS mirror_categories (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	active      INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS mirror_goods (
	id          INTEGER PRIMARY KEY,
	category_id INTEGER NOT NULL,
	name        TEXT NOT NULL,
	unit        TEXT NOT NULL DEFAULT '',
	unit_cost   TEXT NOT NULL DEFAULT '0',
	active      INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS mirror_shelters (
	id          INTEGER PRIMARY KEY,
	disaster_id INTEGER,
	name        TEXT NOT NULL,
	address     TEXT NOT NULL DEFAULT '',
	capacity    INTEGER NOT NULL DEFAULT 0,
	active      INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS mirror_stocks (
	id           INTEGER PRIMARY KEY,
	good_id      INTEGER NOT NULL,
	disaster_id  INTEGER,
	shelter_id   INTEGER,
	quantity     INTEGER NOT NULL,
	max_capacity INTEGER NOT NULL,
	unit_cost    TEXT NOT NULL DEFAULT '0',
	active       INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS mirror_state (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	pulled_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_spool (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	ts             TEXT NOT NULL,
	action         TEXT NOT NULL,
	entity_type    TEXT NOT NULL DEFAULT '',
	entity_id      INTEGER,
	user_id        INTEGER,
	severity       TEXT NOT NULL DEFAULT 'info',
	success        INTEGER NOT NULL DEFAULT 1,
	error_message  TEXT NOT NULL DEFAULT '',
	old_values     TEXT,
	new_values     TEXT,
	description    TEXT NOT NULL DEFAULT '',
	correlation_id TEXT NOT NULL DEFAULT ''
);
`

// Open abre (o crea) la base local y asegura el esquema.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite escribe de a una conexión; más de una solo produce SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}
	return db, nil
}
