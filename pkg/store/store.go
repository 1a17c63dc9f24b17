// Package store persists the scripts of every server in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"netscript/pkg/script"
)

// ErrNotFound is returned when a server has no script by the requested name.
var ErrNotFound = errors.New("script not found")

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var scriptColumns = []string{
	"server TEXT NOT NULL",
	"filename TEXT NOT NULL",
	"code TEXT NOT NULL",
	"updated_at DATETIME DEFAULT CURRENT_TIMESTAMP",
	"PRIMARY KEY (server, filename)",
}

// Store is a script database. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

// Open opens or creates the database at path and makes sure the scripts
// table exists.
func Open(path string, logger logrus.FieldLogger) (*Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening script store %s", path)
	}
	if path == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to script store %s", path)
	}

	s := &Store{db: db, logger: logger.WithField("store", path)}
	if err := s.createTable("scripts", scriptColumns); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTable(name string, columns []string) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(columns, ","))
	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrapf(err, "creating table %s", name)
	}
	return nil
}

// Save inserts or replaces a script on server.
func (s *Store) Save(ctx context.Context, server string, sc script.Script) error {
	if !script.IsScriptFilename(sc.Filename) {
		return errors.Errorf("invalid script filename %q", sc.Filename)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scripts (server, filename, code, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (server, filename) DO UPDATE SET code = excluded.code, updated_at = excluded.updated_at`,
		server, sc.Filename, sc.Code)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "saving %s on %s", sc.Filename, server)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "saving %s on %s", sc.Filename, server)
	}
	s.logger.WithFields(logrus.Fields{"server": server, "script": sc.Filename}).Debug("script saved")
	return nil
}

// Get returns the script named filename on server.
func (s *Store) Get(ctx context.Context, server, filename string) (script.Script, error) {
	sc := script.Script{Filename: filename}
	err := s.db.QueryRowContext(ctx,
		`SELECT code FROM scripts WHERE server = ? AND filename = ?`, server, filename).Scan(&sc.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return script.Script{}, errors.Wrapf(ErrNotFound, "%s on %s", filename, server)
	}
	if err != nil {
		return script.Script{}, errors.Wrapf(err, "reading %s on %s", filename, server)
	}
	return sc, nil
}

// List returns the scripts on server ordered by filename.
func (s *Store) List(ctx context.Context, server string) ([]script.Script, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, code FROM scripts WHERE server = ? ORDER BY filename`, server)
	if err != nil {
		return nil, errors.Wrapf(err, "listing scripts on %s", server)
	}
	defer rows.Close()

	var scripts []script.Script
	for rows.Next() {
		var sc script.Script
		if err := rows.Scan(&sc.Filename, &sc.Code); err != nil {
			return nil, errors.Wrap(err, "scanning script row")
		}
		scripts = append(scripts, sc)
	}
	return scripts, errors.Wrap(rows.Err(), "listing scripts")
}

// Delete removes a script from server. Deleting a missing script returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, server, filename string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM scripts WHERE server = ? AND filename = ?`, server, filename)
	if err != nil {
		return errors.Wrapf(err, "deleting %s on %s", filename, server)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting script")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%s on %s", filename, server)
	}
	return nil
}

// Servers returns every server holding at least one script.
func (s *Store) Servers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT server FROM scripts ORDER BY server`)
	if err != nil {
		return nil, errors.Wrap(err, "listing servers")
	}
	defer rows.Close()

	var servers []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scanning server row")
		}
		servers = append(servers, name)
	}
	return servers, errors.Wrap(rows.Err(), "listing servers")
}
