package store

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGO)

	textmodel "github.com/TakenPilot/text-model"
)

// ErrNotFound flags a lookup for an id or content hash the store has no
// entry for.
var ErrNotFound = errors.New("store: entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS models (
    id      TEXT PRIMARY KEY,
    hash    TEXT NOT NULL UNIQUE,
    title   TEXT NOT NULL DEFAULT '',
    doc     TEXT NOT NULL,
    created TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS models_created ON models (created);`

// Store persists text models in a SQLite database, deduplicated by content
// hash.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens a model store at path, creating the database if necessary.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, textmodel.ErrIllegalArguments
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite serializes writers; a single pooled connection avoids lock errors
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot initialize %s: %w", path, err)
	}
	tracer().Infof("store: opened %s", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Entry describes one stored model. The model document itself is decoded on
// demand with Entry.Model.
type Entry struct {
	ID      string
	Hash    string
	Title   string
	Created time.Time
	doc     []byte
}

// Model decodes the entry's model document, resolving kind names through
// kinds.
func (e Entry) Model(kinds textmodel.KindResolver) (textmodel.Model, error) {
	return textmodel.UnmarshalModel(e.doc, kinds)
}

// Doc returns the entry's model document, i.e. the model's canonical JSON.
func (e Entry) Doc() []byte {
	return append([]byte(nil), e.doc...)
}

// ContentHash computes the hash a model is deduplicated by: the BLAKE3
// digest of its canonical JSON document, in hex.
func ContentHash(m textmodel.Model) (string, error) {
	doc, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(doc)
	return hex.EncodeToString(sum[:]), nil
}

// Put stores a model under a fresh id and returns its entry. A model whose
// document is already stored is not stored twice; in that case the existing
// entry is returned, its title untouched.
func (s *Store) Put(m textmodel.Model, title string) (Entry, error) {
	doc, err := json.Marshal(m)
	if err != nil {
		return Entry{}, fmt.Errorf("store: cannot encode model: %w", err)
	}
	sum := blake3.Sum256(doc)
	hash := hex.EncodeToString(sum[:])
	if e, err := s.GetByHash(hash); err == nil {
		tracer().Debugf("store: content %s… already stored as %s", hash[:12], e.ID)
		return e, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, err
	}
	e := Entry{
		ID:      uuid.New().String(),
		Hash:    hash,
		Title:   title,
		Created: time.Now().UTC().Truncate(time.Second),
		doc:     doc,
	}
	if err := s.insert(e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Store) insert(e Entry) error {
	_, err := s.db.Exec("INSERT INTO models (id, hash, title, doc, created) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Hash, e.Title, string(e.doc), e.Created.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: cannot store model: %w", err)
	}
	return nil
}

// Get retrieves the entry stored under id.
func (s *Store) Get(id string) (Entry, error) {
	row := s.db.QueryRow("SELECT id, hash, title, doc, created FROM models WHERE id = ?", id)
	return scanEntry(row)
}

// GetByHash retrieves the entry holding the model with the given content
// hash.
func (s *Store) GetByHash(hash string) (Entry, error) {
	row := s.db.QueryRow("SELECT id, hash, title, doc, created FROM models WHERE hash = ?", hash)
	return scanEntry(row)
}

// List returns all entries of the store, ordered by creation time.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT id, hash, title, doc, created FROM models ORDER BY created, id")
	if err != nil {
		return nil, fmt.Errorf("store: list failed: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry stored under id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: delete failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows alike.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var doc, created string
	err := row.Scan(&e.ID, &e.Hash, &e.Title, &doc, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	} else if err != nil {
		return Entry{}, fmt.Errorf("store: lookup failed: %w", err)
	}
	e.doc = []byte(doc)
	if ts, perr := time.Parse(time.RFC3339, created); perr == nil {
		e.Created = ts
	}
	return e, nil
}
