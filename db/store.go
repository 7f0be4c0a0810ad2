package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
	"github.com/teranos/satgraph/sat"
)

// Store persists parsed documents: one sat_files row per parse, one
// sat_entities row per entity and one sat_references row per non-null link.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewStore wraps an open, migrated database. A nil logger discards output.
func NewStore(db *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: db, log: log}
}

// FileRecord is one imported parse.
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	Path         string    `json:"path"`
	VersionCode  int       `json:"version_code"`
	ProductID    string    `json:"product_id"`
	ACISVersion  string    `json:"acis_version,omitempty"`
	EntityCount  int       `json:"entity_count"`
	SkippedCount int       `json:"skipped_count"`
	ReadError    string    `json:"read_error,omitempty"`
	ImportedAt   time.Time `json:"imported_at"`
}

// Stats summarises the store contents.
type Stats struct {
	Files          int            `json:"files"`
	Entities       int            `json:"entities"`
	References     int            `json:"references"`
	EntitiesByType map[string]int `json:"entities_by_type"`
}

// SaveDocument writes doc in a single transaction. Entities are written in
// index order; payloads are the entities' JSON encoding.
func (s *Store) SaveDocument(ctx context.Context, doc *sat.Document) error {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreErr(err, "begin import")
	}
	defer tx.Rollback()

	h := doc.Header
	acisVersion := ""
	if h.ACISVersion != nil {
		acisVersion = h.ACISVersion.String()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sat_files (id, path, version_code, product_id, acis_version, units_code,
			resolution, tolerance, entity_count, skipped_count, read_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID.String(), doc.Path, h.VersionCode, h.ProductID, acisVersion, h.UnitsCode,
		h.Resolution, h.Tolerance, len(doc.Entities), len(doc.Skipped), doc.ReadError,
	); err != nil {
		return wrapStoreErr(err, "insert sat_files row")
	}

	entStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sat_entities (file_id, idx, entity_type, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return wrapStoreErr(err, "prepare entity insert")
	}
	defer entStmt.Close()

	refStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sat_references (file_id, from_idx, name, to_idx) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return wrapStoreErr(err, "prepare reference insert")
	}
	defer refStmt.Close()

	fileID := doc.ID.String()
	refs := 0
	for _, e := range doc.Ordered() {
		payload, err := json.Marshal(e)
		if err != nil {
			return errors.Wrapf(err, "encode entity %d (%s)", e.Index(), e.Type())
		}
		if _, err := entStmt.ExecContext(ctx, fileID, e.Index(), e.Type(), string(payload)); err != nil {
			return wrapStoreErr(err, "insert entity")
		}
		for _, r := range e.References() {
			if r.Target == nil {
				continue
			}
			if _, err := refStmt.ExecContext(ctx, fileID, e.Index(), r.Name, *r.Target); err != nil {
				return wrapStoreErr(err, "insert reference")
			}
			refs++
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreErr(err, "commit import")
	}

	s.log.Infow("Stored SAT document",
		logger.FieldParseID, fileID,
		logger.FieldFile, doc.Path,
		logger.FieldCount, len(doc.Entities),
		"references", refs,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// Files lists imported parses, newest first.
func (s *Store) Files(ctx context.Context) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, version_code, product_id, acis_version, entity_count,
			skipped_count, read_error, imported_at
		 FROM sat_files ORDER BY imported_at DESC, path`)
	if err != nil {
		return nil, wrapStoreErr(err, "query sat_files")
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		var (
			f  FileRecord
			id string
		)
		if err := rows.Scan(&id, &f.Path, &f.VersionCode, &f.ProductID, &f.ACISVersion,
			&f.EntityCount, &f.SkippedCount, &f.ReadError, &f.ImportedAt); err != nil {
			return nil, wrapStoreErr(err, "scan sat_files row")
		}
		if f.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrapf(err, "stored file id %q", id)
		}
		out = append(out, f)
	}
	return out, wrapStoreErr(rows.Err(), "iterate sat_files")
}

// Stats counts files, entities and references.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{EntitiesByType: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sat_files`).Scan(&st.Files); err != nil {
		return nil, wrapStoreErr(err, "count sat_files")
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sat_references`).Scan(&st.References); err != nil {
		return nil, wrapStoreErr(err, "count sat_references")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_type, COUNT(*) FROM sat_entities GROUP BY entity_type`)
	if err != nil {
		return nil, wrapStoreErr(err, "count sat_entities")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, wrapStoreErr(err, "scan entity count")
		}
		st.EntitiesByType[typ] = n
		st.Entities += n
	}
	return st, wrapStoreErr(rows.Err(), "iterate entity counts")
}

// EntityPayload returns the stored JSON of one entity.
func (s *Store) EntityPayload(ctx context.Context, fileID uuid.UUID, idx int) (json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM sat_entities WHERE file_id = ? AND idx = ?`,
		fileID.String(), idx,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(errors.ErrNotFound, "entity %d in file %s", idx, fileID)
	}
	if err != nil {
		return nil, wrapStoreErr(err, "query entity payload")
	}
	return json.RawMessage(payload), nil
}

// Link is one stored reference between two entity indices.
type Link struct {
	From int    `json:"from"`
	Name string `json:"name"`
	To   int    `json:"to"`
}

// ReferencesTo lists the links of a file that point at idx.
func (s *Store) ReferencesTo(ctx context.Context, fileID uuid.UUID, idx int) ([]Link, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_idx, name, to_idx FROM sat_references
		 WHERE file_id = ? AND to_idx = ? ORDER BY from_idx, name`,
		fileID.String(), idx)
	if err != nil {
		return nil, wrapStoreErr(err, "query sat_references")
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		var r Link
		if err := rows.Scan(&r.From, &r.Name, &r.To); err != nil {
			return nil, wrapStoreErr(err, "scan reference")
		}
		out = append(out, r)
	}
	return out, wrapStoreErr(rows.Err(), "iterate references")
}
