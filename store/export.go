package store

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	textmodel "github.com/TakenPilot/text-model"
)

// dumpRecord is one record of an export dump.
type dumpRecord struct {
	ID      string          `json:"id"`
	Hash    string          `json:"hash"`
	Title   string          `json:"title,omitempty"`
	Created string          `json:"created"`
	Doc     json.RawMessage `json:"doc"`
}

// Export writes all entries of the store to an xz compressed dump with one
// JSON record per line.
func (s *Store) Export(w io.Writer) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("store: cannot create xz writer: %w", err)
	}
	enc := json.NewEncoder(xw)
	for _, e := range entries {
		rec := dumpRecord{
			ID:      e.ID,
			Hash:    e.Hash,
			Title:   e.Title,
			Created: e.Created.Format(time.RFC3339),
			Doc:     json.RawMessage(e.doc),
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("store: cannot export entry %s: %w", e.ID, err)
		}
	}
	tracer().Infof("store: exported %d entries", len(entries))
	return xw.Close()
}

// ExportFile exports the store to a dump file.
func (s *Store) ExportFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Import reads an xz compressed dump, as written by Export, and adds its
// records to the store. Model documents are validated by decoding them with
// kinds and re-canonicalized before insertion; records whose content is
// already stored are skipped. Import returns the number of entries added.
func (s *Store) Import(r io.Reader, kinds textmodel.KindResolver) (int, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("store: cannot read dump: %w", err)
	}
	added := 0
	dec := json.NewDecoder(xr)
	for {
		var rec dumpRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return added, fmt.Errorf("store: broken dump record: %w", err)
		}
		m, err := textmodel.UnmarshalModel(rec.Doc, kinds)
		if err != nil {
			return added, fmt.Errorf("store: dump record %s holds a broken model: %w", rec.ID, err)
		}
		doc, err := json.Marshal(m)
		if err != nil {
			return added, fmt.Errorf("store: cannot encode model: %w", err)
		}
		sum := blake3.Sum256(doc)
		hash := hex.EncodeToString(sum[:])
		if _, err := s.GetByHash(hash); err == nil {
			continue // content already stored
		} else if !errors.Is(err, ErrNotFound) {
			return added, err
		}
		e := Entry{
			ID:      rec.ID,
			Hash:    hash,
			Title:   rec.Title,
			Created: time.Now().UTC().Truncate(time.Second),
			doc:     doc,
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if ts, perr := time.Parse(time.RFC3339, rec.Created); perr == nil {
			e.Created = ts
		}
		if err := s.insert(e); err != nil {
			return added, err
		}
		added++
	}
	tracer().Infof("store: imported %d entries", added)
	return added, nil
}

// ImportFile imports a dump file into the store.
func (s *Store) ImportFile(path string, kinds textmodel.KindResolver) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return s.Import(file, kinds)
}
