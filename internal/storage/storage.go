// Package storage persists replays and hi-scores in a BadgerDB key-value
// store, grounded on hailam-chessplay/internal/storage/storage.go's
// preferences/stats DAO shape — the reference engine's own persistence
// (engine/dao.c) used SQLite3, but no example repo in the retrieval pack
// imports a SQL driver, whereas Badger is already a real, exercised
// dependency in the pack (see DESIGN.md).
package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"faststack/internal/replay"
)

const (
	keyNextID = "meta/next_id"
)

func replayKey(id uint64) []byte  { return []byte(fmt.Sprintf("replay/%d", id)) }
func deltasKey(id uint64) []byte  { return []byte(fmt.Sprintf("replay/%d/deltas", id)) }
func hiscoreKey(id uint64) []byte { return []byte(fmt.Sprintf("hiscore/%d", id)) }

// HiscoreEntry is one completed session's scoreboard row, mirroring the
// four derived metrics the reference engine's dao.c hiscore table stores.
type HiscoreEntry struct {
	ReplayID       uint64
	Date           time.Time
	Ticks          uint64
	TicksPerSecond float64
	KeysPerTick    float64
	Goal           int
}

// Store wraps a BadgerDB handle scoped to one data directory.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a Badger store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// nextID atomically reserves and returns the next replay id.
func (s *Store) nextID() (uint64, error) {
	var id uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyNextID))
		switch {
		case err == badger.ErrKeyNotFound:
			id = 1
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				id = binary.BigEndian.Uint64(val) + 1
				return nil
			}); err != nil {
				return err
			}
		}

		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], id)
		return txn.Set([]byte(keyNextID), buf[:])
	})
	return id, err
}

// SaveReplay persists a full recorded session (overview + delta stream)
// under a freshly minted id and returns it.
func (s *Store) SaveReplay(overview replay.Overview, deltas []replay.Delta) (uint64, error) {
	id, err := s.nextID()
	if err != nil {
		return 0, fmt.Errorf("storage: reserve id: %w", err)
	}

	var ovBuf, dBuf bytes.Buffer
	if err := replay.Encode(&ovBuf, replay.Record{Overview: overview}); err != nil {
		return 0, err
	}
	if err := replay.Encode(&dBuf, replay.Record{Deltas: deltas}); err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(replayKey(id), ovBuf.Bytes()); err != nil {
			return err
		}
		return txn.Set(deltasKey(id), dBuf.Bytes())
	})
	if err != nil {
		return 0, fmt.Errorf("storage: save replay %d: %w", id, err)
	}
	return id, nil
}

// LoadReplay reconstructs a previously saved overview and delta stream.
func (s *Store) LoadReplay(id uint64) (replay.Overview, []replay.Delta, error) {
	var rec replay.Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(replayKey(id))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			r, err := replay.Decode(bytes.NewReader(val))
			rec = r
			return err
		}); err != nil {
			return err
		}

		item, err = txn.Get(deltasKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			r, err := replay.Decode(bytes.NewReader(val))
			rec.Deltas = r.Deltas
			return err
		})
	})
	if err != nil {
		return replay.Overview{}, nil, fmt.Errorf("storage: load replay %d: %w", id, err)
	}
	return rec.Overview, rec.Deltas, nil
}

// SaveHiscore records a hiscore row alongside an already-saved replay id.
func (s *Store) SaveHiscore(entry HiscoreEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hiscoreKey(entry.ReplayID), data)
	})
}

// ListHiscores returns every stored hiscore entry, optionally filtered to
// a single goal target (pass 0 for no filter), sorted by ticks ascending
// (fastest-to-goal first).
func (s *Store) ListHiscores(goal int) ([]HiscoreEntry, error) {
	var out []HiscoreEntry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("hiscore/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry HiscoreEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			if goal == 0 || entry.Goal == goal {
				out = append(out, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list hiscores: %w", err)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Ticks < out[j-1].Ticks; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}
