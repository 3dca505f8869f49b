package replay

import (
	"encoding/gob"
	"io"
)

// Record is the on-disk shape of a full replay: the session overview plus
// its delta-encoded input stream. Encoded with encoding/gob, following the
// teacher's save-state encoding approach; unlike the teacher's
// interface-valued SaveState, every field here is a concrete struct, so no
// gob.Register calls are needed.
type Record struct {
	Overview Overview
	Deltas   []Delta
}

// Encode writes rec to w as gob.
func Encode(w io.Writer, rec Record) error {
	if err := gob.NewEncoder(w).Encode(rec); err != nil {
		return &ReplayError{Op: "encode", Reason: err.Error()}
	}
	return nil
}

// Decode reads a Record previously written by Encode.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	if err := gob.NewDecoder(r).Decode(&rec); err != nil {
		return Record{}, &ReplayError{Op: "decode", Reason: err.Error()}
	}
	return rec, nil
}
