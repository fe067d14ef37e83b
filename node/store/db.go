package store

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/molecule"
)

var (
	bucketSets   = []byte("witness_sets_by_id")
	bucketLabels = []byte("set_id_by_label")
)

// SetID addresses a witness set by the SHA3-256 of its BytesVec encoding.
type SetID [32]byte

func (id SetID) String() string { return hex.EncodeToString(id[:]) }

func ParseSetID(s string) (SetID, error) {
	var id SetID
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return id, fmt.Errorf("set id: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("set id: %d bytes, want %d", len(b), len(id))
	}
	copy(id[:], b)
	return id, nil
}

// SetInfo is one entry of ListWitnessSets.
type SetInfo struct {
	ID       SetID
	Label    string
	Count    int
	ByteSize int
}

// DB persists transaction witness lists so the same fixture can be replayed
// against the validator.
type DB struct {
	dir      string
	db       *bolt.DB
	manifest *Manifest
}

func Open(datadir string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	dir := StoreDir(datadir)
	path := dbPath(dir)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	d := &DB{dir: dir, db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketSets, bucketLabels} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	m, err := readManifest(dir)
	switch {
	case os.IsNotExist(err):
		m = newManifest()
	case err != nil:
		_ = bdb.Close()
		return nil, fmt.Errorf("read manifest: %w", err)
	case m.SchemaVersion > SchemaVersionV1:
		_ = bdb.Close()
		return nil, fmt.Errorf("manifest schema_version %d > supported %d", m.SchemaVersion, SchemaVersionV1)
	}
	d.manifest = m
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Dir() string { return d.dir }

func (d *DB) Manifest() Manifest {
	if d == nil || d.manifest == nil {
		return Manifest{}
	}
	return *d.manifest
}

// PutWitnessSet stores witnesses and returns their content id. Storing the same
// list twice is a no-op apart from updating label.
func (d *DB) PutWitnessSet(label string, witnesses [][]byte) (SetID, error) {
	enc := molecule.EncodeBytesVec(witnesses)
	id := SetID(crypto.ContentID(enc))
	label = strings.TrimSpace(label)

	var added bool
	err := d.db.Update(func(tx *bolt.Tx) error {
		sets := tx.Bucket(bucketSets)
		if sets.Get(id[:]) == nil {
			added = true
			if err := sets.Put(id[:], enc); err != nil {
				return err
			}
		}
		if label == "" {
			return nil
		}
		return tx.Bucket(bucketLabels).Put([]byte(label), id[:])
	})
	if err != nil {
		return SetID{}, fmt.Errorf("put witness set: %w", err)
	}
	if !added {
		return id, nil
	}

	next := *d.manifest
	next.SetCount++
	next.LastSetIDHex = id.String()
	if err := writeManifestAtomic(d.dir, &next); err != nil {
		return SetID{}, err
	}
	d.manifest = &next
	return id, nil
}

func (d *DB) GetWitnessSet(id SetID) ([][]byte, bool, error) {
	var out [][]byte
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSets).Get(id[:])
		if v == nil {
			return nil
		}
		ws, err := molecule.DecodeBytesVec(v)
		if err != nil {
			return fmt.Errorf("witness set %s: %w", id, err)
		}
		out, ok = ws, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (d *DB) LookupLabel(label string) (SetID, bool, error) {
	var id SetID
	var ok bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLabels).Get([]byte(strings.TrimSpace(label)))
		if len(v) != len(id) {
			return nil
		}
		copy(id[:], v)
		ok = true
		return nil
	})
	return id, ok, err
}

// Resolve accepts either a hex set id or a label.
func (d *DB) Resolve(ref string) (SetID, bool, error) {
	if id, err := ParseSetID(ref); err == nil {
		return id, true, nil
	}
	return d.LookupLabel(ref)
}

// ListWitnessSets returns every stored set in id order.
func (d *DB) ListWitnessSets() ([]SetInfo, error) {
	var out []SetInfo
	err := d.db.View(func(tx *bolt.Tx) error {
		labels := make(map[SetID]string)
		if err := tx.Bucket(bucketLabels).ForEach(func(k, v []byte) error {
			var id SetID
			copy(id[:], v)
			labels[id] = string(k)
			return nil
		}); err != nil {
			return err
		}
		return tx.Bucket(bucketSets).ForEach(func(k, v []byte) error {
			var id SetID
			copy(id[:], k)
			ws, err := molecule.DecodeBytesVec(v)
			if err != nil {
				return fmt.Errorf("witness set %s: %w", id, err)
			}
			out = append(out, SetInfo{ID: id, Label: labels[id], Count: len(ws), ByteSize: len(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWitnessSet removes a set and every label pointing at it.
func (d *DB) DeleteWitnessSet(id SetID) (bool, error) {
	var existed bool
	err := d.db.Update(func(tx *bolt.Tx) error {
		sets := tx.Bucket(bucketSets)
		if sets.Get(id[:]) == nil {
			return nil
		}
		existed = true
		labels := tx.Bucket(bucketLabels)
		var stale [][]byte
		if err := labels.ForEach(func(k, v []byte) error {
			if bytes.Equal(v, id[:]) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := labels.Delete(k); err != nil {
				return err
			}
		}
		return sets.Delete(id[:])
	})
	if err != nil || !existed {
		return existed, err
	}

	next := *d.manifest
	if next.SetCount > 0 {
		next.SetCount--
	}
	if err := writeManifestAtomic(d.dir, &next); err != nil {
		return true, err
	}
	d.manifest = &next
	return true, nil
}
