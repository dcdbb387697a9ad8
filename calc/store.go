package calc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store persists calculator history across sessions. Sequence numbers start
// at 1 and increase with each added entry.
type Store interface {
	// AddEntry adds an entry and returns its sequence number.
	AddEntry(e Entry) (int, error)
	// Entry returns the entry with the given sequence number.
	Entry(seq int) (Entry, error)
	// Entries returns the entries with sequence numbers in [from, upto), in
	// order.
	Entries(from, upto int) ([]Entry, error)
	// NextSeq returns the sequence number the next entry will receive.
	NextSeq() (int, error)
	// Close closes the store.
	Close() error
}

// ErrNoEntry is returned when a requested entry does not exist.
var ErrNoEntry = errors.New("calc: no such history entry")

const bucketHistory = "calc-history"

type dbStore struct {
	db *bolt.DB
}

// OpenStore opens or creates a history store backed by the bbolt database at
// path.
func OpenStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("calc: opening history %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("calc: initializing history %s: %w", path, err)
	}
	return &dbStore{db: db}, nil
}

// NextSeq returns the next sequence number of the history.
func (s *dbStore) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddEntry adds a new entry to the history.
func (s *dbStore) AddEntry(e Entry) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalEntry(e))
	})
	return int(seq), err
}

// Entry queries the history entry with the specified sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoEntry
		}
		var err error
		e, err = unmarshalEntry(seq, v)
		return err
	})
	return e, err
}

// Entries returns all entries within the specified range.
func (s *dbStore) Entries(from, upto int) ([]Entry, error) {
	if from < 0 {
		from = 0
	}
	var r []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			e, err := unmarshalEntry(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			r = append(r, e)
		}
		return nil
	})
	return r, err
}

func (s *dbStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// An entry is stored as the uvarint length of the expression, the expression,
// then the result.
func marshalEntry(e Entry) []byte {
	b := make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+len(e.Expr)+len(e.Result))
	b = b[:binary.PutUvarint(b, uint64(len(e.Expr)))]
	b = append(b, e.Expr...)
	return append(b, e.Result...)
}

func unmarshalEntry(seq int, v []byte) (Entry, error) {
	n, k := binary.Uvarint(v)
	if k <= 0 || uint64(len(v)-k) < n {
		return Entry{}, fmt.Errorf("calc: corrupt history entry %d", seq)
	}
	v = v[k:]
	return Entry{Seq: seq, Expr: string(v[:n]), Result: string(v[n:])}, nil
}
