// Package balancedb implements the persistent balance registry backing
// the reserve commitment, using leveldb. The registry is written once
// when a reporting period is prepared and scanned once at server startup
// to build the tree; it is not touched on the serving path.
package balancedb

import (
	"encoding/binary"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/msakuta/merkle-tree/merkletree"
	"github.com/msakuta/merkle-tree/utils"
)

var (
	// ErrMalformedEntry indicates a registry entry whose key or value
	// does not have the expected fixed length.
	ErrMalformedEntry = errors.New("[balancedb] Malformed registry entry")
)

// recordPrefix namespaces balance records within the database.
var recordPrefix = []byte("b")

// A DB is an open balance registry. All writes are synchronous.
type DB struct {
	db *leveldb.DB
}

// Open opens the registry at path, creating it if necessary.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close releases the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// recordKey encodes the user id big endian so that an iterator scan
// yields records in ascending id order.
func recordKey(id uint32) []byte {
	key := make([]byte, 0, len(recordPrefix)+4)
	key = append(key, recordPrefix...)
	return append(key, utils.UInt32ToBytes(id)...)
}

// Seed writes all records in a single atomic, synchronous batch.
// Seeding the same id twice keeps the last balance.
func (d *DB) Seed(records []merkletree.Record) error {
	batch := new(leveldb.Batch)
	for _, r := range records {
		batch.Put(recordKey(r.ID), utils.UInt32ToBytes(r.Balance))
	}
	return d.db.Write(batch, &opt.WriteOptions{Sync: true})
}

// Records returns every stored record, in ascending id order.
func (d *DB) Records() ([]merkletree.Record, error) {
	iter := d.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	defer iter.Release()

	var records []merkletree.Record
	for iter.Next() {
		key := iter.Key()
		value := iter.Value()
		if len(key) != len(recordPrefix)+4 || len(value) != 4 {
			return nil, ErrMalformedEntry
		}
		records = append(records, merkletree.Record{
			ID:      binary.BigEndian.Uint32(key[len(recordPrefix):]),
			Balance: binary.BigEndian.Uint32(value),
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return records, nil
}
