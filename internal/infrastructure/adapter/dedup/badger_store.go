package dedup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/kudos-ledger/internal/domain/port/persistence"
	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "dedup/"

// BadgerOptions configures the persistent dedup store
type BadgerOptions struct {
	// Path of the badger directory, empty keeps everything in memory
	Path string
	// TTL after which a key is forgotten, zero keeps keys forever
	TTL time.Duration
}

// BadgerStore keeps processed reaction keys in badger so they survive restarts
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore opens the badger database backing the dedup store
func NewBadgerStore(opts BadgerOptions, logger coreport.Logger) (persistence.DedupStore, error) {
	badgerOpts := badger.DefaultOptions(opts.Path).WithLogger(&badgerLogger{logger: logger})
	if opts.Path == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open dedup store: %w", err)
	}

	return &BadgerStore{db: db, ttl: opts.TTL}, nil
}

func storageKey(key entity.DedupKey) []byte {
	return []byte(keyPrefix + key.String())
}

func (s *BadgerStore) entry(key entity.DedupKey) *badger.Entry {
	e := badger.NewEntry(storageKey(key), []byte{1})
	if s.ttl > 0 {
		e = e.WithTTL(s.ttl)
	}
	return e
}

// MarkIfAbsent records the key and reports whether it was new
// A write conflict means a concurrent delivery committed the same key first
func (s *BadgerStore) MarkIfAbsent(ctx context.Context, key entity.DedupKey) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(storageKey(key))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.SetEntry(s.entry(key)); err != nil {
			return err
		}
		added = true
		return nil
	})

	if errors.Is(err, badger.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mark reaction %s: %w", key, err)
	}

	return added, nil
}

// Seed records keys as already processed
func (s *BadgerStore) Seed(ctx context.Context, keys []entity.DedupKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range keys {
		if err := wb.SetEntry(s.entry(key)); err != nil {
			return fmt.Errorf("seed reaction %s: %w", key, err)
		}
	}

	return wb.Flush()
}

// Len counts the live keys, returning -1 if the store cannot be read
func (s *BadgerStore) Len() int {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return -1
	}
	return count
}

// Close flushes and closes the badger database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging into the service logger
type badgerLogger struct {
	logger coreport.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(l.format(format, args...), map[string]any{"component": "badger"})
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(l.format(format, args...), map[string]any{"component": "badger"})
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(l.format(format, args...), map[string]any{"component": "badger"})
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(l.format(format, args...), map[string]any{"component": "badger"})
}

func (l *badgerLogger) format(format string, args ...any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
