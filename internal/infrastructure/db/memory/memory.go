// Package memory is an in-process store selected with a memory:// URL. It
// keeps the same uniqueness guarantees as the persistent backends and is
// lost on restart.
package memory

import (
	"sync"

	"github.com/classroom/scheduler/internal/core/domain"
)

type DB struct {
	mu      sync.RWMutex
	seq     int64
	users   map[string]*userRecord
	emails  map[string]string
	classes map[string]*classRecord
}

type userRecord struct {
	user domain.User
	seq  int64
}

type classRecord struct {
	class domain.Class
	seq   int64
}

func New() *DB {
	return &DB{
		users:   make(map[string]*userRecord),
		emails:  make(map[string]string),
		classes: make(map[string]*classRecord),
	}
}

// next must be called with mu held for writing.
func (db *DB) next() int64 {
	db.seq++
	return db.seq
}
