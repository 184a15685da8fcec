// Package memory is an in-process implementation of the repositories. It is
// used by tests and by the "memory" database driver for local development.
package memory

import (
	"alcyxob/gymbuddy/internal/repository"
	"sync"
)

// db holds every table behind one lock, so multi-table reads see a consistent view.
type db struct {
	mu  sync.RWMutex
	seq int64 // insertion counter, breaks ties between equal timestamps

	users    map[string]*userRow
	partners map[string]*partnerRow
	workouts map[string]*workoutRow
	exercise map[string]*exerciseRow
	sets     map[string]*setRow
	weeks    map[string]*weekRow
	catalog  map[string]*catalogRow
}

// NewStore returns a repository.Store backed by empty in-memory tables.
func NewStore() repository.Store {
	d := &db{
		users:    make(map[string]*userRow),
		partners: make(map[string]*partnerRow),
		workouts: make(map[string]*workoutRow),
		exercise: make(map[string]*exerciseRow),
		sets:     make(map[string]*setRow),
		weeks:    make(map[string]*weekRow),
		catalog:  make(map[string]*catalogRow),
	}
	return repository.Store{
		Users:    &userRepository{db: d},
		Partners: &partnerRepository{db: d},
		Workouts: &workoutRepository{db: d},
		Exercise: &exerciseRepository{db: d},
		Sets:     &setRepository{db: d},
		Weeks:    &weekRepository{db: d},
		Catalog:  &catalogRepository{db: d},
	}
}

// nextSeq must be called with mu held for writing.
func (d *db) nextSeq() int64 {
	d.seq++
	return d.seq
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
