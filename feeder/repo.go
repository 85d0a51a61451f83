// Copyright 2024-2026, Flowsim Authors

package feeder

import (
	"errors"
	"fmt"

	"github.com/orcaman/concurrent-map"
)

var (
	ErrFeederNotFound = errors.New("feeder not found in the repo")
)

// Repo is a small wrapper around a concurrent map that provides the ability
// to store and retrieve Feeders in a thread-safe way. A multi-rank
// simulation keeps one feeder per rank here, shared between its dispatch
// loop and its status reporting.
type Repo interface {
	Set(rank string, f Feeder)
	Get(rank string) (Feeder, error)
	Remove(rank string)
	Items() (map[string]Feeder, error)
}

type repo struct {
	c cmap.ConcurrentMap
}

func NewRepo() Repo {
	return &repo{
		c: cmap.New(),
	}
}

// Set sets a Feeder in the repo.
func (r *repo) Set(rank string, f Feeder) {
	r.c.Set(rank, f)
}

// Get returns the Feeder for a rank, or ErrFeederNotFound.
func (r *repo) Get(rank string) (Feeder, error) {
	val, ok := r.c.Get(rank)
	if !ok {
		return nil, ErrFeederNotFound
	}
	f, ok := val.(Feeder)
	if !ok {
		return nil, fmt.Errorf("invalid feeder in repo for rank=%s", rank) // should be impossible
	}
	return f, nil
}

// Remove removes a feeder from the repo.
func (r *repo) Remove(rank string) {
	r.c.Remove(rank)
}

// Items returns a map of rank => Feeder with all the Feeders in the repo.
func (r *repo) Items() (map[string]Feeder, error) {
	feeders := map[string]Feeder{} // rank => feeder
	vals := r.c.Items()
	for rank, val := range vals {
		f, ok := val.(Feeder)
		if !ok {
			return feeders, fmt.Errorf("invalid feeder in repo for rank=%s", rank) // should be impossible
		}
		feeders[rank] = f
	}

	return feeders, nil
}
