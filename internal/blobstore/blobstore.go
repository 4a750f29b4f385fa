// Package blobstore implements the persistence adapter for mindframe state.
//
// State is organized as named datasets, each a single JSON document. The
// managers load their dataset once at startup and write it back after every
// mutation. Two backends exist: a JSON-file store (default) and a SQLite
// store for setups that prefer a single database file.
package blobstore

// Store is the dataset persistence contract.
//
// Get returns (nil, nil) when the dataset has never been written — a fresh
// install is not an error. Put replaces the dataset wholesale.
type Store interface {
	Get(dataset string) ([]byte, error)
	Put(dataset string, data []byte) error
}

// Dataset names used by the managers.
const (
	// DatasetTemplates holds the template catalog, sessions, and id counters.
	DatasetTemplates = "templates"
	// DatasetChains holds verification chains and their id counter.
	DatasetChains = "chains"
)
