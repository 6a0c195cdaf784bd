// Package store persists the session collection as a single
// serialized snapshot, read whole at startup and overwritten whole on
// every mutation.
package store

import "github.com/neuralchat/backend/internal/model/chat"

// Snapshot abstracts the durable medium so it can be swapped for a
// file, an embedded database, or an in-memory fake in tests.
//
// Load never fails: a missing or unparseable snapshot yields an empty
// collection. Save reports write faults to the caller, which treats
// durability as best-effort and keeps the in-memory state live.
type Snapshot interface {
	Load() chat.Collection
	Save(chat.Collection) error
}
