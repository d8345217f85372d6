package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore keeps blobs in a map. It loses everything on exit and is meant
// for tests and throwaway sessions. Failures can be injected per collection.
type MemoryStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	getErr map[Collection]error
	putErr map[Collection]error
	writes int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs:  make(map[string][]byte),
		getErr: make(map[Collection]error),
		putErr: make(map[Collection]error),
	}
}

// FailGet makes every Get of c return err. A nil err clears the failure.
func (m *MemoryStore) FailGet(c Collection, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.getErr, c)
		return
	}
	m.getErr[c] = err
}

// FailPut makes every write touching c return err. A nil err clears it.
func (m *MemoryStore) FailPut(c Collection, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.putErr, c)
		return
	}
	m.putErr[c] = err
}

// Writes reports how many Put/PutBatch calls succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryStore) Get(_ context.Context, c Collection, userID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getErr[c]; err != nil {
		return nil, err
	}
	v, ok := m.blobs[Key("", c, userID)]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

func (m *MemoryStore) Put(ctx context.Context, c Collection, userID string, data []byte) error {
	return m.PutBatch(ctx, userID, Blob{Collection: c, Data: data})
}

// PutBatch is all-or-nothing: an injected failure on any collection leaves
// every blob untouched.
func (m *MemoryStore) PutBatch(_ context.Context, userID string, blobs ...Blob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range blobs {
		if err := m.putErr[b.Collection]; err != nil {
			return err
		}
	}
	for _, b := range blobs {
		m.blobs[Key("", b.Collection, userID)] = bytes.Clone(b.Data)
	}
	m.writes++
	return nil
}
