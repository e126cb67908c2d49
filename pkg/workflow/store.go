// Copyright 2026 mmmm contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

// ContentStore is a process-local, in-memory, content-addressed blob
// store shared by every node in a run. It is created once at run start and
// dropped at run end; there is no on-disk backend (see Non-goals).
type ContentStore struct {
	mu    sync.RWMutex
	blobs map[ContentHash][]byte
	pool  *workpool.Pool
}

// NewContentStore returns an empty store.
func NewContentStore() *ContentStore {
	return &ContentStore{blobs: make(map[ContentHash][]byte), pool: workpool.New()}
}

// Put hashes b and inserts it, returning its ContentHash. Re-inserting the
// same bytes is a no-op: Put always returns the same hash for the same
// bytes, and the second call does not duplicate storage. Hashing runs
// through a bounded worker pool so many nodes hashing large blobs at once
// don't oversubscribe the CPU beyond GOMAXPROCS.
func (s *ContentStore) Put(b []byte) ContentHash {
	var h ContentHash
	s.pool.Do(func() { h = HashBytes(b) })
	s.mu.RLock()
	_, exists := s.blobs[h]
	s.mu.RUnlock()
	if exists {
		return h
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blobs[h]; !exists {
		cp := make([]byte, len(b))
		copy(cp, b)
		s.blobs[h] = cp
	}
	return h
}

// Get retrieves the bytes for h, failing if absent.
func (s *ContentStore) Get(h ContentHash) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[h]
	if !ok {
		return nil, errors.Errorf("content store: no blob for hash %s", h)
	}
	return b, nil
}

// Len reports the number of distinct blobs currently stored. Used by
// tests and diagnostics only.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
