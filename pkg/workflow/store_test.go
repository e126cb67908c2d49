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
	"testing"
)

func TestContentStorePutIdempotent(t *testing.T) {
	s := NewContentStore()
	b := []byte("hello world")

	h1 := s.Put(b)
	h2 := s.Put(append([]byte(nil), b...))

	if h1 != h2 {
		t.Fatalf("Put returned different hashes for identical bytes: %s vs %s", h1, h2)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestContentStoreGetRoundTrip(t *testing.T) {
	s := NewContentStore()
	b := []byte("some content")
	h := s.Put(b)

	got, err := s.Get(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(b) {
		t.Fatalf("Get() = %q, want %q", got, b)
	}
}

func TestContentStoreGetMissing(t *testing.T) {
	s := NewContentStore()
	if _, err := s.Get(HashBytes([]byte("never inserted"))); err == nil {
		t.Fatal("expected error for missing hash")
	}
}

func TestContentStoreConcurrentPut(t *testing.T) {
	s := NewContentStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Put([]byte("same bytes every time"))
		}()
	}
	wg.Wait()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after concurrent identical Puts", s.Len())
	}
}
