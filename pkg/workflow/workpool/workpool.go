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

// Package workpool bounds CPU-heavy work (content hashing, glob matching)
// to GOMAXPROCS goroutines so a pathologically large file tree doesn't
// monopolize the scheduler's goroutines disproportionately to the number
// of cores actually available.
package workpool

import "runtime"

// Pool is a fixed-size worker pool. The zero value is not usable; build
// one with New.
type Pool struct {
	sem chan struct{}
}

// New returns a Pool sized to runtime.GOMAXPROCS(0).
func New() *Pool {
	return &Pool{sem: make(chan struct{}, runtime.GOMAXPROCS(0))}
}

// Do runs fn on the pool, blocking the caller until a worker slot is free
// and fn has returned. Callers that don't need the result concurrently
// with other work still benefit: Do lets at most GOMAXPROCS of however
// many goroutines call it simultaneously run their CPU-bound work at
// once, instead of letting them all run in parallel unbounded.
func (p *Pool) Do(fn func()) {
	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	fn()
}
