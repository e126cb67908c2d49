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

// FileEntry is the per-path metadata a FileTree carries alongside the
// content hash: whether the file is executable, and an optional cached
// size so callers don't need to round-trip through the ContentStore just
// to report byte counts.
type FileEntry struct {
	Hash       ContentHash
	Executable bool
	Size       int64
}

// FileTree maps FilePath to FileEntry. The zero value is an empty tree.
// FileTree is immutable once published on a channel; producers build a new
// tree (directly, or via a Builder) rather than mutate a received one.
// Copying a FileTree value is O(1) rather than O(entries): copies share
// the same backing map, which nothing writes to after Build, and
// NewBuilder copies that map before any change is made.
type FileTree struct {
	entries map[string]treeEntry
}

type treeEntry struct {
	path  FilePath
	entry FileEntry
}

// NewFileTree returns an empty tree.
func NewFileTree() FileTree {
	return FileTree{entries: map[string]treeEntry{}}
}

// Get looks up the entry at p.
func (t FileTree) Get(p FilePath) (FileEntry, bool) {
	if t.entries == nil {
		return FileEntry{}, false
	}
	te, ok := t.entries[p.String()]
	return te.entry, ok
}

// Len returns the number of entries.
func (t FileTree) Len() int { return len(t.entries) }

// Paths returns every path in the tree, sorted.
func (t FileTree) Paths() []FilePath {
	out := make([]FilePath, 0, len(t.entries))
	for _, te := range t.entries {
		out = append(out, te.path)
	}
	SortFilePaths(out)
	return out
}

// Builder constructs a new FileTree via Insert/Remove/Rename/Merge without
// mutating the tree(s) it started from.
type Builder struct {
	entries map[string]treeEntry
}

// NewBuilder starts a Builder from an existing tree (or the empty tree, if
// base is the zero value). The base tree is never mutated: NewBuilder
// copies base's map up front.
func NewBuilder(base FileTree) *Builder {
	b := &Builder{entries: make(map[string]treeEntry, len(base.entries))}
	for k, v := range base.entries {
		b.entries[k] = v
	}
	return b
}

// Insert adds or overwrites the entry at p.
func (b *Builder) Insert(p FilePath, e FileEntry) {
	b.entries[p.String()] = treeEntry{path: p, entry: e}
}

// Remove deletes the entry at p, if present.
func (b *Builder) Remove(p FilePath) {
	delete(b.entries, p.String())
}

// Rename moves the entry at from to to, if present. A no-op if from is
// absent.
func (b *Builder) Rename(from, to FilePath) {
	te, ok := b.entries[from.String()]
	if !ok {
		return
	}
	delete(b.entries, from.String())
	b.entries[to.String()] = treeEntry{path: to, entry: te.entry}
}

// Merge copies every entry of other into b, overwriting on conflict.
// DirectoryMerger does not use this directly — it needs first-writer-wins,
// so it loops with Has/Insert itself — but Merge is the plain
// last-writer-wins building block other callers can reach for.
func (b *Builder) Merge(other FileTree) {
	for k, v := range other.entries {
		b.entries[k] = v
	}
}

// Has reports whether p is already present, for callers implementing
// first-writer-wins merges.
func (b *Builder) Has(p FilePath) bool {
	_, ok := b.entries[p.String()]
	return ok
}

// Build finalizes the Builder into an immutable FileTree. The Builder must
// not be used afterward.
func (b *Builder) Build() FileTree {
	return FileTree{entries: b.entries}
}
