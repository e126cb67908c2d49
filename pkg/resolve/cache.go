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

// Package resolve provides the concrete collaborators pkg/workflow's
// ModResolver/CurseResolver node kinds depend on through narrow
// interfaces: a persistent resolution cache and HTTP-backed ModSources.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/peterbourgon/diskv"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

const shardCount = 32

// DiskCache is a persistent ResolutionCache backed by diskv, with a
// 32-way sharded mutex so two nodes resolving different mods don't
// serialize on a single global lock, while two nodes resolving the exact
// same (source, name, file, version, loader) key do — per §4.5's keying
// and locking semantics.
type DiskCache struct {
	dv     *diskv.Diskv
	shards [shardCount]sync.Mutex
}

// cacheEntry is the on-disk JSON envelope: the resolved metadata plus the
// time it was written, kept for future eviction policies even though
// nothing currently reads Timestamp back out to expire entries.
type cacheEntry struct {
	Mod       workflow.ResolvedMod `json:"mod"`
	Timestamp int64                `json:"timestamp"`
}

// NewDiskCache returns a DiskCache rooted at baseDir, creating it if
// absent. Keys are flattened into a single-level directory: diskv's
// Transform callback returns no subdirectories, since key strings are
// already short, fixed-shape, and filesystem-safe (hex digests).
func NewDiskCache(baseDir string) *DiskCache {
	dv := diskv.New(diskv.Options{
		BasePath:     baseDir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
	})
	return &DiskCache{dv: dv}
}

func (c *DiskCache) shardFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.shards[h.Sum32()%shardCount]
}

func keyString(key workflow.CacheKey) string {
	raw := fmt.Sprintf("%s_%s_%s_%s_%s", key.Source, key.Name, key.FileID, key.MinecraftVer, key.Modloader)
	return workflow.HashBytes([]byte(raw)).String()
}

// Get returns the cached ResolvedMod for key, or ok==false on a miss.
func (c *DiskCache) Get(ctx context.Context, key workflow.CacheKey) (workflow.ResolvedMod, bool, error) {
	ks := keyString(key)
	mu := c.shardFor(ks)
	mu.Lock()
	defer mu.Unlock()

	if !c.dv.Has(ks) {
		return workflow.ResolvedMod{}, false, nil
	}
	raw, err := c.dv.Read(ks)
	if err != nil {
		return workflow.ResolvedMod{}, false, err
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return workflow.ResolvedMod{}, false, err
	}
	return entry.Mod, true, nil
}

// Put writes mod under key, overwriting any prior value.
func (c *DiskCache) Put(ctx context.Context, key workflow.CacheKey, mod workflow.ResolvedMod) error {
	ks := keyString(key)
	mu := c.shardFor(ks)
	mu.Lock()
	defer mu.Unlock()

	raw, err := json.Marshal(cacheEntry{Mod: mod, Timestamp: time.Now().Unix()})
	if err != nil {
		return err
	}
	return c.dv.Write(ks, raw)
}

// Clear erases every cached entry, backing the CLI's --clear-cache flag.
func (c *DiskCache) Clear() error {
	return c.dv.EraseAll()
}
