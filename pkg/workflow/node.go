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
	"context"

	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

// Config is the process-wide, string-keyed config map. It is immutable
// once the run starts; RunContext hands out the same map value to every
// node (maps are reference types, but nothing in this package ever writes
// to one after Load returns it).
type Config map[string]string

// Get returns the value for key and whether it was present.
func (c Config) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// RunContext bundles the handles every node needs and that must be shared,
// not duplicated, across the whole run: the ContentStore, the Config, and
// (for node kinds that resolve mods) a resolution cache. It is constructed
// once per invocation; see Design Notes' "Global state" note.
type RunContext struct {
	Store     *ContentStore
	Config    Config
	Cache     ResolutionCache
	ModSource ModSource
	OutputDir string
	Workpool  *workpool.Pool
}

// ModSource is the abstract capability ModResolver and CurseResolver
// depend on to turn mod coordinates into resolved download metadata. Real
// CurseForge/Modrinth API clients are external collaborators (see §1); this
// interface is their seam.
type ModSource interface {
	Resolve(ctx context.Context, req ResolveRequest) (ResolvedMod, error)
}

// ResolveRequest is everything a ModSource needs to resolve one mod.
type ResolveRequest struct {
	Source       Source
	Name         string
	ProjectID    string
	FileID       string
	MinecraftVer string
	Modloader    string
	// Location/Filename are only meaningful for SourceURL, where no
	// network round trip through a ModSource is needed at all (see
	// SPEC_FULL.md §4.2); resolveOne builds URL mods itself and never
	// sets these fields on a request.
	Location string
	Filename string
}

// ResolutionCache is the narrow interface ModResolver/CurseResolver depend
// on, so the workflow package itself doesn't import the diskv-backed
// implementation in pkg/resolve (which would make pkg/workflow depend on a
// concrete storage backend it shouldn't need to know about).
type ResolutionCache interface {
	Get(ctx context.Context, key CacheKey) (ResolvedMod, bool, error)
	Put(ctx context.Context, key CacheKey, mod ResolvedMod) error
}

// CacheKey is the resolution cache's key: (source, name, file id, minecraft
// version, modloader).
type CacheKey struct {
	Source       Source
	Name         string
	FileID       string
	MinecraftVer string
	Modloader    string
}

// InputRef is a resolved `target_id[::output]` reference, attached to a
// node input name.
type InputRef struct {
	NodeID string
	Output string
}

// Node is the capability set every node kind implements, per Design Notes:
// a closed tagged union dispatched statically once the loader has picked a
// concrete kind for a given YAML entry.
type Node interface {
	// ID returns the node's declared identifier.
	ID() string
	// Start runs the node's body: await inputs, execute, publish outputs.
	// On success every output has been Published when it returns; on error
	// it may return without publishing, and the scheduler then Fails every
	// output of that node.
	Start(ctx context.Context, rc *RunContext, inputs map[string]Receiver, outputs map[string]Sender) error
}

// KindSpec is the registry's static description of one node kind: its
// input schema, whether it accepts arbitrary extra inputs of one variant
// (variadic), its fixed output schema, and which config keys it reads.
type KindSpec struct {
	Name       string
	Inputs     map[string]Variant   // required input name -> expected variant
	Variadic   *Variant             // non-nil if extra input names are allowed, and their variant
	Outputs    map[string]Variant
	ConfigKeys []string
	New        func(id string) Node
}
