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

package nodes

import (
	"context"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// DirectoryMerger merges an arbitrary number of Files inputs into one
// tree. Inputs are processed in ascending input-name order; the first
// writer to a given path wins and later writers are dropped silently.
type DirectoryMerger struct {
	id string
}

func NewDirectoryMerger(id string) *DirectoryMerger { return &DirectoryMerger{id: id} }

func (n *DirectoryMerger) ID() string { return n.id }

func (n *DirectoryMerger) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	names := variadicNames(inputs)
	b := workflow.NewBuilder(workflow.NewFileTree())
	for _, name := range names {
		art, err := recv(n.id, name, inputs[name])
		if err != nil {
			return err
		}
		tree := art.AsFiles().Tree
		for _, p := range tree.Paths() {
			if b.Has(p) {
				continue
			}
			entry, _ := tree.Get(p)
			b.Insert(p, entry)
		}
	}
	outputs["default"].Publish(workflow.FilesArtifact(workflow.Files{Tree: b.Build(), Store: rc.Store}))
	return nil
}

// ModMerger merges an arbitrary number of ResolvedMods inputs, keyed by
// mod name, with the same ascending-input-name, first-writer-wins
// tie-break as DirectoryMerger.
type ModMerger struct {
	id string
}

func NewModMerger(id string) *ModMerger { return &ModMerger{id: id} }

func (n *ModMerger) ID() string { return n.id }

func (n *ModMerger) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	names := variadicNames(inputs)
	seen := map[string]bool{}
	var merged []workflow.ResolvedMod
	for _, name := range names {
		art, err := recv(n.id, name, inputs[name])
		if err != nil {
			return err
		}
		for _, m := range art.AsResolvedMods() {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			merged = append(merged, m)
		}
	}
	outputs["default"].Publish(workflow.ResolvedModsArtifact(merged))
	return nil
}
