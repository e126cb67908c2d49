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

// FileFilter partitions a Files input into "default" (paths matching at
// least one glob pattern) and "inverse" (everything else).
type FileFilter struct {
	id string
}

func NewFileFilter(id string) *FileFilter { return &FileFilter{id: id} }

func (n *FileFilter) ID() string { return n.id }

func (n *FileFilter) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	filesArt, err := recv(n.id, "files", inputs["files"])
	if err != nil {
		return err
	}
	patArt, err := recv(n.id, "pattern", inputs["pattern"])
	if err != nil {
		return err
	}
	patterns := patArt.AsList()
	tree := filesArt.AsFiles().Tree

	matched := workflow.NewBuilder(workflow.NewFileTree())
	unmatched := workflow.NewBuilder(workflow.NewFileTree())
	rc.Workpool.Do(func() {
		for _, p := range tree.Paths() {
			entry, _ := tree.Get(p)
			if len(patterns) > 0 && anyGlobMatches(patterns, p.String()) {
				matched.Insert(p, entry)
			} else {
				unmatched.Insert(p, entry)
			}
		}
	})

	store := filesArt.AsFiles().Store
	outputs["default"].Publish(workflow.FilesArtifact(workflow.Files{Tree: matched.Build(), Store: store}))
	outputs["inverse"].Publish(workflow.FilesArtifact(workflow.Files{Tree: unmatched.Build(), Store: store}))
	return nil
}
