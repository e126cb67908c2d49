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

// ModFilter partitions a ResolvedMods list into "default" (mods whose name
// is in the filters list) and "inverse" (everything else).
type ModFilter struct {
	id string
}

func NewModFilter(id string) *ModFilter { return &ModFilter{id: id} }

func (n *ModFilter) ID() string { return n.id }

func (n *ModFilter) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	modsArt, err := recv(n.id, "mods", inputs["mods"])
	if err != nil {
		return err
	}
	filtersArt, err := recv(n.id, "filters", inputs["filters"])
	if err != nil {
		return err
	}
	want := make(map[string]bool)
	for _, name := range filtersArt.AsList() {
		want[name] = true
	}

	var matched, unmatched []workflow.ResolvedMod
	for _, m := range modsArt.AsResolvedMods() {
		if want[m.Name] {
			matched = append(matched, m)
		} else {
			unmatched = append(unmatched, m)
		}
	}
	outputs["default"].Publish(workflow.ResolvedModsArtifact(matched))
	outputs["inverse"].Publish(workflow.ResolvedModsArtifact(unmatched))
	return nil
}
