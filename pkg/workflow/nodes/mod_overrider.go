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

// ModOverrider applies per-mod overrides (matched by name) onto a
// ResolvedMods list. Side is always taken from the override, substituting
// "both" when the override doesn't specify one (a preserved quirk, see
// SPEC_FULL.md §9); Required/Default are applied only when present on the
// override. The override's own Source is ignored. Mods with no matching
// override pass through unchanged.
type ModOverrider struct {
	id string
}

func NewModOverrider(id string) *ModOverrider { return &ModOverrider{id: id} }

func (n *ModOverrider) ID() string { return n.id }

func (n *ModOverrider) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	modsArt, err := recv(n.id, "mods", inputs["mods"])
	if err != nil {
		return err
	}
	overridesArt, err := recv(n.id, "overrides", inputs["overrides"])
	if err != nil {
		return err
	}

	overrideByName := make(map[string]workflow.Mod)
	for _, o := range overridesArt.AsMods() {
		overrideByName[o.Name] = o
	}

	mods := modsArt.AsResolvedMods()
	out := make([]workflow.ResolvedMod, len(mods))
	for i, m := range mods {
		o, ok := overrideByName[m.Name]
		if !ok {
			out[i] = m
			continue
		}
		m.Side = o.SideOrDefault()
		if o.Required != nil {
			m.Required = *o.Required
		}
		if o.Default != nil {
			m.Default = *o.Default
		}
		out[i] = m
	}
	outputs["default"].Publish(workflow.ResolvedModsArtifact(out))
	return nil
}
