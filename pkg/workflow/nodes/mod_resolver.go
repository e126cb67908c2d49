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

// ModResolver turns an unresolved Mods list into ResolvedMods, using the
// run's ModSource capability and resolution cache. It reads
// minecraft_version and modloader from Config.
type ModResolver struct {
	id string
}

func NewModResolver(id string) *ModResolver { return &ModResolver{id: id} }

func (n *ModResolver) ID() string { return n.id }

func (n *ModResolver) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	modsArt, err := recv(n.id, "mods", inputs["mods"])
	if err != nil {
		return err
	}
	mcVersion, _ := rc.Config.Get("minecraft_version")
	modloader, _ := rc.Config.Get("modloader")

	resolved := make([]workflow.ResolvedMod, 0, len(modsArt.AsMods()))
	for _, m := range modsArt.AsMods() {
		rm, err := resolveOne(ctx, rc, m, mcVersion, modloader)
		if err != nil {
			return workflow.WrapNode(workflow.NodeError, n.id, err)
		}
		resolved = append(resolved, rm)
	}
	outputs["default"].Publish(workflow.ResolvedModsArtifact(resolved))
	return nil
}

// resolveOne resolves a single Mod, consulting the cache first for
// Curse/Modrinth mods. URL mods need no network round trip: their
// ResolvedMod is built directly from Location/Filename, and they are
// never cached (the cache's key space is keyed by Source, and url mods
// carry no upstream identity worth memoizing).
func resolveOne(ctx context.Context, rc *workflow.RunContext, m workflow.Mod, mcVersion, modloader string) (workflow.ResolvedMod, error) {
	if m.Source == workflow.SourceURL {
		return workflow.ResolvedMod{
			Name:        m.Name,
			Source:      workflow.SourceURL,
			DownloadURL: m.Location,
			Filename:    m.Filename,
			Required:    m.RequiredOrDefault(),
			Default:     m.DefaultOrDefault(),
			Side:        m.SideOrDefault(),
		}, nil
	}

	key := workflow.CacheKey{
		Source:       m.Source,
		Name:         m.Name,
		FileID:       m.FileID,
		MinecraftVer: mcVersion,
		Modloader:    modloader,
	}
	if rc.Cache != nil {
		if cached, ok, err := rc.Cache.Get(ctx, key); err != nil {
			return workflow.ResolvedMod{}, err
		} else if ok {
			return applyModFields(cached, m), nil
		}
	}

	req := workflow.ResolveRequest{
		Source:       m.Source,
		Name:         m.Name,
		ProjectID:    m.ID,
		FileID:       m.FileID,
		MinecraftVer: mcVersion,
		Modloader:    modloader,
	}
	rm, err := rc.ModSource.Resolve(ctx, req)
	if err != nil {
		return workflow.ResolvedMod{}, err
	}
	if rc.Cache != nil {
		if err := rc.Cache.Put(ctx, key, rm); err != nil {
			return workflow.ResolvedMod{}, err
		}
	}
	return applyModFields(rm, m), nil
}

// applyModFields layers the Mod's own side/required/default onto a
// resolved metadata record, since those three fields are per-workflow
// intent, not upstream-provided data, and must survive a cache hit
// unchanged from what this particular Mod entry declared.
func applyModFields(rm workflow.ResolvedMod, m workflow.Mod) workflow.ResolvedMod {
	rm.Name = m.Name
	rm.Required = m.RequiredOrDefault()
	rm.Default = m.DefaultOrDefault()
	rm.Side = m.SideOrDefault()
	return rm
}
