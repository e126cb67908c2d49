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
	"encoding/json"
	"strconv"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// curseManifest mirrors the subset of a CurseForge modpack manifest.json
// this system cares about: the Minecraft/loader pin and the file list.
type curseManifest struct {
	Minecraft struct {
		Version    string `json:"version"`
		ModLoaders []struct {
			ID      string `json:"id"`
			Primary bool   `json:"primary"`
		} `json:"modLoaders"`
	} `json:"minecraft"`
	Files []struct {
		ProjectID int  `json:"projectID"`
		FileID    int  `json:"fileID"`
		Required  bool `json:"required"`
	} `json:"files"`
}

// CurseResolver parses a CurseForge pack manifest and resolves every file
// entry through the run's ModSource/cache, exactly like ModResolver, but
// sourced from a manifest document instead of a literal Mods list.
type CurseResolver struct {
	id string
}

func NewCurseResolver(id string) *CurseResolver { return &CurseResolver{id: id} }

func (n *CurseResolver) ID() string { return n.id }

func (n *CurseResolver) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	textArt, err := recv(n.id, "manifest", inputs["manifest"])
	if err != nil {
		return err
	}

	var manifest curseManifest
	if jerr := json.Unmarshal([]byte(textArt.AsText()), &manifest); jerr != nil {
		return workflow.WrapNode(workflow.DecodeError, n.id, jerr)
	}

	modloader := ""
	for _, ml := range manifest.Minecraft.ModLoaders {
		if ml.Primary {
			modloader = ml.ID
			break
		}
	}

	resolved := make([]workflow.ResolvedMod, 0, len(manifest.Files))
	for _, f := range manifest.Files {
		required := f.Required
		m := workflow.Mod{
			Name:     strconv.Itoa(f.ProjectID),
			Source:   workflow.SourceCurse,
			ID:       strconv.Itoa(f.ProjectID),
			FileID:   strconv.Itoa(f.FileID),
			Required: &required,
		}
		rm, err := resolveOne(ctx, rc, m, manifest.Minecraft.Version, modloader)
		if err != nil {
			return workflow.WrapNode(workflow.NodeError, n.id, err)
		}
		resolved = append(resolved, rm)
	}
	outputs["default"].Publish(workflow.ResolvedModsArtifact(resolved))
	return nil
}
