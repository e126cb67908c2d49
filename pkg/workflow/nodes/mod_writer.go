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
	"fmt"
	"sort"
	"strings"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// ModWriter renders a ResolvedMods list into two deterministic textual
// forms: a canonically formatted Nix attribute set, and a name-sorted
// JSON document. Both carry minecraft_version at the top level.
type ModWriter struct {
	id string
}

func NewModWriter(id string) *ModWriter { return &ModWriter{id: id} }

func (n *ModWriter) ID() string { return n.id }

func (n *ModWriter) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	art, err := recv(n.id, "resolved", inputs["resolved"])
	if err != nil {
		return err
	}
	mods := append([]workflow.ResolvedMod(nil), art.AsResolvedMods()...)
	sort.Slice(mods, func(i, j int) bool { return mods[i].Name < mods[j].Name })

	mcVersion, _ := rc.Config.Get("minecraft_version")

	outputs["default"].Publish(workflow.TextArtifact(renderNix(mcVersion, mods)))
	outputs["json"].Publish(workflow.TextArtifact(renderJSON(mcVersion, mods)))
	return nil
}

type jsonDoc struct {
	MinecraftVersion string                `json:"minecraft_version"`
	Mods             []jsonResolvedModView `json:"mods"`
}

type jsonResolvedModView struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	ProjectID   string `json:"project_id,omitempty"`
	FileID      string `json:"file_id,omitempty"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	Required    bool   `json:"required"`
	Default     bool   `json:"default"`
	Side        string `json:"side"`
}

func renderJSON(mcVersion string, mods []workflow.ResolvedMod) string {
	doc := jsonDoc{MinecraftVersion: mcVersion}
	for _, m := range mods {
		doc.Mods = append(doc.Mods, jsonResolvedModView{
			Name:        m.Name,
			Source:      string(m.Source),
			ProjectID:   m.ProjectID,
			FileID:      m.FileID,
			DownloadURL: m.DownloadURL,
			Filename:    m.Filename,
			FileSize:    m.FileSize,
			Required:    m.Required,
			Default:     m.Default,
			Side:        string(m.Side),
		})
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// MarshalIndent only fails on unsupported types (channels, funcs),
		// none of which jsonDoc contains.
		panic(err)
	}
	return string(b) + "\n"
}

func renderNix(mcVersion string, mods []workflow.ResolvedMod) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	fmt.Fprintf(&sb, "  minecraftVersion = %s;\n", nixString(mcVersion))
	sb.WriteString("  mods = [\n")
	for _, m := range mods {
		sb.WriteString("    {\n")
		fmt.Fprintf(&sb, "      name = %s;\n", nixString(m.Name))
		fmt.Fprintf(&sb, "      source = %s;\n", nixString(string(m.Source)))
		fmt.Fprintf(&sb, "      url = %s;\n", nixString(m.DownloadURL))
		fmt.Fprintf(&sb, "      filename = %s;\n", nixString(m.Filename))
		fmt.Fprintf(&sb, "      size = %d;\n", m.FileSize)
		fmt.Fprintf(&sb, "      required = %s;\n", nixBool(m.Required))
		fmt.Fprintf(&sb, "      default = %s;\n", nixBool(m.Default))
		fmt.Fprintf(&sb, "      side = %s;\n", nixString(string(m.Side)))
		sb.WriteString("    }\n")
	}
	sb.WriteString("  ];\n")
	sb.WriteString("}\n")
	return sb.String()
}

func nixString(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "${", "\\${").Replace(s)
	return `"` + escaped + `"`
}

func nixBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
