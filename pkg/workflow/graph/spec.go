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

// Package graph loads a workflow YAML document into a validated,
// runnable node set wired to a workflow.Container.
package graph

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// rawSpec mirrors the YAML document's top level: a config map and a node
// list whose entries are one of three shapes (§6).
type rawSpec struct {
	Config map[string]string `yaml:"config"`
	Nodes  []rawNode         `yaml:"nodes"`
}

// rawNode captures every field any of the three node shapes may carry.
// Which shape it is gets decided in classify(), by field presence, not by
// a discriminant tag the YAML doesn't have.
type rawNode struct {
	ID       string            `yaml:"id"`
	Kind     string            `yaml:"kind"`
	Value    yaml.Node         `yaml:"value"`
	Input    map[string]string `yaml:"input"`
	Source   string            `yaml:"source"`
	Filename string            `yaml:"filename"`

	hasValue bool
	line     int
}

func (n *rawNode) UnmarshalYAML(value *yaml.Node) error {
	type plain rawNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = rawNode(p)
	n.line = value.Line
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "value" {
			n.hasValue = true
		}
	}
	return nil
}

type nodeShape int

const (
	shapeSource nodeShape = iota
	shapeIntermediate
	shapeOutput
)

func (n rawNode) classify() nodeShape {
	if n.Source != "" && n.ID == "" && n.Kind == "" {
		return shapeOutput
	}
	if n.Kind == "" {
		return shapeSource
	}
	return shapeIntermediate
}

// rawMod mirrors the Mod object YAML schema (§6).
type rawMod struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	ID       string `yaml:"id"`
	FileID   string `yaml:"file_id"`
	Required *bool  `yaml:"required"`
	Default  *bool  `yaml:"default"`
	Side     string `yaml:"side"`
	Location string `yaml:"location"`
	Filename string `yaml:"filename"`
}

func (m rawMod) toMod() workflow.Mod {
	return workflow.Mod{
		Name:     m.Name,
		Source:   workflow.Source(m.Source),
		ID:       m.ID,
		FileID:   m.FileID,
		Required: m.Required,
		Default:  m.Default,
		Side:     workflow.Side(m.Side),
		Location: m.Location,
		Filename: m.Filename,
	}
}

// parseChannelRef splits "target_id[::output]" into its parts, defaulting
// output to "default" when "::" is absent.
func parseChannelRef(ref string) (nodeID, output string) {
	if idx := strings.Index(ref, "::"); idx >= 0 {
		return ref[:idx], ref[idx+2:]
	}
	return ref, "default"
}

// decodeValue interprets a Source node's "value" YAML node into an
// Artifact, following §6: a scalar string is Text, a sequence of scalars
// is List, a sequence of mappings is Mods.
func decodeValue(node yaml.Node) (workflow.Artifact, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return workflow.Artifact{}, err
		}
		return workflow.TextArtifact(s), nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return workflow.ListArtifact(nil), nil
		}
		if node.Content[0].Kind == yaml.MappingNode {
			var raws []rawMod
			if err := node.Decode(&raws); err != nil {
				return workflow.Artifact{}, err
			}
			mods := make([]workflow.Mod, len(raws))
			for i, r := range raws {
				mods[i] = r.toMod()
			}
			return workflow.ModsArtifact(mods), nil
		}
		var items []string
		if err := node.Decode(&items); err != nil {
			return workflow.Artifact{}, err
		}
		return workflow.ListArtifact(items), nil
	default:
		return workflow.Artifact{}, fmt.Errorf("unsupported value shape at line %d", node.Line)
	}
}
