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

import "github.com/maxwell-lt/mmmm/pkg/workflow"

func variant(v workflow.Variant) *workflow.Variant { return &v }

// Registry returns the node-kind catalogue the graph loader validates and
// constructs against. Source and Output are intentionally absent: their
// schemas are data-dependent (Source's output variant follows its literal
// value's shape; Output's input variant follows whatever it's wired to),
// so the loader handles them as a special case rather than through this
// table — see graph.Load's handling of rawNode.Kind == "" .
func Registry() map[string]workflow.KindSpec {
	return map[string]workflow.KindSpec{
		"archivedownloader": {
			Name:    "ArchiveDownloader",
			Inputs:  map[string]workflow.Variant{"url": workflow.VariantText},
			Outputs: map[string]workflow.Variant{"default": workflow.VariantFiles},
			New:     func(id string) workflow.Node { return NewArchiveDownloader(id) },
		},
		"directorymerger": {
			Name:     "DirectoryMerger",
			Variadic: variant(workflow.VariantFiles),
			Outputs:  map[string]workflow.Variant{"default": workflow.VariantFiles},
			New:      func(id string) workflow.Node { return NewDirectoryMerger(id) },
		},
		"modmerger": {
			Name:     "ModMerger",
			Variadic: variant(workflow.VariantResolvedMods),
			Outputs:  map[string]workflow.Variant{"default": workflow.VariantResolvedMods},
			New:      func(id string) workflow.Node { return NewModMerger(id) },
		},
		"filefilter": {
			Name: "FileFilter",
			Inputs: map[string]workflow.Variant{
				"files":   workflow.VariantFiles,
				"pattern": workflow.VariantList,
			},
			Outputs: map[string]workflow.Variant{
				"default": workflow.VariantFiles,
				"inverse": workflow.VariantFiles,
			},
			New: func(id string) workflow.Node { return NewFileFilter(id) },
		},
		"modresolver": {
			Name:       "ModResolver",
			Inputs:     map[string]workflow.Variant{"mods": workflow.VariantMods},
			Outputs:    map[string]workflow.Variant{"default": workflow.VariantResolvedMods},
			ConfigKeys: []string{"minecraft_version", "modloader"},
			New:        func(id string) workflow.Node { return NewModResolver(id) },
		},
		"modwriter": {
			Name:   "ModWriter",
			Inputs: map[string]workflow.Variant{"resolved": workflow.VariantResolvedMods},
			Outputs: map[string]workflow.Variant{
				"default": workflow.VariantText,
				"json":    workflow.VariantText,
			},
			ConfigKeys: []string{"minecraft_version"},
			New:        func(id string) workflow.Node { return NewModWriter(id) },
		},
		"curseresolver": {
			Name:    "CurseResolver",
			Inputs:  map[string]workflow.Variant{"manifest": workflow.VariantText},
			Outputs: map[string]workflow.Variant{"default": workflow.VariantResolvedMods},
			New:     func(id string) workflow.Node { return NewCurseResolver(id) },
		},
		"filepicker": {
			Name: "FilePicker",
			Inputs: map[string]workflow.Variant{
				"files": workflow.VariantFiles,
				"path":  workflow.VariantText,
			},
			Outputs: map[string]workflow.Variant{"default": workflow.VariantText},
			New:     func(id string) workflow.Node { return NewFilePicker(id) },
		},
		"modoverrider": {
			Name: "ModOverrider",
			Inputs: map[string]workflow.Variant{
				"mods":      workflow.VariantResolvedMods,
				"overrides": workflow.VariantMods,
			},
			Outputs: map[string]workflow.Variant{"default": workflow.VariantResolvedMods},
			New:     func(id string) workflow.Node { return NewModOverrider(id) },
		},
		"modfilter": {
			Name: "ModFilter",
			Inputs: map[string]workflow.Variant{
				"mods":    workflow.VariantResolvedMods,
				"filters": workflow.VariantList,
			},
			Outputs: map[string]workflow.Variant{
				"default": workflow.VariantResolvedMods,
				"inverse": workflow.VariantResolvedMods,
			},
			New: func(id string) workflow.Node { return NewModFilter(id) },
		},
	}
}
