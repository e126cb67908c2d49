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

package graph

import (
	"strings"
	"testing"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

func TestLoadMinimalTextPipeline(t *testing.T) {
	yaml := `
nodes:
  - id: greeting
    value: "hello, world"
  - source: greeting
    filename: greeting.txt
`
	g, err := Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Runnables) != 2 {
		t.Fatalf("len(Runnables) = %d, want 2", len(g.Runnables))
	}
}

func TestLoadRejectsCycle(t *testing.T) {
	yaml := `
nodes:
  - id: a
    kind: FilePicker
    input:
      files: b::default
      path: b::default
  - id: b
    kind: FilePicker
    input:
      files: a::default
      path: a::default
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected a cycle-detection error, got nil")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("error = %v, want it to mention a cycle", err)
	}
}

func TestLoadRejectsSelfLoop(t *testing.T) {
	yaml := `
nodes:
  - id: a
    kind: DirectoryMerger
    input:
      left: a::default
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected a cycle-detection error for a self-loop, got nil")
	}
}

func TestLoadRejectsVariantMismatch(t *testing.T) {
	yaml := `
nodes:
  - id: text_src
    value: "not a file tree"
  - id: merge
    kind: DirectoryMerger
    input:
      left: text_src::default
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected a variant mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "variant") {
		t.Fatalf("error = %v, want it to mention variant", err)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	yaml := `
nodes:
  - id: a
    kind: NotARealKind
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected an unknown-kind error, got nil")
	}
}

func TestLoadRejectsMissingConfigKey(t *testing.T) {
	yaml := `
nodes:
  - id: mods
    value: []
  - id: resolved
    kind: ModResolver
    input:
      mods: mods::default
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected a missing config key error, got nil")
	}
	if !strings.Contains(err.Error(), "minecraft_version") {
		t.Fatalf("error = %v, want it to mention minecraft_version", err)
	}
}

func TestLoadTwoInputMergerWiring(t *testing.T) {
	yaml := `
nodes:
  - id: left_src
    value: "https://example.invalid/left.zip"
  - id: right_src
    value: "https://example.invalid/right.zip"
  - id: left_files
    kind: ArchiveDownloader
    input:
      url: left_src::default
  - id: right_files
    kind: ArchiveDownloader
    input:
      url: right_src::default
  - id: merged
    kind: DirectoryMerger
    input:
      left: left_files::default
      right: right_files::default
  - source: merged
    filename: merged.zip
`
	g, err := Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Runnables) != 6 {
		t.Fatalf("len(Runnables) = %d, want 6", len(g.Runnables))
	}
}

func TestLoadDuplicateIDRejected(t *testing.T) {
	yaml := `
nodes:
  - id: dup
    value: "a"
  - id: dup
    value: "b"
`
	_, err := Load([]byte(yaml))
	if err == nil {
		t.Fatal("expected a duplicate-id error, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("error = %v, want it to mention duplicate", err)
	}
}

// Mods value shape decodes via a sequence of mappings — exercised here so
// decodeValue's Mods branch is covered by the loader, not just the node
// tests.
func TestLoadSourceModsShape(t *testing.T) {
	yaml := `
config:
  minecraft_version: "1.20.1"
  modloader: forge
nodes:
  - id: mods
    value:
      - name: jei
        source: curse
        id: "238222"
        file_id: "123456"
  - id: resolved
    kind: ModResolver
    input:
      mods: mods::default
`
	g, err := Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !g.UsesCurseForge {
		t.Error("expected UsesCurseForge to be true for a curse-sourced mod")
	}
	_ = workflow.VariantMods
}
