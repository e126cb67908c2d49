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

package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/graph"
	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

func TestRunMinimalTextPipeline(t *testing.T) {
	yaml := `
nodes:
  - id: greeting
    value: "hello from mmmm"
  - source: greeting
    filename: greeting.txt
`
	g, err := graph.Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := t.TempDir()
	rc := &workflow.RunContext{
		Store:     workflow.NewContentStore(),
		Config:    g.Config,
		OutputDir: dir,
		Workpool:  workpool.New(),
	}

	result := Run(context.Background(), g, rc)
	if err := result.Err(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "greeting.txt"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "hello from mmmm" {
		t.Fatalf("output content = %q, want %q", got, "hello from mmmm")
	}
}

// TestRunOverrideSemantics exercises ModResolver (url source, no network
// needed) -> ModOverrider -> ModWriter -> Output end to end, checking that
// the override's side wins even though the override has no "required"
// field set (ModOverrider only overwrites Required/Default when present).
func TestRunOverrideSemantics(t *testing.T) {
	yaml := `
config:
  minecraft_version: "1.20.1"
  modloader: forge
nodes:
  - id: mods
    value:
      - name: jei
        source: url
        location: https://example.invalid/jei.jar
        filename: jei.jar
        required: false
  - id: overrides
    value:
      - name: jei
        side: client
  - id: resolved
    kind: ModResolver
    input:
      mods: mods::default
  - id: overridden
    kind: ModOverrider
    input:
      mods: resolved::default
      overrides: overrides::default
  - id: written
    kind: ModWriter
    input:
      resolved: overridden::default
  - source: written::json
    filename: mods.json
`
	g, err := graph.Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := t.TempDir()
	rc := &workflow.RunContext{
		Store:     workflow.NewContentStore(),
		Config:    g.Config,
		OutputDir: dir,
		Workpool:  workpool.New(),
	}

	result := Run(context.Background(), g, rc)
	if err := result.Err(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "mods.json"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(got)
	if !strings.Contains(text, `"side": "client"`) {
		t.Errorf("output %s, want side overridden to client", text)
	}
	if !strings.Contains(text, `"required": false`) {
		t.Errorf("output %s, want required to remain false (override didn't set it)", text)
	}
}

func TestRunDoesNotCancelSiblingsOnFailure(t *testing.T) {
	// Every input must resolve at load time, so to exercise a runtime
	// failure "picked" (a FilePicker) looks up a path that doesn't exist in
	// its Files tree.
	yaml := `
nodes:
  - id: files
    kind: DirectoryMerger
  - id: path
    value: "does/not/exist.txt"
  - id: picked
    kind: FilePicker
    input:
      files: files::default
      path: path::default
  - id: ok_text
    value: "still runs"
  - source: ok_text
    filename: ok.txt
`
	g, err := graph.Load([]byte(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := t.TempDir()
	rc := &workflow.RunContext{
		Store:     workflow.NewContentStore(),
		Config:    g.Config,
		OutputDir: dir,
		Workpool:  workpool.New(),
	}

	result := Run(context.Background(), g, rc)
	if result.Err() == nil {
		t.Fatal("expected FilePicker's missing-path error to surface")
	}
	if _, err := os.ReadFile(filepath.Join(dir, "ok.txt")); err != nil {
		t.Fatalf("sibling node's output should still have been written: %v", err)
	}
}
