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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

// wireInputs builds a Container with one producer output per name->Artifact
// pair, publishes each immediately, and returns the Receivers a node under
// test can consume — the minimal harness needed to exercise a Node.Start
// without a full graph.Load pipeline.
func wireInputs(t *testing.T, values map[string]workflow.Artifact) (*workflow.Container, map[string]workflow.Receiver) {
	t.Helper()
	c := workflow.NewContainer()
	for name := range values {
		c.Register("producer", name)
	}
	inputs := make(map[string]workflow.Receiver, len(values))
	for name := range values {
		r, err := c.Subscribe("producer", name)
		if err != nil {
			t.Fatalf("Subscribe(%q): %v", name, err)
		}
		inputs[name] = r
	}
	for name, val := range values {
		s, err := c.GetSender("producer", name)
		if err != nil {
			t.Fatalf("GetSender(%q): %v", name, err)
		}
		s.Publish(val)
	}
	return c, inputs
}

func filesOf(t *testing.T, store *workflow.ContentStore, paths ...string) workflow.Artifact {
	t.Helper()
	b := workflow.NewBuilder(workflow.NewFileTree())
	for _, p := range paths {
		hash := store.Put([]byte(p))
		b.Insert(workflow.MustFilePath(p), workflow.FileEntry{Hash: hash})
	}
	return workflow.FilesArtifact(workflow.Files{Tree: b.Build(), Store: store})
}

func TestDirectoryMergerFirstWriterWins(t *testing.T) {
	store := workflow.NewContentStore()
	// "a" publishes config/shared.toml with content "a", "b" publishes the
	// same path with content "b"; ascending input-name order means "a"
	// should win.
	bBuilder := workflow.NewBuilder(workflow.NewFileTree())
	bBuilder.Insert(workflow.MustFilePath("config/shared.toml"), workflow.FileEntry{Hash: store.Put([]byte("b"))})
	bBuilder.Insert(workflow.MustFilePath("only-in-b.txt"), workflow.FileEntry{Hash: store.Put([]byte("only-b"))})

	aBuilder := workflow.NewBuilder(workflow.NewFileTree())
	aBuilder.Insert(workflow.MustFilePath("config/shared.toml"), workflow.FileEntry{Hash: store.Put([]byte("a"))})

	values := map[string]workflow.Artifact{
		"a": workflow.FilesArtifact(workflow.Files{Tree: aBuilder.Build(), Store: store}),
		"b": workflow.FilesArtifact(workflow.Files{Tree: bBuilder.Build(), Store: store}),
	}
	_, inputs := wireInputs(t, values)

	n := NewDirectoryMerger("merge")
	outC := workflow.NewContainer()
	outC.Register("merge", "default")
	outRecv, _ := outC.Subscribe("merge", "default")
	outSender, _ := outC.GetSender("merge", "default")

	rc := &workflow.RunContext{Store: store, Workpool: workpool.New()}
	if err := n.Start(context.Background(), rc, inputs, map[string]workflow.Sender{"default": outSender}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	art, ok := outRecv.Recv()
	if !ok {
		t.Fatal("expected a published value")
	}
	tree := art.AsFiles().Tree
	entry, ok := tree.Get(workflow.MustFilePath("config/shared.toml"))
	if !ok {
		t.Fatal("expected config/shared.toml to be present")
	}
	wantHash := workflow.HashBytes([]byte("a"))
	if entry.Hash != wantHash {
		t.Errorf("config/shared.toml hash = %s, want %s (input \"a\" should win)", entry.Hash, wantHash)
	}
	if _, ok := tree.Get(workflow.MustFilePath("only-in-b.txt")); !ok {
		t.Error("expected only-in-b.txt to survive the merge")
	}
	if tree.Len() != 2 {
		t.Errorf("tree.Len() = %d, want 2", tree.Len())
	}
}

func TestModMergerFirstWriterWins(t *testing.T) {
	values := map[string]workflow.Artifact{
		"a": workflow.ResolvedModsArtifact([]workflow.ResolvedMod{{Name: "jei", DownloadURL: "a-url"}}),
		"b": workflow.ResolvedModsArtifact([]workflow.ResolvedMod{
			{Name: "jei", DownloadURL: "b-url"},
			{Name: "waila", DownloadURL: "b-url-2"},
		}),
	}
	_, inputs := wireInputs(t, values)

	n := NewModMerger("merge")
	outC := workflow.NewContainer()
	outC.Register("merge", "default")
	outRecv, _ := outC.Subscribe("merge", "default")
	outSender, _ := outC.GetSender("merge", "default")

	rc := &workflow.RunContext{Workpool: workpool.New()}
	if err := n.Start(context.Background(), rc, inputs, map[string]workflow.Sender{"default": outSender}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	art, ok := outRecv.Recv()
	if !ok {
		t.Fatal("expected a published value")
	}
	mods := art.AsResolvedMods()
	if len(mods) != 2 {
		t.Fatalf("len(mods) = %d, want 2", len(mods))
	}
	byName := map[string]workflow.ResolvedMod{}
	for _, m := range mods {
		byName[m.Name] = m
	}
	want := map[string]string{"jei": "a-url", "waila": "b-url-2"}
	got := map[string]string{"jei": byName["jei"].DownloadURL, "waila": byName["waila"].DownloadURL}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DownloadURL by name mismatch (-want +got):\n%s", diff)
	}
}
