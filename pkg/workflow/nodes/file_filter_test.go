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

	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

func TestFileFilterPartitionsOnGlob(t *testing.T) {
	store := workflow.NewContentStore()
	filesArt := filesOf(t, store,
		"config/mod1.toml",
		"config/sub/mod2.toml",
		"mods/jei.jar",
		"README.md",
	)
	patternArt := workflow.ListArtifact([]string{"config/**"})

	values := map[string]workflow.Artifact{"files": filesArt, "pattern": patternArt}
	_, inputs := wireInputs(t, values)

	n := NewFileFilter("filter")
	outC := workflow.NewContainer()
	outC.Register("filter", "default")
	outC.Register("filter", "inverse")
	matchedRecv, _ := outC.Subscribe("filter", "default")
	inverseRecv, _ := outC.Subscribe("filter", "inverse")
	matchedSender, _ := outC.GetSender("filter", "default")
	inverseSender, _ := outC.GetSender("filter", "inverse")

	rc := &workflow.RunContext{Store: store, Workpool: workpool.New()}
	outputs := map[string]workflow.Sender{"default": matchedSender, "inverse": inverseSender}
	if err := n.Start(context.Background(), rc, inputs, outputs); err != nil {
		t.Fatalf("Start: %v", err)
	}

	matchedArt, ok := matchedRecv.Recv()
	if !ok {
		t.Fatal("expected a published default value")
	}
	inverseArt, ok := inverseRecv.Recv()
	if !ok {
		t.Fatal("expected a published inverse value")
	}

	matched := matchedArt.AsFiles().Tree
	inverse := inverseArt.AsFiles().Tree

	if matched.Len() != 2 {
		t.Errorf("matched.Len() = %d, want 2", matched.Len())
	}
	if inverse.Len() != 2 {
		t.Errorf("inverse.Len() = %d, want 2", inverse.Len())
	}
	if _, ok := matched.Get(workflow.MustFilePath("config/mod1.toml")); !ok {
		t.Error("expected config/mod1.toml in matched")
	}
	if _, ok := matched.Get(workflow.MustFilePath("config/sub/mod2.toml")); !ok {
		t.Error("expected config/sub/mod2.toml in matched (recursive **)")
	}
	if _, ok := inverse.Get(workflow.MustFilePath("mods/jei.jar")); !ok {
		t.Error("expected mods/jei.jar in inverse")
	}
	if _, ok := inverse.Get(workflow.MustFilePath("README.md")); !ok {
		t.Error("expected README.md in inverse")
	}
}

func TestFileFilterEmptyPatternsMatchesNothing(t *testing.T) {
	store := workflow.NewContentStore()
	filesArt := filesOf(t, store, "a.txt", "b.txt")
	values := map[string]workflow.Artifact{"files": filesArt, "pattern": workflow.ListArtifact(nil)}
	_, inputs := wireInputs(t, values)

	n := NewFileFilter("filter")
	outC := workflow.NewContainer()
	outC.Register("filter", "default")
	outC.Register("filter", "inverse")
	matchedRecv, _ := outC.Subscribe("filter", "default")
	inverseRecv, _ := outC.Subscribe("filter", "inverse")
	matchedSender, _ := outC.GetSender("filter", "default")
	inverseSender, _ := outC.GetSender("filter", "inverse")

	rc := &workflow.RunContext{Store: store, Workpool: workpool.New()}
	outputs := map[string]workflow.Sender{"default": matchedSender, "inverse": inverseSender}
	if err := n.Start(context.Background(), rc, inputs, outputs); err != nil {
		t.Fatalf("Start: %v", err)
	}

	matchedArt, _ := matchedRecv.Recv()
	inverseArt, _ := inverseRecv.Recv()
	if matchedArt.AsFiles().Tree.Len() != 0 {
		t.Error("expected no matches with an empty pattern list")
	}
	if inverseArt.AsFiles().Tree.Len() != 2 {
		t.Error("expected everything to land in inverse with an empty pattern list")
	}
}
