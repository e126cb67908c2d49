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

// Package nodes holds the node-kind catalogue: one concrete implementation
// of workflow.Node per kind in the registry, plus the registry table
// itself. Node bodies are intentionally thin — the interesting mechanics
// (channel fan-out, scheduling, graph validation) live in pkg/workflow and
// pkg/workflow/graph and pkg/workflow/scheduler; this package is where each kind's own
// little bit of domain logic (glob matching, archive inflation, YAML/JSON
// rendering) lives.
package nodes

import (
	"sort"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// recv awaits one required input, turning a closed-without-sending channel
// into the DependencyFailed error the spec requires.
func recv(nodeID, name string, r workflow.Receiver) (workflow.Artifact, error) {
	v, ok := r.Recv()
	if !ok {
		return workflow.Artifact{}, workflow.DependencyFailure(nodeID, name)
	}
	return v, nil
}

// variadicNames returns the keys of a variadic input map, sorted
// ascending, so callers get the deterministic iteration order the merger
// tie-break rule depends on.
func variadicNames(inputs map[string]workflow.Receiver, reserved ...string) []string {
	skip := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		skip[r] = true
	}
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		if !skip[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
