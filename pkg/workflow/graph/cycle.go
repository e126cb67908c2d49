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

import "sort"

// detectCycle runs Tarjan's strongly-connected-components algorithm over
// the consumer->producer digraph implied by every entry's inputs. It
// returns the member ids of the first non-trivial SCC found (or a single
// self-referencing node), or nil if the graph is acyclic. Edges that
// resolveAndCheck already flagged as dangling (unknown target) are simply
// skipped here — stage 5 only needs to run over edges that exist.
func detectCycle(entries map[string]*entry, order []string) []string {
	type tstate struct {
		index, low int
		onStack    bool
	}
	index := 0
	state := make(map[string]*tstate)
	var stack []string
	var sccs [][]string

	var edgesOf func(id string) []string
	edgesOf = func(id string) []string {
		e := entries[id]
		var out []string
		for _, ref := range e.inputs {
			if _, ok := entries[ref.NodeID]; ok {
				out = append(out, ref.NodeID)
			}
		}
		sort.Strings(out)
		return out
	}

	var strongconnect func(v string)
	strongconnect = func(v string) {
		state[v] = &tstate{index: index, low: index, onStack: true}
		index++
		stack = append(stack, v)

		for _, w := range edgesOf(v) {
			if state[w] == nil {
				strongconnect(w)
				if state[w].low < state[v].low {
					state[v].low = state[w].low
				}
			} else if state[w].onStack {
				if state[w].index < state[v].low {
					state[v].low = state[w].index
				}
			}
		}

		if state[v].low == state[v].index {
			var scc []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				state[w].onStack = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, id := range order {
		if state[id] == nil {
			strongconnect(id)
		}
	}

	for _, scc := range sccs {
		if len(scc) > 1 {
			sort.Strings(scc)
			return scc
		}
		if len(scc) == 1 {
			// A size-1 SCC is still a cycle if the node has a self-edge.
			for _, w := range edgesOf(scc[0]) {
				if w == scc[0] {
					return scc
				}
			}
		}
	}
	return nil
}
