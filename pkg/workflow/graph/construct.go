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
	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/nodes"
)

// construct builds the Container and every node once validation has passed
// for the whole document. Every output is registered before any node
// subscribes to one, per §4.1's "senders created during loading, then —
// and only then — hands receivers to consuming nodes" ordering invariant;
// within this function that's just "Register pass before Subscribe pass",
// since nothing here releases the start barrier — that's the scheduler's
// job once it has spawned a goroutine per Runnable.
func construct(entries map[string]*entry, order []string, config map[string]string) (*Graph, error) {
	c := workflow.NewContainer()
	usesCurse := false

	for _, id := range order {
		e := entries[id]
		for output := range e.outputs {
			c.Register(id, output)
		}
		if e.kind == "curseresolver" {
			usesCurse = true
		}
		if e.kind == "" && e.sourceValue.Variant == workflow.VariantMods {
			for _, m := range e.sourceValue.Mods {
				if m.Source == workflow.SourceCurse {
					usesCurse = true
				}
			}
		}
	}

	runnables := make([]Runnable, 0, len(order))
	for _, id := range order {
		e := entries[id]

		var node workflow.Node
		switch e.kind {
		case "":
			node = nodes.NewSource(id, e.sourceValue)
		case "output":
			node = nodes.NewOutput(id, e.raw.Filename)
		default:
			node = e.spec.New(id)
		}

		outputs := make(map[string]workflow.Sender, len(e.outputs))
		for output := range e.outputs {
			sender, err := c.GetSender(id, output)
			if err != nil {
				return nil, workflow.WrapNode(workflow.ValidationError, id, err)
			}
			outputs[output] = sender
		}

		inputs := make(map[string]workflow.Receiver, len(e.inputs))
		for name, ref := range e.inputs {
			receiver, err := c.Subscribe(ref.NodeID, ref.Output)
			if err != nil {
				return nil, workflow.WrapNode(workflow.ValidationError, id, err)
			}
			inputs[name] = receiver
		}

		runnables = append(runnables, Runnable{Node: node, Inputs: inputs, Outputs: outputs})
	}

	return &Graph{Container: c, Runnables: runnables, Config: workflow.Config(config), UsesCurseForge: usesCurse}, nil
}
