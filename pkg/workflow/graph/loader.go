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
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/nodes"
)

// Graph is a validated, constructed workflow: a Container with every
// output registered, and every node paired with the Receivers/Senders it
// was wired to, ready for the scheduler to spawn.
type Graph struct {
	Container      *workflow.Container
	Runnables      []Runnable
	Config         workflow.Config
	UsesCurseForge bool
}

// Runnable is one node plus the input/output handles the loader wired it
// to — exactly what workflow.Node.Start needs, pre-resolved so the
// scheduler doesn't need to know about entries, specs, or the registry.
type Runnable struct {
	Node    workflow.Node
	Inputs  map[string]workflow.Receiver
	Outputs map[string]workflow.Sender
}

// entry is the loader's internal bookkeeping for one node, whichever shape
// it came from.
type entry struct {
	id          string
	kind        string // empty for Source, "output" for Output
	spec        workflow.KindSpec
	raw         rawNode
	inputs      map[string]workflow.InputRef
	outputs     map[string]workflow.Variant
	sourceValue workflow.Artifact
}

// Load parses yamlBytes, runs the full validation pipeline, and — only if
// every stage passes — constructs the Container and every node. On
// failure it returns a single *workflow.Error of Kind ValidationError (or
// ParseError for malformed YAML) whose Multi slice lists every problem
// found, per §4.3/§7's "collect every stage's errors before abort".
func Load(yamlBytes []byte) (*Graph, error) {
	var raw rawSpec
	if err := yaml.Unmarshal(yamlBytes, &raw); err != nil {
		return nil, workflow.Wrap(workflow.ParseError, err)
	}

	registry := nodes.Registry()
	entries := make(map[string]*entry)
	var order []string
	var errs []error

	// Stage 0: classify + assign synthetic ids to Output nodes so they
	// participate in the same id space as everything else. A uuid keeps
	// these collision-free against whatever ids the document itself
	// declares, without the loader having to pre-scan for "output#N"
	// clashes the way a counter-based scheme would need to.
	for _, rn := range raw.Nodes {
		shape := rn.classify()
		id := rn.ID
		if shape == shapeOutput {
			id = "output#" + uuid.NewString()
		}
		if id == "" {
			errs = append(errs, fmt.Errorf("node at line %d: missing id", rn.line))
			continue
		}
		// Stage 1: duplicate id detection.
		if _, dup := entries[id]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", id))
			continue
		}
		e := &entry{id: id, raw: rn}
		switch shape {
		case shapeSource:
			e.kind = "" // resolved after decoding value, below
		case shapeOutput:
			e.kind = "output"
		case shapeIntermediate:
			spec, ok := registry[strings.ToLower(rn.Kind)]
			// Stage 2: kind lookup.
			if !ok {
				errs = append(errs, fmt.Errorf("node %q: unknown kind %q (known kinds: %s)", id, rn.Kind, knownKinds(registry)))
				continue
			}
			e.kind = strings.ToLower(rn.Kind)
			e.spec = spec
			e.outputs = spec.Outputs
		}
		entries[id] = e
		order = append(order, id)
	}

	// Decode Source values and Output's implicit "source" input now that
	// ids are known, so later stages can treat every node uniformly.
	for _, id := range order {
		e := entries[id]
		switch {
		case e.kind == "" && e.raw.classify() == shapeSource:
			art, err := decodeValue(e.raw.Value)
			if err != nil {
				errs = append(errs, fmt.Errorf("node %q: %v", id, err))
				continue
			}
			e.outputs = map[string]workflow.Variant{"default": art.Variant}
			e.spec = workflow.KindSpec{Name: "Source", Outputs: e.outputs}
			e.sourceValue = art
		case e.kind == "output":
			targetID, targetOutput := parseChannelRef(e.raw.Source)
			e.inputs = map[string]workflow.InputRef{"source": {NodeID: targetID, Output: targetOutput}}
		}
	}

	// Stage 3/4: resolve inputs, check variant matches.
	for _, id := range order {
		e := entries[id]
		if e.kind == "output" {
			resolveAndCheck(entries, id, "source", e.inputs["source"], nil, errs2(&errs))
			continue
		}
		if e.kind == "" {
			continue // Source nodes have no inputs
		}
		e.inputs = map[string]workflow.InputRef{}
		if e.spec.Variadic != nil {
			for name, ref := range e.raw.Input {
				r := refFrom(ref)
				e.inputs[name] = r
				expected := *e.spec.Variadic
				resolveAndCheck(entries, id, name, r, &expected, errs2(&errs))
			}
			continue
		}
		for name, expected := range e.spec.Inputs {
			refStr, ok := e.raw.Input[name]
			if !ok {
				errs = append(errs, fmt.Errorf("node %q: missing required input %q", id, name))
				continue
			}
			r := refFrom(refStr)
			e.inputs[name] = r
			exp := expected
			resolveAndCheck(entries, id, name, r, &exp, errs2(&errs))
		}
		for name := range e.raw.Input {
			if _, declared := e.spec.Inputs[name]; !declared {
				errs = append(errs, fmt.Errorf("node %q: input %q is not declared by kind %s", id, name, e.spec.Name))
			}
		}
	}

	// Stage 5: cycle detection.
	if cyc := detectCycle(entries, order); cyc != nil {
		errs = append(errs, fmt.Errorf("cycle detected among nodes: %s", strings.Join(cyc, " -> ")))
	}

	// Stage 6: required config keys.
	for _, id := range order {
		e := entries[id]
		for _, key := range e.spec.ConfigKeys {
			if _, ok := raw.Config[key]; !ok {
				errs = append(errs, fmt.Errorf("node %q (kind %s): missing required config key %q", id, e.spec.Name, key))
			}
		}
	}

	if len(errs) > 0 {
		return nil, workflow.Batch(errs)
	}

	return construct(entries, order, raw.Config)
}

// errs2 adapts a *[]error to the (msg) append closure resolveAndCheck
// wants, keeping that helper free of the outer function's state.
func errs2(errs *[]error) func(error) {
	return func(e error) { *errs = append(*errs, e) }
}

func refFrom(s string) workflow.InputRef {
	id, output := parseChannelRef(s)
	return workflow.InputRef{NodeID: id, Output: output}
}

// resolveAndCheck validates that ref points at a known node and output,
// and (if expected is non-nil) that the output's variant matches.
func resolveAndCheck(entries map[string]*entry, consumerID, inputName string, ref workflow.InputRef, expected *workflow.Variant, report func(error)) {
	target, ok := entries[ref.NodeID]
	if !ok {
		report(fmt.Errorf("node %q: input %q: unknown target node %q", consumerID, inputName, ref.NodeID))
		return
	}
	gotVariant, ok := target.outputs[ref.Output]
	if !ok {
		report(fmt.Errorf("node %q: input %q: target %q has no output %q", consumerID, inputName, ref.NodeID, ref.Output))
		return
	}
	if expected == nil {
		// Output node: accepts Text or Files only.
		if gotVariant != workflow.VariantText && gotVariant != workflow.VariantFiles {
			report(fmt.Errorf("node %q: source %q::%q has variant %s, expected Text or Files", consumerID, ref.NodeID, ref.Output, gotVariant))
		}
		return
	}
	if gotVariant != *expected {
		report(fmt.Errorf("node %q: input %q: expected variant %s, got %s from %q::%q", consumerID, inputName, *expected, gotVariant, ref.NodeID, ref.Output))
	}
}

func knownKinds(registry map[string]workflow.KindSpec) string {
	names := make([]string, 0, len(registry))
	for _, spec := range registry {
		names = append(names, spec.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
