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

// Package scheduler spawns one goroutine per graph node, releases the
// start barrier, and waits for every node to finish, without ever
// canceling a sibling task because one node failed.
package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/graph"
)

// Result is the outcome of one run: every node's failure, empty if every
// node succeeded.
type Result struct {
	Failures []error
}

// Err returns a single error summarizing the run, or nil on full success.
// Failures are batched under Kind NodeError, each keeping its own Kind.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &workflow.Error{Kind: workflow.NodeError, Multi: r.Failures}
}

// Run spawns every Runnable in g, each subscribed to the start barrier
// before it is spawned and waiting on it before calling Start, releases
// the barrier, and blocks until all have returned. Each node's error is
// captured independently — per §4.4/§5, one node failing never cancels or
// skips its siblings, since sibling nodes may not even depend on it. The
// errgroup is used purely as a wait mechanism: its tasks always return nil
// so errgroup.Wait never short-circuits on the first error.
func Run(ctx context.Context, g *graph.Graph, rc *workflow.RunContext) Result {
	eg, egCtx := errgroup.WithContext(ctx)

	failures := make([]error, len(g.Runnables))
	for i, r := range g.Runnables {
		i, r := i, r
		start := g.Container.SubscribeStart()
		eg.Go(func() error {
			start.Recv()
			if err := r.Node.Start(egCtx, rc, r.Inputs, r.Outputs); err != nil {
				failures[i] = err
				// Node bodies return on error without publishing their
				// outputs (see node.go's Node.Start); without this, any
				// subscriber would stay blocked in Receiver.Recv forever. Fail() is a
				// no-op on an output the node did manage to publish before
				// failing, so this is safe to apply unconditionally.
				for _, s := range r.Outputs {
					s.Fail()
				}
			}
			return nil
		})
	}

	g.Container.ReleaseStart()
	_ = eg.Wait()

	var out []error
	for _, f := range failures {
		if f != nil {
			out = append(out, f)
		}
	}
	return Result{Failures: out}
}
