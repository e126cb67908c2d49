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

	"github.com/maxwell-lt/mmmm/pkg/sink"
	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// Output has no outputs of its own: it writes its "source" input to disk
// through a sink.Writer and terminates. Like Source, its input's expected
// variant (Text or Files) is decided per-instance from the YAML rather
// than being a single fixed registry entry, so the graph loader
// constructs it directly via NewOutput.
type Output struct {
	id       string
	filename string
}

// NewOutput builds an Output node that will write to filename.
func NewOutput(id, filename string) *Output {
	return &Output{id: id, filename: filename}
}

func (n *Output) ID() string { return n.id }

func (n *Output) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	art, err := recv(n.id, "source", inputs["source"])
	if err != nil {
		return err
	}
	w := sink.NewWriter(rc.OutputDir)
	switch art.Variant {
	case workflow.VariantText:
		if err := w.WriteText(n.filename, art.Text); err != nil {
			return workflow.WrapNode(workflow.IOError, n.id, err)
		}
	case workflow.VariantFiles:
		files := art.AsFiles()
		if err := w.WriteFiles(n.filename, files.Tree, files.Store); err != nil {
			return workflow.WrapNode(workflow.IOError, n.id, err)
		}
	default:
		return workflow.Newf(workflow.ValidationError, "output %s: unsupported source variant %s", n.id, art.Variant)
	}
	return nil
}
