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

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// Source publishes a literal value exactly once. It has no inputs; its
// output's variant is decided by the YAML value's own shape, not by a
// fixed registry entry, so the graph loader constructs Source nodes
// directly via NewSource rather than through KindSpec.New (see
// graph.loader's handling of Source nodes).
type Source struct {
	id    string
	value workflow.Artifact
}

// NewSource builds a Source node that will publish value.
func NewSource(id string, value workflow.Artifact) *Source {
	return &Source{id: id, value: value}
}

func (s *Source) ID() string { return s.id }

func (s *Source) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	outputs["default"].Publish(s.value)
	return nil
}
