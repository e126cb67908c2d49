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
	"unicode/utf8"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// FilePicker extracts a single file's bytes from a Files tree as Text,
// failing if the path is absent or the bytes are not valid UTF-8.
type FilePicker struct {
	id string
}

func NewFilePicker(id string) *FilePicker { return &FilePicker{id: id} }

func (n *FilePicker) ID() string { return n.id }

func (n *FilePicker) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	filesArt, err := recv(n.id, "files", inputs["files"])
	if err != nil {
		return err
	}
	pathArt, err := recv(n.id, "path", inputs["path"])
	if err != nil {
		return err
	}

	fp, perr := workflow.NewFilePath(pathArt.AsText())
	if perr != nil {
		return workflow.WrapNode(workflow.NodeError, n.id, perr)
	}
	files := filesArt.AsFiles()
	entry, ok := files.Tree.Get(fp)
	if !ok {
		return workflow.Newf(workflow.NodeError, "file picker %s: path %q not found", n.id, fp.String())
	}
	data, err := files.Store.Get(entry.Hash)
	if err != nil {
		return workflow.WrapNode(workflow.IOError, n.id, err)
	}
	if !utf8.Valid(data) {
		return workflow.Newf(workflow.DecodeError, "file picker %s: %q is not valid UTF-8", n.id, fp.String())
	}
	outputs["default"].Publish(workflow.TextArtifact(string(data)))
	return nil
}
