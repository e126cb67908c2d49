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
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// ArchiveDownloader fetches a ZIP or TAR(.gz) archive and inflates it into
// a FileTree backed by the run's ContentStore.
type ArchiveDownloader struct {
	id     string
	client *http.Client
}

// NewArchiveDownloader builds an ArchiveDownloader using http.DefaultClient.
func NewArchiveDownloader(id string) *ArchiveDownloader {
	return &ArchiveDownloader{id: id, client: http.DefaultClient}
}

func (n *ArchiveDownloader) ID() string { return n.id }

func (n *ArchiveDownloader) Start(ctx context.Context, rc *workflow.RunContext, inputs map[string]workflow.Receiver, outputs map[string]workflow.Sender) error {
	urlArt, err := recv(n.id, "url", inputs["url"])
	if err != nil {
		return err
	}
	url := urlArt.AsText()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return workflow.WrapNode(workflow.IOError, n.id, err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return workflow.WrapNode(workflow.IOError, n.id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return workflow.WrapNode(workflow.IOError, n.id, errors.Errorf("downloading %s: status %s", url, resp.Status))
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return workflow.WrapNode(workflow.IOError, n.id, err)
	}

	tree, err := inflate(n.id, buf, rc.Store)
	if err != nil {
		return err
	}

	outputs["default"].Publish(workflow.FilesArtifact(workflow.Files{Tree: tree, Store: rc.Store}))
	return nil
}

// inflate dispatches to the ZIP or TAR inflator based on a byte sniff, and
// rejects any entry whose path normalization fails (archive traversal).
func inflate(nodeID string, buf []byte, store *workflow.ContentStore) (workflow.FileTree, error) {
	switch {
	case len(buf) >= 4 && string(buf[:2]) == "PK":
		return inflateZip(nodeID, buf, store)
	case len(buf) >= 2 && buf[0] == 0x1f && buf[1] == 0x8b:
		gr, err := gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
		}
		defer gr.Close()
		return inflateTar(nodeID, gr, store)
	default:
		return inflateTar(nodeID, bytes.NewReader(buf), store)
	}
}

func inflateZip(nodeID string, buf []byte, store *workflow.ContentStore) (workflow.FileTree, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
	}
	b := workflow.NewBuilder(workflow.NewFileTree())
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue // directory entry; FileTree has no directory nodes of its own
		}
		fp, err := workflow.NewFilePath(f.Name)
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, errors.Wrapf(err, "archive entry %q", f.Name))
		}
		rc, err := f.Open()
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
		}
		hash := store.Put(data)
		exe := f.Mode()&0o111 != 0
		b.Insert(fp, workflow.FileEntry{Hash: hash, Executable: exe, Size: int64(len(data))})
	}
	return b.Build(), nil
}

func inflateTar(nodeID string, r io.Reader, store *workflow.ContentStore) (workflow.FileTree, error) {
	tr := tar.NewReader(r)
	b := workflow.NewBuilder(workflow.NewFileTree())
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		fp, err := workflow.NewFilePath(hdr.Name)
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, errors.Wrapf(err, "archive entry %q", hdr.Name))
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return workflow.FileTree{}, workflow.WrapNode(workflow.IOError, nodeID, err)
		}
		hash := store.Put(data)
		exe := hdr.Mode&0o111 != 0
		b.Insert(fp, workflow.FileEntry{Hash: hash, Executable: exe, Size: int64(len(data))})
	}
	return b.Build(), nil
}
