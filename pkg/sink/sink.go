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

// Package sink implements the Output file writer collaborator named in
// spec.md §6: turning a Text or Files artifact into bytes on disk.
package sink

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// zipEpoch is the fixed modification time every zip entry gets, so two
// runs over identical input produce byte-identical archives.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer writes Output node results under a fixed directory.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteText writes content verbatim to dir/filename.
func (w *Writer) WriteText(filename, content string) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return errors.Wrap(err, "sink: mkdir")
	}
	path := filepath.Join(w.Dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "sink: writing %s", path)
	}
	return nil
}

// WriteFiles assembles tree into a deterministic ZIP archive at
// dir/filename, normalizing filename's extension to ".zip".
func (w *Writer) WriteFiles(filename string, tree workflow.FileTree, store *workflow.ContentStore) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return errors.Wrap(err, "sink: mkdir")
	}
	filename = normalizeZipName(filename)
	path := filepath.Join(w.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "sink: creating %s", path)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range tree.Paths() {
		entry, _ := tree.Get(p)
		data, err := store.Get(entry.Hash)
		if err != nil {
			zw.Close()
			return errors.Wrap(err, "sink: reading blob")
		}
		hdr := &zip.FileHeader{
			Name:     p.String(),
			Method:   zip.Deflate,
			Modified: zipEpoch,
		}
		mode := os.FileMode(0o644)
		if entry.Executable {
			mode = 0o755
		}
		hdr.SetMode(mode)
		zf, err := zw.CreateHeader(hdr)
		if err != nil {
			zw.Close()
			return errors.Wrap(err, "sink: writing zip entry")
		}
		if _, err := zf.Write(data); err != nil {
			zw.Close()
			return errors.Wrap(err, "sink: writing zip entry body")
		}
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "sink: finalizing zip")
	}
	return nil
}

func normalizeZipName(filename string) string {
	ext := filepath.Ext(filename)
	if strings.EqualFold(ext, ".zip") {
		return filename
	}
	if ext == "" {
		return filename + ".zip"
	}
	return strings.TrimSuffix(filename, ext) + ".zip"
}
