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

package workflow

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FilePath is a normalized, ordered sequence of non-empty path components.
// It never contains ".", "..", an absolute anchor, or a platform separator
// embedded in a single component.
type FilePath struct {
	components []string
}

// NewFilePath splits s on "/" and validates every component. It rejects
// empty components, ".", "..", a leading "/" (absolute anchor), and
// components containing a literal backslash (a foreign separator).
func NewFilePath(s string) (FilePath, error) {
	if s == "" {
		return FilePath{}, errors.New("file path: empty")
	}
	if strings.HasPrefix(s, "/") {
		return FilePath{}, errors.Errorf("file path %q: absolute paths not allowed", s)
	}
	raw := strings.Split(s, "/")
	components := make([]string, 0, len(raw))
	for _, c := range raw {
		if err := validateComponent(c); err != nil {
			return FilePath{}, errors.Wrapf(err, "file path %q", s)
		}
		components = append(components, c)
	}
	return FilePath{components: components}, nil
}

// MustFilePath is NewFilePath for callers (mostly tests and Source nodes
// with literal paths) that know the input is well-formed.
func MustFilePath(s string) FilePath {
	fp, err := NewFilePath(s)
	if err != nil {
		panic(err)
	}
	return fp
}

func validateComponent(c string) error {
	if c == "" {
		return errors.New("empty component")
	}
	if c == "." || c == ".." {
		return errors.Errorf("illegal component %q", c)
	}
	if strings.ContainsRune(c, '\\') {
		return errors.Errorf("component %q contains a foreign separator", c)
	}
	return nil
}

// String renders the path with "/" separators, the canonical form used for
// glob matching and zip entry names.
func (p FilePath) String() string {
	return strings.Join(p.components, "/")
}

// Components returns the path's components. The returned slice must not be
// mutated by the caller.
func (p FilePath) Components() []string {
	return p.components
}

// Equal reports component-wise equality.
func (p FilePath) Equal(other FilePath) bool {
	if len(p.components) != len(other.components) {
		return false
	}
	for i, c := range p.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// Less orders paths component-wise lexicographically, shorter-prefix-first.
func (p FilePath) Less(other FilePath) bool {
	n := len(p.components)
	if len(other.components) < n {
		n = len(other.components)
	}
	for i := 0; i < n; i++ {
		if p.components[i] != other.components[i] {
			return p.components[i] < other.components[i]
		}
	}
	return len(p.components) < len(other.components)
}

// SortFilePaths sorts a slice of FilePath in place using Less.
func SortFilePaths(paths []FilePath) {
	sort.Slice(paths, func(i, j int) bool { return paths[i].Less(paths[j]) })
}
