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

import "testing"

func TestNewFilePathValid(t *testing.T) {
	p, err := NewFilePath("config/mods/foo.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"config", "mods", "foo.toml"}
	got := p.Components()
	if len(got) != len(want) {
		t.Fatalf("components = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("components = %v, want %v", got, want)
		}
	}
	if p.String() != "config/mods/foo.toml" {
		t.Fatalf("String() = %q", p.String())
	}
}

func TestNewFilePathRejectsInvalid(t *testing.T) {
	cases := []string{
		"",
		"/absolute/path",
		"a/../b",
		"a/./b",
		"a//b",
		`a\b`,
	}
	for _, c := range cases {
		if _, err := NewFilePath(c); err == nil {
			t.Errorf("NewFilePath(%q): expected error, got none", c)
		}
	}
}

func TestFilePathEqual(t *testing.T) {
	a := MustFilePath("a/b/c")
	b := MustFilePath("a/b/c")
	c := MustFilePath("a/b/d")
	if !a.Equal(b) {
		t.Error("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Error("expected !a.Equal(c)")
	}
}

func TestSortFilePaths(t *testing.T) {
	paths := []FilePath{
		MustFilePath("b/file"),
		MustFilePath("a/file"),
		MustFilePath("a"),
	}
	SortFilePaths(paths)
	want := []string{"a", "a/file", "b/file"}
	for i, w := range want {
		if paths[i].String() != w {
			t.Fatalf("sorted[%d] = %q, want %q", i, paths[i].String(), w)
		}
	}
}
