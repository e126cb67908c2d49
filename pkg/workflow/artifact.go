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

import "github.com/pkg/errors"

// Variant is the tag of an Artifact, and the unit of type checking the
// graph loader performs on every wired input.
type Variant int

const (
	VariantText Variant = iota
	VariantList
	VariantMods
	VariantResolvedMods
	VariantFiles
)

func (v Variant) String() string {
	switch v {
	case VariantText:
		return "Text"
	case VariantList:
		return "List"
	case VariantMods:
		return "Mods"
	case VariantResolvedMods:
		return "ResolvedMods"
	case VariantFiles:
		return "Files"
	default:
		return "Unknown"
	}
}

// Artifact is the only value type exchanged on channels. Exactly one of
// the typed fields is meaningful, selected by Variant. This is Go's
// nearest idiomatic stand-in for a closed tagged union: a constructor per
// variant plus a discriminant field, instead of an interface{} payload
// that would defer type errors to runtime type-asserts at every consumer.
type Artifact struct {
	Variant Variant

	Text         string
	List         []string
	Mods         []Mod
	ResolvedMods []ResolvedMod
	Files        Files
}

// Files bundles a FileTree with the ContentStore handle it is backed by,
// since a FileTree's hashes are meaningless without the store that owns
// the bytes behind them.
type Files struct {
	Tree  FileTree
	Store *ContentStore
}

func TextArtifact(s string) Artifact        { return Artifact{Variant: VariantText, Text: s} }
func ListArtifact(l []string) Artifact      { return Artifact{Variant: VariantList, List: l} }
func ModsArtifact(m []Mod) Artifact         { return Artifact{Variant: VariantMods, Mods: m} }
func FilesArtifact(f Files) Artifact        { return Artifact{Variant: VariantFiles, Files: f} }
func ResolvedModsArtifact(r []ResolvedMod) Artifact {
	return Artifact{Variant: VariantResolvedMods, ResolvedMods: r}
}

// AsText returns the Text payload, panicking if the artifact isn't a Text
// variant. Node bodies use these
// accessors rather than switching on Variant themselves, since the graph
// loader has already guaranteed the variant matches what the node kind
// declared for that input — a mismatch here means a registry/loader bug,
// not a user error, so it panics instead of returning an error.
func (a Artifact) AsText() string {
	a.mustBe(VariantText)
	return a.Text
}

func (a Artifact) AsList() []string {
	a.mustBe(VariantList)
	return a.List
}

func (a Artifact) AsMods() []Mod {
	a.mustBe(VariantMods)
	return a.Mods
}

func (a Artifact) AsResolvedMods() []ResolvedMod {
	a.mustBe(VariantResolvedMods)
	return a.ResolvedMods
}

func (a Artifact) AsFiles() Files {
	a.mustBe(VariantFiles)
	return a.Files
}

func (a Artifact) mustBe(v Variant) {
	if a.Variant != v {
		panic(errors.Errorf("artifact: expected %s, got %s (loader should have rejected this wiring)", v, a.Variant))
	}
}
