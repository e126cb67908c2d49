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

// Source identifies which upstream a Mod came from.
type Source string

const (
	SourceCurse    Source = "curse"
	SourceModrinth Source = "modrinth"
	SourceURL      Source = "url"
)

// Side is which distribution of the modpack a mod belongs on.
type Side string

const (
	SideClient Side = "client"
	SideServer Side = "server"
	SideBoth   Side = "both"
)

// Mod is an unresolved entry as declared in a Source node's literal value
// or a CurseResolver manifest.
type Mod struct {
	Name     string
	Source   Source
	ID       string
	FileID   string
	Required *bool
	Default  *bool
	Side     Side
	Location string
	Filename string
}

// RequiredOrDefault returns Required if set, else true.
func (m Mod) RequiredOrDefault() bool {
	if m.Required == nil {
		return true
	}
	return *m.Required
}

// DefaultOrDefault returns Default if set, else true.
func (m Mod) DefaultOrDefault() bool {
	if m.Default == nil {
		return true
	}
	return *m.Default
}

// SideOrDefault returns Side if set, else SideBoth.
func (m Mod) SideOrDefault() Side {
	if m.Side == "" {
		return SideBoth
	}
	return m.Side
}

// Digests holds whichever per-algorithm digests the upstream API provided.
type Digests struct {
	MD5    string
	SHA1   string
	SHA256 string
}

// ResolvedMod is a Mod plus the resolved download coordinates.
type ResolvedMod struct {
	Name        string
	Source      Source
	ProjectID   string
	FileID      string
	DownloadURL string
	Filename    string
	FileSize    int64
	Digests     Digests
	Required    bool
	Default     bool
	Side        Side
}
