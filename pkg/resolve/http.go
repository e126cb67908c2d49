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

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/pkg/errors"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

const (
	curseForgeAPIBase = "https://api.curseforge.com/v1"
	modrinthAPIBase   = "https://api.modrinth.com/v2"
)

// HTTPModSource resolves Curse/Modrinth mods against their real upstream
// APIs. Its *http.Client is wrapped in httpcache (disk-backed, so
// conditional-GET revalidation survives process restarts) — this is
// deliberately a different cache from the resolution cache in cache.go:
// the resolution cache avoids the round trip entirely on hit, httpcache
// just keeps the occasional revalidation cheap on a resolution-cache
// miss, per §4.5.
type HTTPModSource struct {
	client   *http.Client
	apiKey   string
	proxyURL string
}

// NewHTTPModSource builds a ModSource backed by the real CurseForge and
// Modrinth APIs. apiKey and proxyURL are mutually exclusive (enforced by
// pkg/config, not here): when proxyURL is set, CurseForge requests go
// through it unauthenticated instead of the official API, and no
// x-api-key header is sent at all.
func NewHTTPModSource(cacheDir, apiKey, proxyURL string) *HTTPModSource {
	transport := httpcache.NewTransport(diskcache.New(cacheDir))
	return &HTTPModSource{
		client:   &http.Client{Transport: transport},
		apiKey:   apiKey,
		proxyURL: proxyURL,
	}
}

// Resolve implements workflow.ModSource.
func (s *HTTPModSource) Resolve(ctx context.Context, req workflow.ResolveRequest) (workflow.ResolvedMod, error) {
	switch req.Source {
	case workflow.SourceCurse:
		return s.resolveCurse(ctx, req)
	case workflow.SourceModrinth:
		return s.resolveModrinth(ctx, req)
	default:
		return workflow.ResolvedMod{}, errors.Errorf("httpmodsource: unsupported source %q", req.Source)
	}
}

type curseFileResponse struct {
	Data struct {
		FileName    string `json:"fileName"`
		DownloadURL string `json:"downloadUrl"`
		FileLength  int64  `json:"fileLength"`
		Hashes      []struct {
			Value string `json:"value"`
			Algo  int    `json:"algo"` // 1 = Sha1, 2 = Md5, per CurseForge's API
		} `json:"hashes"`
	} `json:"data"`
}

func (s *HTTPModSource) resolveCurse(ctx context.Context, req workflow.ResolveRequest) (workflow.ResolvedMod, error) {
	base := curseForgeAPIBase
	if s.proxyURL != "" {
		base = s.proxyURL
	}
	url := fmt.Sprintf("%s/mods/%s/files/%s", base, req.ProjectID, req.FileID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: building curseforge request")
	}
	if s.apiKey != "" {
		httpReq.Header.Set("x-api-key", s.apiKey)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: curseforge request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return workflow.ResolvedMod{}, errors.Errorf("httpmodsource: curseforge returned %s for project %s file %s", resp.Status, req.ProjectID, req.FileID)
	}

	var body curseFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: decoding curseforge response")
	}

	rm := workflow.ResolvedMod{
		Name:        req.Name,
		Source:      workflow.SourceCurse,
		ProjectID:   req.ProjectID,
		FileID:      req.FileID,
		DownloadURL: body.Data.DownloadURL,
		Filename:    body.Data.FileName,
		FileSize:    body.Data.FileLength,
	}
	for _, h := range body.Data.Hashes {
		switch h.Algo {
		case 1:
			rm.Digests.SHA1 = h.Value
		case 2:
			rm.Digests.MD5 = h.Value
		}
	}
	return rm, nil
}

type modrinthFileRaw struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Hashes   struct {
		SHA1   string `json:"sha1"`
		SHA512 string `json:"sha512"`
	} `json:"hashes"`
	Primary bool `json:"primary"`
}

type modrinthVersionResponse struct {
	ID        string            `json:"id"`
	ProjectID string            `json:"project_id"`
	Files     []modrinthFileRaw `json:"files"`
}

func (s *HTTPModSource) resolveModrinth(ctx context.Context, req workflow.ResolveRequest) (workflow.ResolvedMod, error) {
	url := fmt.Sprintf("%s/version/%s", modrinthAPIBase, req.FileID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: building modrinth request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: modrinth request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return workflow.ResolvedMod{}, errors.Errorf("httpmodsource: modrinth returned %s for version %s", resp.Status, req.FileID)
	}

	var body modrinthVersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return workflow.ResolvedMod{}, errors.Wrap(err, "httpmodsource: decoding modrinth response")
	}

	file, err := primaryModrinthFile(body.Files)
	if err != nil {
		return workflow.ResolvedMod{}, errors.Wrapf(err, "httpmodsource: version %s", req.FileID)
	}
	return workflow.ResolvedMod{
		Name:        req.Name,
		Source:      workflow.SourceModrinth,
		ProjectID:   body.ProjectID,
		FileID:      body.ID,
		DownloadURL: file.URL,
		Filename:    file.Filename,
		FileSize:    file.Size,
		Digests: workflow.Digests{
			SHA1: file.Hashes.SHA1,
		},
	}, nil
}

type modrinthFile struct {
	URL      string
	Filename string
	Size     int64
	Hashes   struct {
		SHA1   string
		SHA512 string
	}
}

// primaryModrinthFile picks the file flagged primary, falling back to the
// first entry — a version can list multiple files (e.g. sources jars)
// but exactly one is the mod jar proper. An empty Files list is a valid
// JSON response shape (just an unusable one for resolution), so it's
// reported as an error rather than indexed into.
func primaryModrinthFile(files []modrinthFileRaw) (modrinthFile, error) {
	if len(files) == 0 {
		return modrinthFile{}, errors.New("response lists no files")
	}
	pick := files[0]
	for _, f := range files {
		if f.Primary {
			pick = f
			break
		}
	}
	return modrinthFile{
		URL:      pick.URL,
		Filename: pick.Filename,
		Size:     pick.Size,
		Hashes:   pick.Hashes,
	}, nil
}
