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

// Package config loads mmmm.toml, the process-wide config file that
// holds CLI-level concerns (which mod API credentials to use).
package config

import (
	"github.com/spf13/viper"

	"github.com/maxwell-lt/mmmm/pkg/workflow"
)

// File is the decoded mmmm.toml: curse_api_key and curse_proxy_url are
// mutually exclusive ways of reaching the CurseForge API (a direct key,
// or a proxy that doesn't require one). Raw holds every key of the file as
// a string; node kinds do not see it, since they read the workflow
// YAML's own config map.
type File struct {
	CurseAPIKey   string
	CurseProxyURL string
	Raw           workflow.Config
}

// Load reads mmmm.toml from configDir (or its defaults, if configDir is
// empty) and validates the Curse credential fields are not both set.
// Viper has no native way to express "at most one of", so that check is
// explicit here rather than left to the config schema.
func Load(configDir string) (*File, error) {
	v := viper.New()
	v.SetConfigName("mmmm")
	v.SetConfigType("toml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mmmm")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return &File{Raw: workflow.Config{}}, nil
		}
		return nil, workflow.Wrap(workflow.ConfigError, err)
	}

	apiKey := v.GetString("curse_api_key")
	proxyURL := v.GetString("curse_proxy_url")
	if apiKey != "" && proxyURL != "" {
		return nil, workflow.Newf(workflow.ConfigError, "mmmm.toml: curse_api_key and curse_proxy_url are mutually exclusive, only one may be set")
	}

	raw := make(workflow.Config)
	for _, key := range v.AllKeys() {
		raw[key] = v.GetString(key)
	}

	return &File{CurseAPIKey: apiKey, CurseProxyURL: proxyURL, Raw: raw}, nil
}

// RequireCurseCredential returns a ConfigError if neither Curse
// credential is set. Called by the CLI once the graph is known to
// contain a node that may need one (a CurseResolver, or a Source node
// listing a Curse-sourced mod), per §6's "returns a ConfigError if a node graph is
// later found to contain" wording — Load alone can't know this, since it
// runs before the graph is parsed.
func (f *File) RequireCurseCredential() error {
	if f.CurseAPIKey == "" && f.CurseProxyURL == "" {
		return workflow.Newf(workflow.ConfigError, "workflow uses CurseForge resolution but neither curse_api_key nor curse_proxy_url is set in mmmm.toml")
	}
	return nil
}
