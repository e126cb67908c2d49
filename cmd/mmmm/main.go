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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maxwell-lt/mmmm/pkg/config"
	"github.com/maxwell-lt/mmmm/pkg/resolve"
	"github.com/maxwell-lt/mmmm/pkg/workflow"
	"github.com/maxwell-lt/mmmm/pkg/workflow/graph"
	"github.com/maxwell-lt/mmmm/pkg/workflow/scheduler"
	"github.com/maxwell-lt/mmmm/pkg/workflow/workpool"
)

func main() {
	var outputDir, configDir string
	var clearCache bool

	cmd := &cobra.Command{
		Use:   "mmmm <workflow-file>",
		Short: "Runs a modpack build workflow.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], outputDir, configDir, clearCache)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory Output nodes write into")
	cmd.Flags().StringVarP(&configDir, "config-dir", "c", defaultConfigDir(), "directory containing mmmm.toml")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "erase the resolution cache before running")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mmmm")
	}
	return "."
}

func run(ctx context.Context, workflowPath, outputDir, configDir string, clearCache bool) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	yamlBytes, err := os.ReadFile(workflowPath)
	if err != nil {
		return workflow.Wrap(workflow.IOError, err)
	}

	g, err := graph.Load(yamlBytes)
	if err != nil {
		return err
	}

	if g.UsesCurseForge {
		if err := cfg.RequireCurseCredential(); err != nil {
			return err
		}
	}

	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}
	resolveCacheDir := filepath.Join(cacheRoot, "mmmm", "resolve")
	httpCacheDir := filepath.Join(cacheRoot, "mmmm", "httpcache")

	cache := resolve.NewDiskCache(resolveCacheDir)
	if clearCache {
		if err := cache.Clear(); err != nil {
			return workflow.Wrap(workflow.IOError, err)
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return workflow.Wrap(workflow.IOError, err)
	}

	rc := &workflow.RunContext{
		Store:     workflow.NewContentStore(),
		Config:    g.Config,
		Cache:     cache,
		ModSource: resolve.NewHTTPModSource(httpCacheDir, cfg.CurseAPIKey, cfg.CurseProxyURL),
		OutputDir: outputDir,
		Workpool:  workpool.New(),
	}

	result := scheduler.Run(ctx, g, rc)
	if err := result.Err(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "workflow %s completed: %d nodes\n", workflowPath, len(g.Runnables))
	return nil
}
