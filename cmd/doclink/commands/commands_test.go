package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclink/internal/config"
)

func TestBuildIndexWalkSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Hi\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide.md"), []byte("# Guide\n"), 0o644))

	cfg := config.Default()
	cfg.Root = dir
	cfg.Source = config.SourceWalk

	idx, err := buildIndex(cfg, cfg.Source)
	require.NoError(t, err)
	assert.True(t, idx.ContainsFile("README.md"))
	assert.True(t, idx.ContainsFile("docs/guide.md"))
}

func TestBuildIndexRejectsUnknownSource(t *testing.T) {
	_, err := buildIndex(config.Default(), "ftp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestCheckOverridesWinOverConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scopes = []string{"docs"}
	cfg.Parallel = 4

	workers := 1
	cmd := &CheckCmd{Path: "/tmp/tree", Scope: []string{"guides"}, Parallel: &workers, Source: config.SourceWalk}
	source := cmd.apply(cfg)

	assert.Equal(t, "/tmp/tree", cfg.Root)
	assert.Equal(t, []string{"guides"}, cfg.Scopes)
	assert.Equal(t, 1, cfg.Parallel)
	assert.Equal(t, config.SourceWalk, source)
}

func TestCheckUnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Root = "/srv/docs"
	cfg.Scopes = []string{"docs"}

	source := (&CheckCmd{}).apply(cfg)

	assert.Equal(t, "/srv/docs", cfg.Root)
	assert.Equal(t, []string{"docs"}, cfg.Scopes)
	assert.Equal(t, config.SourceGit, source)
}

func TestInventoryForTitleAndClasses(t *testing.T) {
	doc := []byte(`---
title: Getting Started
---

[guide](docs/guide.md) and [section](docs/guide.md#setup) and [here](#local)
and [out](https://example.org/page).
`)

	inv := inventoryFor("README.md", doc)

	assert.Equal(t, "Getting Started", inv.Title)
	assert.Len(t, inv.Links, 4)
	assert.Equal(t, 1, inv.Classes["file"])
	assert.Equal(t, 1, inv.Classes["file-anchor"])
	assert.Equal(t, 1, inv.Classes["same-doc"])
	assert.Equal(t, 1, inv.Classes["external"])
}

func TestInventoryForUnterminatedFrontmatterScansWhole(t *testing.T) {
	doc := []byte("---\ntitle: Broken\n\n[guide](docs/guide.md)\n")

	inv := inventoryFor("notes.md", doc)

	assert.Empty(t, inv.Title)
	require.Len(t, inv.Links, 1)
	assert.Equal(t, "docs/guide.md", inv.Links[0].Destination)
}

func TestClassSummaryOrdersClasses(t *testing.T) {
	got := classSummary(map[string]int{"external": 2, "file": 1, "ignored": 3})
	assert.Equal(t, "file 1, external 2, ignored 3", got)
}
