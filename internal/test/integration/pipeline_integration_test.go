// # internal/test/integration/pipeline_integration_test.go
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/analysis"
	"docgen/internal/config"
	"docgen/internal/report"
	"docgen/internal/trends"
)

func createTestProject(t *testing.T, tmpDir string) {
	t.Helper()

	javaSrc := `package com.example;

/**
 * Greets people.
 */
public class Greeter {

    /** Number of greetings issued. */
    private int count;

    /**
     * Greets the given name.
     *
     * @param name who to greet
     * @return the greeting line
     */
    public String greet(String name) {
        count++;
        return "Hello, " + name;
    }
}
`
	srcDir := filepath.Join(tmpDir, "src", "main", "java", "com", "example")
	err := os.MkdirAll(srcDir, 0o755)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(srcDir, "Greeter.java"), []byte(javaSrc), 0o644)
	require.NoError(t, err)

	repo, err := git.PlainInit(tmpDir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	err = wt.AddWithOptions(&git.AddOptions{All: true})
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "ada",
		Email: "ada@example.com",
		When:  time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	_, err = wt.Commit("add greeter", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	createTestProject(t, tmpDir)

	cfg := config.Default()
	cfg.ProjectName = "integration"
	cfg.SourcePaths = []string{tmpDir}
	cfg.History.Enabled = true
	cfg.History.RepoPath = tmpDir
	cfg.History.DetectRenames = true
	cfg.Output.Markdown = filepath.Join(tmpDir, "docs", "api.md")
	cfg.Output.JSON = filepath.Join(tmpDir, "docs", "api.json")
	cfg.Output.Console = false

	svc := analysis.NewService(cfg)
	pa, err := svc.Run(context.Background())
	require.NoError(t, err)

	// Verify extracted structure
	assert.NotEmpty(t, pa.Files)
	foundGreeter := false
	for _, fa := range pa.Files {
		if fa.File == nil {
			continue
		}
		for _, typ := range fa.File.FlattenTypes() {
			if typ.FullName == "com.example.Greeter" {
				foundGreeter = true
				assert.Equal(t, "Greets people.", typ.Documentation)
			}
		}
	}
	assert.True(t, foundGreeter, "Should have found com.example.Greeter")

	// Verify history was extracted and joined onto the file
	assert.Empty(t, pa.HistoryError)
	require.Len(t, pa.Commits, 1)

	foundJoin := false
	for _, fa := range pa.Files {
		if fa.File != nil && filepath.Base(fa.File.Path) == "Greeter.java" {
			foundJoin = true
			assert.Equal(t, 1, fa.CommitCount(), "Greeter.java should carry its commit")
		}
	}
	assert.True(t, foundJoin, "Should have found the Greeter.java analysis entry")

	// Verify reports
	err = report.NewWriter(cfg.Output).Write(context.Background(), pa)
	require.NoError(t, err)

	md, err := os.ReadFile(cfg.Output.Markdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "com.example.Greeter")
	assert.Contains(t, string(md), "add greeter")

	jsonData, err := os.ReadFile(cfg.Output.JSON)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), "com.example.Greeter")

	// Verify the trend snapshot roundtrip
	store, err := trends.Open(filepath.Join(tmpDir, "trends.db"))
	require.NoError(t, err)
	defer store.Close()

	snap := trends.FromAnalysis(pa)
	trends.Stamp(&snap, tmpDir)
	require.NoError(t, store.SaveSnapshot(cfg.ProjectName, snap))

	got, err := store.LoadSnapshots(cfg.ProjectName, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].CommitCount)
	assert.NotEmpty(t, got[0].CommitHash)
	assert.Equal(t, 1, got[0].TypeCount)
	assert.Equal(t, 1, got[0].DocumentedTypes)
}
