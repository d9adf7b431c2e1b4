// # internal/report/report_test.go
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docgen/internal/analysis"
	"docgen/internal/config"
	"docgen/internal/history"
	"docgen/internal/structure"
)

func fixtureAnalysis() *analysis.ProjectAnalysis {
	files := []*structure.File{
		{
			Path:      "src/Foo.java",
			Name:      "Foo.java",
			Package:   "com.example",
			Imports:   []string{"java.util.List"},
			LineCount: 42,
			Parsed:    true,
			Types: []*structure.TypeDeclaration{
				{
					Name:          "Foo",
					FullName:      "com.example.Foo",
					Kind:          structure.KindClass,
					Modifiers:     []string{"public"},
					Documentation: "Does foo things.",
					StartLine:     3,
					EndLine:       40,
					Fields: []structure.Field{
						{Name: "count", Type: "int", Modifiers: []string{"private"}, Line: 5, Documentation: "How many."},
					},
					Methods: []structure.Method{
						{
							Name:          "run",
							ReturnType:    "void",
							Modifiers:     []string{"public"},
							Documentation: "Runs it.",
							ReturnDoc:     "",
							StartLine:     8,
							Parameters: []structure.Parameter{
								{Name: "times", Type: "int", Documentation: "how often"},
							},
						},
					},
					Nested: []*structure.TypeDeclaration{
						{
							Name:     "Inner",
							FullName: "com.example.Foo.Inner",
							Kind:     structure.KindClass,
						},
					},
				},
			},
		},
		{
			Path:       "src/Broken.java",
			Name:       "Broken.java",
			Parsed:     false,
			ParseError: "source contains syntax errors",
		},
	}

	when := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	commits := []history.Commit{
		{
			Hash:    "fedcba9876543210",
			Author:  history.Signature{Name: "Grace", Email: "grace@example.com", When: when.Add(24 * time.Hour)},
			Message: "tune loop\n\ndetails",
			Parents: []string{"abcdef1234567890"},
			FileChanges: []history.FileChange{
				{Path: "src/Foo.java", Kind: history.ChangeModify, LinesAdded: 2, LinesDeleted: 1},
			},
		},
		{
			Hash:    "abcdef1234567890",
			Author:  history.Signature{Name: "Ada", Email: "ada@example.com", When: when},
			Message: "add foo",
			FileChanges: []history.FileChange{
				{Path: "src/Foo.java", Kind: history.ChangeAdd, LinesAdded: 40},
			},
		},
	}

	return analysis.Aggregate("Demo Project", files, commits)
}

func TestMarkdownGenerator(t *testing.T) {
	md, err := NewMarkdownGenerator(fixtureAnalysis()).Generate()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Demo Project",
		"| Files | 2 |",
		"| Failed | 1 |",
		"| Types | 2 (2 class) |",
		"| Documented types | 1 |",
		"## src/Foo.java",
		"package `com.example` · 42 lines · 2 commits",
		"### class `com.example.Foo`",
		"public class Foo",
		"Does foo things.",
		"| `count` | `int` | private | 5 | How many. |",
		"- `public void run(int times)`",
		"  - `times` how often",
		"#### class `com.example.Foo.Inner`",
		"| `abcdef1` | 2024-05-10 | Ada | A | add foo |",
		"Parse failed: source contains syntax errors",
		"## Repository History",
		"2 commits by 2 authors",
		"2024-05-10 to 2024-05-11",
		"### Top Contributors",
		"| Ada | 1 |",
		"| `fedcba9` | 2024-05-11 | Grace | tune loop |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown output missing %q", want)
		}
	}

	if strings.Contains(md, "RED") {
		t.Error("Unexpected content in markdown output")
	}
}

func TestMarkdownHistoryError(t *testing.T) {
	pa := analysis.Aggregate("Demo", []*structure.File{{Path: "A.java", Name: "A.java", Parsed: true}}, nil)
	pa.HistoryError = "repository not found"

	md, err := NewMarkdownGenerator(pa).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "History unavailable: repository not found") {
		t.Error("Markdown output missing history error note")
	}
}

func TestJSONGenerator(t *testing.T) {
	out, err := NewJSONGenerator(fixtureAnalysis()).Generate()
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		ProjectName string `json:"project_name"`
		Files       []struct {
			File struct {
				Path string `json:"path"`
			} `json:"file"`
		} `json:"files"`
		Summary struct {
			Types int `json:"types"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Generated JSON does not parse: %v", err)
	}
	if decoded.ProjectName != "Demo Project" {
		t.Errorf("Expected project name in JSON, got %s", decoded.ProjectName)
	}
	if len(decoded.Files) != 2 {
		t.Errorf("Expected 2 files in JSON, got %d", len(decoded.Files))
	}
	if decoded.Summary.Types != 2 {
		t.Errorf("Expected 2 types in JSON summary, got %d", decoded.Summary.Types)
	}
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf).PrintSummary(fixtureAnalysis(), 1500*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"Demo Project",
		"2 files · 2 types · 1 methods · 1 fields",
		"1/2 types documented",
		"1 files failed to parse",
		"src/Broken.java: source contains syntax errors",
		"2 commits · 2 authors",
		"src/Foo.java",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Console output missing %q", want)
		}
	}
}

func TestConsoleReporterStructure(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf).PrintStructure(fixtureAnalysis())

	out := buf.String()
	for _, want := range []string{
		"📄 Foo.java",
		"package com.example · 42 lines",
		"class: Foo",
		"public class Foo",
		"Does foo things.",
		"🔴 private int count",
		"🟢 void run(int)",
		"Runs it.",
		"class: Inner",
		"📄 Broken.java",
		"source contains syntax errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Structure output missing %q", want)
		}
	}
}

func TestWriterWritesConfiguredFormats(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Output{
		Markdown: filepath.Join(dir, "docs", "report.md"),
		JSON:     filepath.Join(dir, "docs", "report.json"),
	}

	if err := NewWriter(cfg).Write(context.Background(), fixtureAnalysis()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "docs", "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("Expected no temp files left behind, found %v", leftovers)
	}

	md, err := os.ReadFile(cfg.Markdown)
	if err != nil {
		t.Fatalf("Markdown report not written: %v", err)
	}
	if !strings.Contains(string(md), "# Demo Project") {
		t.Error("Markdown report missing title")
	}

	raw, err := os.ReadFile(cfg.JSON)
	if err != nil {
		t.Fatalf("JSON report not written: %v", err)
	}
	if !json.Valid(raw) {
		t.Error("JSON report is not valid JSON")
	}
}

func TestWriterSkipsEmptyPaths(t *testing.T) {
	if err := NewWriter(config.Output{}).Write(context.Background(), fixtureAnalysis()); err != nil {
		t.Fatalf("Write with no outputs should succeed, got %v", err)
	}
}
