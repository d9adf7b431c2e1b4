// # internal/structure/parser_test.go
package structure

import (
	"testing"

	"docgen/internal/core/errors"
)

func TestParseFileFailures(t *testing.T) {
	p := NewParser()

	// Empty content never reaches the grammar.
	file, err := p.ParseFile("Empty.java", nil)
	if err != nil {
		t.Fatal(err)
	}
	if file.Parsed {
		t.Error("Expected unparsed file")
	}
	if file.ParseError != "no content to parse" {
		t.Errorf("Expected no content to parse, got %q", file.ParseError)
	}

	// A broken file yields no partial structure, not even the package.
	file, err = p.ParseFile("Broken.java", []byte("package demo;\npublic class {{\n"))
	if err != nil {
		t.Fatal(err)
	}
	if file.Parsed {
		t.Error("Expected unparsed file")
	}
	if file.ParseError == "" {
		t.Error("Expected a parse error")
	}
	if file.Package != "" || len(file.Types) != 0 {
		t.Errorf("Expected no extracted structure, got package %q and %d types", file.Package, len(file.Types))
	}
	if file.LineCount != 3 {
		t.Errorf("Expected line count 3, got %d", file.LineCount)
	}

	// Whitespace still parses to an empty compilation unit.
	file, err = p.ParseFile("Blank.java", []byte(" \n\t\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !file.Parsed || file.ParseError != "" {
		t.Errorf("Expected whitespace to parse cleanly, got %q", file.ParseError)
	}
	if len(file.Types) != 0 {
		t.Errorf("Expected no types, got %d", len(file.Types))
	}
}

func TestParseFileUnsupported(t *testing.T) {
	p := NewParser()

	_, err := p.ParseFile("notes.txt", []byte("hello"))
	if err == nil {
		t.Fatal("Expected an error for an unsupported extension")
	}
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("Expected NOT_SUPPORTED, got %v", err)
	}
}

func TestIsSupportedPath(t *testing.T) {
	p := NewParser()

	if !p.IsSupportedPath("src/main/java/User.java") {
		t.Error("Expected .java to be supported")
	}
	if p.IsSupportedPath("README.md") {
		t.Error("Expected .md to be unsupported")
	}
	if p.IsSupportedPath("build.gradle") {
		t.Error("Expected .gradle to be unsupported")
	}
}
