// # internal/structure/parser.go
package structure

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"docgen/internal/core/errors"
)

// Extractor turns one parsed syntax tree into the file's structure model.
type Extractor interface {
	Extract(root *sitter.Node, source []byte, filePath string) (*File, error)
}

// Parser owns the grammar and extractor registries keyed by language name.
type Parser struct {
	languages  map[string]*sitter.Language
	extractors map[string]Extractor
}

func NewParser() *Parser {
	p := &Parser{
		languages:  make(map[string]*sitter.Language),
		extractors: make(map[string]Extractor),
	}
	p.Register("java", sitter.NewLanguage(tree_sitter_java.Language()), &JavaExtractor{})
	return p
}

// Register wires a grammar and its extractor under a language name.
func (p *Parser) Register(language string, grammar *sitter.Language, extractor Extractor) {
	p.languages[language] = grammar
	p.extractors[language] = extractor
}

// IsSupportedPath reports whether a registered language claims the path.
func (p *Parser) IsSupportedPath(path string) bool {
	return p.detectLanguage(path) != ""
}

// ParseFile parses content and extracts the file's structure. A failed parse
// is recorded on the returned File, not returned as an error; the error
// return is reserved for files no registered language claims.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	language := p.detectLanguage(path)
	if language == "" {
		err := errors.New(errors.CodeNotSupported, fmt.Sprintf("no language registered for %s", filepath.Ext(path)))
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	grammar := p.languages[language]
	extractor := p.extractors[language]

	file := &File{
		Path:      path,
		Name:      filepath.Base(path),
		LineCount: len(strings.Split(string(content), "\n")),
	}
	if len(content) == 0 {
		file.ParseError = "no content to parse"
		return file, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		file.ParseError = "parse failed"
		return file, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		file.ParseError = "source contains syntax errors"
		return file, nil
	}

	extracted, err := extractor.Extract(root, content, path)
	if err != nil {
		file.ParseError = err.Error()
		return file, nil
	}
	extracted.LineCount = file.LineCount
	return extracted, nil
}

func (p *Parser) detectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".java":
		return "java"
	}
	return ""
}
