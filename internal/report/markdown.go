// # internal/report/markdown.go
package report

import (
	"fmt"
	"path"
	"strings"

	"docgen/internal/analysis"
	"docgen/internal/history"
	"docgen/internal/shared/util"
	"docgen/internal/structure"
)

const recentCommitLimit = 15

// MarkdownGenerator renders a ProjectAnalysis as a markdown document:
// project summary, one section per source file with its types and
// members, and the repository history rollup.
type MarkdownGenerator struct {
	analysis *analysis.ProjectAnalysis
}

func NewMarkdownGenerator(pa *analysis.ProjectAnalysis) *MarkdownGenerator {
	return &MarkdownGenerator{analysis: pa}
}

func (m *MarkdownGenerator) Generate() (string, error) {
	var b strings.Builder

	pa := m.analysis
	b.WriteString(fmt.Sprintf("# %s\n\n", pa.ProjectName))
	b.WriteString(fmt.Sprintf("_Generated %s · run `%s`_\n\n",
		pa.GeneratedAt.Format("2006-01-02 15:04:05 MST"), pa.RunID))

	m.writeSummary(&b)

	if len(pa.Files) > 0 {
		b.WriteString("## Files\n\n")
		for _, fa := range pa.Files {
			b.WriteString(fmt.Sprintf("- [%s](#%s)\n", fa.File.Path, anchorFor(fa.File.Path)))
		}
		b.WriteString("\n")
	}

	for i := range pa.Files {
		m.writeFile(&b, &pa.Files[i])
	}

	if pa.Summary.History != nil {
		m.writeHistory(&b)
	}
	if pa.HistoryError != "" {
		b.WriteString("## Repository History\n\n")
		b.WriteString(fmt.Sprintf("History unavailable: %s\n\n", pa.HistoryError))
	}

	return b.String(), nil
}

func (m *MarkdownGenerator) writeSummary(b *strings.Builder) {
	s := m.analysis.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Files | %d |\n", s.Files))
	b.WriteString(fmt.Sprintf("| Parsed | %d |\n", s.ParsedFiles))
	if s.FailedFiles > 0 {
		b.WriteString(fmt.Sprintf("| Failed | %d |\n", s.FailedFiles))
	}
	if len(s.TypesByKind) > 0 {
		kinds := make([]string, 0, len(s.TypesByKind))
		for _, kind := range util.SortedStringKeys(s.TypesByKind) {
			kinds = append(kinds, fmt.Sprintf("%d %s", s.TypesByKind[kind], kind))
		}
		b.WriteString(fmt.Sprintf("| Types | %d (%s) |\n", s.Types, strings.Join(kinds, ", ")))
	} else {
		b.WriteString(fmt.Sprintf("| Types | %d |\n", s.Types))
	}
	b.WriteString(fmt.Sprintf("| Documented types | %d |\n", s.DocumentedTypes))
	b.WriteString(fmt.Sprintf("| Methods | %d |\n", s.Methods))
	b.WriteString(fmt.Sprintf("| Fields | %d |\n", s.Fields))
	if h := s.History; h != nil {
		b.WriteString(fmt.Sprintf("| Commits | %d |\n", h.Commits))
		b.WriteString(fmt.Sprintf("| Authors | %d |\n", h.Authors))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeFile(b *strings.Builder, fa *analysis.FileAnalysis) {
	f := fa.File
	b.WriteString(fmt.Sprintf("## %s\n\n", f.Path))

	if !f.Parsed {
		b.WriteString(fmt.Sprintf("Parse failed: %s\n\n", f.ParseError))
		return
	}

	var facts []string
	if f.Package != "" {
		facts = append(facts, fmt.Sprintf("package `%s`", f.Package))
	}
	facts = append(facts, fmt.Sprintf("%d lines", f.LineCount))
	if fa.CommitCount() > 0 {
		facts = append(facts, fmt.Sprintf("%d commits", fa.CommitCount()))
	}
	if lc := fa.LastChange(); lc != nil {
		facts = append(facts, fmt.Sprintf("last changed %s", lc.Author.When.Format("2006-01-02")))
	}
	b.WriteString(strings.Join(facts, " · "))
	b.WriteString("\n\n")

	if len(f.Imports) > 0 {
		b.WriteString("<details><summary>Imports</summary>\n\n")
		for _, imp := range f.Imports {
			b.WriteString(fmt.Sprintf("- `%s`\n", imp))
		}
		b.WriteString("\n</details>\n\n")
	}

	for _, t := range f.Types {
		m.writeType(b, t, 3)
	}

	if fa.CommitCount() > 0 {
		b.WriteString("### History\n\n")
		writeCommitTable(b, fa.Commits, recentCommitLimit, f.Path)
	}
}

func (m *MarkdownGenerator) writeType(b *strings.Builder, t *structure.TypeDeclaration, level int) {
	heading := strings.Repeat("#", level)
	b.WriteString(fmt.Sprintf("%s %s `%s`\n\n", heading, t.Kind, t.FullName))
	b.WriteString(fmt.Sprintf("```java\n%s\n```\n\n", t.Signature()))

	if t.Documentation != "" {
		b.WriteString(t.Documentation)
		b.WriteString("\n\n")
	}

	if len(t.Fields) > 0 {
		b.WriteString("| Field | Type | Modifiers | Line | Description |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, f := range t.Fields {
			b.WriteString(fmt.Sprintf("| `%s` | `%s` | %s | %d | %s |\n",
				f.Name, f.Type, strings.Join(f.Modifiers, " "), f.Line, escapeTableCell(f.Documentation)))
		}
		b.WriteString("\n")
	}

	for i := range t.Methods {
		writeMethod(b, &t.Methods[i])
	}

	for _, nested := range t.Nested {
		next := level + 1
		if next > 6 {
			next = 6
		}
		m.writeType(b, nested, next)
	}
}

func writeMethod(b *strings.Builder, method *structure.Method) {
	b.WriteString(fmt.Sprintf("- `%s`", method.Signature()))
	if method.StartLine > 0 {
		b.WriteString(fmt.Sprintf(" _(line %d)_", method.StartLine))
	}
	b.WriteString("\n")

	if method.Documentation != "" {
		b.WriteString(indentLines(method.Documentation, "  "))
		b.WriteString("\n")
	}
	for _, p := range method.Parameters {
		if p.Documentation == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  - `%s` %s\n", p.Name, p.Documentation))
	}
	if method.ReturnDoc != "" {
		b.WriteString(fmt.Sprintf("  - returns %s\n", method.ReturnDoc))
	}
	b.WriteString("\n")
}

func (m *MarkdownGenerator) writeHistory(b *strings.Builder) {
	h := m.analysis.Summary.History
	b.WriteString("## Repository History\n\n")
	b.WriteString(fmt.Sprintf("%d commits by %d authors · +%d / -%d lines",
		h.Commits, h.Authors, h.LinesAdded, h.LinesDeleted))
	if h.Merges > 0 {
		b.WriteString(fmt.Sprintf(" · %d merges", h.Merges))
	}
	if !h.FirstCommit.IsZero() {
		b.WriteString(fmt.Sprintf(" · %s to %s",
			h.FirstCommit.Format("2006-01-02"), h.LastCommit.Format("2006-01-02")))
	}
	b.WriteString("\n\n")

	if len(h.TopAuthors) > 0 {
		b.WriteString("### Top Contributors\n\n")
		b.WriteString("| Author | Commits |\n")
		b.WriteString("| --- | --- |\n")
		for _, a := range h.TopAuthors {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", escapeTableCell(a.Name), a.Commits))
		}
		b.WriteString("\n")
	}

	if len(h.TopFiles) > 0 {
		b.WriteString("### Most Changed Files\n\n")
		b.WriteString("| File | Changes |\n")
		b.WriteString("| --- | --- |\n")
		for _, rf := range h.TopFiles {
			b.WriteString(fmt.Sprintf("| `%s` | %d |\n", rf.Path, rf.Changes))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Recent Commits\n\n")
	writeCommitTable(b, m.analysis.Commits, recentCommitLimit, "")
}

// writeCommitTable renders commits newest first. With a non-empty
// filePath it adds a Change column showing how each commit touched
// that file.
func writeCommitTable(b *strings.Builder, commits []history.Commit, limit int, filePath string) {
	if filePath != "" {
		b.WriteString("| Commit | Date | Author | Change | Subject |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
	} else {
		b.WriteString("| Commit | Date | Author | Subject |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
	}
	for i, c := range commits {
		if limit > 0 && i >= limit {
			b.WriteString(fmt.Sprintf("\n_… and %d more_\n", len(commits)-limit))
			break
		}
		if filePath != "" {
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s | %s |\n",
				c.ShortHash(), c.Author.When.Format("2006-01-02"), escapeTableCell(c.Author.Name),
				changeSymbolFor(&c, filePath), escapeTableCell(c.Subject())))
			continue
		}
		b.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
			c.ShortHash(), c.Author.When.Format("2006-01-02"), escapeTableCell(c.Author.Name), escapeTableCell(c.Subject())))
	}
	b.WriteString("\n")
}

// changeSymbolFor finds the change in c matching filePath by base name.
// Every loose-join rule implies equal base names, so this locates the
// change the join already matched on.
func changeSymbolFor(c *history.Commit, filePath string) string {
	base := path.Base(util.NormalizePatternPath(filePath))
	for _, fc := range c.FileChanges {
		if path.Base(util.NormalizePatternPath(fc.Path)) == base {
			return fc.Kind.Symbol()
		}
		if fc.OldPath != "" && path.Base(util.NormalizePatternPath(fc.OldPath)) == base {
			return fc.Kind.Symbol()
		}
	}
	return ""
}

// anchorFor mirrors how markdown renderers derive heading anchors.
func anchorFor(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('-')
		}
	}
	return b.String()
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
