// # internal/report/console.go
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"docgen/internal/analysis"
	"docgen/internal/structure"
)

var (
	consoleBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3B82F6")).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3B82F6")).
				Padding(0, 2)

	consoleFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3B82F6")).
				Bold(true)

	consoleFailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F87171")).
				Bold(true)

	consoleWarnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FBBF24"))

	consoleOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	consoleFaintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#64748B"))

	consoleRule = strings.Repeat("─", 53)
)

// ConsoleReporter prints a short styled summary of a run to a terminal.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// PrintSummary writes the run summary: counts, parse failures, history
// rollup and the most changed files.
func (c *ConsoleReporter) PrintSummary(pa *analysis.ProjectAnalysis, elapsed time.Duration) {
	s := pa.Summary

	fmt.Fprintln(c.out, consoleBannerStyle.Render(pa.ProjectName))
	fmt.Fprintln(c.out, consoleFaintStyle.Render(fmt.Sprintf("run %s · %s",
		pa.RunID, elapsed.Round(time.Millisecond))))
	fmt.Fprintln(c.out)

	fmt.Fprintf(c.out, "  %d files · %d types · %d methods · %d fields\n",
		s.Files, s.Types, s.Methods, s.Fields)

	if s.Types > 0 {
		line := fmt.Sprintf("  %d/%d types documented", s.DocumentedTypes, s.Types)
		if s.DocumentedTypes == s.Types {
			fmt.Fprintln(c.out, consoleOKStyle.Render(line))
		} else {
			fmt.Fprintln(c.out, consoleWarnStyle.Render(line))
		}
	}

	if s.FailedFiles > 0 {
		fmt.Fprintln(c.out, consoleFailStyle.Render(fmt.Sprintf("  %d files failed to parse", s.FailedFiles)))
		for _, fa := range pa.Files {
			if fa.File.Parsed {
				continue
			}
			fmt.Fprintf(c.out, "    %s: %s\n", fa.File.Path, fa.File.ParseError)
		}
	} else if s.Files > 0 {
		fmt.Fprintln(c.out, consoleOKStyle.Render("  all files parsed"))
	}

	switch {
	case s.History != nil:
		h := s.History
		fmt.Fprintf(c.out, "  %d commits · %d authors · +%d/-%d lines\n",
			h.Commits, h.Authors, h.LinesAdded, h.LinesDeleted)
		if len(h.TopFiles) > 0 {
			fmt.Fprintln(c.out, consoleFaintStyle.Render("  most changed:"))
			for i, rf := range h.TopFiles {
				if i >= 5 {
					break
				}
				fmt.Fprintf(c.out, "    %3d  %s\n", rf.Changes, rf.Path)
			}
		}
	case pa.HistoryError != "":
		fmt.Fprintln(c.out, consoleWarnStyle.Render("  history unavailable: "+firstLine(pa.HistoryError)))
	}
}

// PrintStructure writes the per-file type trees: a banner per file, a
// box per type, nested types indented under their parent. Enabled by
// output.detail.
func (c *ConsoleReporter) PrintStructure(pa *analysis.ProjectAnalysis) {
	for i := range pa.Files {
		fa := &pa.Files[i]
		f := fa.File
		if f == nil {
			continue
		}

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, consoleFileStyle.Render("📄 "+f.Name))
		if !f.Parsed {
			fmt.Fprintln(c.out, consoleWarnStyle.Render("  ⚠ "+firstLine(f.ParseError)))
			continue
		}

		pkg := f.Package
		if pkg == "" {
			pkg = "(default)"
		}
		fmt.Fprintf(c.out, "  package %s · %d lines\n", pkg, f.LineCount)
		if len(f.Imports) > 0 {
			fmt.Fprintln(c.out, consoleFaintStyle.Render(fmt.Sprintf("  %d imports", len(f.Imports))))
		}

		for _, t := range f.Types {
			c.printType(t, "  ")
		}
	}
}

func (c *ConsoleReporter) printType(t *structure.TypeDeclaration, indent string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, indent+"┌"+consoleRule)
	fmt.Fprintf(c.out, "%s│ %s: %s\n", indent, t.Kind, t.Name)
	fmt.Fprintln(c.out, indent+"├"+consoleRule)
	fmt.Fprintf(c.out, "%s│ %s\n", indent, t.Signature())
	if len(t.Annotations) > 0 {
		fmt.Fprintf(c.out, "%s│ %s\n", indent, strings.Join(t.Annotations, " "))
	}
	if t.Documentation != "" {
		fmt.Fprintf(c.out, "%s│ %s\n", indent, consoleFaintStyle.Render(truncate(firstLine(t.Documentation), 60)))
	}

	if len(t.Fields) > 0 {
		fmt.Fprintln(c.out, indent+"│")
		fmt.Fprintf(c.out, "%s│ Fields (%d):\n", indent, len(t.Fields))
		for i := range t.Fields {
			f := &t.Fields[i]
			fmt.Fprintf(c.out, "%s│   %s %s\n", indent, visibilityMarker(f.Visibility()), f.Signature())
		}
	}

	if ctors := t.Constructors(); len(ctors) > 0 {
		fmt.Fprintln(c.out, indent+"│")
		fmt.Fprintf(c.out, "%s│ Constructors (%d):\n", indent, len(ctors))
		for i := range ctors {
			m := &ctors[i]
			fmt.Fprintf(c.out, "%s│   %s %s\n", indent, visibilityMarker(m.Visibility()), m.ShortSignature())
		}
	}

	if methods := t.NonConstructorMethods(); len(methods) > 0 {
		fmt.Fprintln(c.out, indent+"│")
		fmt.Fprintf(c.out, "%s│ Methods (%d):\n", indent, len(methods))
		for i := range methods {
			m := &methods[i]
			fmt.Fprintf(c.out, "%s│   %s %s %s\n", indent, visibilityMarker(m.Visibility()), m.ReturnType, m.ShortSignature())
			if m.Documentation != "" {
				fmt.Fprintf(c.out, "%s│      └─ %s\n", indent, consoleFaintStyle.Render(truncate(firstLine(m.Documentation), 50)))
			}
		}
	}

	fmt.Fprintln(c.out, indent+"└"+consoleRule)

	for _, nested := range t.Nested {
		c.printType(nested, indent+"  ")
	}
}

func visibilityMarker(visibility string) string {
	switch visibility {
	case "public":
		return "🟢"
	case "private":
		return "🔴"
	case "protected":
		return "🟡"
	default:
		return "⚪"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
