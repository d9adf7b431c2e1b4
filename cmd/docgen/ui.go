// # cmd/docgen/ui.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docgen/internal/analysis"
	"docgen/internal/structure"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	undocStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)
)

type item struct {
	title, desc string
	failed      bool
	decl        *structure.TypeDeclaration
	file        *analysis.FileAnalysis
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list         list.Model
	detail       *item
	projectName  string
	fileCount    int
	typeCount    int
	failures     int
	undocumented int
	lastUpdate   time.Time
}

type updateMsg struct {
	analysis *analysis.ProjectAnalysis
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok && it.decl != nil {
				m.detail = &it
			}
			return m, nil
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
		}
		if m.detail != nil {
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.fileCount = 0
		m.typeCount = 0
		m.failures = 0
		m.undocumented = 0
		m.lastUpdate = time.Now()

		// An open detail view keeps showing its snapshot; the list
		// behind it is rebuilt from the new analysis.
		items := []list.Item{}
		if msg.analysis != nil {
			m.fileCount = len(msg.analysis.Files)

			for _, fa := range msg.analysis.Files {
				if fa.File == nil {
					continue
				}
				if !fa.File.Parsed {
					m.failures++
					items = append(items, item{
						title:  "Parse Failure",
						desc:   fmt.Sprintf("%s: %s", fa.File.Path, firstLine(fa.File.ParseError)),
						failed: true,
					})
				}
			}

			for i := range msg.analysis.Files {
				fa := &msg.analysis.Files[i]
				if fa.File == nil {
					continue
				}
				for _, t := range fa.File.FlattenTypes() {
					m.typeCount++
					if t.Documentation == "" {
						m.undocumented++
					}
					desc := fmt.Sprintf("%s in %s:%d", t.Kind, fa.File.Path, t.StartLine)
					if t.Documentation != "" {
						desc += " · " + firstLine(t.Documentation)
					}
					items = append(items, item{
						title: t.FullName,
						desc:  desc,
						decl:  t,
						file:  fa,
					})
				}
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.detail != nil {
		return m.detailView()
	}

	status := statusStyle.Render(fmt.Sprintf("%s | Last update: %v | %d files | %d types",
		m.projectName, m.lastUpdate.Format("15:04:05"), m.fileCount, m.typeCount))

	var summary string
	if m.failures == 0 && m.undocumented == 0 {
		summary = successStyle.Render("✅ Fully Documented")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			failureStyle.Render(fmt.Sprintf("%d Parse Failures", m.failures)),
			undocStyle.Render(fmt.Sprintf("%d Undocumented", m.undocumented)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Java Documentation Browser"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func (m model) detailView() string {
	t := m.detail.decl
	fa := m.detail.file

	var b strings.Builder
	b.WriteString(titleStyle(t.FullName) + "\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s:%d", fa.File.Path, t.StartLine)) + "\n\n")
	b.WriteString(t.Signature() + "\n\n")

	if t.Documentation != "" {
		b.WriteString(t.Documentation + "\n\n")
	} else {
		b.WriteString(undocStyle.Render("No documentation") + "\n\n")
	}

	if len(t.Fields) > 0 {
		b.WriteString(sectionStyle.Render("Fields") + "\n")
		for i := range t.Fields {
			f := &t.Fields[i]
			b.WriteString("  " + f.Signature() + "\n")
			if f.Documentation != "" {
				b.WriteString(statusStyle.Render("    "+firstLine(f.Documentation)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(t.Methods) > 0 {
		b.WriteString(sectionStyle.Render("Methods") + "\n")
		for i := range t.Methods {
			meth := &t.Methods[i]
			b.WriteString("  " + meth.Signature() + "\n")
			if meth.Documentation != "" {
				b.WriteString("    " + firstLine(meth.Documentation) + "\n")
			}
			for _, p := range meth.Parameters {
				if p.Documentation != "" {
					b.WriteString(statusStyle.Render(fmt.Sprintf("      %s: %s", p.Name, p.Documentation)) + "\n")
				}
			}
			if meth.ReturnDoc != "" {
				b.WriteString(statusStyle.Render("      returns: "+meth.ReturnDoc) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if n := fa.CommitCount(); n > 0 {
		line := fmt.Sprintf("%d commits touch this file", n)
		if lc := fa.LastChange(); lc != nil {
			line += fmt.Sprintf(", last by %s on %s",
				lc.Author.String(), lc.Author.When.Format("2006-01-02"))
		}
		b.WriteString(statusStyle.Render(line) + "\n\n")
	}

	b.WriteString(statusStyle.Render("esc to go back | q to quit"))
	return docStyle.Render(b.String())
}

func initialModel(projectName string) model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Extracted Types"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:        l,
		projectName: projectName,
		lastUpdate:  time.Now(),
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
