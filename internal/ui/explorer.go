package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"glint/internal/service"
)

// ExplorerModel is an interactive TypeContextInfo explorer: it moves a
// cursor through a source buffer and re-runs the query at every position,
// exercising the cached compilation context chain the way an editor would.
type ExplorerModel struct {
	svc     *service.Service
	path    string
	content []byte
	args    []string

	cursor  int // byte offset into content
	lines   []string
	results viewport.Model
	width   int
	height  int
	ready   bool

	items   []service.TypeContextItem
	failMsg string
}

type resultMsg struct {
	at      int
	items   []service.TypeContextItem
	failMsg string
}

// NewExplorer builds the explorer model over one buffer.
func NewExplorer(svc *service.Service, path string, content []byte, args []string) *ExplorerModel {
	return &ExplorerModel{
		svc:     svc,
		path:    path,
		content: content,
		args:    args,
		lines:   strings.Split(string(content), "\n"),
		width:   80,
		height:  24,
	}
}

func (m *ExplorerModel) Init() tea.Cmd {
	return m.query()
}

// query runs the type-context query at the current cursor as a command.
func (m *ExplorerModel) query() tea.Cmd {
	at := m.cursor
	return func() tea.Msg {
		var sink exploreConsumer
		m.svc.GetExpressionContextInfo(
			service.Buffer{Identity: m.path, Content: m.content},
			uint32(at), m.args, &sink, nil,
		)
		return resultMsg{at: at, items: sink.items, failMsg: sink.failMsg}
	}
}

type exploreConsumer struct {
	items   []service.TypeContextItem
	failMsg string
}

func (c *exploreConsumer) HandleResults(items []service.TypeContextItem) { c.items = items }
func (c *exploreConsumer) Failed(msg string)                            { c.failMsg = msg }

func (m *ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
				return m, m.query()
			}
		case "right", "l":
			if m.cursor < len(m.content) {
				m.cursor++
				return m, m.query()
			}
		case "up", "k":
			m.cursor = m.moveLine(-1)
			return m, m.query()
		case "down", "j":
			m.cursor = m.moveLine(1)
			return m, m.query()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vh := m.height/2 - 2
		if vh < 3 {
			vh = 3
		}
		if !m.ready {
			m.results = viewport.New(m.width, vh)
			m.ready = true
		} else {
			m.results.Width = m.width
			m.results.Height = vh
		}
		m.results.SetContent(m.renderResults())
	case resultMsg:
		if msg.at != m.cursor {
			return m, nil // stale result from an abandoned position
		}
		m.items = msg.items
		m.failMsg = msg.failMsg
		if m.ready {
			m.results.SetContent(m.renderResults())
		}
	}
	var cmd tea.Cmd
	if m.ready {
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// moveLine shifts the cursor one line up or down, keeping the column.
func (m *ExplorerModel) moveLine(delta int) int {
	line, col := m.lineCol(m.cursor)
	line += delta
	if line < 0 {
		line = 0
	}
	if line >= len(m.lines) {
		line = len(m.lines) - 1
	}
	if col > len(m.lines[line]) {
		col = len(m.lines[line])
	}
	off := 0
	for i := 0; i < line; i++ {
		off += len(m.lines[i]) + 1
	}
	return off + col
}

func (m *ExplorerModel) lineCol(off int) (line, col int) {
	for i, l := range m.lines {
		if off <= len(l) {
			return i, off
		}
		off -= len(l) + 1
	}
	return len(m.lines) - 1, 0
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	memberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	docStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func (m *ExplorerModel) View() string {
	var b strings.Builder
	line, col := m.lineCol(m.cursor)
	b.WriteString(titleStyle.Render(fmt.Sprintf("glint explore %s — offset %d (%d:%d)", m.path, m.cursor, line+1, col+1)))
	b.WriteString("\n\n")

	// Source window around the cursor.
	srcLines := m.height/2 - 3
	if srcLines < 3 {
		srcLines = 3
	}
	start := line - srcLines/2
	if start < 0 {
		start = 0
	}
	end := start + srcLines
	if end > len(m.lines) {
		end = len(m.lines)
	}
	gutter := len(fmt.Sprint(end))
	for i := start; i < end; i++ {
		num := fmt.Sprintf("%*d", gutter, i+1)
		b.WriteString(gutterStyle.Render(num))
		b.WriteString(" ")
		text := m.lines[i]
		if i == line {
			if col < len(text) {
				b.WriteString(text[:col])
				b.WriteString(cursorStyle.Render(string(text[col])))
				b.WriteString(text[col+1:])
			} else {
				b.WriteString(text)
				b.WriteString(cursorStyle.Render(" "))
			}
		} else {
			b.WriteString(runewidth.Truncate(text, m.width-gutter-2, "…"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.results.View())
	} else {
		b.WriteString(m.renderResults())
	}
	b.WriteString("\n")
	b.WriteString(gutterStyle.Render("←↑↓→ move · q quit"))
	return b.String()
}

func (m *ExplorerModel) renderResults() string {
	if m.failMsg != "" {
		return failStyle.Render("query failed: " + m.failMsg)
	}
	if len(m.items) == 0 {
		return docStyle.Render("no expected type at this position")
	}
	var b strings.Builder
	for _, item := range m.items {
		b.WriteString(typeStyle.Render(item.TypeName))
		b.WriteString(gutterStyle.Render("  " + item.TypeUSR))
		b.WriteString("\n")
		for _, mem := range item.ImplicitMembers {
			pad := runewidth.FillRight(mem.SourceText, 24)
			b.WriteString("  ")
			b.WriteString(memberStyle.Render(pad))
			b.WriteString(mem.Description)
			if mem.BriefDoc != "" {
				b.WriteString(docStyle.Render("  // " + mem.BriefDoc))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
