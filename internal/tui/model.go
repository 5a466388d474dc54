// Package tui provides the Bubble Tea editor interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/synapse-edit/synapse/internal/gateway"
	"github.com/synapse-edit/synapse/internal/model"
	"github.com/synapse-edit/synapse/internal/selection"
	"github.com/synapse-edit/synapse/internal/session"
)

const (
	headerHeight     = 1
	historyMaxShown  = 5
	popupMaxVisible  = 6
	quickPickCount   = 3
	defaultEditWidth = 80
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	popupStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#0EA5E9")).Padding(0, 1)
	popupPickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	popupDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	historyArrow    = " → "
	historyHdrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type lookupResultMsg struct {
	seq      int
	word     string
	synonyms []model.Synonym
	err      error
}

type exportResultMsg struct {
	path string
	err  error
}

// Model implements the Bubble Tea editor UI.
type Model struct {
	cfg      model.Config
	sess     *session.Session
	source   gateway.SynonymSource
	exporter *gateway.ExportClient
	saveDir  string
	timeout  time.Duration

	textarea textarea.Model
	search   textinput.Model

	searchMode bool
	exporting  bool
	popupIndex int
	status     string
	statusErr  bool

	width  int
	height int
}

// NewModel constructs an editor model with the given initial text.
func NewModel(cfg model.Config, sess *session.Session, source gateway.SynonymSource, exporter *gateway.ExportClient, initialText, saveDir string) *Model {
	ta := textarea.New()
	ta.Placeholder = "Start typing or paste your text..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultEditWidth)
	ta.SetValue(initialText)
	ta.Focus()

	search := textinput.New()
	search.Placeholder = "word to look up"
	search.Prompt = "Find synonyms for: "

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sess.SetText(initialText)
	return &Model{
		cfg:      cfg,
		sess:     sess,
		source:   source,
		exporter: exporter,
		saveDir:  saveDir,
		timeout:  timeout,
		textarea: ta,
		search:   search,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		return m, nil
	case lookupResultMsg:
		return m.handleLookupResult(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searchMode {
		return m.handleSearchKey(msg)
	}
	if m.popupVisible() {
		if handled, next, cmd := m.handlePopupKey(msg); handled {
			return next, cmd
		}
	}

	switch msg.String() {
	case "ctrl+s":
		return m.lookupAtCursor()
	case "ctrl+f":
		m.searchMode = true
		m.search.SetValue("")
		m.textarea.Blur()
		return m, m.search.Focus()
	case "ctrl+e":
		return m.startExport("pdf")
	case "ctrl+d":
		return m.startExport("docx")
	case "esc":
		m.sess.ClearSelection()
		m.popupIndex = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.sess.SetText(m.textarea.Value())
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		term := m.search.Value()
		m.closeSearch()
		if strings.TrimSpace(term) == "" {
			// Empty search term is a silent no-op.
			return m, nil
		}
		state, ok := selection.Capture(term, model.Rect{})
		if !ok {
			m.setError("only single words can be looked up")
			return m, nil
		}
		return m.startLookup(state)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	synonyms := m.sess.Synonyms()
	switch key := msg.String(); key {
	case "up":
		if m.popupIndex > 0 {
			m.popupIndex--
		}
		return true, m, nil
	case "down":
		if m.popupIndex < len(synonyms)-1 {
			m.popupIndex++
		}
		return true, m, nil
	case "enter":
		if len(synonyms) == 0 {
			return true, m, nil
		}
		m.applyCandidate(synonyms[m.popupIndex].Word)
		return true, m, nil
	case "1", "2", "3":
		idx := int(key[0] - '1')
		if idx < len(synonyms) && idx < quickPickCount {
			m.applyCandidate(synonyms[idx].Word)
		}
		return true, m, nil
	case "esc":
		m.sess.ClearSelection()
		m.popupIndex = 0
		return true, m, nil
	}
	// Any other key falls through to the editor and closes the popup.
	m.sess.ClearSelection()
	m.popupIndex = 0
	return false, m, nil
}

func (m *Model) lookupAtCursor() (tea.Model, tea.Cmd) {
	word, start, _, ok := selection.WordAt(m.textarea.Value(), m.cursorOffset())
	if !ok {
		// Nothing selectable under the cursor; silently ignored.
		return m, nil
	}
	rect := m.wordRect(word, start)
	state, accepted := selection.Capture(word, rect)
	if !accepted {
		return m, nil
	}
	return m.startLookup(state)
}

func (m *Model) startLookup(state model.SelectionState) (tea.Model, tea.Cmd) {
	if m.sess.Loading() {
		// One outstanding lookup at a time; triggering controls stay disabled.
		return m, nil
	}
	m.sess.Select(state)
	m.popupIndex = 0
	m.status = ""
	seq := m.sess.BeginLookup()
	req := model.LookupRequest{
		Word:    state.Word,
		Context: m.sess.Text(),
		Lang:    m.cfg.Lang,
	}
	return m, m.lookupCmd(seq, req)
}

func (m *Model) lookupCmd(seq int, req model.LookupRequest) tea.Cmd {
	source := m.source
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		synonyms, err := source.Lookup(ctx, req)
		return lookupResultMsg{seq: seq, word: req.Word, synonyms: synonyms, err: err}
	}
}

func (m *Model) handleLookupResult(msg lookupResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.sess.FailLookup(msg.seq) {
			m.setError(fmt.Sprintf("lookup failed: %v", msg.err))
		}
		return m, nil
	}
	if !m.sess.CompleteLookup(msg.seq, msg.synonyms) {
		// A newer lookup was issued; this response is stale.
		return m, nil
	}
	m.popupIndex = 0
	if len(msg.synonyms) == 0 {
		m.setStatus(fmt.Sprintf("no synonyms found for %q", msg.word))
		m.sess.ClearSelection()
	}
	return m, nil
}

func (m *Model) applyCandidate(candidate string) {
	record, ok := m.sess.ApplyReplacement(candidate)
	if !ok {
		return
	}
	m.textarea.SetValue(m.sess.Text())
	m.popupIndex = 0
	m.setStatus(fmt.Sprintf("replaced %q with %q", record.Original, record.Replacement))
}

func (m *Model) startExport(format string) (tea.Model, tea.Cmd) {
	if m.exporter == nil {
		m.setError("export-url is not configured")
		return m, nil
	}
	if strings.TrimSpace(m.sess.Text()) == "" {
		m.setError("nothing to export")
		return m, nil
	}
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	m.setStatus(fmt.Sprintf("exporting %s...", format))
	req := model.ExportRequest{
		Text:         m.sess.Text(),
		Replacements: m.sess.History(),
		Format:       format,
	}
	return m, m.exportCmd(req)
}

func (m *Model) exportCmd(req model.ExportRequest) tea.Cmd {
	exporter := m.exporter
	saveDir := m.saveDir
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		file, err := exporter.Export(ctx, req)
		if err != nil {
			return exportResultMsg{err: err}
		}
		path, err := gateway.SaveFile(saveDir, file)
		if err != nil {
			return exportResultMsg{err: err}
		}
		return exportResultMsg{path: path}
	}
}

func (m *Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	if msg.err != nil {
		m.setError(fmt.Sprintf("export failed: %v", msg.err))
		return m, nil
	}
	m.setStatus(fmt.Sprintf("saved %s", msg.path))
	return m, nil
}

func (m *Model) closeSearch() {
	m.searchMode = false
	m.search.Blur()
	m.textarea.Focus()
}

func (m *Model) popupVisible() bool {
	return m.sess.Loading() || len(m.sess.Synonyms()) > 0
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

// cursorOffset converts the textarea cursor into a rune offset in the value.
func (m *Model) cursorOffset() int {
	value := m.textarea.Value()
	row := m.textarea.Line()
	info := m.textarea.LineInfo()
	col := info.StartColumn + info.CharOffset

	offset := 0
	for i, line := range strings.Split(value, "\n") {
		if i == row {
			runes := []rune(line)
			if col > len(runes) {
				col = len(runes)
			}
			return offset + col
		}
		offset += len([]rune(line)) + 1
	}
	return offset
}

// wordRect approximates the on-screen bounding box of the word starting at
// the given rune offset, in cell coordinates.
func (m *Model) wordRect(word string, start int) model.Rect {
	value := m.textarea.Value()
	runes := []rune(value)
	if start > len(runes) {
		start = len(runes)
	}
	col := 0
	row := 0
	for _, r := range runes[:start] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return model.Rect{
		X:      col,
		Y:      headerHeight + row,
		Width:  runewidth.StringWidth(word),
		Height: 1,
	}
}

func (m *Model) resizeEditor() {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	m.textarea.SetWidth(width)
	height := m.height - headerHeight - 8
	if height < 3 {
		height = 3
	}
	m.textarea.SetHeight(height)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("synapse"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.popupVisible() {
		b.WriteString(m.renderPopup())
		b.WriteString("\n")
	}
	if history := m.renderHistory(); history != "" {
		b.WriteString(history)
		b.WriteString("\n")
	}
	if m.searchMode {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderPopup() string {
	var lines []string
	if m.sess.Loading() {
		lines = []string{popupDimStyle.Render("looking up...")}
	} else {
		synonyms := m.sess.Synonyms()
		shown := len(synonyms)
		if shown > popupMaxVisible {
			shown = popupMaxVisible
		}
		for i := 0; i < shown; i++ {
			lines = append(lines, m.renderCandidate(i, synonyms[i]))
		}
		if len(synonyms) > shown {
			lines = append(lines, popupDimStyle.Render(fmt.Sprintf("... %d more", len(synonyms)-shown)))
		}
	}
	box := popupStyle.Render(strings.Join(lines, "\n"))

	anchorX := 0
	if state, ok := m.sess.Selection(); ok {
		anchorX = state.Anchor.X
	}
	indent := PopupIndent(anchorX, lipgloss.Width(box), m.width)
	return lipgloss.NewStyle().MarginLeft(indent).Render(box)
}

func (m *Model) renderCandidate(i int, syn model.Synonym) string {
	label := syn.Word
	if syn.Context != "" {
		context := syn.Context
		if m.width > 0 {
			context = Truncate(context, m.width/2)
		}
		label += popupDimStyle.Render(" — " + context)
	}
	if syn.Source != "" {
		label += popupDimStyle.Render(" [" + syn.Source + "]")
	}
	prefix := "  "
	if i < quickPickCount {
		prefix = fmt.Sprintf("%d ", i+1)
	}
	line := prefix + label
	if i == m.popupIndex {
		return popupPickStyle.Render("▸ ") + line
	}
	return "  " + line
}

func (m *Model) renderHistory() string {
	history := m.sess.History()
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(historyHdrStyle.Render(fmt.Sprintf("History (%d)", len(history))))
	shown := len(history)
	if shown > historyMaxShown {
		shown = historyMaxShown
	}
	for i := 0; i < shown; i++ {
		rec := history[i]
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s%s%s  %s",
			rec.Original, historyArrow, rec.Replacement,
			footerStyle.Render(rec.Timestamp.Format("15:04:05"))))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if metrics, ok := m.sess.Metrics(); ok {
		segments = append(segments,
			fmt.Sprintf("Words %d", metrics.WordCount),
			fmt.Sprintf("Unique %d", metrics.UniqueWords),
			fmt.Sprintf("Avg %.1f", metrics.AvgWordLength),
			fmt.Sprintf("Repetition %d%%", metrics.RepetitionScore),
			fmt.Sprintf("Rare %d%%", metrics.RareWordsDensity),
		)
	}
	segments = append(segments, "^S synonyms  ^F find  ^E pdf  ^D docx  ^C quit")
	return footerStyle.Render(strings.Join(segments, " · "))
}
