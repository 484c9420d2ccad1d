package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textkit/internal/domain"
	"textkit/internal/translator"
)

// Port is the TUI-facing subset of the application service.
type Port interface {
	DefaultSentences() int
	DefaultSourceLanguage() string
	ReadFile(ctx context.Context, path string) (string, error)
	FetchURL(ctx context.Context, url string) (string, error)
	Summarize(ctx context.Context, text string, numSentences int) (string, error)
	Translate(ctx context.Context, text, src, dest string, progress domain.ProgressReporter) (string, error)
	Save(ctx context.Context, path, content string) error
}

type step int

const (
	stepAction step = iota
	stepSource
	stepText
	stepPath
	stepURL
	stepCount
	stepSourceLang
	stepTargetLang
	stepRunning
	stepResult
)

type action int

const (
	actionSummarize action = iota + 1
	actionTranslate
)

type (
	acquiredMsg struct {
		label string
		text  string
		err   error
	}
	resultMsg struct {
		text string
		err  error
	}
	progressMsg struct {
		done  int
		total int
	}
	savedMsg struct {
		path string
		err  error
	}
)

// Model is the Bubble Tea model driving the summarize/translate menu.
type Model struct {
	service      Port
	ctx          context.Context
	cancel       context.CancelFunc
	previewChars int

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	step     step
	action   action
	kind     string
	lines    []string
	text     string
	count    int
	srcLang  string
	progress progressMsg
	updates  chan progressMsg
	result   string
	status   string
	failed   bool
	ready    bool
}

// New creates a new TUI model instance.
func New(service Port, previewChars int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	if previewChars <= 0 {
		previewChars = 500
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		service:      service,
		ctx:          ctx,
		cancel:       cancel,
		previewChars: previewChars,
		input:        ti,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
	}
	return m.toAction("")
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and operation events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := bodyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 2 + ih + bh // header, status and help lines
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			m.cancel()
			return m, tea.Quit
		}
		switch msg.Type {
		case tea.KeyEnter:
			if m.step == stepRunning {
				return m, nil
			}
			return m.submit(strings.TrimSpace(m.input.Value()))
		case tea.KeyEsc:
			if m.step != stepRunning && m.step != stepAction {
				return m.toAction(""), nil
			}
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	case acquiredMsg:
		return m.acquired(msg), nil
	case progressMsg:
		m.progress = msg
		return m, waitForProgress(m.updates)
	case resultMsg:
		return m.finished(msg), nil
	case savedMsg:
		if msg.err != nil {
			return m.toAction(fmt.Sprintf("Error saving to '%s': %v", msg.path, msg.err)).withFailure(), nil
		}
		return m.toAction(fmt.Sprintf("Saved to '%s' successfully.", msg.path)), nil
	case spinner.TickMsg:
		if m.step != stepRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	if m.step == stepRunning {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	m.input.SetValue("")
	m.failed = false
	switch m.step {
	case stepAction:
		switch value {
		case "q":
			m.cancel()
			return m, tea.Quit
		case "1":
			m.action = actionSummarize
		case "2":
			m.action = actionTranslate
		default:
			return m.fail("Invalid choice. Please enter '1', '2', or 'q'."), nil
		}
		return m.prompt(stepSource, "1 terminal, 2 text file, 3 PDF file, 4 URL (q to quit)", ""), nil

	case stepSource:
		switch value {
		case "q":
			m.cancel()
			return m, tea.Quit
		case "1":
			m.lines = nil
			return m.prompt(stepText, "Type the text, one line per Enter; an empty line ends it", ""), nil
		case "2", "3":
			m.kind = "text"
			if value == "3" {
				m.kind = "PDF"
			}
			return m.prompt(stepPath, fmt.Sprintf("Path to the %s file (q to quit)", m.kind), ""), nil
		case "4":
			return m.prompt(stepURL, "URL to fetch (q to quit)", ""), nil
		default:
			return m.fail("Invalid choice. Please enter '1', '2', '3', '4', or 'q'."), nil
		}

	case stepText:
		if value != "" {
			m.lines = append(m.lines, value)
			m.viewport.SetContent(strings.Join(m.lines, "\n"))
			return m, nil
		}
		return m.acquired(acquiredMsg{label: "Text entered", text: strings.Join(m.lines, " ")}), nil

	case stepPath:
		if strings.EqualFold(value, "q") {
			m.cancel()
			return m, tea.Quit
		}
		m = m.running(fmt.Sprintf("Reading %s", value))
		return m, tea.Batch(m.spinner.Tick, m.readCmd(value))

	case stepURL:
		if strings.EqualFold(value, "q") {
			m.cancel()
			return m, tea.Quit
		}
		m = m.running(fmt.Sprintf("Fetching %s", value))
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd(value))

	case stepCount:
		n := m.service.DefaultSentences()
		if value != "" {
			v, err := strconv.Atoi(value)
			if err != nil || v <= 0 {
				return m.fail(fmt.Sprintf("Invalid input: %q is not a positive number.", value)), nil
			}
			n = v
		}
		m.count = n
		m = m.running(fmt.Sprintf("Summarizing into %d sentences", n))
		return m, tea.Batch(m.spinner.Tick, m.summarizeCmd())

	case stepSourceLang:
		if value == "" {
			value = m.service.DefaultSourceLanguage()
		}
		if err := translator.ValidateLanguageCode(value); err != nil {
			return m.fail("Invalid input: " + err.Error()), nil
		}
		m.srcLang = value
		return m.prompt(stepTargetLang, "Target language code (e.g. 'hi' for Hindi)", ""), nil

	case stepTargetLang:
		if err := translator.ValidateLanguageCode(value); err != nil {
			return m.fail("Invalid input: " + err.Error()), nil
		}
		m = m.running(fmt.Sprintf("Translating %s -> %s", m.srcLang, value))
		m.updates = make(chan progressMsg, 16)
		return m, tea.Batch(m.spinner.Tick, m.translateCmd(value), waitForProgress(m.updates))

	case stepResult:
		if value == "" || strings.EqualFold(value, "n") {
			return m.toAction(""), nil
		}
		m = m.running(fmt.Sprintf("Saving to %s", value))
		return m, m.saveCmd(value)
	}
	return m, nil
}

func (m Model) acquired(msg acquiredMsg) Model {
	if msg.err != nil {
		return m.toAction(describeAcquireError(m.kind, msg.err)).withFailure()
	}
	if strings.TrimSpace(msg.text) == "" {
		return m.toAction("Input text is empty. Cannot summarize or translate.").withFailure()
	}
	m.text = msg.text
	m.viewport.SetContent(msg.label + ":\n\n" + wrap(preview(msg.text, m.previewChars), m.viewport.Width))
	m.viewport.GotoTop()
	if m.action == actionSummarize {
		return m.prompt(stepCount, fmt.Sprintf("Number of sentences (Enter for %d)", m.service.DefaultSentences()), "")
	}
	return m.prompt(stepSourceLang, m.sourcePlaceholder(), strings.Join(translator.LanguageCodeHelp, "\n"))
}

func (m Model) finished(msg resultMsg) Model {
	m.updates = nil
	if msg.err != nil {
		if m.action == actionTranslate && errors.Is(msg.err, domain.ErrInput) {
			return m.prompt(stepSourceLang, m.sourcePlaceholder(), "Invalid input: "+msg.err.Error()).withFailure()
		}
		return m.toAction("Error: " + msg.err.Error()).withFailure()
	}
	m.result = msg.text
	title := "Summary"
	if m.action == actionTranslate {
		title = "Translated Text"
	}
	m.viewport.SetContent(titleStyle.Render(title) + "\n\n" + wrap(msg.text, m.viewport.Width))
	m.viewport.GotoTop()
	return m.prompt(stepResult, "Path to save the result (n to skip)", "")
}

func (m Model) sourcePlaceholder() string {
	return fmt.Sprintf("Source language code (Enter for %s)", m.service.DefaultSourceLanguage())
}

func (m Model) toAction(status string) Model {
	m.text, m.result, m.srcLang, m.lines = "", "", "", nil
	m.viewport.SetContent("")
	return m.prompt(stepAction, "1 summarize, 2 translate (q to quit)", status)
}

func (m Model) prompt(s step, placeholder, status string) Model {
	m.step = s
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	m.status = status
	return m
}

func (m Model) running(status string) Model {
	m.step = stepRunning
	m.progress = progressMsg{}
	m.input.Blur()
	m.status = status
	return m
}

func (m Model) fail(status string) Model {
	m.status = status
	m.failed = true
	return m
}

func (m Model) withFailure() Model {
	m.failed = true
	return m
}

func (m Model) readCmd(path string) tea.Cmd {
	svc, ctx, kind := m.service, m.ctx, m.kind
	return func() tea.Msg {
		text, err := svc.ReadFile(ctx, path)
		return acquiredMsg{label: fmt.Sprintf("%s read from file '%s'", capitalize(kind), path), text: text, err: err}
	}
}

func (m Model) fetchCmd(url string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		text, err := svc.FetchURL(ctx, url)
		if err != nil {
			err = fmt.Errorf("error fetching content from URL '%s': %w", url, err)
		}
		return acquiredMsg{label: fmt.Sprintf("Text fetched from URL '%s'", url), text: text, err: err}
	}
}

func (m Model) summarizeCmd() tea.Cmd {
	svc, ctx, text, n := m.service, m.ctx, m.text, m.count
	return func() tea.Msg {
		out, err := svc.Summarize(ctx, text, n)
		return resultMsg{text: out, err: err}
	}
}

func (m Model) translateCmd(dest string) tea.Cmd {
	svc, ctx, text, src, updates := m.service, m.ctx, m.text, m.srcLang, m.updates
	return func() tea.Msg {
		defer close(updates)
		out, err := svc.Translate(ctx, text, src, dest, &chanProgress{ch: updates})
		return resultMsg{text: out, err: err}
	}
}

func (m Model) saveCmd(path string) tea.Cmd {
	svc, ctx, content := m.service, m.ctx, m.result
	return func() tea.Msg {
		return savedMsg{path: path, err: svc.Save(ctx, path, content)}
	}
}

// View renders the header, body, input and status.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("textkit") + "  " + helpStyle.Render(m.breadcrumb())
	body := bodyBoxStyle.Render(m.viewport.View())

	var input string
	if m.step == stepRunning {
		line := m.spinner.View() + " " + m.status
		if m.progress.total > 0 {
			line += fmt.Sprintf("  chunk %d/%d", m.progress.done, m.progress.total)
		}
		input = inputBoxStyle.Render(line)
	} else {
		input = inputBoxStyle.Render(m.input.View())
	}

	status := statusStyle.Render(m.status)
	if m.failed {
		status = errorStyle.Render(m.status)
	}
	if m.step == stepRunning {
		status = ""
	}
	help := helpStyle.Render("enter submit • esc menu • pgup/pgdn scroll • ctrl+c quit")
	return header + "\n" + body + "\n" + input + "\n" + status + "\n" + help
}

func (m Model) breadcrumb() string {
	switch m.action {
	case actionSummarize:
		return "summarize"
	case actionTranslate:
		return "translate"
	}
	return ""
}

// chanProgress forwards engine progress to the UI without blocking it.
type chanProgress struct {
	ch    chan<- progressMsg
	done  int
	total int
}

func (p *chanProgress) Start(total int) {
	p.done, p.total = 0, total
	p.send()
}

func (p *chanProgress) Increment() {
	p.done++
	p.send()
}

func (p *chanProgress) Finish() {}

func (p *chanProgress) send() {
	select {
	case p.ch <- progressMsg{done: p.done, total: p.total}:
	default:
	}
}

func waitForProgress(ch <-chan progressMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	bodyBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func describeAcquireError(kind string, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "File not found. Please enter a valid file path."
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return err.Error()
	case errors.Is(err, domain.ErrFetch):
		return err.Error()
	default:
		return fmt.Sprintf("Error reading %s file: %v", kind, err)
	}
}

func preview(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
