package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "mutest.dev/pkg/mutest/internal/model"
)

const (
	maxRecentSurvivors = 5
	maxProgressWidth   = 60
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	killedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	survivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// TUI implements UI using Bubble Tea. Test runs show a live progress view;
// estimations and reports are paged when they do not fit the terminal.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	mode    StartMode
	program *tea.Program
	done    chan struct{}
	content strings.Builder
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start prepares the display for the given mode. Test mode starts the
// progress program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = cfg.mode
	t.content.Reset()

	if cfg.mode != ModeTest {
		return nil
	}

	program := tea.NewProgram(newProgressModel(), tea.WithOutput(t.output), tea.WithInput(nil), tea.WithContext(ctx))
	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Warn("Progress display stopped", "error", err)
		}
	}()

	t.program = program
	t.done = done

	return nil
}

// Close stops the progress program, leaving its last frame on screen.
func (t *TUI) Close(context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait shows the collected estimation or report content, paging it when
// it is taller than the terminal.
func (t *TUI) Wait(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	t.mu.Lock()
	content := t.content.String()
	t.content.Reset()
	t.mu.Unlock()

	if content == "" {
		return
	}

	height, ok := terminalHeight(t.output)
	if !ok || strings.Count(content, "\n") < height {
		_, _ = fmt.Fprint(t.output, content)
		return
	}

	program := tea.NewProgram(newPagerModel(content), tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		slog.Warn("Pager stopped", "error", err)
		_, _ = fmt.Fprint(t.output, content)
	}
}

func terminalHeight(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height <= 0 {
		return 0, false
	}

	return height, true
}

// DisplayEstimation collects the estimation table for Wait.
func (t *TUI) DisplayEstimation(ctx context.Context, estimates []m.ClassEstimate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.content.WriteString(titleStyle.Render("mutest - mutants summary") + "\n\n")

	if err != nil {
		t.content.WriteString(survivedStyle.Render("estimation error: "+err.Error()) + "\n")
		return err
	}

	if len(estimates) == 0 {
		t.content.WriteString("No source files found\n")
		return nil
	}

	t.content.WriteString(renderEstimationTable(estimates))

	return nil
}

// DisplayReports collects the report tables and surviving diffs for Wait.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.MethodReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.content.WriteString(titleStyle.Render("mutest - reports") + "\n\n")

	if len(reports) == 0 {
		t.content.WriteString("No reports found\n")
		return nil
	}

	t.content.WriteString(renderReportsTable(reports) + "\n")
	t.content.WriteString(renderMutatorTable(mergeSummaries(reports)))

	for _, report := range reports {
		for _, mutant := range report.Mutants {
			if mutant.Status != m.Survived {
				continue
			}

			header := fmt.Sprintf("%s %s #%d: %s", report.Class, report.Method, mutant.ID, mutant.Mutation)
			t.content.WriteString("\n" + survivedStyle.Render(header) + "\n")

			if mutant.Diff != "" {
				t.content.WriteString(mutant.Diff + "\n")
			}
		}
	}

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// DisplayConcurrencyInfo implements UI.
func (t *TUI) DisplayConcurrencyInfo(_ context.Context, threads int, shardIndex int, shardCount int) {
	t.send(concurrencyMsg{threads: threads, shardIndex: shardIndex, shardCount: shardCount})
}

// DisplayUpcomingTestsInfo implements UI.
func (t *TUI) DisplayUpcomingTestsInfo(_ context.Context, total int) {
	t.send(upcomingMsg{total: total})
}

// DisplayStartingMethodInfo implements UI.
func (t *TUI) DisplayStartingMethodInfo(_ context.Context, class string, method string, mutants int) {
	t.send(methodMsg{class: class, method: method, mutants: mutants})
}

// DisplayCompletedTestInfo implements UI.
func (t *TUI) DisplayCompletedTestInfo(_ context.Context, result m.MutantResult) {
	t.send(resultMsg{result: result})
}

// DisplayMethodReport implements UI.
func (t *TUI) DisplayMethodReport(_ context.Context, report m.MethodReport) {
	t.send(reportMsg{report: report})
}

// DisplayMutationScore implements UI.
func (t *TUI) DisplayMutationScore(_ context.Context, score m.MutationScore) {
	t.send(scoreMsg{score: score})
}

type (
	concurrencyMsg struct{ threads, shardIndex, shardCount int }
	upcomingMsg    struct{ total int }
	methodMsg      struct {
		class, method string
		mutants       int
	}
	resultMsg struct{ result m.MutantResult }
	reportMsg struct{ report m.MethodReport }
	scoreMsg  struct{ score m.MutationScore }
)

// progressModel renders the live state of a test run.
type progressModel struct {
	bar         progress.Model
	concurrency concurrencyMsg
	total       int
	completed   int
	counts      map[m.MutantStatus]int
	current     string
	methods     int
	survivors   []string
	score       *m.MutationScore
}

func newProgressModel() progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxProgressWidth

	return progressModel{
		bar:    bar,
		counts: make(map[m.MutantStatus]int),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return nil
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.bar.Width = min(max(msg.Width-4, 10), maxProgressWidth)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return pm, tea.Quit
		}
	case concurrencyMsg:
		pm.concurrency = msg
	case upcomingMsg:
		pm.total = msg.total
	case methodMsg:
		pm.current = fmt.Sprintf("%s %s (%d mutants)", msg.class, msg.method, msg.mutants)
	case resultMsg:
		pm = pm.withResult(msg.result)
	case reportMsg:
		pm.methods++
	case scoreMsg:
		score := msg.score
		pm.score = &score
	}

	return pm, nil
}

func (pm progressModel) withResult(result m.MutantResult) progressModel {
	pm.completed++

	counts := make(map[m.MutantStatus]int, len(pm.counts)+1)
	for status, count := range pm.counts {
		counts[status] = count
	}

	counts[result.Status]++
	pm.counts = counts

	if result.Status == m.Survived && result.Mutant != nil {
		line := fmt.Sprintf("%s:%d %s", result.Method, result.Mutant.Mutation.Line, result.Mutant.Mutation.Text())
		pm.survivors = append(append([]string(nil), pm.survivors...), line)

		if len(pm.survivors) > maxRecentSurvivors {
			pm.survivors = pm.survivors[len(pm.survivors)-maxRecentSurvivors:]
		}
	}

	return pm
}

func (pm progressModel) percent() float64 {
	if pm.total == 0 {
		return 0
	}

	return min(float64(pm.completed)/float64(pm.total), 1)
}

func (pm progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mutest") + "\n")

	if pm.concurrency.threads > 0 {
		fmt.Fprintf(&b, "%s\n", faintStyle.Render(fmt.Sprintf("%d worker(s), shard %d/%d",
			pm.concurrency.threads, pm.concurrency.shardIndex, pm.concurrency.shardCount)))
	}

	fmt.Fprintf(&b, "\n%s %d/%d\n", pm.bar.ViewAs(pm.percent()), pm.completed, pm.total)
	fmt.Fprintf(&b, "%s  %s  timeout %d  build errors %d\n",
		killedStyle.Render(fmt.Sprintf("killed %d", pm.counts[m.Killed])),
		survivedStyle.Render(fmt.Sprintf("survived %d", pm.counts[m.Survived])),
		pm.counts[m.Timeout], pm.counts[m.BuildError])

	if pm.current != "" {
		fmt.Fprintf(&b, "%s %s\n", faintStyle.Render("testing"), pm.current)
	}

	if len(pm.survivors) > 0 {
		b.WriteString("\n" + survivedStyle.Render("recent survivors") + "\n")

		for _, survivor := range pm.survivors {
			b.WriteString("  " + survivor + "\n")
		}
	}

	if pm.score != nil {
		b.WriteString("\n" + boxStyle.Render("Mutation score: "+formatScore(*pm.score)) + "\n")
	}

	return b.String()
}

// pagerModel scrolls long static content.
type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
}

func newPagerModel(content string) pagerModel {
	return pagerModel{content: content}
}

func (pg pagerModel) Init() tea.Cmd {
	return nil
}

func (pg pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-1, 1)

		if !pg.ready {
			pg.viewport = viewport.New(msg.Width, height)
			pg.viewport.SetContent(pg.content)
			pg.ready = true

			return pg, nil
		}

		pg.viewport.Width = msg.Width
		pg.viewport.Height = height

		return pg, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pg, tea.Quit
		}
	}

	if !pg.ready {
		return pg, nil
	}

	var cmd tea.Cmd
	pg.viewport, cmd = pg.viewport.Update(msg)

	return pg, cmd
}

func (pg pagerModel) View() string {
	if !pg.ready {
		return "loading..."
	}

	footer := faintStyle.Render(fmt.Sprintf("q to quit  %3.0f%%", pg.viewport.ScrollPercent()*100))

	return pg.viewport.View() + "\n" + footer
}
