// Package main provides an interactive terminal debugger over the
// execution core: a bubbletea Elm-architecture loop that ticks the
// sequencer on a timer and renders thread and play-queue counts with
// lipgloss. Its keys pause/resume ticking and step one tick at a time
// through internal/debug's Debugger; it has no breakpoint or watch
// commands.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"steinacore/internal/config"
	"steinacore/internal/debug"
	"steinacore/internal/motion"
	"steinacore/internal/runtime"
	"steinacore/internal/sequencer"
	"steinacore/internal/thread"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89F0CB"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"})
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#949494", Dark: "#5A5A5A"})

	rootCmd = &cobra.Command{
		Use:   "steina-debugger",
		Short: "Interactive TUI debugger for the Steina execution core",
		RunE:  run,
	}
)

type noopBlockStore struct{}

func (noopBlockStore) Execute(_ *sequencer.Sequencer, th *thread.Thread) {}
func (noopBlockStore) NextBlock(string) (string, bool)                  { return "", false }
func (noopBlockStore) ResolveProcedure(string) (sequencer.ProcedureDef, bool) {
	return sequencer.ProcedureDef{}, false
}

type fixedMotion struct{ snap motion.Snapshot }

func (m fixedMotion) Snapshot() motion.Snapshot { return m.snap }

type tickMsg time.Time

func tickEvery(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// model is the bubbletea Elm-architecture state for the debugger view.
type model struct {
	rt        *runtime.Runtime
	dbg       *debug.Debugger
	logger    *debug.Logger
	tickCount uint64
	period    time.Duration
	paused    bool
	lastLog   string
}

func newModel(rt *runtime.Runtime, logger *debug.Logger, period time.Duration) model {
	return model{rt: rt, dbg: debug.NewDebugger(), logger: logger, period: period}
}

func (m model) Init() tea.Cmd {
	return tickEvery(m.period)
}

func (m *model) runTick() {
	finished := m.rt.Tick()
	m.tickCount++
	if len(finished) > 0 {
		m.lastLog = fmt.Sprintf("tick %d: %d thread(s) finished", m.tickCount, len(finished))
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.dbg.IsPaused() {
				m.dbg.Resume()
			} else {
				m.dbg.Pause()
			}
		case "s":
			if m.dbg.IsPaused() {
				m.runTick()
			}
		}
		return m, nil
	case tickMsg:
		if !m.dbg.IsPaused() {
			m.runTick()
		}
		return m, tickEvery(m.period)
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("steina-debugger") + "\n\n")

	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("tick:"), m.tickCount)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("threads:"), len(m.rt.Threads()))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("video plays:"), m.rt.VideoState().Count())
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("audio plays:"), m.rt.AudioState().Count())

	if m.dbg.IsPaused() {
		b.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString(m.lastLog + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("space: pause/resume  s: step  q: quit"))
	return b.String()
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	logger := debug.NewLogger(cfg.LogBufferEntries)
	defer logger.Shutdown()

	rt := runtime.New(noopBlockStore{}, fixedMotion{}, logger, cfg.CurrentStepTimeMs())

	period := time.Duration(cfg.CurrentStepTimeMs() * float64(time.Millisecond))
	p := tea.NewProgram(newModel(rt, logger, period))
	_, err := p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
