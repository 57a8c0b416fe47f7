package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Terminal cells are roughly twice as tall as wide; scale the layout canvas
// so placements fill the preview evenly.
const previewCellAspect = 2.0

// previewCommand creates the preview command: a live terminal preview that
// re-runs the layout as the window resizes.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		in       inputOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "preview [words.json]",
		Short: "Preview a word cloud live in the terminal",
		Long: `Preview a word cloud live in the terminal.

The preview command lays the words out against the current terminal size and
re-runs the layout whenever the window is resized, debounced so rapid
resizes only trigger one recompute. Press r to re-roll the randomness and q
to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordsFile := ""
			if len(args) > 0 {
				wordsFile = args[0]
			}
			if wordsFile == "" && in.config == "" {
				return fmt.Errorf("a words file or --config is required")
			}

			words, opts, err := c.loadInputs(wordsFile, &in)
			if err != nil {
				return err
			}
			return c.runPreview(words, opts, debounce)
		},
	}

	registerInputFlags(cmd, &in)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "resize quiet period before recomputing (default 300ms)")

	return cmd
}

// runPreview starts the bubbletea program around a layout scheduler.
func (c *CLI) runPreview(words []wordcloud.Word, opts pipeline.Options, debounce time.Duration) error {
	sched := layout.NewScheduler(opts.Engine, debounce, c.Logger)
	defer sched.Close()

	m := newPreviewModel(words, opts, sched)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.send = p.Send

	_, err := p.Run()
	return err
}

// =============================================================================
// PreviewModel - Live Layout Preview
// =============================================================================

// layoutMsg delivers a finished layout run to the bubbletea loop.
type layoutMsg struct {
	result layout.Result
	width  float64
	height float64
}

// PreviewModel is the bubbletea model for the live preview.
type PreviewModel struct {
	words []wordcloud.Word
	opts  pipeline.Options
	sched *layout.Scheduler
	send  func(tea.Msg)

	cols, rows int
	placed     []wordcloud.PlacedWord
	canvasW    float64
	canvasH    float64
	attempts   int
	exhausted  bool
	computing  bool
	reroll     uint64
}

// newPreviewModel creates a preview model around a scheduler.
func newPreviewModel(words []wordcloud.Word, opts pipeline.Options, sched *layout.Scheduler) *PreviewModel {
	return &PreviewModel{words: words, opts: opts, sched: sched}
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sched.Cancel()
			return m, tea.Quit
		case "r":
			m.reroll++
			m.schedule()
		}
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height - 2 // status line + key hints
		m.schedule()
	case layoutMsg:
		m.placed = msg.result.Words
		m.attempts = msg.result.Attempts
		m.exhausted = msg.result.Exhausted
		m.canvasW = msg.width
		m.canvasH = msg.height
		m.computing = false
	}
	return m, nil
}

// schedule submits the current terminal dimensions to the scheduler. The
// completion callback runs on the scheduler's goroutine and hands the result
// back to the bubbletea loop via program.Send.
func (m *PreviewModel) schedule() {
	if m.cols <= 0 || m.rows <= 0 {
		return
	}

	width := float64(m.cols)
	height := float64(m.rows) * previewCellAspect

	cloudOpts := m.opts.Cloud
	if m.reroll > 0 {
		cloudOpts.Deterministic = true
		cloudOpts.Seed = m.opts.Cloud.Seed + m.reroll
	}
	// Terminal cells are coarse; keep fonts small so words fit.
	if cloudOpts.FontSizes == ([2]float64{}) {
		cloudOpts.FontSizes = [2]float64{1, 4}
	}

	m.computing = true
	send := m.send
	m.sched.Schedule(layout.Request{
		Words:    m.words,
		MaxWords: m.opts.MaxWords,
		Options:  cloudOpts,
		Width:    width,
		Height:   height,
		OnComplete: func(res layout.Result) {
			if send != nil {
				send(layoutMsg{result: res, width: width, height: height})
			}
		},
	})
}

func (m *PreviewModel) View() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}

	grid := make([][]rune, m.rows)
	styles := make([][]*lipgloss.Style, m.rows)
	for i := range grid {
		grid[i] = make([]rune, m.cols)
		styles[i] = make([]*lipgloss.Style, m.cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i, w := range m.placed {
		m.blit(grid, styles, w, i)
	}

	var b strings.Builder
	for r := range grid {
		var runStyle *lipgloss.Style
		var run strings.Builder
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for col := range grid[r] {
			if styles[r][col] != runStyle {
				flush()
				runStyle = styles[r][col]
			}
			run.WriteRune(grid[r][col])
		}
		flush()
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r re-roll  q quit"))
	return b.String()
}

// blit writes one placed word horizontally into the cell grid. The engine's
// center-origin coordinates map to the grid center; rotation collapses to
// horizontal since terminal cells cannot tilt.
func (m *PreviewModel) blit(grid [][]rune, styles [][]*lipgloss.Style, w wordcloud.PlacedWord, idx int) {
	if m.canvasW <= 0 || m.canvasH <= 0 {
		return
	}
	col := int((w.X+m.canvasW/2)/m.canvasW*float64(m.cols)) - len(w.Text)/2
	row := int((w.Y + m.canvasH/2) / m.canvasH * float64(m.rows))
	if row < 0 || row >= m.rows {
		return
	}

	style := previewStyleFor(w, idx)
	for i, r := range w.Text {
		c := col + i
		if c < 0 || c >= m.cols {
			continue
		}
		if grid[row][c] != ' ' {
			continue
		}
		grid[row][c] = r
		styles[row][c] = style
	}
}

// previewStyleFor maps a placed word to a terminal style: big words are bold
// and bright, small ones dim.
func previewStyleFor(w wordcloud.PlacedWord, idx int) *lipgloss.Style {
	palette := []lipgloss.Color{colorCyan, colorGreen, colorYellow, colorBlue, colorWhite}
	style := lipgloss.NewStyle().Foreground(palette[idx%len(palette)])
	if w.Size >= 3 {
		style = style.Bold(true)
	}
	return &style
}

func (m *PreviewModel) statusLine() string {
	switch {
	case m.computing:
		return StyleDim.Render("laying out...")
	case m.exhausted:
		return StyleWarning.Render(fmt.Sprintf("%d words placed (%d attempts, some dropped)", len(m.placed), m.attempts))
	case len(m.placed) > 0:
		return StyleDim.Render(fmt.Sprintf("%d words placed (%d attempts)", len(m.placed), m.attempts))
	default:
		return StyleDim.Render("waiting for layout")
	}
}
