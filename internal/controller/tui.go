package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

// recordRefresh is how many records pass between two progress redraws.
const recordRefresh = 64

const maxBarWidth = 60

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mode    StartMode
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program. Quiet mode prints plain text
// instead.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mode = newStartConfig(options).mode
	if t.mode == ModeQuiet {
		return nil
	}

	// Input stays disabled so interrupts reach the command's signal handler.
	program := tea.NewProgram(newRunModel(),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("progress display failed", "error", err)
		}
	}()

	t.program = program
	t.done = done

	return nil
}

// Close stops the program if it is still running.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done

	t.program = nil
}

// Wait blocks until the program rendered its final frame.
func (t *TUI) Wait(_ context.Context) {
	if t.done != nil {
		<-t.done
	}
}

// DisplayRunInfo shows the settings of the run.
func (t *TUI) DisplayRunInfo(_ context.Context, info m.RunInfo) {
	t.send(runInfoMsg(info))
}

// DisplayWarning prints a warning above the progress display.
func (t *TUI) DisplayWarning(_ context.Context, message string) {
	line := warningStyle.Render("warning: " + message)

	if t.program == nil {
		_, _ = fmt.Fprintln(t.output, line)
		return
	}

	t.program.Println(line)
}

// DisplayFileStarted shows the file being augmented.
func (t *TUI) DisplayFileStarted(_ context.Context, file m.FileProgress) {
	t.send(fileStartedMsg(file))
}

// DisplayRecordCompleted refreshes the counters of the current file.
func (t *TUI) DisplayRecordCompleted(_ context.Context, file m.FileProgress) {
	if file.Records%recordRefresh != 0 {
		return
	}

	t.send(recordMsg(file))
}

// DisplayFileCompleted marks a file as done.
func (t *TUI) DisplayFileCompleted(_ context.Context, file m.FileProgress) {
	t.send(fileCompletedMsg(file))
}

// DisplayStatistics shows the statistics table and ends the program.
func (t *TUI) DisplayStatistics(_ context.Context, summary m.StatsSummary) {
	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "\n%s", renderStatisticsTable(summary))
		return
	}

	t.program.Send(statsMsg(summary))
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

type (
	runInfoMsg       m.RunInfo
	fileStartedMsg   m.FileProgress
	recordMsg        m.FileProgress
	fileCompletedMsg m.FileProgress
	statsMsg         m.StatsSummary
)

// runModel is the Bubble Tea model of a batch run.
type runModel struct {
	spinner   spinner.Model
	progress  progress.Model
	info      m.RunInfo
	file      m.FileProgress
	active    bool
	completed []m.FileProgress
	summary   *m.StatsSummary
}

func newRunModel() runModel {
	return runModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.progress.Width = max(10, min(msg.Width-4, maxBarWidth))
		return rm, nil

	case runInfoMsg:
		rm.info = m.RunInfo(msg)
		return rm, nil

	case fileStartedMsg:
		rm.file = m.FileProgress(msg)
		rm.active = true

		return rm, nil

	case recordMsg:
		rm.file = m.FileProgress(msg)
		return rm, nil

	case fileCompletedMsg:
		rm.file = m.FileProgress(msg)
		rm.active = false
		rm.completed = append(rm.completed, rm.file)

		return rm, nil

	case statsMsg:
		summary := m.StatsSummary(msg)
		rm.summary = &summary
		rm.active = false

		return rm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) percent() float64 {
	total := len(rm.info.Files)
	if total == 0 {
		total = rm.file.Total
	}

	if total == 0 {
		return 0
	}

	return float64(len(rm.completed)) / float64(total)
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.info.RunID != "" {
		b.WriteString(titleStyle.Render("codeaug"))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(renderRunInfo(rm.info)))
		b.WriteString("\n")
	}

	for _, file := range rm.completed {
		b.WriteString(doneStyle.Render("✓ "))
		b.WriteString(renderFileLine(file))
		b.WriteString("\n")
	}

	if rm.summary != nil {
		b.WriteString("\n")
		b.WriteString(renderStatisticsTable(*rm.summary))

		return b.String()
	}

	if rm.active {
		b.WriteString(rm.spinner.View())
		b.WriteString(" ")
		b.WriteString(renderFileLine(rm.file))
		b.WriteString("\n")
	}

	b.WriteString(rm.progress.ViewAs(rm.percent()))
	b.WriteString("\n")

	return b.String()
}
