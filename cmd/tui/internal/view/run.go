package view

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rfm/internal/config"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

type runState int

const (
	runStateFilePick runState = iota
	runStateOptions
	runStateRunning
	runStateError
)

// runOptions lives behind a pointer so the huh form keeps writing to the same
// values while the model is copied through Update.
type runOptions struct {
	asOf    string
	format  string
	persist bool
	out     string
}

// RunCompletedMsg carries a finished segmentation back to the caller.
type RunCompletedMsg struct {
	Result *rfm.Result
	AsOf   time.Time
	Saved  string
}

type RunModel struct {
	CommonModel
	importService *importer.Service
	dbSource      rfm.Source

	state      runState
	filePicker filepicker.Model
	path       string
	form       *huh.Form
	opts       *runOptions
	spinner    spinner.Model

	status string
	err    error
}

// NewFileRunModel segments a ledger export picked from disk.
func NewFileRunModel(impSvc *importer.Service, defaults config.Config) RunModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".tsv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	m := newRunModel(defaults)
	m.importService = impSvc
	m.filePicker = fp
	m.state = runStateFilePick

	return m
}

// NewDBRunModel segments the ledger table behind src.
func NewDBRunModel(src rfm.Source, defaults config.Config) RunModel {
	m := newRunModel(defaults)
	m.dbSource = src
	m.state = runStateOptions
	m.form = m.buildOptionsForm()

	return m
}

func newRunModel(defaults config.Config) RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return RunModel{
		spinner: s,
		opts: &runOptions{
			asOf:   defaults.RFM.AsOf,
			format: defaults.RFM.Format,
			out:    defaults.RFM.Output,
		},
	}
}

func (m RunModel) Title() string {
	if m.dbSource != nil {
		return "Segment Database Ledger"
	}

	return "Segment Ledger File"
}

func (m RunModel) ShortHelp() string {
	switch m.state {
	case runStateRunning:
		return "Segmenting..."
	case runStateError:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m RunModel) Init() tea.Cmd {
	if m.state == runStateFilePick {
		return m.filePicker.Init()
	}

	return m.form.Init()
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.handleEsc()
	}

	switch m.state {
	case runStateFilePick:
		return m.updateFilePick(msg)
	case runStateOptions:
		return m.updateOptions(msg)
	case runStateRunning:
		return m.updateRunning(msg)
	}

	return m, nil
}

func (m RunModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case runStateOptions, runStateError:
		if m.dbSource == nil {
			m.state = runStateFilePick
			m.err = nil

			return m, m.filePicker.Init()
		}
	case runStateRunning:
		return m, nil
	}

	return m, Back
}

func (m RunModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = runStateOptions
		m.form = m.buildOptionsForm()

		return m, m.form.Init()
	}

	return m, cmd
}

func (m RunModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = runStateRunning
	m.err = nil
	m.status = "Segmenting customers..."

	return m, tea.Batch(m.spinner.Tick, m.runCmd(*m.opts))
}

func (m RunModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(runResultMsg); ok {
		if result.err != nil {
			m.state = runStateError
			m.err = result.err

			return m, nil
		}

		done := RunCompletedMsg{Result: result.res, AsOf: result.asOf, Saved: result.saved}

		return m, func() tea.Msg { return done }
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m RunModel) buildOptionsForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("as_of").
			Title("As-of Date").
			Description("Recency is counted in days before this date").
			Placeholder("2011-12-11").
			Validate(func(s string) error {
				_, err := config.ParseAsOf(s)
				return err
			}).
			Value(&m.opts.asOf),
	}

	if m.dbSource == nil {
		fields = append(fields,
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("Comma separated", string(importer.FormatCSV)),
					huh.NewOption("Tab separated", string(importer.FormatTSV)),
				).
				Value(&m.opts.format),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Key("persist").
			Title("Save segmentation as CSV?").
			Value(&m.opts.persist),
		huh.NewInput().
			Key("out").
			Title("Output Path").
			Placeholder("rfm.csv").
			Value(&m.opts.out),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func (m RunModel) View() string {
	switch m.state {
	case runStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select ledger export:\n\n%s", m.filePicker.View()),
		)
	case runStateOptions:
		header := "Database ledger"
		if m.dbSource == nil {
			header = m.path
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, activeStyle(header), "", m.form.View()),
		)
	case runStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s %s", m.spinner.View(), m.status),
		)
	case runStateError:
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)",
		)
	}

	return ""
}

type runResultMsg struct {
	res   *rfm.Result
	asOf  time.Time
	saved string
	err   error
}

func (m RunModel) runCmd(opts runOptions) tea.Cmd {
	src := m.dbSource
	if src == nil {
		src = importer.NewFileSource(m.importService, m.path, importer.Format(opts.format))
	}

	return func() tea.Msg {
		asOf, err := config.ParseAsOf(opts.asOf)
		if err != nil {
			return runResultMsg{err: err}
		}

		ctx, cancel := RunCtx()
		defer cancel()

		res, err := rfm.NewService(src).Segment(ctx, asOf)
		if err != nil {
			return runResultMsg{err: err}
		}

		if !opts.persist {
			return runResultMsg{res: res, asOf: asOf}
		}

		if err := writeCSV(opts.out, func(f *os.File) error { return rfm.WriteCSV(f, res.Customers) }); err != nil {
			return runResultMsg{err: err}
		}

		return runResultMsg{res: res, asOf: asOf, saved: opts.out}
	}
}

func writeCSV(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
