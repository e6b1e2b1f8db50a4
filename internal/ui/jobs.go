package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"unifiedai/internal/jobs"
	"unifiedai/internal/models"
	"unifiedai/internal/styles"
)

const jobDateLayout = "2006-01-02"

// Form field order. The status field is a picker, the others are text.
const (
	jobFieldCompany = iota
	jobFieldRole
	jobFieldStatus
	jobFieldDate
	jobFieldLink
	jobFieldCount
)

var jobFieldLabels = [jobFieldCount]string{"Company", "Role", "Status", "Date", "Link"}

type jobForm struct {
	Inputs  [jobFieldCount]textinput.Model
	Status  int
	Focus   int
	Pending bool
}

func newJobForm(now time.Time) *jobForm {
	f := &jobForm{}
	placeholders := [jobFieldCount]string{"Acme Corp", "Backend Engineer", "", jobDateLayout, "https://"}
	for i := range f.Inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "❯ "
		ti.CharLimit = 512
		ti.Width = styles.ContentWidth - 4
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.HintColor)
		f.Inputs[i] = ti
	}
	f.Inputs[jobFieldDate].SetValue(now.Format(jobDateLayout))
	f.focus()
	return f
}

func (f *jobForm) focus() {
	for i := range f.Inputs {
		if i == f.Focus {
			f.Inputs[i].Focus()
		} else {
			f.Inputs[i].Blur()
		}
	}
}

// Job holds the form values as typed; the service decides what it accepts.
func (f *jobForm) Job() models.Job {
	return models.Job{
		Company: f.Inputs[jobFieldCompany].Value(),
		Role:    f.Inputs[jobFieldRole].Value(),
		Status:  models.JobStatuses[f.Status],
		Date:    f.Inputs[jobFieldDate].Value(),
		Link:    f.Inputs[jobFieldLink].Value(),
	}
}

func newJobsTable() table.Model {
	t := table.New(
		table.WithColumns(jobColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CurrentTheme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.CurrentTheme.Primary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#5C5C7A")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func jobColumns(width int) []table.Column {
	// company, role, status, date, link
	avail := width - 10
	if avail < 50 {
		avail = 50
	}
	return []table.Column{
		{Title: "Company", Width: avail * 22 / 100},
		{Title: "Role", Width: avail * 24 / 100},
		{Title: "Status", Width: 12},
		{Title: "Applied", Width: 14},
		{Title: "Link", Width: avail - avail*22/100 - avail*24/100 - 26},
	}
}

func jobDate(raw string, now time.Time) string {
	t, err := time.Parse(jobDateLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return raw
		}
	}
	if now.Sub(t) < 24*time.Hour && now.Sub(t) >= 0 {
		return "today"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func (m *Model) syncJobsTable() {
	now := time.Now()
	rows := make([]table.Row, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		rows = append(rows, table.Row{j.Company, j.Role, j.Status, jobDate(j.Date, now), j.Link})
	}
	m.JobsTable.SetRows(rows)
	if c := m.JobsTable.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.JobsTable.SetCursor(len(rows) - 1)
	}
}

func (m *Model) selectedJob() (models.Job, bool) {
	i := m.JobsTable.Cursor()
	if i < 0 || i >= len(m.Jobs) {
		return models.Job{}, false
	}
	return m.Jobs[i], true
}

// refreshJobs fetches the list with the current filter. Every filter
// change and every mutation ends here.
func (m *Model) refreshJobs() tea.Cmd {
	m.JobsLoading = true
	return tea.Batch(m.fetchJobsCmd(m.JobFilter), m.Spinner.Tick)
}

func nextStatusFilter(current string) string {
	if current == "" {
		return models.JobStatuses[0]
	}
	for i, s := range models.JobStatuses {
		if s == current && i+1 < len(models.JobStatuses) {
			return models.JobStatuses[i+1]
		}
	}
	return ""
}

func (m *Model) updateJobs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.JobForm != nil {
		return m.updateJobForm(msg)
	}
	if m.ConfirmDelete != nil {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "y", "Y":
			job := *m.ConfirmDelete
			m.ConfirmDelete = nil
			return m, m.deleteJobCmd(job.ID)
		case "n", "N", "esc":
			m.ConfirmDelete = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		back := m.JobsBackRoute
		if back == "" || back == RouteJobs {
			back = RouteHome
		}
		return m, m.navigate(back)
	case "ctrl+s", "?":
		m.ShortcutsOpen = true
		return m, nil
	case "r":
		return m, m.refreshJobs()
	case "f":
		m.JobFilter.Status = nextStatusFilter(m.JobFilter.Status)
		return m, m.refreshJobs()
	case "s":
		if m.JobFilter.Sort == jobs.SortDateAsc {
			m.JobFilter.Sort = jobs.SortDateDesc
		} else {
			m.JobFilter.Sort = jobs.SortDateAsc
		}
		return m, m.refreshJobs()
	case "n":
		m.JobForm = newJobForm(time.Now())
		return m, nil
	case "e":
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		return m, m.updateJobStatusCmd(job.ID, models.NextJobStatus(job.Status))
	case "d":
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		m.ConfirmDelete = &job
		return m, nil
	}

	var cmd tea.Cmd
	m.JobsTable, cmd = m.JobsTable.Update(msg)
	return m, cmd
}

func (m *Model) updateJobForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.JobForm
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.JobForm = nil
		return m, nil
	case "tab", "down":
		f.Focus = (f.Focus + 1) % jobFieldCount
		f.focus()
		return m, nil
	case "shift+tab", "up":
		f.Focus = (f.Focus - 1 + jobFieldCount) % jobFieldCount
		f.focus()
		return m, nil
	case "enter":
		if f.Focus < jobFieldCount-1 {
			f.Focus++
			f.focus()
			return m, nil
		}
		return m, m.submitJobForm()
	case "ctrl+s":
		return m, m.submitJobForm()
	}

	if f.Focus == jobFieldStatus {
		switch msg.String() {
		case "left", "h":
			f.Status = (f.Status - 1 + len(models.JobStatuses)) % len(models.JobStatuses)
		case "right", "l", " ":
			f.Status = (f.Status + 1) % len(models.JobStatuses)
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return m, cmd
}

func (m *Model) submitJobForm() tea.Cmd {
	f := m.JobForm
	if f.Pending {
		return nil
	}
	f.Pending = true
	return tea.Batch(m.createJobCmd(f.Job()), m.Spinner.Tick)
}

func (m *Model) handleJobsLoaded(msg jobsLoadedMsg) {
	m.JobsLoading = false
	if msg.Err != nil {
		m.logger.Error("list jobs", zap.Error(msg.Err))
		m.JobsErr = msg.Err
		return
	}
	m.JobsErr = nil
	m.Jobs = msg.Jobs
	m.syncJobsTable()
}

func (m *Model) handleJobMutated(msg jobMutatedMsg) tea.Cmd {
	if msg.Action == "create" && m.JobForm != nil {
		m.JobForm.Pending = false
	}
	if msg.Err != nil {
		m.logger.Error("job "+msg.Action, zap.Error(msg.Err))
		return m.notify(NoticeError, fmt.Sprintf("Failed to %s job", msg.Action))
	}
	if msg.Action == "create" {
		m.JobForm = nil
	}
	return tea.Batch(m.notify(NoticeSuccess, jobActionDone[msg.Action]), m.refreshJobs())
}

var jobActionDone = map[string]string{
	"create": "Job added",
	"update": "Status updated",
	"delete": "Job deleted",
}

func (m *Model) RenderJobs() string {
	header := styles.TitleStyle.Render("JOB TRACKER")

	status := m.JobFilter.Status
	if status == "" {
		status = "All"
	}
	sortLabel := "newest first"
	if m.JobFilter.Sort == jobs.SortDateAsc {
		sortLabel = "oldest first"
	}
	filters := styles.SubtitleStyle.Render(fmt.Sprintf("Status: %s • Sorted: %s • %d jobs", status, sortLabel, len(m.Jobs)))

	var body string
	switch {
	case m.JobsErr != nil && len(m.Jobs) == 0:
		body = styles.ErrorStyle.Render("Failed to fetch jobs")
	case len(m.Jobs) == 0 && m.JobsLoading:
		body = m.Spinner.View() + " Loading jobs..."
	case len(m.Jobs) == 0:
		body = lipgloss.NewStyle().Foreground(styles.HintColor).Render("No jobs yet. Press n to add one.")
	default:
		body = m.JobsTable.View()
		if job, ok := m.selectedJob(); ok {
			badge := styles.NoticeStyle(styles.StatusColor(job.Status)).Render(job.Status)
			body += "\n\n" + badge + " " + job.Company + " • " + job.Role
		}
	}
	if m.JobsLoading && len(m.Jobs) > 0 {
		filters += " " + m.Spinner.View()
	}

	hint := lipgloss.NewStyle().Foreground(styles.HintColor).PaddingTop(1).
		Render("n: new • e: next status • d: delete • f: filter • s: sort • r: refresh • Esc: back")

	if m.ConfirmDelete != nil {
		hint = styles.ErrorStyle.PaddingTop(1).Render(fmt.Sprintf("Delete %s (%s)? y/n", m.ConfirmDelete.Company, m.ConfirmDelete.Role))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, filters, "", body, hint),
	)
}

func (m *Model) RenderJobForm() string {
	f := m.JobForm
	parts := []string{styles.ModalTitleStyle.Render("New Job Application")}
	for i := 0; i < jobFieldCount; i++ {
		label := styles.FieldLabelStyle.Render(jobFieldLabels[i])
		if i == jobFieldStatus {
			var opts []string
			for j, s := range models.JobStatuses {
				if j == f.Status {
					opts = append(opts, styles.NoticeStyle(styles.StatusColor(s)).Render(s))
				} else {
					opts = append(opts, styles.TabInactiveStyle.Padding(0, 1).Render(s))
				}
			}
			marker := "  "
			if f.Focus == jobFieldStatus {
				marker = "❯ "
			}
			parts = append(parts, label, marker+strings.Join(opts, " "), "")
			continue
		}
		parts = append(parts, label, f.Inputs[i].View(), "")
	}
	if f.Pending {
		parts = append(parts, m.Spinner.View()+" Saving...")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.JoinVertical(lipgloss.Left, content, styles.Hint("Tab: next field • ←/→: status • Ctrl+S: save • Esc: cancel"))
}
