package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"dualdiff/internal/compare"
	"dualdiff/internal/format"
	"dualdiff/internal/session"
	"dualdiff/internal/view"
)

// layer adapts a rendered string to the model the overlay composes.
type layer string

func (l layer) Init() tea.Cmd                       { return nil }
func (l layer) Update(tea.Msg) (tea.Model, tea.Cmd) { return l, nil }
func (l layer) View() string                        { return string(l) }

// View renders the entire UI
func (m Model) View() string {
	base := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitle(),
		m.renderToolbar(),
		m.renderPanels(),
		m.renderStatus(),
	)

	var modal string
	switch info := m.s.PendingCopy(); {
	case info != nil:
		modal = m.renderConfirm(info)
	case m.s.Refreshing():
		modal = m.renderProgress()
	default:
		return base
	}
	return overlay.New(layer(modal), layer(base), overlay.Center, overlay.Center, 0, 0).View()
}

func (m Model) panelWidth() int {
	return max(20, m.width/2)
}

func (m Model) renderTitle() string {
	c := m.s.Snapshot()
	half := m.panelWidth()
	left := format.Truncate("Left: "+c.LeftDir, half-1)
	right := format.Truncate("Right: "+c.RightDir, half-1)
	return titleStyle.Width(half).Render(left) + titleStyle.Render(right)
}

func (m Model) renderToolbar() string {
	current := map[view.FilterMode]string{
		view.All:         m.keys.FilterAll.Help().Key,
		view.Differences: m.keys.FilterDiffs.Help().Key,
		view.Modified:    m.keys.FilterMods.Help().Key,
	}[m.s.Filter()]

	var items []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		label := h.Desc
		if h.Key == current {
			label = activeFilterStyle.Render(label)
		}
		items = append(items, label+"("+keyStyle.Render(h.Key)+")")
	}

	copyLabel, copyKey := "▶ Copy", "Ctrl+R"
	if m.s.Selection().Active == 1 {
		copyLabel, copyKey = "◀ Copy", "Ctrl+L"
	}
	if m.s.CanCopy() {
		items = append(items, copyLabel+"("+keyStyle.Render(copyKey)+")")
	} else {
		items = append(items, metaStyle.Render(copyLabel+"("+copyKey+")"))
	}

	return strings.Join(items, " │ ")
}

func (m Model) renderPanels() string {
	width := m.panelWidth()
	sel := m.s.Selection()

	panels := make([]string, 2)
	for p := range panels {
		style := paneStyle
		if p == sel.Active {
			style = activePaneStyle
		}
		inner := width - style.GetHorizontalFrameSize()
		body := m.renderRows(p, inner)
		panels[p] = style.Width(width - style.GetHorizontalBorderSize()).Height(m.listHeight()).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m Model) renderRows(p, width int) string {
	rows := m.s.Rows(p)
	sel := m.s.Selection()
	now := m.now()

	end := min(len(rows), m.offset[p]+m.listHeight())
	lines := make([]string, 0, end-m.offset[p])
	for i := m.offset[p]; i < end; i++ {
		switch {
		case i == sel.Index[p] && p == sel.Active:
			lines = append(lines, selectedStyle.Render(pad(m.plainRow(rows[i], width, now), width)))
		case i == sel.Index[p]:
			lines = append(lines, mirrorStyle.Render(pad(m.plainRow(rows[i], width, now), width)))
		default:
			lines = append(lines, m.styledRow(rows[i], width, now))
		}
	}
	return strings.Join(lines, "\n")
}

func icon(r view.Row) string {
	switch {
	case !r.Node.IsDir:
		return "📄"
	case r.Node.Expanded:
		return "📂"
	default:
		return "📁"
	}
}

// rowParts splits a row into its name column and, for files with room to
// spare, its size and time column.
func (m Model) rowParts(r view.Row, width int, now time.Time) (string, string) {
	if r.Blank() {
		return "", ""
	}
	name := strings.Repeat("  ", r.Depth-1) + icon(r) + " " + r.Node.Name
	if r.Node.IsDir || width < metaWidth+12 {
		return format.Truncate(name, width), ""
	}
	meta := format.Size(r.Node.Size, r.Node.HasSize) + " " + format.ModTime(r.Node.ModTime, now, m.loc)
	name = format.Truncate(name, width-metaWidth-1)
	return pad(name, width-metaWidth), meta
}

func (m Model) plainRow(r view.Row, width int, now time.Time) string {
	name, meta := m.rowParts(r, width, now)
	return name + meta
}

func (m Model) styledRow(r view.Row, width int, now time.Time) string {
	name, meta := m.rowParts(r, width, now)
	return nameStyle(r.Node.Status).Render(name) + metaStyle.Render(meta)
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func (m Model) renderStatus() string {
	if msg := m.s.Status(); msg != "" {
		if strings.Contains(msg, "failed") {
			return errorStyle.Render(msg)
		}
		return statusStyle.Render(msg)
	}
	sum := compare.Summarize(m.s.Snapshot())
	return statusStyle.Render(fmt.Sprintf("%d same, %d different, %d left only, %d right only",
		sum.Same, sum.Different, sum.LeftOnly, sum.RightOnly))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (m Model) renderConfirm(info *session.CopyInfo) string {
	title := "▶ Copy to RIGHT panel"
	if !info.LeftToRight {
		title = "◀ Copy to LEFT panel"
	}
	width := max(20, min(70, m.width-10))

	counts := plural(info.Files, "file")
	if info.Folders > 0 {
		counts += ", " + plural(info.Folders, "folder")
	}
	counts += ", " + strings.TrimSpace(format.Size(info.Bytes, true))

	body := lipgloss.JoinVertical(
		lipgloss.Center,
		modalTitleStyle.Render(title),
		sourceStyle.Render(format.Truncate(info.Source, width)),
		"to",
		targetStyle.Render(format.Truncate(info.Target, width)),
		"",
		counts,
		"",
		keyStyle.Render("Enter")+" - OK    "+keyStyle.Render("Esc")+" - Cancel",
	)
	return modalStyle.Render(body)
}

func (m Model) renderProgress() string {
	text, fraction := m.s.Progress()
	body := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("Refreshing"),
		text,
		"",
		m.bar.ViewAs(fraction),
	)
	return progressModalStyle.Render(body)
}
