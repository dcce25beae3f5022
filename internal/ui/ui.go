// Package ui is the interactive selector: it surveys the target
// directories for file types and subdirectories, lets the user toggle
// them, and merges the selection additively into the run options.
package ui

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"corpus/internal/shared/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// Result is what the selector hands back. Extensions and IgnoreDirs merge
// additively with whatever the command line already selected.
type Result struct {
	Extensions []string
	IgnoreDirs []string
	Canceled   bool
}

type panelMode int

const (
	panelExtensions panelMode = iota
	panelDirectories
)

type item struct {
	name     string
	count    int
	selected bool
}

func (i item) Title() string {
	marker := "[ ]"
	if i.selected {
		marker = selectedStyle.Render("[x]")
	}
	return fmt.Sprintf("%s %s", marker, i.name)
}

func (i item) Description() string {
	if i.count == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", i.count)
}

func (i item) FilterValue() string { return i.name }

// Model is the bubbletea model for the selector. It is exported so the
// key handling can be driven directly in tests.
type Model struct {
	extList  list.Model
	dirList  list.Model
	mode     panelMode
	accepted bool
	canceled bool
}

func NewModel(extensions map[string]int, directories []string, preselected map[string]bool) Model {
	extItems := make([]list.Item, 0, len(extensions))
	for _, ext := range util.SortedStringKeys(extensions) {
		extItems = append(extItems, item{
			name:     ext,
			count:    extensions[ext],
			selected: preselected[ext],
		})
	}
	dirItems := make([]list.Item, 0, len(directories))
	for _, dir := range directories {
		dirItems = append(dirItems, item{name: dir})
	}

	extList := list.New(extItems, list.NewDefaultDelegate(), 0, 0)
	extList.Title = "File types (space toggles, tab switches panel, enter runs)"
	extList.SetShowStatusBar(false)

	dirList := list.New(dirItems, list.NewDefaultDelegate(), 0, 0)
	dirList.Title = "Directories to ignore (space toggles)"
	dirList.SetShowStatusBar(false)

	return Model{extList: extList, dirList: dirList}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "tab":
			if m.mode == panelExtensions {
				m.mode = panelDirectories
			} else {
				m.mode = panelExtensions
			}
			return m, nil
		case " ":
			m.toggleCurrent()
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		height := msg.Height - v - 4
		if height < 5 {
			height = 5
		}
		m.extList.SetSize(msg.Width-h, height)
		m.dirList.SetSize(msg.Width-h, height)
	}

	var cmd tea.Cmd
	if m.mode == panelExtensions {
		m.extList, cmd = m.extList.Update(msg)
	} else {
		m.dirList, cmd = m.dirList.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleCurrent() {
	active := &m.extList
	if m.mode == panelDirectories {
		active = &m.dirList
	}
	idx := active.Index()
	if idx < 0 || idx >= len(active.Items()) {
		return
	}
	it := active.Items()[idx].(item)
	it.selected = !it.selected
	active.SetItem(idx, it)
}

func (m Model) View() string {
	header := titleStyle("Select what to flatten")
	active := m.extList
	if m.mode == panelDirectories {
		active = m.dirList
	}
	footer := statusStyle.Render("space: toggle   tab: switch panel   enter: run   q: cancel")
	return docStyle.Render(header + "\n" + active.View() + "\n" + footer)
}

// Selection extracts toggled names from both panels.
func (m Model) Selection() Result {
	res := Result{Canceled: m.canceled || !m.accepted}
	for _, li := range m.extList.Items() {
		if it := li.(item); it.selected {
			res.Extensions = append(res.Extensions, it.name)
		}
	}
	for _, li := range m.dirList.Items() {
		if it := li.(item); it.selected {
			res.IgnoreDirs = append(res.IgnoreDirs, it.name)
		}
	}
	return res
}

// Run surveys the roots and drives the selector to completion.
func Run(roots, preselectedExtensions []string) (Result, error) {
	extensions, directories, err := survey(roots)
	if err != nil {
		return Result{Canceled: true}, err
	}

	preselected := make(map[string]bool, len(preselectedExtensions))
	for _, ext := range preselectedExtensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		preselected[strings.ToLower(ext)] = true
	}

	m := NewModel(extensions, directories, preselected)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{Canceled: true}, err
	}
	return final.(Model).Selection(), nil
}

const surveyDepth = 3

// survey walks the roots a few levels deep collecting the extensions in
// use and the first-level subdirectories. Hidden entries are skipped, the
// selector is for narrowing a normal tree, not exploring dotfiles.
func survey(roots []string) (map[string]int, []string, error) {
	extensions := make(map[string]int)
	dirSet := make(map[string]bool)

	for _, root := range roots {
		resolved, err := util.ResolvePath(root)
		if err != nil {
			return nil, nil, err
		}
		err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if path == resolved {
				return nil
			}
			rel, relErr := filepath.Rel(resolved, path)
			if relErr != nil {
				return nil
			}
			depth := strings.Count(rel, string(os.PathSeparator)) + 1
			if util.IsHiddenName(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if depth == 1 {
					dirSet[d.Name()] = true
				}
				if depth >= surveyDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if ext := strings.ToLower(filepath.Ext(d.Name())); ext != "" {
				extensions[ext]++
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	directories := make([]string, 0, len(dirSet))
	for dir := range dirSet {
		directories = append(directories, dir)
	}
	sort.Strings(directories)
	return extensions, directories, nil
}
