package dialog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/odvcencio/placard/pkg/dialog/widget"
	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/input"
	"github.com/odvcencio/placard/pkg/mounts"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

const (
	fsWindowWidth   = 700
	fsWindowHeight  = 500
	fsPadding       = 12
	fsSidebarWidth  = 160
	fsToolbarHeight = 36
	fsPathBarHeight = 32
	fsSearchWidth   = 200
	fsItemHeight    = 28
	fsIconSize      = 20
	fsSectionHeader = 22
	fsHeaderOffset  = 28
	fsNameColWidth  = 280
	fsSizeColWidth  = 80
	fsFilterX       = fsPadding + 186
)

// FileFilter restricts the file listing to names matching any of its
// glob patterns. Patterns understand a leading and/or trailing "*";
// anything else is an exact, case-insensitive match.
type FileFilter struct {
	Name     string
	Patterns []string
}

// FileSelectOptions configure a file selection dialog.
type FileSelectOptions struct {
	Title       string
	StartDir    string
	Filename    string
	Directory   bool
	Save        bool
	Multiple    bool
	Filters     []FileFilter
	Separator   string
	Width       int
	Height      int
	OKLabel     string
	CancelLabel string
}

type fsEntry struct {
	name     string
	path     string
	isDir    bool
	size     int64
	modified time.Time
}

type fsPlace struct {
	name  string
	path  string
	color render.Color
}

type fsMountIcon uint8

const (
	fsMountGeneric fsMountIcon = iota
	fsMountUSB
	fsMountExternal
	fsMountOptical
)

type fsMount struct {
	device string
	path   string
	label  string
	icon   fsMountIcon
}

// FileSelect is a file browser with a quick-access sidebar, mounted
// volumes, back/forward/up navigation, breadcrumbs, a name search box,
// glob filters and hidden-file toggling (also on Ctrl+H). Directories
// sort before files, both in collator order. A click on an already
// selected directory descends into it; on an already selected file it
// confirms. In multiple mode Ctrl+click toggles and Shift+click selects
// a range. Save mode adds a filename input whose text joins the current
// directory on confirm. The listing refreshes live while the shown
// directory changes on disk.
type FileSelect struct {
	pal *theme.Palette
	f   *render.Face

	title     string
	sep       string
	directory bool
	save      bool
	multiple  bool

	filters []FileFilter
	active  int

	current string
	history []string
	histIdx int

	entries  []fsEntry
	filtered []int
	selected map[int]bool
	anchor   int

	showHidden bool
	searchText string
	search     *widget.TextInput
	name       *widget.TextInput

	places []fsPlace
	mounts []fsMount

	hoveredPlace int
	hoveredDrive int
	hoveredEntry int

	col     *collate.Collator
	watcher *fsnotify.Watcher

	width, height      float64
	sidebarX, sidebarY float64
	sidebarH           float64
	mainX, mainY       float64
	mainW, mainH       float64
	listY, listH       float64
	buttonY            float64
	visible            int

	vsb       *widget.Scrollbar
	overInput bool

	ok     *widget.Button
	cancel *widget.Button

	done    bool
	outcome Outcome
}

// NewFileSelect builds a file selection dialog rooted at the start
// directory, falling back to the home directory and then "/".
func NewFileSelect(opts FileSelectOptions, pal *theme.Palette, f *render.Face) *FileSelect {
	title := opts.Title
	if title == "" {
		switch {
		case opts.Directory:
			title = "Select Directory"
		case opts.Save:
			title = "Save File"
		default:
			title = "Open File"
		}
	}
	okLabel := opts.OKLabel
	if okLabel == "" {
		if opts.Save {
			okLabel = "Save"
		} else {
			okLabel = "Open"
		}
	}
	cancelLabel := opts.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	sep := opts.Separator
	if sep == "" {
		sep = " "
	}

	d := &FileSelect{
		pal:          pal,
		f:            f,
		title:        title,
		sep:          sep,
		directory:    opts.Directory,
		save:         opts.Save,
		multiple:     opts.Multiple,
		filters:      opts.Filters,
		selected:     make(map[int]bool),
		anchor:       -1,
		hoveredPlace: -1,
		hoveredDrive: -1,
		hoveredEntry: -1,
		col:          collate.New(language.Und, collate.IgnoreCase),
		places:       buildPlaces(),
		mounts:       sidebarMounts(),
		vsb:          widget.NewScrollbar(false),
		search:       widget.NewTextInput(fsSearchWidth),
		ok:           widget.NewButton(okLabel, f),
		cancel:       widget.NewButton(cancelLabel, f),
		width:        fsWindowWidth,
		height:       fsWindowHeight,
	}
	if opts.Width > 0 {
		d.width = float64(opts.Width)
	}
	if opts.Height > 0 {
		d.height = float64(opts.Height)
	}
	d.search.SetPlaceholder("Search...")

	start := opts.StartDir
	if start == "" {
		if home, err := os.UserHomeDir(); err == nil {
			start = home
		} else {
			start = "/"
		}
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}
	d.current = start
	d.history = []string{start}

	if d.save {
		okX := d.width - fsPadding - d.cancel.Width() - 10 - d.ok.Width()
		nameX := fsPadding + 52.0
		d.name = widget.NewTextInput(max(okX-12-nameX, 120))
		d.name.SetText(opts.Filename)
		d.name.SetFocus(true)
	}

	if w, err := fsnotify.NewWatcher(); err == nil {
		d.watcher = w
		w.Add(start)
	}

	d.loadDirectory()
	d.layout()
	d.updateFiltered()
	return d
}

func (d *FileSelect) layout() {
	d.sidebarX = fsPadding
	d.sidebarY = fsPadding + fsToolbarHeight + 8
	d.sidebarH = d.height - 2*fsPadding - fsToolbarHeight - 8 - 44
	d.mainX = fsPadding + fsSidebarWidth + 12
	d.mainY = d.sidebarY
	d.mainW = d.width - 2*fsPadding - fsSidebarWidth - 12
	d.mainH = d.sidebarH
	d.listY = d.mainY + fsPathBarHeight + fsHeaderOffset
	d.listH = d.mainH - fsPathBarHeight - fsHeaderOffset
	d.visible = int(d.listH / fsItemHeight)
	d.buttonY = d.height - fsPadding - widget.ButtonHeight

	layoutRowRight([]*widget.Button{d.ok, d.cancel}, d.width-fsPadding, d.buttonY)
	d.search.SetPosition(d.width-fsPadding-fsSearchWidth, fsPadding+2)
	if d.name != nil {
		d.name.SetPosition(d.sidebarX+52, d.buttonY)
	}
	d.vsb.Layout(widget.Rect{X: d.mainX + d.mainW - widget.ScrollbarWidth, Y: d.listY, W: widget.ScrollbarWidth, H: d.listH})
	d.vsb.SetRange(float64(len(d.filtered)), float64(d.visible))
}

// loadDirectory rereads the current directory: a ".." entry when a
// parent exists, then directories, then files. Stat follows symlinks so
// links to directories browse as directories.
func (d *FileSelect) loadDirectory() {
	d.entries = d.entries[:0]
	if parent := filepath.Dir(d.current); parent != d.current {
		d.entries = append(d.entries, fsEntry{name: "..", path: parent, isDir: true})
	}

	items, err := os.ReadDir(d.current)
	if err != nil {
		return
	}
	var dirs, files []fsEntry
	for _, item := range items {
		name := item.Name()
		if !d.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(d.current, name)
		e := fsEntry{name: name, path: path}
		if info, err := os.Stat(path); err == nil {
			e.isDir = info.IsDir()
			e.size = info.Size()
			e.modified = info.ModTime()
		}
		if d.directory && !e.isDir {
			continue
		}
		if e.isDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	byName := func(a, b fsEntry) int { return d.col.CompareString(a.name, b.name) }
	slices.SortStableFunc(dirs, byName)
	slices.SortStableFunc(files, byName)
	d.entries = append(d.entries, dirs...)
	d.entries = append(d.entries, files...)
}

// updateFiltered projects entries through the active filter and the
// search text. Directories always pass.
func (d *FileSelect) updateFiltered() {
	d.filtered = d.filtered[:0]
	for i, e := range d.entries {
		if !e.isDir {
			if len(d.filters) > 0 && !d.matchesFilter(e.name) {
				continue
			}
			if d.searchText != "" && !strings.Contains(strings.ToLower(e.name), d.searchText) {
				continue
			}
		}
		d.filtered = append(d.filtered, i)
	}
	d.vsb.SetRange(float64(len(d.filtered)), float64(d.visible))
}

func (d *FileSelect) matchesFilter(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range d.filters[d.active].Patterns {
		if matchesPattern(lower, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(name, pattern string) bool {
	p := strings.ToLower(pattern)
	switch {
	case p == "*":
		return true
	case strings.HasPrefix(p, "*") && strings.HasSuffix(p, "*"):
		return strings.Contains(name, p[1:len(p)-1])
	case strings.HasPrefix(p, "*"):
		return strings.HasSuffix(name, p[1:])
	case strings.HasSuffix(p, "*"):
		return strings.HasPrefix(name, p[:len(p)-1])
	default:
		return name == p
	}
}

// navigateTo descends into dest, truncating any forward history.
func (d *FileSelect) navigateTo(dest string) {
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		return
	}
	d.history = append(d.history[:d.histIdx+1], dest)
	d.histIdx = len(d.history) - 1
	d.setCurrent(dest)
}

// setCurrent switches the shown directory without touching history, so
// back and forward keep their stacks.
func (d *FileSelect) setCurrent(dest string) {
	if d.watcher != nil {
		d.watcher.Remove(d.current)
		d.watcher.Add(dest)
	}
	d.current = dest
	d.loadDirectory()
	d.updateFiltered()
	clear(d.selected)
	d.anchor = -1
	d.vsb.SetOffset(0)
}

func (d *FileSelect) navigateUp() {
	if parent := filepath.Dir(d.current); parent != d.current {
		d.navigateTo(parent)
	}
}

func (d *FileSelect) toggleHidden() {
	d.showHidden = !d.showHidden
	d.reloadResetting()
}

func (d *FileSelect) reloadResetting() {
	d.loadDirectory()
	d.updateFiltered()
	clear(d.selected)
	d.anchor = -1
	d.vsb.SetOffset(0)
}

// refresh rereads the directory after an external change, keeping the
// selection for entries that still exist under the same name.
func (d *FileSelect) refresh() {
	keep := make(map[string]bool, len(d.selected))
	for ei := range d.selected {
		if ei < len(d.entries) {
			keep[d.entries[ei].name] = true
		}
	}
	d.loadDirectory()
	d.updateFiltered()
	clear(d.selected)
	for i, e := range d.entries {
		if keep[e.name] {
			d.selected[i] = true
		}
	}
}

// Title returns the window title.
func (d *FileSelect) Title() string { return d.title }

// Size returns the logical window size.
func (d *FileSelect) Size() (int, int) { return int(d.width), int(d.height) }

// Handle drives navigation, the sidebar, the entry list, the scrollbar,
// the search and filename inputs, and the button row.
func (d *FileSelect) Handle(ev input.Event) bool {
	changed := false
	switch e := ev.(type) {
	case input.Resize:
		d.width, d.height = float64(e.Width), float64(e.Height)
		d.layout()
		return true
	case input.PointerMove:
		if d.vsb.Handle(ev) {
			changed = true
		}
		d.overInput = d.search.Bounds().Contains(e.X, e.Y) ||
			(d.name != nil && d.name.Bounds().Contains(e.X, e.Y))
		if !d.vsb.Dragging() && d.updateHover(e.X, e.Y) {
			changed = true
		}
	case input.ButtonPress:
		switch e.Button {
		case input.ButtonWheelUp:
			changed = d.scrollRows(-3) || changed
		case input.ButtonWheelDown:
			changed = d.scrollRows(3) || changed
		case input.ButtonLeft:
			changed = d.press(e) || changed
		}
	case input.ButtonRelease:
		if d.vsb.Handle(ev) {
			changed = true
		}
	case input.KeyPress:
		return d.key(e)
	}

	if d.ok.Handle(ev) {
		changed = true
	}
	if d.cancel.Handle(ev) {
		changed = true
	}
	if d.ok.Clicked() {
		d.confirm()
	}
	if d.cancel.Clicked() {
		d.finish(Cancelled())
	}
	return changed
}

func (d *FileSelect) press(e input.ButtonPress) bool {
	if d.vsb.Handle(e) {
		return true
	}
	if d.toolbarPress(e.X, e.Y) {
		return true
	}
	if d.hoveredPlace >= 0 {
		d.navigateTo(d.places[d.hoveredPlace].path)
		return true
	}
	if d.hoveredDrive >= 0 {
		d.navigateTo(d.mounts[d.hoveredDrive].path)
		return true
	}

	changed := false
	if d.hoveredEntry >= 0 && d.hoveredEntry < len(d.filtered) {
		d.entryClick(d.hoveredEntry, e.Mods)
		changed = true
	}
	inSearch := d.search.Bounds().Contains(e.X, e.Y)
	if inSearch != d.search.Focused() {
		changed = true
	}
	d.search.SetFocus(inSearch)
	if d.name != nil {
		inName := d.name.Bounds().Contains(e.X, e.Y)
		if inName != d.name.Focused() {
			changed = true
		}
		d.name.SetFocus(inName)
	}
	return changed
}

func (d *FileSelect) toolbarPress(x, y float64) bool {
	navY := fsPadding + 4.0
	if y < navY || y >= navY+28 {
		return false
	}
	switch {
	case x >= fsPadding && x < fsPadding+28:
		if d.histIdx > 0 {
			d.histIdx--
			d.setCurrent(d.history[d.histIdx])
		}
	case x >= fsPadding+32 && x < fsPadding+60:
		if d.histIdx+1 < len(d.history) {
			d.histIdx++
			d.setCurrent(d.history[d.histIdx])
		}
	case x >= fsPadding+68 && x < fsPadding+96:
		d.navigateUp()
	case x >= fsPadding+104 && x < fsPadding+132:
		if home, err := os.UserHomeDir(); err == nil {
			d.navigateTo(home)
		}
	case x >= fsPadding+150 && x < fsPadding+178:
		d.toggleHidden()
	case len(d.filters) > 0 && x >= fsFilterX && x < fsFilterX+d.filterWidth():
		d.active = (d.active + 1) % len(d.filters)
		d.updateFiltered()
		clear(d.selected)
		d.anchor = -1
		d.vsb.SetOffset(0)
	default:
		return false
	}
	return true
}

func (d *FileSelect) filterWidth() float64 {
	label := truncateName(d.filters[d.active].Name, 12)
	return max(d.f.Advance(label)+16, 40)
}

func (d *FileSelect) entryClick(pos int, mods input.Modifiers) {
	ei := d.filtered[pos]
	if d.multiple {
		switch {
		case mods.Ctrl:
			if d.selected[ei] {
				delete(d.selected, ei)
			} else {
				d.selected[ei] = true
			}
			d.anchor = pos
		case mods.Shift && d.anchor >= 0 && d.anchor < len(d.filtered):
			clear(d.selected)
			lo, hi := min(d.anchor, pos), max(d.anchor, pos)
			for _, i := range d.filtered[lo : hi+1] {
				d.selected[i] = true
			}
		default:
			clear(d.selected)
			d.selected[ei] = true
			d.anchor = pos
		}
		return
	}

	if d.selected[ei] {
		entry := d.entries[ei]
		if entry.isDir {
			d.navigateTo(entry.path)
		} else if !d.directory {
			if d.save {
				d.confirm()
			} else {
				d.finish(Confirmed(entry.path))
			}
		}
		return
	}
	clear(d.selected)
	d.selected[ei] = true
	if d.save && !d.entries[ei].isDir {
		d.name.SetText(d.entries[ei].name)
	}
}

func (d *FileSelect) key(e input.KeyPress) bool {
	if e.Mods.Ctrl && (e.Rune == 'h' || e.Rune == 'H') {
		d.toggleHidden()
		return true
	}
	if d.name != nil && d.name.Focused() {
		switch e.Key {
		case input.KeyEnter:
			d.confirm()
			return true
		case input.KeyEscape:
			d.finish(Cancelled())
			return true
		}
		return d.name.Handle(e)
	}
	if d.search.Focused() {
		if e.Key == input.KeyEscape {
			d.finish(Cancelled())
			return true
		}
		changed := d.search.Handle(e)
		if q := strings.ToLower(d.search.Text()); q != d.searchText {
			d.searchText = q
			d.updateFiltered()
			clear(d.selected)
			d.anchor = -1
			d.vsb.SetOffset(0)
		}
		return changed
	}

	switch e.Key {
	case input.KeyUp:
		return d.moveSelection(-1)
	case input.KeyDown:
		return d.moveSelection(1)
	case input.KeyEnter:
		d.activate()
		return true
	case input.KeyBackspace:
		d.navigateUp()
		return true
	case input.KeyEscape:
		d.finish(Cancelled())
		return true
	}
	return false
}

func (d *FileSelect) selectedPos() int {
	for pos, ei := range d.filtered {
		if d.selected[ei] {
			return pos
		}
	}
	return -1
}

func (d *FileSelect) moveSelection(delta int) bool {
	if len(d.filtered) == 0 {
		return false
	}
	pos := d.selectedPos()
	if pos < 0 {
		pos = 0
	} else {
		next := pos + delta
		if next < 0 || next >= len(d.filtered) {
			return false
		}
		pos = next
	}
	clear(d.selected)
	d.selected[d.filtered[pos]] = true
	d.anchor = pos
	scroll := int(d.vsb.Offset())
	if pos < scroll {
		d.vsb.SetOffset(float64(pos))
	} else if pos >= scroll+d.visible {
		d.vsb.SetOffset(float64(pos - d.visible + 1))
	}
	return true
}

// activate is the Return action: descend into a selected directory,
// confirm a selected file, confirm the set in multiple mode.
func (d *FileSelect) activate() {
	if d.multiple && len(d.selected) > 0 {
		d.confirm()
		return
	}
	pos := d.selectedPos()
	if pos < 0 {
		if d.save {
			d.confirm()
		}
		return
	}
	entry := d.entries[d.filtered[pos]]
	if entry.isDir {
		d.navigateTo(entry.path)
	} else if !d.directory {
		d.confirm()
	}
}

// confirm resolves the dialog per sub-mode. Save joins the typed name
// onto the current directory. Multiple collects files (directories in
// directory mode) in listing order. Directory mode with nothing
// selected confirms the current directory itself.
func (d *FileSelect) confirm() {
	if d.save {
		name := strings.TrimSpace(d.name.Text())
		if name == "" {
			return
		}
		d.finish(Confirmed(filepath.Join(d.current, name)))
		return
	}
	if d.multiple {
		var paths []string
		for _, ei := range d.filtered {
			if !d.selected[ei] {
				continue
			}
			e := d.entries[ei]
			if e.name == ".." || e.isDir != d.directory {
				continue
			}
			paths = append(paths, e.path)
		}
		if len(paths) > 0 {
			d.finish(Confirmed(strings.Join(paths, d.sep)))
		}
		return
	}
	if pos := d.selectedPos(); pos >= 0 {
		e := d.entries[d.filtered[pos]]
		if e.isDir == d.directory {
			d.finish(Confirmed(e.path))
		}
		return
	}
	if d.directory {
		d.finish(Confirmed(d.current))
	}
}

func (d *FileSelect) updateHover(x, y float64) bool {
	oldP, oldD, oldE := d.hoveredPlace, d.hoveredDrive, d.hoveredEntry
	d.hoveredPlace, d.hoveredDrive, d.hoveredEntry = -1, -1, -1

	if x >= d.sidebarX && x < d.sidebarX+fsSidebarWidth && y >= d.sidebarY {
		placesStart := d.sidebarY + 8 + fsSectionHeader
		if rel := y - placesStart; rel >= 0 {
			if idx := int(rel / fsItemHeight); idx < len(d.places) {
				d.hoveredPlace = idx
			}
		}
		if len(d.mounts) > 0 {
			drivesStart := placesStart + float64(len(d.places))*fsItemHeight + 12 + fsSectionHeader
			if rel := y - drivesStart; rel >= 0 {
				if idx := int(rel / fsItemHeight); idx < len(d.mounts) {
					d.hoveredDrive = idx
				}
			}
		}
	}

	w := d.mainW
	if d.vsb.Scrollable() {
		w -= widget.ScrollbarWidth
	}
	if x >= d.mainX && x < d.mainX+w && y >= d.listY && y < d.listY+d.listH {
		scroll := int(d.vsb.Offset())
		pos := scroll + int((y-d.listY)/fsItemHeight)
		if pos < len(d.filtered) && pos-scroll < d.visible {
			d.hoveredEntry = pos
		}
	}
	return oldP != d.hoveredPlace || oldD != d.hoveredDrive || oldE != d.hoveredEntry
}

func (d *FileSelect) scrollRows(delta int) bool {
	if !d.vsb.Scrollable() {
		return false
	}
	before := d.vsb.Offset()
	d.vsb.SetOffset(before + float64(delta))
	return d.vsb.Offset() != before
}

func (d *FileSelect) finish(o Outcome) {
	if !d.done {
		d.outcome = o
		d.done = true
	}
}

// Tick drains filesystem notifications and rereads the listing when the
// shown directory changed underneath the dialog.
func (d *FileSelect) Tick() bool {
	if d.watcher == nil {
		return false
	}
	changed := false
drain:
	for {
		select {
		case _, ok := <-d.watcher.Events:
			if !ok {
				d.watcher = nil
				break drain
			}
			changed = true
		case _, ok := <-d.watcher.Errors:
			if !ok {
				d.watcher = nil
				break drain
			}
		default:
			break drain
		}
	}
	if changed {
		d.refresh()
	}
	return changed
}

// Outcome returns the terminal outcome.
func (d *FileSelect) Outcome() (Outcome, bool) { return d.outcome, d.done }

// CursorShape requests the text cursor over the search and filename
// inputs.
func (d *FileSelect) CursorShape() display.CursorShape {
	if d.overInput {
		return display.CursorText
	}
	return display.CursorDefault
}

// Close releases the directory watcher.
func (d *FileSelect) Close() error {
	if d.watcher == nil {
		return nil
	}
	err := d.watcher.Close()
	d.watcher = nil
	return err
}

// Draw paints the toolbar, sidebar, breadcrumb bar, column headers, the
// entry listing with icons, the scrollbar, and the bottom strip.
func (d *FileSelect) Draw(c *render.Canvas, f *render.Face) {
	c.DialogBackground(d.pal.WindowBg, d.pal.WindowBorder, d.pal.WindowShadow)
	c.FillRect(0, 0, d.width, fsToolbarHeight+fsPadding, theme.Darken(d.pal.WindowBg, 0.03))

	navY := fsPadding + 4.0
	drawFsNavButton(c, f, fsPadding, navY, "<", d.histIdx > 0, d.pal)
	drawFsNavButton(c, f, fsPadding+32, navY, ">", d.histIdx+1 < len(d.history), d.pal)
	drawFsNavButton(c, f, fsPadding+68, navY, "^", filepath.Dir(d.current) != d.current, d.pal)
	drawFsNavButton(c, f, fsPadding+104, navY, "~", true, d.pal)
	drawFsToggle(c, f, fsPadding+150, navY, ".*", d.showHidden, d.pal)
	if len(d.filters) > 0 {
		label := truncateName(d.filters[d.active].Name, 12)
		c.FillRoundedRect(fsFilterX, navY, d.filterWidth(), 28, 4, d.pal.Button)
		c.DrawText(f, label, fsFilterX+8, navY+6, d.pal.ButtonText)
	}
	d.search.Draw(c, d.pal, f)

	c.FillRoundedRect(d.sidebarX, d.sidebarY, fsSidebarWidth, d.sidebarH, 6, theme.Darken(d.pal.WindowBg, 0.02))
	drawFsSectionHeader(c, f, d.sidebarX, d.sidebarY+8, "PLACES", d.pal)
	placesStart := d.sidebarY + 8 + fsSectionHeader
	for i, place := range d.places {
		y := placesStart + float64(i)*fsItemHeight
		d.drawSidebarRow(c, f, y, place.path == d.current, i == d.hoveredPlace, place.name, func() {
			c.FillRoundedRect(d.sidebarX+12, y+4, 16, 16, 3, place.color)
		})
	}
	if len(d.mounts) > 0 {
		drivesY := placesStart + float64(len(d.places))*fsItemHeight + 12
		drawFsSectionHeader(c, f, d.sidebarX, drivesY, "DRIVES", d.pal)
		drivesStart := drivesY + fsSectionHeader
		for i, mount := range d.mounts {
			y := drivesStart + float64(i)*fsItemHeight
			name := truncateName(mount.label, 18)
			icon := mount.icon
			d.drawSidebarRow(c, f, y, mount.path == d.current, i == d.hoveredDrive, name, func() {
				drawFsMountIcon(c, d.sidebarX+12, y+6, icon)
			})
		}
	}

	c.FillRoundedRect(d.mainX, d.mainY, d.mainW, d.mainH, 6, d.pal.InputBg)
	d.drawBreadcrumbs(c, f, d.mainX+8, d.mainY+6, d.mainW-16)

	headerY := d.mainY + fsPathBarHeight
	c.FillRect(d.mainX, headerY, d.mainW, 26, theme.Darken(d.pal.InputBg, 0.03))
	headerCol := render.RGB(150, 150, 150)
	c.DrawText(f, "Name", d.mainX+32, headerY+5, headerCol)
	c.DrawText(f, "Size", d.mainX+fsNameColWidth+8, headerY+5, headerCol)
	c.DrawText(f, "Modified", d.mainX+fsNameColWidth+fsSizeColWidth+16, headerY+5, headerCol)
	c.FillRect(d.mainX, headerY+26, d.mainW, 1, d.pal.InputBorder)

	scroll := int(d.vsb.Offset())
	for vi := 0; vi < d.visible && scroll+vi < len(d.filtered); vi++ {
		pos := scroll + vi
		entry := d.entries[d.filtered[pos]]
		y := d.listY + float64(vi)*fsItemHeight
		selected := d.selected[d.filtered[pos]]

		switch {
		case selected:
			c.FillRect(d.mainX+2, y, d.mainW-4, fsItemHeight, d.pal.InputBorderFocused)
		case pos == d.hoveredEntry:
			c.FillRect(d.mainX+2, y, d.mainW-4, fsItemHeight, theme.Darken(d.pal.InputBg, 0.06))
		case vi%2 == 1:
			c.FillRect(d.mainX, y, d.mainW, fsItemHeight, theme.Darken(d.pal.InputBg, 0.02))
		}

		if entry.isDir {
			drawFsFolderIcon(c, d.mainX+8, y+4)
		} else {
			drawFsFileIcon(c, d.mainX+8, y+4, entry.name)
		}

		textCol := d.pal.Text
		dimCol := render.RGB(140, 140, 140)
		if selected {
			textCol = render.RGB(255, 255, 255)
			dimCol = render.RGB(220, 220, 220)
		}
		c.DrawText(f, truncateName(entry.name, 35), d.mainX+32, y+6, textCol)
		if !entry.isDir {
			c.DrawText(f, formatSize(entry.size), d.mainX+fsNameColWidth+8, y+6, dimCol)
		}
		c.DrawText(f, formatDate(entry.modified), d.mainX+fsNameColWidth+fsSizeColWidth+16, y+6, dimCol)
	}

	d.vsb.Draw(c, d.pal, f)
	c.StrokeRoundedRect(d.mainX, d.mainY, d.mainW, d.mainH, 6, d.pal.InputBorder, 1)

	if d.save {
		c.DrawText(f, "Name:", d.sidebarX, d.buttonY+8, d.pal.Text)
		d.name.Draw(c, d.pal, f)
	} else {
		status := fmt.Sprintf("%d items", len(d.filtered))
		c.DrawText(f, status, d.mainX, d.buttonY+8, render.RGB(120, 120, 120))
	}

	d.ok.Draw(c, d.pal, f)
	d.cancel.Draw(c, d.pal, f)
}

func (d *FileSelect) drawSidebarRow(c *render.Canvas, f *render.Face, y float64, current, hovered bool, name string, icon func()) {
	if current {
		c.FillRoundedRect(d.sidebarX+4, y, fsSidebarWidth-8, 28, 4, d.pal.InputBorderFocused)
	} else if hovered {
		c.FillRoundedRect(d.sidebarX+4, y, fsSidebarWidth-8, 28, 4, theme.Darken(d.pal.WindowBg, 0.05))
	}
	icon()
	col := d.pal.Text
	if current {
		col = render.RGB(255, 255, 255)
	}
	c.DrawText(f, name, d.sidebarX+36, y+6, col)
}

// drawBreadcrumbs renders the current path, eliding leading components
// behind "..." so at most four fit, and truncating the last component
// when even alone it overflows.
func (d *FileSelect) drawBreadcrumbs(c *render.Canvas, f *render.Face, x, y, maxW float64) {
	comps := pathComponents(d.current)
	sepW := f.Advance(" / ")
	ellipsisW := f.Advance("...") + 8

	widthFrom := func(start int) float64 {
		w := 0.0
		if start > 0 {
			w = ellipsisW
		}
		for i := start; i < len(comps); i++ {
			w += f.Advance(comps[i])
			if i < len(comps)-1 && comps[i] != "/" {
				w += sepW
			}
		}
		return w
	}

	start := 0
	if widthFrom(0) > maxW {
		start = len(comps) - 1
		for n := min(len(comps), 4); n >= 1; n-- {
			if widthFrom(len(comps)-n) <= maxW {
				start = len(comps) - n
				break
			}
		}
	}

	cx := x
	if start > 0 {
		c.DrawText(f, "...", cx, y, render.RGB(120, 120, 120))
		cx += ellipsisW
	}
	for i := start; i < len(comps); i++ {
		col := render.RGB(120, 120, 120)
		if i == len(comps)-1 {
			col = d.pal.Text
		}
		text := comps[i]
		if rem := maxW - (cx - x); i == len(comps)-1 && f.Advance(text) > rem {
			text = fitText(f, text, rem)
		}
		c.DrawText(f, text, cx, y, col)
		cx += f.Advance(text)
		if i < len(comps)-1 && comps[i] != "/" {
			c.DrawText(f, " / ", cx, y, render.RGB(100, 100, 100))
			cx += sepW
		}
	}
}

func pathComponents(path string) []string {
	path = filepath.Clean(path)
	if path == "/" {
		return []string{"/"}
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if filepath.IsAbs(path) {
		return append([]string{"/"}, parts...)
	}
	return parts
}

func fitText(f *render.Face, s string, maxW float64) string {
	if f.Advance(s) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && f.Advance(string(runes)+"...") > maxW {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-3]) + "..."
}

func formatSize(bytes int64) string {
	switch {
	case bytes < 1<<10:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	case bytes < 1<<30:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1<<30))
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hrs ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return fmt.Sprintf("%d", t.Year())
	}
}

func buildPlaces() []fsPlace {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	places := []fsPlace{{name: "Home", path: home, color: render.RGB(100, 180, 100)}}
	for _, p := range []fsPlace{
		{name: "Desktop", color: render.RGB(120, 120, 200)},
		{name: "Documents", color: render.RGB(200, 180, 100)},
		{name: "Downloads", color: render.RGB(100, 160, 220)},
		{name: "Pictures", color: render.RGB(180, 120, 180)},
		{name: "Music", color: render.RGB(220, 120, 120)},
		{name: "Videos", color: render.RGB(180, 100, 200)},
	} {
		dir := filepath.Join(home, p.name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			p.path = dir
			places = append(places, p)
		}
	}
	return places
}

// sidebarMounts adapts the mount listing into drive rows with icons.
func sidebarMounts() []fsMount {
	var rows []fsMount
	for _, p := range mounts.List() {
		rows = append(rows, fsMount{
			device: p.Device,
			path:   p.Path,
			label:  p.Label,
			icon:   mountIconFor(p.Device),
		})
	}
	return rows
}

func mountIconFor(device string) fsMountIcon {
	if isUSBDevice(device) {
		return fsMountUSB
	}
	switch {
	case strings.HasPrefix(device, "/dev/sr"), strings.HasPrefix(device, "/dev/scd"):
		return fsMountOptical
	case strings.HasPrefix(device, "/dev/nvme"), strings.HasPrefix(device, "/dev/mmc"):
		return fsMountExternal
	}
	return fsMountGeneric
}

// isUSBDevice checks whether any usb-* symlink in /dev/disk/by-id
// resolves to this device.
func isUSBDevice(device string) bool {
	entries, err := os.ReadDir("/dev/disk/by-id")
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "usb-") {
			continue
		}
		resolved, err := filepath.EvalSymlinks(filepath.Join("/dev/disk/by-id", e.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(device, resolved) {
			return true
		}
	}
	return false
}

func drawFsNavButton(c *render.Canvas, f *render.Face, x, y float64, label string, enabled bool, pal *theme.Palette) {
	bg := pal.Button
	col := pal.ButtonText
	if !enabled {
		bg = theme.Darken(pal.Button, 0.1)
		col = render.RGB(100, 100, 100)
	}
	c.FillRoundedRect(x, y, 28, 28, 4, bg)
	c.DrawText(f, label, x+10, y+6, col)
}

func drawFsToggle(c *render.Canvas, f *render.Face, x, y float64, label string, active bool, pal *theme.Palette) {
	bg := pal.Button
	col := pal.ButtonText
	if active {
		bg = pal.InputBorderFocused
		col = render.RGB(255, 255, 255)
	}
	c.FillRoundedRect(x, y, 28, 28, 4, bg)
	c.DrawText(f, label, x+6, y+6, col)
}

func drawFsSectionHeader(c *render.Canvas, f *render.Face, x, y float64, label string, pal *theme.Palette) {
	c.DrawText(f, label, x+4, y, render.RGB(140, 140, 140))
	c.FillRect(x, y+18, fsSidebarWidth-8, 1, theme.Darken(pal.WindowBg, 0.05))
}

func drawFsFolderIcon(c *render.Canvas, x, y float64) {
	gold := render.RGB(240, 180, 70)
	c.FillRoundedRect(x, y+4, fsIconSize, 14, 2, gold)
	c.FillRoundedRect(x, y, 10, 6, 2, gold)
}

func drawFsFileIcon(c *render.Canvas, x, y float64, name string) {
	col := fileIconColor(name)
	c.FillRoundedRect(x, y, 16, fsIconSize, 2, col)
	c.FillRect(x+10, y, 6, 6, theme.Darken(col, 0.2))
}

func fileIconColor(name string) render.Color {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "rs":
		return render.RGB(220, 120, 70)
	case "go", "py":
		return render.RGB(70, 130, 180)
	case "js", "ts":
		return render.RGB(240, 220, 80)
	case "html", "htm":
		return render.RGB(220, 80, 50)
	case "css":
		return render.RGB(80, 120, 200)
	case "json", "yaml", "yml", "toml":
		return render.RGB(150, 150, 150)
	case "md", "txt":
		return render.RGB(180, 180, 180)
	case "png", "jpg", "jpeg", "gif", "svg":
		return render.RGB(100, 180, 100)
	default:
		return render.RGB(160, 160, 160)
	}
}

func drawFsMountIcon(c *render.Canvas, x, y float64, icon fsMountIcon) {
	var col render.Color
	switch icon {
	case fsMountUSB:
		col = render.RGB(100, 200, 200)
	case fsMountExternal:
		col = render.RGB(150, 150, 180)
	case fsMountOptical:
		col = render.RGB(200, 150, 100)
	default:
		col = render.RGB(140, 140, 140)
	}
	c.FillRoundedRect(x, y, 16, 16, 3, col)
	switch icon {
	case fsMountUSB:
		c.FillRect(x+6, y+10, 4, 4, render.RGB(50, 50, 50))
	case fsMountOptical:
		c.FillRoundedRect(x+6, y+6, 4, 4, 2, render.RGB(50, 50, 50))
	}
}
