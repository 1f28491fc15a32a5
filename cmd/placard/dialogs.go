package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/odvcencio/placard/pkg/dialog"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/logging"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

// formFieldValue appends form fields in flag order, so --add-entry and
// --add-password interleave exactly as written on the command line.
type formFieldValue struct {
	fields   *[]dialog.FormField
	password bool
}

func (v formFieldValue) String() string { return "" }

func (v formFieldValue) Set(label string) error {
	*v.fields = append(*v.fields, dialog.FormField{Label: label, Password: v.password})
	return nil
}

func (v formFieldValue) Type() string { return "label" }

// buildController maps the parsed flags onto one dialog controller.
// Content loading and flag validation happen here, before any window
// exists.
func buildController(kind dialogKind, o *options, args []string, sep string, pal *theme.Palette, f *render.Face) (dialog.Controller, error) {
	switch kind {
	case kindInfo, kindWarning, kindError, kindQuestion:
		return newMessage(kind, o, pal, f), nil

	case kindEntry, kindPassword:
		title := o.title
		if title == "" && kind == kindPassword {
			title = "Password"
		}
		return dialog.NewEntry(dialog.EntryOptions{
			Title:       title,
			Text:        o.text,
			Preset:      o.entryText,
			Masked:      kind == kindPassword || o.hideText,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}, pal, f), nil

	case kindProgress:
		return dialog.NewProgress(dialog.ProgressOptions{
			Title:             o.title,
			Text:              o.text,
			Percentage:        o.percentage,
			Pulsate:           o.pulsate,
			AutoClose:         o.autoClose,
			AutoKill:          o.autoKill,
			NoCancel:          o.noCancel,
			ShowTimeRemaining: o.timeRemaining,
			Width:             o.width,
			Height:            o.height,
			Feed:              stdinFeed(),
		}, pal, f), nil

	case kindFileSelection:
		fo := dialog.FileSelectOptions{
			Title:       o.title,
			Directory:   o.directory,
			Save:        o.save,
			Multiple:    o.multiple,
			Separator:   sep,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}
		fo.StartDir, fo.Filename = splitStartPath(o.filename)
		for _, s := range o.fileFilters {
			fo.Filters = append(fo.Filters, parseFileFilter(s))
		}
		return dialog.NewFileSelect(fo, pal, f), nil

	case kindList:
		return newList(o, args, sep, pal, f)

	case kindCalendar:
		return dialog.NewCalendar(dialog.CalendarOptions{
			Title:       o.title,
			Text:        o.text,
			Day:         o.day,
			Month:       o.month,
			Year:        o.year,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}, pal, f), nil

	case kindTextInfo:
		content, err := textInfoContent(o.filename)
		if err != nil {
			return nil, err
		}
		return dialog.NewTextInfo(dialog.TextInfoOptions{
			Title:       o.title,
			Content:     content,
			Filename:    o.filename,
			Highlight:   o.highlight,
			Checkbox:    o.checkbox,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}, pal, f), nil

	case kindScale:
		if o.maxValue <= o.minValue {
			return nil, errors.New(errors.ErrCodeUsage, "--max-value must be greater than --min-value")
		}
		return dialog.NewScale(dialog.ScaleOptions{
			Title:       o.title,
			Text:        o.text,
			Value:       o.value,
			Min:         o.minValue,
			Max:         o.maxValue,
			Step:        o.step,
			HideValue:   o.hideValue,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}, pal, f), nil

	case kindForms:
		return dialog.NewForms(dialog.FormsOptions{
			Title:       o.title,
			Text:        o.text,
			Fields:      o.formFields,
			Separator:   sep,
			Width:       o.width,
			Height:      o.height,
			OKLabel:     o.okLabel,
			CancelLabel: o.cancelLabel,
		}, pal, f), nil
	}
	return nil, errors.Newf(errors.ErrCodeInternal, "unhandled dialog kind %d", kind)
}

// newMessage builds the four message variants. A question asks Yes/No
// unless labels override; the other variants show a single OK.
func newMessage(kind dialogKind, o *options, pal *theme.Palette, f *render.Face) *dialog.Message {
	title, icon := "Information", dialog.IconInfo
	switch kind {
	case kindWarning:
		title, icon = "Warning", dialog.IconWarning
	case kindError:
		title, icon = "Error", dialog.IconError
	case kindQuestion:
		title, icon = "Question", dialog.IconQuestion
	}
	if o.title != "" {
		title = o.title
	}

	var buttons []string
	if kind == kindQuestion {
		ok, cancel := o.okLabel, o.cancelLabel
		if ok == "" {
			ok = "Yes"
		}
		if cancel == "" {
			cancel = "No"
		}
		buttons = []string{ok, cancel}
	} else if o.okLabel != "" {
		buttons = []string{o.okLabel}
	}

	return dialog.NewMessage(dialog.MessageOptions{
		Title:   title,
		Text:    o.text,
		Icon:    icon,
		Buttons: buttons,
		Width:   o.width,
		Height:  o.height,
	}, pal, f)
}

func newList(o *options, args []string, sep string, pal *theme.Palette, f *render.Face) (dialog.Controller, error) {
	if len(o.columns) == 0 {
		return nil, errors.New(errors.ErrCodeUsage, "--list needs at least one --column")
	}
	mode := dialog.ListSingle
	switch {
	case o.checklist:
		mode = dialog.ListChecklist
	case o.radiolist:
		mode = dialog.ListRadiolist
	case o.multiple:
		mode = dialog.ListMultiple
	}

	lo := dialog.ListOptions{
		Title:       o.title,
		Text:        o.text,
		Columns:     o.columns,
		Mode:        mode,
		HiddenCols:  o.hiddenCols,
		HideHeader:  o.hideHeader,
		Editable:    o.editable,
		Separator:   sep,
		Width:       o.width,
		Height:      o.height,
		OKLabel:     o.okLabel,
		CancelLabel: o.cancelLabel,
	}
	if len(args) > 0 {
		lo.Rows = groupRows(args, len(o.columns))
	} else {
		lo.Feed = stdinFeed()
	}
	return dialog.NewList(lo, pal, f), nil
}

// groupRows folds the flat cell arguments into rows of one cell per
// column. A short trailing group is dropped.
func groupRows(cells []string, cols int) [][]string {
	var rows [][]string
	for len(cells) >= cols {
		rows = append(rows, cells[:cols])
		cells = cells[cols:]
	}
	if len(cells) > 0 {
		logging.Warnf("ignoring %d trailing cell(s), rows take %d", len(cells), cols)
	}
	return rows
}

// stdinFeed starts a line feed over stdin when it is piped. An
// interactive terminal never feeds a dialog.
func stdinFeed() *dialog.Feed {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return dialog.StartFeed(os.Stdin)
}

// splitStartPath resolves --filename for the file dialog: a directory
// becomes the start directory, anything else starts in its parent and
// seeds the save-mode name with its base.
func splitStartPath(path string) (dir, name string) {
	if path == "" {
		return "", ""
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return filepath.Clean(path), ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, ""
	}
	return filepath.Dir(path), filepath.Base(path)
}

// parseFileFilter understands the conventional filter syntax: an
// optional display name, a pipe, then whitespace-separated glob
// patterns. Without a pipe the pattern list doubles as the name.
func parseFileFilter(s string) dialog.FileFilter {
	name, pats, found := strings.Cut(s, "|")
	if !found {
		return dialog.FileFilter{Name: strings.TrimSpace(s), Patterns: strings.Fields(s)}
	}
	return dialog.FileFilter{Name: strings.TrimSpace(name), Patterns: strings.Fields(pats)}
}

// textInfoContent loads the display buffer before any window exists:
// from the named file, else from piped stdin.
func textInfoContent(filename string) (string, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeContentLoad, "cannot read text-info source").
				WithContext("filename", filename)
		}
		return string(data), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeContentLoad, "cannot read stdin")
	}
	return string(data), nil
}
