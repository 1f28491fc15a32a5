package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/placard/pkg/config"
	"github.com/odvcencio/placard/pkg/dialog"
	"github.com/odvcencio/placard/pkg/display"
	"github.com/odvcencio/placard/pkg/display/wayland"
	"github.com/odvcencio/placard/pkg/display/x11"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/logging"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

// dialogKind is the resolved dialog selector. Exactly one kind flag must
// be set per invocation.
type dialogKind uint8

const (
	kindNone dialogKind = iota
	kindInfo
	kindWarning
	kindError
	kindQuestion
	kindEntry
	kindPassword
	kindProgress
	kindFileSelection
	kindList
	kindCalendar
	kindTextInfo
	kindScale
	kindForms
)

// emitsPayload reports whether a confirmed dialog of this kind writes a
// payload line to stdout. Message dialogs and progress speak only
// through the exit code.
func (k dialogKind) emitsPayload() bool {
	switch k {
	case kindInfo, kindWarning, kindError, kindQuestion, kindProgress:
		return false
	}
	return true
}

// options carries every flag of the root command. One instance per
// command, so tests can run isolated invocations.
type options struct {
	info          bool
	warning       bool
	errorDialog   bool
	question      bool
	entry         bool
	password      bool
	progress      bool
	fileSelection bool
	list          bool
	calendar      bool
	textInfo      bool
	scale         bool
	forms         bool

	title       string
	text        string
	width       int
	height      int
	timeout     int
	separator   string
	okLabel     string
	cancelLabel string
	modal       bool
	debug       bool

	entryText string
	hideText  bool

	percentage    int
	pulsate       bool
	autoClose     bool
	autoKill      bool
	noCancel      bool
	timeRemaining bool

	filename         string
	directory        bool
	save             bool
	multiple         bool
	fileFilters      []string
	confirmOverwrite bool

	columns    []string
	checklist  bool
	radiolist  bool
	editable   bool
	hiddenCols []int
	hideHeader bool

	day   int
	month int
	year  int

	checkbox  string
	highlight bool

	value     int
	minValue  int
	maxValue  int
	step      int
	hideValue bool

	formFields []dialog.FormField

	// exit is the resolved process exit code after a completed run.
	exit int
}

// kind resolves the dialog selector flags, rejecting zero and more than
// one.
func (o *options) kind() (dialogKind, error) {
	picks := []struct {
		on   bool
		kind dialogKind
		flag string
	}{
		{o.info, kindInfo, "--info"},
		{o.warning, kindWarning, "--warning"},
		{o.errorDialog, kindError, "--error"},
		{o.question, kindQuestion, "--question"},
		{o.entry, kindEntry, "--entry"},
		{o.password, kindPassword, "--password"},
		{o.progress, kindProgress, "--progress"},
		{o.fileSelection, kindFileSelection, "--file-selection"},
		{o.list, kindList, "--list"},
		{o.calendar, kindCalendar, "--calendar"},
		{o.textInfo, kindTextInfo, "--text-info"},
		{o.scale, kindScale, "--scale"},
		{o.forms, kindForms, "--forms"},
	}

	kind := kindNone
	var set []string
	for _, p := range picks {
		if p.on {
			kind = p.kind
			set = append(set, p.flag)
		}
	}
	switch len(set) {
	case 0:
		return kindNone, errors.New(errors.ErrCodeUsage,
			"no dialog kind given; pass one of --info, --warning, --error, --question, "+
				"--entry, --password, --progress, --file-selection, --list, --calendar, "+
				"--text-info, --scale or --forms")
	case 1:
		return kind, nil
	}
	return kindNone, errors.Newf(errors.ErrCodeUsage,
		"conflicting dialog kinds: %s", strings.Join(set, " "))
}

func versionString() string {
	if commit == "unknown" {
		return version
	}
	return version + " (" + commit + ")"
}

func newRootCmd() (*cobra.Command, *options) {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "placard",
		Short: "Display a dialog from the command line",
		Long: `Placard displays a modal dialog and reports the interaction through
stdout and the exit code: 0 confirmed, 1 cancelled, 5 timeout, 255
window closed, 100 error.

Exactly one dialog kind is chosen per invocation. Progress and list
dialogs read updates from stdin when it is piped; text-info displays a
file or the piped input.`,
		Version:       versionString(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.SetVersionTemplate("placard {{.Version}}\n")

	f := cmd.Flags()
	f.SortFlags = false

	f.BoolVar(&o.info, "info", false, "Display an information dialog")
	f.BoolVar(&o.warning, "warning", false, "Display a warning dialog")
	f.BoolVar(&o.errorDialog, "error", false, "Display an error dialog")
	f.BoolVar(&o.question, "question", false, "Display a question dialog")
	f.BoolVar(&o.entry, "entry", false, "Display a text entry dialog")
	f.BoolVar(&o.password, "password", false, "Display a password dialog")
	f.BoolVar(&o.progress, "progress", false, "Display a progress dialog")
	f.BoolVar(&o.fileSelection, "file-selection", false, "Display a file selection dialog")
	f.BoolVar(&o.list, "list", false, "Display a list dialog")
	f.BoolVar(&o.calendar, "calendar", false, "Display a calendar dialog")
	f.BoolVar(&o.textInfo, "text-info", false, "Display a text information dialog")
	f.BoolVar(&o.scale, "scale", false, "Display a scale dialog")
	f.BoolVar(&o.forms, "forms", false, "Display a forms dialog")

	f.StringVar(&o.title, "title", "", "Set the dialog title")
	f.StringVar(&o.text, "text", "", "Set the dialog text")
	f.IntVar(&o.width, "width", 0, "Set the dialog width")
	f.IntVar(&o.height, "height", 0, "Set the dialog height")
	f.IntVar(&o.timeout, "timeout", 0, "Exit with code 5 after the given number of seconds")
	f.StringVar(&o.separator, "separator", "|", "Set the output separator for multiple values")
	f.StringVar(&o.okLabel, "ok-label", "", "Set the OK button label")
	f.StringVar(&o.cancelLabel, "cancel-label", "", "Set the cancel button label")
	f.BoolVar(&o.modal, "modal", false, "Accepted for compatibility; has no effect")
	f.BoolVar(&o.debug, "debug", false, "Enable debug logging")

	f.StringVar(&o.entryText, "entry-text", "", "Set the initial entry text")
	f.BoolVar(&o.hideText, "hide-text", false, "Mask the entered text")

	f.IntVar(&o.percentage, "percentage", 0, "Set the initial percentage")
	f.BoolVar(&o.pulsate, "pulsate", false, "Pulsate the progress bar")
	f.BoolVar(&o.autoClose, "auto-close", false, "Close when the percentage reaches 100")
	f.BoolVar(&o.autoKill, "auto-kill", false, "Send SIGTERM to the parent process on cancel")
	f.BoolVar(&o.noCancel, "no-cancel", false, "Hide the cancel button")
	f.BoolVar(&o.timeRemaining, "time-remaining", false, "Estimate and show the time remaining")

	f.StringVar(&o.filename, "filename", "", "Set the start path (file-selection) or the file to display (text-info)")
	f.BoolVar(&o.directory, "directory", false, "Select a directory instead of a file")
	f.BoolVar(&o.save, "save", false, "Run the file selection in save mode")
	f.BoolVar(&o.multiple, "multiple", false, "Allow selecting several items")
	f.StringArrayVar(&o.fileFilters, "file-filter", nil, "Restrict the listing to a NAME | PATTERN... filter")
	f.BoolVar(&o.confirmOverwrite, "confirm-overwrite", false, "Accepted for compatibility; has no effect")

	f.StringArrayVar(&o.columns, "column", nil, "Add a list column with the given header")
	f.BoolVar(&o.checklist, "checklist", false, "Use a check box for the first column")
	f.BoolVar(&o.radiolist, "radiolist", false, "Use a radio button for the first column")
	f.BoolVar(&o.editable, "editable", false, "Allow editing the selected row")
	f.IntSliceVar(&o.hiddenCols, "hide-column", nil, "Hide the list column with the given index, counted from 1")
	f.BoolVar(&o.hideHeader, "hide-header", false, "Hide the column headers")

	f.IntVar(&o.day, "day", 0, "Set the initial calendar day")
	f.IntVar(&o.month, "month", 0, "Set the initial calendar month")
	f.IntVar(&o.year, "year", 0, "Set the initial calendar year")

	f.StringVar(&o.checkbox, "checkbox", "", "Gate the OK button behind a check box with the given label")
	f.BoolVar(&o.highlight, "highlight", false, "Syntax-highlight the displayed text")

	f.IntVar(&o.value, "value", 0, "Set the initial scale value")
	f.IntVar(&o.minValue, "min-value", 0, "Set the minimum scale value")
	f.IntVar(&o.maxValue, "max-value", 100, "Set the maximum scale value")
	f.IntVar(&o.step, "step", 1, "Set the scale step size")
	f.BoolVar(&o.hideValue, "hide-value", false, "Hide the numeric value")

	f.Var(formFieldValue{fields: &o.formFields}, "add-entry", "Add a text field with the given label")
	f.Var(formFieldValue{fields: &o.formFields, password: true}, "add-password", "Add a password field with the given label")

	return cmd, o
}

// run is the whole dialog lifecycle: resolve the kind, load config,
// build the controller, connect a backend, drive the session, emit the
// outcome. Everything that can fail does so before a window exists.
func (o *options) run(cmd *cobra.Command, args []string) error {
	if o.debug {
		logging.SetDebug(true)
	}

	kind, err := o.kind()
	if err != nil {
		return err
	}
	if kind == kindList && o.checklist && o.radiolist {
		return errors.New(errors.ErrCodeUsage, "--checklist and --radiolist are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sep := cfg.Separator
	if cmd.Flags().Changed("separator") {
		sep = o.separator
	}
	if o.text == "" && kind != kindList && len(args) > 0 {
		o.text = args[0]
	}

	pal := theme.Detect(cfg.Theme)
	face, err := render.NewFace(cfg.FontSize, 1)
	if err != nil {
		return err
	}

	ctrl, err := buildController(kind, o, args, sep, pal, face)
	if err != nil {
		return err
	}

	conn, err := connectBackend(cfg.Backend)
	if err != nil {
		return err
	}
	logging.Debugf("backend: %s", conn.Name())

	sess := dialog.NewSession(conn, dialog.SessionOptions{
		Timeout:  time.Duration(o.timeout) * time.Second,
		FontSize: cfg.FontSize,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var outcome dialog.Outcome
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcome = sess.Run(ctx, ctrl)
		if outcome.State == dialog.StateErrored {
			return outcome.Err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	o.exit = emit(kind, outcome)
	return nil
}

// connectBackend dials the display server. An explicit backend from the
// config or PLACARD_BACKEND is authoritative; auto walks Wayland first,
// then X11.
func connectBackend(pref string) (display.Conn, error) {
	switch pref {
	case "wayland":
		addr, ok := display.FindWayland()
		if !ok {
			return nil, errors.New(errors.ErrCodeConnectFailed, "no wayland endpoint found")
		}
		return wayland.Connect(addr)
	case "x11":
		if !display.X11Present() {
			return nil, errors.New(errors.ErrCodeConnectFailed, "DISPLAY is not set")
		}
		return x11.Connect("")
	}

	if addr, ok := display.FindWayland(); ok {
		c, err := wayland.Connect(addr)
		if err == nil {
			return c, nil
		}
		logging.Debugf("wayland: %v", err)
	}
	if display.X11Present() {
		return x11.Connect("")
	}
	return nil, errors.New(errors.ErrCodeConnectFailed, "no display server reachable")
}

// emit prints the payload for kinds that produce one and maps the
// outcome onto the exit contract. Errors never reach here; the session
// goroutine surfaces them first.
func emit(kind dialogKind, o dialog.Outcome) int {
	if o.State == dialog.StateConfirmed && kind.emitsPayload() {
		fmt.Println(o.Payload)
	}
	return o.ExitCode()
}
