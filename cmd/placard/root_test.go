package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/dialog"
	"github.com/odvcencio/placard/pkg/errors"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestKindResolvesEachSelector(t *testing.T) {
	cases := []struct {
		flag string
		set  func(*options)
		want dialogKind
	}{
		{"info", func(o *options) { o.info = true }, kindInfo},
		{"warning", func(o *options) { o.warning = true }, kindWarning},
		{"error", func(o *options) { o.errorDialog = true }, kindError},
		{"question", func(o *options) { o.question = true }, kindQuestion},
		{"entry", func(o *options) { o.entry = true }, kindEntry},
		{"password", func(o *options) { o.password = true }, kindPassword},
		{"progress", func(o *options) { o.progress = true }, kindProgress},
		{"file-selection", func(o *options) { o.fileSelection = true }, kindFileSelection},
		{"list", func(o *options) { o.list = true }, kindList},
		{"calendar", func(o *options) { o.calendar = true }, kindCalendar},
		{"text-info", func(o *options) { o.textInfo = true }, kindTextInfo},
		{"scale", func(o *options) { o.scale = true }, kindScale},
		{"forms", func(o *options) { o.forms = true }, kindForms},
	}
	for _, tc := range cases {
		t.Run(tc.flag, func(t *testing.T) {
			var o options
			tc.set(&o)
			kind, err := o.kind()
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestKindRejectsMissingSelector(t *testing.T) {
	var o options
	_, err := o.kind()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
}

func TestKindRejectsConflictingSelectors(t *testing.T) {
	o := options{info: true, entry: true}
	_, err := o.kind()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
	assert.Contains(t, err.Error(), "--info")
	assert.Contains(t, err.Error(), "--entry")
}

func TestFlagsBindToOptions(t *testing.T) {
	cmd, o := newRootCmd()
	err := cmd.ParseFlags([]string{
		"--list", "--column", "Name", "--column", "Size",
		"--checklist", "--hide-column", "2", "--hide-header", "--editable",
		"--title", "Pick one", "--width", "640", "--height", "480",
		"--timeout", "30", "--separator", ",",
		"--ok-label", "Go", "--cancel-label", "Stop",
	})
	require.NoError(t, err)

	assert.True(t, o.list)
	assert.Equal(t, []string{"Name", "Size"}, o.columns)
	assert.True(t, o.checklist)
	assert.Equal(t, []int{2}, o.hiddenCols)
	assert.True(t, o.hideHeader)
	assert.True(t, o.editable)
	assert.Equal(t, "Pick one", o.title)
	assert.Equal(t, 640, o.width)
	assert.Equal(t, 480, o.height)
	assert.Equal(t, 30, o.timeout)
	assert.Equal(t, ",", o.separator)
	assert.Equal(t, "Go", o.okLabel)
	assert.Equal(t, "Stop", o.cancelLabel)
}

func TestColumnFlagKeepsCommas(t *testing.T) {
	cmd, o := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--column", "Last, First"}))
	assert.Equal(t, []string{"Last, First"}, o.columns)
}

func TestFormFieldsInterleaveInFlagOrder(t *testing.T) {
	cmd, o := newRootCmd()
	err := cmd.ParseFlags([]string{
		"--forms",
		"--add-entry", "Name",
		"--add-password", "PIN",
		"--add-entry", "Email",
	})
	require.NoError(t, err)

	require.Len(t, o.formFields, 3)
	assert.Equal(t, dialog.FormField{Label: "Name"}, o.formFields[0])
	assert.Equal(t, dialog.FormField{Label: "PIN", Password: true}, o.formFields[1])
	assert.Equal(t, dialog.FormField{Label: "Email"}, o.formFields[2])
}

func TestPassThroughFlagsParse(t *testing.T) {
	cmd, o := newRootCmd()
	err := cmd.ParseFlags([]string{"--question", "--modal", "--confirm-overwrite"})
	require.NoError(t, err)
	assert.True(t, o.modal)
	assert.True(t, o.confirmOverwrite)
}

func TestVersionFlag(t *testing.T) {
	cmd, _ := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "placard "+version+"\n", buf.String())
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, version, versionString())

	old := commit
	commit = "abc1234"
	t.Cleanup(func() { commit = old })
	assert.Equal(t, version+" (abc1234)", versionString())
}

func TestExecuteWithoutKindFailsBeforeAnyWindow(t *testing.T) {
	cmd, _ := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
}

func TestExecuteRejectsChecklistWithRadiolist(t *testing.T) {
	cmd, _ := newRootCmd()
	cmd.SetArgs([]string{"--list", "--checklist", "--radiolist", "--column", "A"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
}

func TestEmitPrintsPayloadForValueKinds(t *testing.T) {
	out := captureStdout(t, func() {
		assert.Equal(t, 0, emit(kindEntry, dialog.Confirmed("hello")))
	})
	assert.Equal(t, "hello\n", out)
}

func TestEmitSilentForMessageAndProgress(t *testing.T) {
	out := captureStdout(t, func() {
		assert.Equal(t, 1, emit(kindQuestion, dialog.Outcome{State: dialog.StateConfirmed, Button: 1}))
		assert.Equal(t, 0, emit(kindInfo, dialog.Outcome{State: dialog.StateConfirmed}))
		assert.Equal(t, 0, emit(kindProgress, dialog.Confirmed("")))
	})
	assert.Empty(t, out)
}

func TestEmitMapsTerminalStates(t *testing.T) {
	assert.Equal(t, 1, emit(kindEntry, dialog.Cancelled()))
	assert.Equal(t, 5, emit(kindEntry, dialog.Outcome{State: dialog.StateTimedOut}))
	assert.Equal(t, 255, emit(kindEntry, dialog.Outcome{State: dialog.StateClosed}))
}
