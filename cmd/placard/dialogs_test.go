package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/placard/pkg/dialog"
	"github.com/odvcencio/placard/pkg/errors"
	"github.com/odvcencio/placard/pkg/render"
	"github.com/odvcencio/placard/pkg/theme"
)

func cmdFace(t *testing.T) *render.Face {
	t.Helper()
	f, err := render.NewFace(render.BaseTextSize, 1)
	require.NoError(t, err)
	return f
}

func build(t *testing.T, kind dialogKind, o *options, args []string) dialog.Controller {
	t.Helper()
	ctrl, err := buildController(kind, o, args, "|", theme.Dark(), cmdFace(t))
	require.NoError(t, err)
	if c, ok := ctrl.(io.Closer); ok {
		t.Cleanup(func() { c.Close() })
	}
	return ctrl
}

func TestMessageTitleDefaults(t *testing.T) {
	cases := []struct {
		kind  dialogKind
		title string
	}{
		{kindInfo, "Information"},
		{kindWarning, "Warning"},
		{kindError, "Error"},
		{kindQuestion, "Question"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.title, build(t, tc.kind, &options{}, nil).Title())
	}

	assert.Equal(t, "Heads up", build(t, kindInfo, &options{title: "Heads up"}, nil).Title())
}

func TestEntryAndPasswordTitles(t *testing.T) {
	assert.Equal(t, "Entry", build(t, kindEntry, &options{}, nil).Title())
	assert.Equal(t, "Password", build(t, kindPassword, &options{}, nil).Title())
	assert.Equal(t, "Sudo", build(t, kindPassword, &options{title: "Sudo"}, nil).Title())
}

func TestCalendarAndFormsTitles(t *testing.T) {
	assert.Equal(t, "Select Date", build(t, kindCalendar, &options{}, nil).Title())
	assert.Equal(t, "Forms", build(t, kindForms, &options{
		formFields: []dialog.FormField{{Label: "Name"}},
	}, nil).Title())
}

func TestScaleRejectsEmptyRange(t *testing.T) {
	for _, o := range []*options{
		{minValue: 50, maxValue: 10, step: 1},
		{minValue: 5, maxValue: 5, step: 1},
	} {
		_, err := buildController(kindScale, o, nil, "|", theme.Dark(), cmdFace(t))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
	}
}

func TestListNeedsAtLeastOneColumn(t *testing.T) {
	_, err := buildController(kindList, &options{}, nil, "|", theme.Dark(), cmdFace(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsage))
}

func TestListBuildsFromCellArguments(t *testing.T) {
	o := &options{columns: []string{"Name", "Size"}}
	ctrl := build(t, kindList, o, []string{"alpha", "10", "beta", "20"})
	assert.Equal(t, "Select", ctrl.Title())
}

func TestFileSelectionTitlesPerMode(t *testing.T) {
	dir := t.TempDir()

	open := build(t, kindFileSelection, &options{filename: dir + string(filepath.Separator)}, nil)
	assert.Equal(t, "Open File", open.Title())

	save := build(t, kindFileSelection, &options{save: true, filename: filepath.Join(dir, "out.txt")}, nil)
	assert.Equal(t, "Save File", save.Title())

	pick := build(t, kindFileSelection, &options{directory: true, filename: dir + string(filepath.Separator)}, nil)
	assert.Equal(t, "Select Directory", pick.Title())
}

func TestTextInfoLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))

	ctrl := build(t, kindTextInfo, &options{filename: path}, nil)
	assert.Equal(t, "Text", ctrl.Title())
}

func TestTextInfoMissingFileFailsBeforeAnyWindow(t *testing.T) {
	_, err := buildController(kindTextInfo, &options{filename: "/no/such/file.txt"}, nil, "|", theme.Dark(), cmdFace(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentLoad))
}

func TestGroupRowsDropsShortTrailingGroup(t *testing.T) {
	rows := groupRows([]string{"a", "b", "c", "d", "e"}, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rows)

	assert.Empty(t, groupRows([]string{"x"}, 2))
	assert.Equal(t, [][]string{{"x"}}, groupRows([]string{"x"}, 1))
}

func TestSplitStartPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	gotDir, gotName := splitStartPath("")
	assert.Empty(t, gotDir)
	assert.Empty(t, gotName)

	gotDir, gotName = splitStartPath(dir)
	assert.Equal(t, dir, gotDir)
	assert.Empty(t, gotName)

	gotDir, gotName = splitStartPath(file)
	assert.Equal(t, dir, gotDir)
	assert.Equal(t, "report.pdf", gotName)

	gotDir, gotName = splitStartPath(filepath.Join(dir, "new", "out.txt"))
	assert.Equal(t, filepath.Join(dir, "new"), gotDir)
	assert.Equal(t, "out.txt", gotName)

	gotDir, gotName = splitStartPath(dir + string(filepath.Separator))
	assert.Equal(t, dir, gotDir)
	assert.Empty(t, gotName)
}

func TestParseFileFilter(t *testing.T) {
	f := parseFileFilter("Images | *.png *.jpg")
	assert.Equal(t, "Images", f.Name)
	assert.Equal(t, []string{"*.png", "*.jpg"}, f.Patterns)

	f = parseFileFilter("*.go")
	assert.Equal(t, "*.go", f.Name)
	assert.Equal(t, []string{"*.go"}, f.Patterns)

	f = parseFileFilter("Docs|*.md")
	assert.Equal(t, "Docs", f.Name)
	assert.Equal(t, []string{"*.md"}, f.Patterns)
}
