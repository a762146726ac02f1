package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hidewatch/hidewatch/internal/scan"
)

func TestReporter_Hidden_PrintsPath(t *testing.T) {
	// Given: a reporter with a buffer
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	// When: reporting a hide that kept the path
	r.Hidden("/data/report.txt", "/data/report.txt")

	// Then: one plain "hid" line comes out
	assert.Equal(t, "hid /data/report.txt\n", buf.String())
}

func TestReporter_Hidden_ShowsRename(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	r.Hidden("/data/report.txt", "/data/.report.txt")

	assert.Equal(t, "hid /data/report.txt -> /data/.report.txt\n", buf.String())
}

func TestReporter_Hidden_DryRunAnnouncesOnly(t *testing.T) {
	// Given: a dry-run reporter
	buf := &bytes.Buffer{}
	r := New(buf, Options{DryRun: true})

	// When: reporting a match
	r.Hidden("/data/report.txt", "/data/report.txt")

	// Then: the line says what would happen
	assert.Equal(t, "would hide /data/report.txt\n", buf.String())
}

func TestReporter_Failed_PrintsError(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	r.Failed("/data/report.txt", errors.New("permission denied"))

	output := buf.String()
	assert.Contains(t, output, "error:")
	assert.Contains(t, output, "permission denied")
}

func TestReporter_Failed_UsesErrorWriter(t *testing.T) {
	// Given: a reporter with separate output and error writers
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	r := New(out, Options{ErrOut: errOut})

	// When: reporting one hide and one failure
	r.Hidden("/data/a.txt", "/data/.a.txt")
	r.Failed("/data/b.txt", errors.New("permission denied"))

	// Then: outcomes and errors land on their own writers
	assert.Contains(t, out.String(), "hid /data/a.txt")
	assert.NotContains(t, out.String(), "permission denied")
	assert.Contains(t, errOut.String(), "permission denied")
}

func TestReporter_Noticef_AppendsNewline(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	r.Noticef("watching %d roots", 3)

	assert.Equal(t, "watching 3 roots\n", buf.String())
}

func TestReporter_Summary_PlainLinesOffTerminal(t *testing.T) {
	// Given: a reporter on a non-terminal writer
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	// When: rendering two root summaries
	r.Summary([]scan.Summary{
		{Root: "/data", Entries: 10, Matched: 4, Errors: 1},
		{Root: "/logs", Entries: 3, Matched: 0, Errors: 0},
	})

	// Then: one greppable line per root
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "root=/data entries=10 matched=4 errors=1", lines[0])
	assert.Equal(t, "root=/logs entries=3 matched=0 errors=0", lines[1])
}

func TestReporter_Summary_EmptyWritesNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	r.Summary(nil)

	assert.Empty(t, buf.String())
}

func TestReporter_TableListsRootsAndTotals(t *testing.T) {
	// Given: the terminal rendering path
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	// When: rendering the table directly
	r.renderTable([]scan.Summary{
		{Root: "/data", Entries: 10, Matched: 4, Errors: 1},
		{Root: "/logs", Entries: 3, Matched: 2, Errors: 0},
	})

	// Then: every root, its counts and the totals row appear
	output := buf.String()
	assert.Contains(t, output, "/data")
	assert.Contains(t, output, "/logs")
	assert.Contains(t, output, "10")
	assert.Contains(t, output, "13")
	assert.Contains(t, output, "6")
}

func TestReporter_TableSkipsTotalsForSingleRoot(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, Options{})

	r.renderTable([]scan.Summary{
		{Root: "/data", Entries: 10, Matched: 4, Errors: 1},
	})

	assert.NotContains(t, strings.ToLower(buf.String()), "total")
}
