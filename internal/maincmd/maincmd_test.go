package maincmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/loxi/internal/config"
	"github.com/mna/loxi/internal/filetest"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

var testUpdate = flag.Bool("test.update-maincmd-tests", false, "If set, replace expected maincmd test results with actual results.")

// TestRunSourceGoldenFiles drives every *.lox script under testdata/in
// through the full scan/parse/resolve/evaluate pipeline and diffs its stdout
// and stderr against the matching golden files under testdata/out.
func TestRunSourceGoldenFiles(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")
	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			var out, errs bytes.Buffer
			rep := report.NewDefault(&errs)
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}
			_ = runSource(context.Background(), stdio, config.Default(), rep, src)

			filetest.DiffOutput(t, fi, out.String(), resultDir, testUpdate)
			filetest.DiffErrors(t, fi, errs.String(), resultDir, testUpdate)
		})
	}
}

func TestRunSourceReportsStaticErrors(t *testing.T) {
	var out, errs bytes.Buffer
	rep := report.NewDefault(&errs)
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}
	err := runSource(context.Background(), stdio, config.Default(), rep, []byte(`var a = 1`))
	require.Error(t, err)
	require.True(t, rep.HadError())
	require.False(t, rep.HadRuntimeError())
}

func TestRunSourceReportsRuntimeErrors(t *testing.T) {
	var out, errs bytes.Buffer
	rep := report.NewDefault(&errs)
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errs}
	err := runSource(context.Background(), stdio, config.Default(), rep, []byte(`print nope;`))
	require.Error(t, err)
	require.True(t, rep.HadRuntimeError())
}
