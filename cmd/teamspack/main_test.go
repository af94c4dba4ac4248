package main

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Mavwarf/teamspack/internal/console"
	"github.com/Mavwarf/teamspack/internal/fonts"
	"github.com/Mavwarf/teamspack/internal/pack"
)

type testRun struct {
	out, err bytes.Buffer
}

func (r *testRun) printer() *console.Printer {
	return &console.Printer{Out: &r.out, Err: &r.err}
}

// workDir returns a temp working directory and isolates the data directory.
func workDir(t *testing.T, withManifest bool) string {
	t.Helper()
	t.Setenv("APPDATA", t.TempDir())
	dir := t.TempDir()
	if withManifest {
		if err := os.WriteFile(filepath.Join(dir, pack.ManifestName), []byte(`{"manifestVersion":"1.16"}`), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRunBuildCreatesPackage(t *testing.T) {
	dir := workDir(t, true)
	var r testRun
	if code := run([]string{"--dir", dir}, r.printer()); code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, r.err.String())
	}

	for name, size := range map[string]int{"color.png": 192, "outline.png": 32} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.Width != size || cfg.Height != size {
			t.Errorf("%s: %dx%d, want %dx%d", name, cfg.Width, cfg.Height, size, size)
		}
	}

	names := archiveNames(t, filepath.Join(dir, pack.ArchiveName))
	if !reflect.DeepEqual(names, pack.Files) {
		t.Errorf("entries = %v, want %v", names, pack.Files)
	}
	if !strings.Contains(r.out.String(), "Package ready for distribution") {
		t.Errorf("missing success message in:\n%s", r.out.String())
	}
}

func TestRunBuildTwiceIsIdempotent(t *testing.T) {
	dir := workDir(t, true)
	var first, second testRun
	if code := run([]string{"-d", dir, "build"}, first.printer()); code != exitOK {
		t.Fatalf("first exit = %d: %s", code, first.err.String())
	}
	a := archiveNames(t, filepath.Join(dir, pack.ArchiveName))
	if code := run([]string{"-d", dir, "build"}, second.printer()); code != exitOK {
		t.Fatalf("second exit = %d: %s", code, second.err.String())
	}
	b := archiveNames(t, filepath.Join(dir, pack.ArchiveName))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("entries differ: %v vs %v", a, b)
	}
}

func TestRunBuildMissingManifest(t *testing.T) {
	dir := workDir(t, false)
	var r testRun
	if code := run([]string{"--dir", dir}, r.printer()); code != exitMissingFiles {
		t.Fatalf("exit = %d, want %d", code, exitMissingFiles)
	}
	if got := r.err.String(); !strings.Contains(got, "Missing files: manifest.json\n") {
		t.Errorf("stderr = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, pack.ArchiveName)); !os.IsNotExist(err) {
		t.Error("archive written despite missing manifest")
	}
	// Icons come first and are kept.
	if _, err := os.Stat(filepath.Join(dir, "color.png")); err != nil {
		t.Errorf("color.png not generated: %v", err)
	}
}

func TestRunPackageOnlyReportsAllMissing(t *testing.T) {
	dir := workDir(t, true)
	var r testRun
	if code := run([]string{"--dir", dir, "package"}, r.printer()); code != exitMissingFiles {
		t.Fatalf("exit = %d, want %d", code, exitMissingFiles)
	}
	if got := r.err.String(); !strings.Contains(got, "Missing files: color.png, outline.png") {
		t.Errorf("stderr = %q", got)
	}
}

func TestRunIconsOnly(t *testing.T) {
	dir := workDir(t, false)
	var r testRun
	if code := run([]string{"--dir", dir, "icons"}, r.printer()); code != exitOK {
		t.Fatalf("exit = %d: %s", code, r.err.String())
	}
	if _, err := os.Stat(filepath.Join(dir, pack.ArchiveName)); !os.IsNotExist(err) {
		t.Error("icons command should not package")
	}
}

func TestRunInspect(t *testing.T) {
	dir := workDir(t, true)
	var build, inspect testRun
	if code := run([]string{"--dir", dir}, build.printer()); code != exitOK {
		t.Fatalf("build exit = %d: %s", code, build.err.String())
	}
	if code := run([]string{"--dir", dir, "inspect"}, inspect.printer()); code != exitOK {
		t.Fatalf("inspect exit = %d: %s", code, inspect.err.String())
	}
	out := inspect.out.String()
	for _, name := range pack.Files {
		if !strings.Contains(out, name) {
			t.Errorf("inspect output missing %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "deflate") || !strings.Contains(out, "3 entries") {
		t.Errorf("inspect output:\n%s", out)
	}
}

func TestRunHistoryRecordsBuild(t *testing.T) {
	dir := workDir(t, true)
	cfgPath := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(cfgPath, []byte(`{"config": {"history": true}}`), 0644); err != nil {
		t.Fatal(err)
	}

	var build, hist, wipe, after testRun
	if code := run([]string{"-c", cfgPath, "-d", dir}, build.printer()); code != exitOK {
		t.Fatalf("build exit = %d: %s", code, build.err.String())
	}
	if build.err.Len() != 0 {
		t.Errorf("unexpected warnings: %s", build.err.String())
	}
	if code := run([]string{"-c", cfgPath, "history"}, hist.printer()); code != exitOK {
		t.Fatalf("history exit = %d: %s", code, hist.err.String())
	}
	if !strings.Contains(hist.out.String(), pack.ArchiveName) {
		t.Errorf("history output:\n%s", hist.out.String())
	}

	if code := run([]string{"-c", cfgPath, "history", "--clear"}, wipe.printer()); code != exitOK {
		t.Fatalf("clear exit = %d: %s", code, wipe.err.String())
	}
	if code := run([]string{"-c", cfgPath, "history", "5"}, after.printer()); code != exitOK {
		t.Fatalf("history exit = %d", code)
	}
	if !strings.Contains(after.out.String(), "No builds recorded.") {
		t.Errorf("after clear:\n%s", after.out.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := [][]string{
		{"frobnicate"},
		{"--config"},
		{"--dir"},
		{"history", "zero"},
	}
	for _, args := range tests {
		t.Setenv("APPDATA", t.TempDir())
		var r testRun
		if code := run(args, r.printer()); code != exitFailure {
			t.Errorf("run(%q) = %d, want %d", args, code, exitFailure)
		}
		if !strings.HasPrefix(r.err.String(), "[error] Error: ") {
			t.Errorf("run(%q) stderr = %q", args, r.err.String())
		}
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"--version"}} {
		var r testRun
		if code := run(args, r.printer()); code != exitOK {
			t.Errorf("run(%q) = %d", args, code)
		}
		if r.out.Len() == 0 {
			t.Errorf("run(%q) printed nothing", args)
		}
	}
}

func TestReportCategories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"success", nil, exitOK, ""},
		{"no renderer", fmt.Errorf("icon: color: %w", fonts.ErrNoFace), exitNoRenderer, "color.png: 192x192px"},
		{"missing inputs", &pack.MissingFilesError{Files: []string{"manifest.json", "outline.png"}}, exitMissingFiles, "Missing files: manifest.json, outline.png"},
		{"unexpected", errors.New("disk full"), exitFailure, "Error: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r testRun
			if got := report(r.printer(), tt.err); got != tt.code {
				t.Errorf("report = %d, want %d", got, tt.code)
			}
			all := r.out.String() + r.err.String()
			if tt.want == "" && all != "" {
				t.Errorf("unexpected output %q", all)
			}
			if !strings.Contains(all, tt.want) {
				t.Errorf("output %q does not contain %q", all, tt.want)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, 10, false},
		{[]string{"3"}, 3, false},
		{[]string{"0"}, 0, true},
		{[]string{"x"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseLimit(tt.args, 10)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLimit(%q) = %d, %v", tt.args, got, err)
		}
	}
}
