package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Mavwarf/teamspack/internal/config"
	"github.com/Mavwarf/teamspack/internal/console"
	"github.com/Mavwarf/teamspack/internal/fonts"
	"github.com/Mavwarf/teamspack/internal/pack"
	"github.com/Mavwarf/teamspack/internal/paths"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitMissingFiles
	exitNoRenderer
)

// usageError is a bad invocation; it is reported like an unexpected failure.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func main() {
	os.Exit(run(os.Args[1:], console.New()))
}

// run parses args, executes the command and maps its error to an exit code.
func run(args []string, out *console.Printer) int {
	configPath := ""
	dir := "."

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return report(out, &usageError{"--config requires a file path"})
			}
			configPath = args[i+1]
			i++
		case "--dir", "-d":
			if i+1 >= len(args) {
				return report(out, &usageError{"--dir requires a directory"})
			}
			dir = args[i+1]
			i++
		default:
			filtered = append(filtered, args[i])
		}
	}

	cmd := "build"
	if len(filtered) > 0 {
		cmd, filtered = filtered[0], filtered[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage(out)
		return exitOK
	case "version", "-V", "--version":
		out.Line("teamspack %s (built %s)", version, buildDate)
		return exitOK
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return report(out, err)
	}
	s := session{dir: dir, cfg: cfg, out: out, chain: fonts.DefaultChain(cfg.Options.Fonts...)}

	switch cmd {
	case "build":
		err = s.build()
	case "icons":
		_, err = s.icons()
	case "package":
		err = s.packageOnly()
	case "inspect":
		err = s.inspect(filtered)
	case "history":
		err = s.history(filtered)
	default:
		err = &usageError{fmt.Sprintf("unknown command %q (run 'teamspack help')", cmd)}
	}
	return report(out, err)
}

// report is the single place fatal errors become user-facing messages.
func report(out *console.Printer, err error) int {
	var missing *pack.MissingFilesError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, fonts.ErrNoFace):
		out.Fail("Error: no font rendering support available (%v)", err)
		printManualSteps(out)
		return exitNoRenderer
	case errors.As(err, &missing):
		out.Fail("Missing files: %s", strings.Join(missing.Files, ", "))
		return exitMissingFiles
	default:
		out.Fail("Error: %v", err)
		return exitFailure
	}
}

func printManualSteps(out *console.Printer) {
	out.Blank()
	out.Line("Create the icons manually instead:")
	out.Line("  - color.png: 192x192px, opaque")
	out.Line("  - outline.png: 32x32px, transparent background")
	out.Line("Then zip %s into %s, for example:", strings.Join(pack.Files, ", "), pack.ArchiveName)
	out.Line("  zip %s %s", pack.ArchiveName, strings.Join(pack.Files, " "))
}

func printUsage(out *console.Printer) {
	out.Line(`teamspack - build the AlphaTechX Teams app package

Usage:
  teamspack [flags] [command]

Commands:
  build              Generate both icons and the package (default)
  icons              Generate color.png and outline.png only
  package            Zip manifest.json, color.png and outline.png
  inspect [zip]      List the entries of a package (default %s)
  history [--clear] [N]
                     Show the last N recorded builds (default 10)
  version            Print version information
  help               Show this help

Flags:
  -c, --config <path>  Config file (default: next to binary, then %s)
  -d, --dir <dir>      Working directory holding manifest.json (default .)`,
		pack.ArchiveName, filepath.Join(paths.DataDir(), paths.ConfigFileName))
}

// parseLimit reads an optional positive count argument.
func parseLimit(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, &usageError{fmt.Sprintf("invalid count %q", args[0])}
	}
	return n, nil
}
