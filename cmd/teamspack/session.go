package main

import (
	"path/filepath"
	"time"

	"github.com/Mavwarf/teamspack/internal/config"
	"github.com/Mavwarf/teamspack/internal/console"
	"github.com/Mavwarf/teamspack/internal/fonts"
	"github.com/Mavwarf/teamspack/internal/history"
	"github.com/Mavwarf/teamspack/internal/icon"
	"github.com/Mavwarf/teamspack/internal/pack"
)

// session carries what every command needs for one invocation.
type session struct {
	dir   string
	cfg   config.Config
	out   *console.Printer
	chain fonts.Chain
}

// build runs color icon, outline icon and packaging in that order.
func (s session) build() error {
	s.out.Say(console.Start, "Creating AlphaTechX Teams App icons...")
	s.out.Blank()

	icons, err := s.icons()
	if err != nil {
		return err
	}

	s.out.Blank()
	res, err := s.bundle()
	if err != nil {
		return err
	}
	s.record(icons, res)

	s.out.Blank()
	s.out.Say(console.Done, "Success! Package ready for distribution")
	s.out.Blank()
	s.out.Say(console.Share, "How to distribute:")
	s.out.Line("1. Share %s with your users", pack.ArchiveName)
	s.out.Line("2. Users go to Teams → Apps → 'Upload a custom app'")
	s.out.Line("3. Users select %s", pack.ArchiveName)
	s.out.Line("4. Users click 'Add' to install")
	s.out.Blank()
	s.out.Say(console.OK, "Users can now chat with AlphaTechX Bot in Teams!")
	return nil
}

// icons renders every preset into the working directory.
func (s session) icons() ([]icon.Result, error) {
	results := make([]icon.Result, 0, len(icon.Presets))
	for _, p := range icon.Presets {
		res, err := icon.Generate(s.dir, p, s.chain)
		if err != nil {
			return nil, err
		}
		s.out.Say(console.OK, "Created %s (%dx%d, %s)", p.File, res.Size, res.Size, res.Font)
		results = append(results, res)
	}
	return results, nil
}

func (s session) packageOnly() error {
	_, err := s.bundle()
	return err
}

func (s session) bundle() (pack.Result, error) {
	s.out.Say(console.Package, "Creating Teams app package...")
	res, err := pack.Build(s.dir, pack.Files, pack.ArchiveName)
	if err != nil {
		return pack.Result{}, err
	}
	s.out.Say(console.OK, "Created %s", pack.ArchiveName)
	return res, nil
}

// record appends the build to the history database when enabled. Failures
// are warnings; the package is already written.
func (s session) record(icons []icon.Result, res pack.Result) {
	if !s.cfg.Options.History {
		return
	}
	store, err := history.NewSQLiteStore(config.HistoryPath())
	if err != nil {
		s.out.Warn("history: %v", err)
		return
	}
	defer store.Close()

	b := history.Build{
		Time:    time.Now(),
		Archive: absPath(res.Path),
		Entries: res.Entries,
		Size:    res.Size,
		SHA256:  res.SHA256,
	}
	for i, r := range icons {
		switch icon.Presets[i].Name {
		case icon.Color.Name:
			b.ColorFont = r.Font
		case icon.Outline.Name:
			b.OutlineFont = r.Font
		}
	}
	if err := store.Record(b); err != nil {
		s.out.Warn("history: %v", err)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
