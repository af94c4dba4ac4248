package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/teamspack/internal/config"
	"github.com/Mavwarf/teamspack/internal/history"
	"github.com/Mavwarf/teamspack/internal/pack"
)

func (s session) inspect(args []string) error {
	path := filepath.Join(s.dir, pack.ArchiveName)
	if len(args) > 0 {
		path = args[0]
	}
	entries, err := pack.List(path)
	if err != nil {
		return err
	}
	s.out.Line("%s:", path)
	for _, e := range entries {
		s.out.Line("  %-16s %8d -> %8d  %-7s crc32=%08x",
			e.Name, e.UncompressedSize, e.CompressedSize, pack.MethodName(e.Method), e.CRC32)
	}
	s.out.Line("%d entries", len(entries))
	return nil
}

func (s session) history(args []string) error {
	wipe := false
	rest := args[:0:0]
	for _, a := range args {
		if a == "--clear" {
			wipe = true
			continue
		}
		rest = append(rest, a)
	}
	limit, err := parseLimit(rest, 10)
	if err != nil {
		return err
	}

	store, err := history.NewSQLiteStore(config.HistoryPath())
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer store.Close()

	if wipe {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("history: clear: %w", err)
		}
		s.out.Line("History cleared (%s).", store.Path())
		return nil
	}

	builds, err := store.Builds(limit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(builds) == 0 {
		if !s.cfg.Options.History {
			s.out.Line("No builds recorded. Enable with {\"config\": {\"history\": true}}.")
		} else {
			s.out.Line("No builds recorded.")
		}
		return nil
	}
	for _, b := range builds {
		s.out.Line("%s  %s  %d bytes  sha256=%.12s", b.Time.Format(time.DateTime), b.Archive, b.Size, b.SHA256)
		s.out.Line("    entries: %s", strings.Join(b.Entries, ", "))
		s.out.Line("    fonts:   color=%s outline=%s", b.ColorFont, b.OutlineFont)
	}
	return nil
}
