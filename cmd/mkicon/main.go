// mkicon renders one icon preset to a PNG file.
// Usage: go run ./cmd/mkicon <color|outline> <output.png>
package main

import (
	"fmt"
	"os"

	"github.com/Mavwarf/teamspack/internal/fonts"
	"github.com/Mavwarf/teamspack/internal/icon"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mkicon: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	if len(args) < 2 {
		return fmt.Errorf("usage: mkicon <color|outline> <output.png>")
	}
	p, ok := icon.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q", args[0])
	}
	img, _, err := icon.Render(p, fonts.DefaultChain())
	if err != nil {
		return err
	}

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create icon file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close icon file: %w", cerr)
		}
	}()
	return icon.Encode(f, img)
}
