// Package pack bundles the manifest and icons into the app package archive.
package pack

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mavwarf/teamspack/internal/paths"
)

// ArchiveName is the package file users upload to the chat client.
const ArchiveName = "AlphaTechX-Bot.zip"

// ManifestName is the app manifest; only its presence is checked.
const ManifestName = "manifest.json"

// Files lists the package contents in archive order.
var Files = []string{ManifestName, "color.png", "outline.png"}

// MissingFilesError reports package inputs that do not exist.
type MissingFilesError struct {
	Files []string
}

func (e *MissingFilesError) Error() string {
	return "missing files: " + strings.Join(e.Files, ", ")
}

// Result describes a written archive.
type Result struct {
	Path    string
	Entries []string
	Size    int64
	SHA256  string
}

// Missing returns the files, in order, that do not exist under dir.
func Missing(dir string, files []string) []string {
	var missing []string
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f)); errors.Is(err, os.ErrNotExist) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Build writes archive (relative to dir unless absolute) containing files,
// stored under their base names with deflate compression. Nothing is written
// when any input is missing, and a failed build leaves no archive behind.
func Build(dir string, files []string, archive string) (Result, error) {
	if missing := Missing(dir, files); len(missing) > 0 {
		return Result{}, &MissingFilesError{Files: missing}
	}
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(dir, archive)
	}

	tmp := paths.TempPath(archive)
	if err := writeArchive(tmp, dir, files); err != nil {
		os.Remove(tmp)
		return Result{}, err
	}
	if err := os.Rename(tmp, archive); err != nil {
		os.Remove(tmp)
		return Result{}, fmt.Errorf("pack: rename %s: %w", archive, err)
	}

	res := Result{Path: archive}
	for _, f := range files {
		res.Entries = append(res.Entries, filepath.Base(f))
	}
	sum, size, err := digest(archive)
	if err != nil {
		return Result{}, err
	}
	res.SHA256, res.Size = sum, size
	return res, nil
}

func writeArchive(path, dir string, files []string) (err error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, paths.FilePerm)
	if err != nil {
		return fmt.Errorf("pack: create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("pack: close %s: %w", path, cerr)
		}
	}()

	zw := zip.NewWriter(out)
	for _, f := range files {
		if err := addFile(zw, filepath.Join(dir, f)); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pack: finish archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pack: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("pack: stat %s: %w", path, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("pack: header %s: %w", path, err)
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("pack: add %s: %w", hdr.Name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("pack: copy %s: %w", hdr.Name, err)
	}
	return nil
}

func digest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("pack: open %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("pack: hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// Entry is one file inside an archive.
type Entry struct {
	Name             string
	Method           uint16
	CompressedSize   uint64
	UncompressedSize uint64
	CRC32            uint32
}

// List reads the central directory of the archive at path.
func List(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("pack: open %s: %w", path, err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:             f.Name,
			Method:           f.Method,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
			CRC32:            f.CRC32,
		})
	}
	return entries, nil
}

// MethodName returns a label for a zip compression method.
func MethodName(m uint16) string {
	switch m {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method(%d)", m)
	}
}
