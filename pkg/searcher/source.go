package searcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raesene/slackdump-searcher/pkg/archive"
)

var (
	// ErrNoInputFiles reports an archive folder with nothing to search.
	ErrNoInputFiles = errors.New("no archive files found")

	// ErrExternalTool reports a failed run of the external pre-filter.
	ErrExternalTool = errors.New("external search tool failed")

	// ErrInvalidInput reports an input path that is neither a directory,
	// a file, nor "-".
	ErrInvalidInput = errors.New("invalid input path")
)

// Open selects the chunk line source for input: a folder of archives run
// through the external pre-filter (or an in-process filter when the tool is
// unavailable), "-" for standard input, or a single archive file.
func (s *Searcher) Open(input string) (io.ReadCloser, error) {
	if input == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a file or directory", ErrInvalidInput, input)
	}
	if info.IsDir() {
		return s.openFolder(input)
	}

	rc, err := archive.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return rc, nil
}

// openFolder narrows a folder of archives down to the lines that contain
// the pattern at all. The pre-filter output is fully buffered before any
// parsing starts.
func (s *Searcher) openFolder(dir string) (io.ReadCloser, error) {
	files, err := archive.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no *.json.gz files in %s", ErrNoInputFiles, dir)
	}

	if _, err := exec.LookPath(s.zgrep); err != nil {
		slog.Debug("external search tool not found, filtering in process", "tool", s.zgrep)
		return s.filterFiles(files)
	}
	return s.runZgrep(files)
}

// runZgrep shells out to the external tool for the line pre-filter.
// Anything written to stderr fails the run; a non-zero exit with a silent
// stderr means no lines matched.
func (s *Searcher) runZgrep(files []string) (io.ReadCloser, error) {
	args := append([]string{"-ih", s.raw}, files...)
	cmd := exec.Command(s.zgrep, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrExternalTool, strings.TrimSpace(stderr.String()))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrExternalTool, err)
		}
	}
	return io.NopCloser(&stdout), nil
}

// filterFiles is the in-process fallback: the same case-insensitive line
// filter the external tool would apply, run over the decompressed files.
func (s *Searcher) filterFiles(files []string) (io.ReadCloser, error) {
	var out bytes.Buffer
	for _, path := range files {
		if err := s.filterFile(path, &out); err != nil {
			return nil, err
		}
	}
	return io.NopCloser(&out), nil
}

func (s *Searcher) filterFile(path string, out *bytes.Buffer) error {
	rc, err := archive.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer rc.Close()

	sc := archive.NewLineScanner(rc)
	for sc.Scan() {
		if s.pattern.Match(sc.Bytes()) {
			out.Write(sc.Bytes())
			out.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return nil
}
