// ABOUTME: Reads picker candidates from a file or stdin as plain lines or NDJSON records
// ABOUTME: Lines keep their text verbatim minus the line ending; empty input yields no items

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineSize is the longest input line accepted.
const MaxLineSize = 1 << 20

// ErrInputIsTTY is returned when the candidates would be read from a terminal.
var ErrInputIsTTY = errors.New("input is tty")

// Open returns the named file, or stdin when path is empty or "-".
// The caller closes the result.
func Open(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// ReadLines reads every line of r. A trailing CR is removed from each line.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
