// Package input loads business identifier lists from plain-text files.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoIdentifiers marks an input file that yielded zero usable lines.
var ErrNoIdentifiers = errors.New("no usable identifiers")

// Error reports an unusable input file. It aborts the whole run; everything
// downstream only fails per identifier.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("input file %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReadIdentifiers reads one identifier per line from path. Lines are
// whitespace-trimmed, empty lines dropped, and duplicates removed while
// preserving first-occurrence order.
func ReadIdentifiers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	var ids []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	if len(ids) == 0 {
		return nil, &Error{Path: path, Err: ErrNoIdentifiers}
	}
	return ids, nil
}
