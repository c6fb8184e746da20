// Package iojson provides JSON input/output helpers for CLI commands.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads a JSON value of type T from a --file flag or from piped
// stdin. Register its Flag on the command and call Read in the action.
type FileReader[T any] struct {
	fileFlagValue string
}

// Flag returns the --file/-f flag bound to this reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// HasInput reports whether a file was given or stdin is piped.
func (fr *FileReader[T]) HasInput() bool {
	if fr.fileFlagValue != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// Read decodes the JSON input into T.
func (fr *FileReader[T]) Read() (T, error) {
	var (
		reader io.Reader
		input  T
	)

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode json: %w", err)
	}

	return input, nil
}

// Write pretty-prints obj as JSON to w.
func Write(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLines prints each item as one compact JSON line, the format consumed
// by jq and line-oriented tooling.
func WriteLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode json line: %w", err)
		}
	}
	return nil
}
