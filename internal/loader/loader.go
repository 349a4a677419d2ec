// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/cpu"
)

var (
	errEmpty    = errors.New("program image is empty")
	errTooLarge = errors.New("program image too large")
)

// Load reads a raw program image from the given file.
func Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return program, nil
}

// Read reads a raw program image. The image has no header, it is copied
// verbatim into memory at the program start address.
func Read(reader io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(reader, cpu.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(program) == 0:
		return nil, errEmpty
	case len(program) > cpu.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum size is %d bytes", errTooLarge, cpu.MaxProgramSize)
	}
	return program, nil
}
