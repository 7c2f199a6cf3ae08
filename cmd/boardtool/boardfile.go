package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stuarthighley/board"
)

// readBoard loads a YAML board file. An empty path yields an empty board.
func readBoard(path string) (*board.Board, error) {
	if path == "" {
		return &board.Board{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board %s: %w", path, err)
	}
	var b board.Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", path, err)
	}
	return &b, nil
}

func writeBoard(path string, b *board.Board) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write board %s: %w", path, err)
	}
	return nil
}
