package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"

	"github.com/entropyseed/seedseal/internal/models"
)

// parseCoordinates reads an ordered seed from the CLI form
// "x1,y1;x2,y2;...". Order is preserved; it is part of the key.
func parseCoordinates(s string) (models.CoordinateSeed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty coordinate list")
	}

	var seed models.CoordinateSeed
	for i, pair := range strings.Split(s, ";") {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("pair %d: want \"x,y\", got %q", i+1, pair)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("pair %d: parse x: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("pair %d: parse y: %w", i+1, err)
		}

		seed = append(seed, models.Coordinate{X: x, Y: y})
	}

	return seed, nil
}

// promptSecret reads a line without echo and NFC-normalizes it so a
// phrase typed on different terminals round-trips identically.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return norm.NFC.String(string(data)), nil
}
