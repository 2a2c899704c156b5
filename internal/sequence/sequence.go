// Package sequence derives invoice numbers of the form PREFIX + zero-padded
// counter (INV001, INV002, ...).
package sequence

import (
	"fmt"
	"strconv"
	"strings"

	"gstbill/internal/domain"
)

const (
	DefaultPrefix = "INV"
	DefaultWidth  = 3
)

// Strategy selects how the previous number is found.
type Strategy string

const (
	// StrategyMax takes the highest numeric suffix across all existing numbers.
	StrategyMax Strategy = "max"
	// StrategyLast takes the last number in insertion order. It assumes
	// insertion order equals numeric order and breaks on gaps or manual edits.
	StrategyLast Strategy = "last"
)

// ParseStrategy maps a config value to a Strategy, defaulting to StrategyMax.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyMax:
		return StrategyMax, nil
	case StrategyLast:
		return StrategyLast, nil
	default:
		return "", fmt.Errorf("unknown sequence strategy %q", s)
	}
}

// Sequencer formats and parses invoice numbers.
type Sequencer struct {
	Prefix   string
	Width    int
	Strategy Strategy
}

// New returns a Sequencer with the default prefix and width.
func New(strategy Strategy) *Sequencer {
	return &Sequencer{Prefix: DefaultPrefix, Width: DefaultWidth, Strategy: strategy}
}

// First returns the number issued when no invoice exists yet.
func (s *Sequencer) First() string {
	return s.Format(1)
}

// Format renders n with the prefix, zero-padded to Width digits. Larger
// values keep all their digits.
func (s *Sequencer) Format(n int) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}

// Parse extracts the numeric suffix of number.
func (s *Sequencer) Parse(number string) (int, bool) {
	if !strings.HasPrefix(number, s.Prefix) {
		return 0, false
	}
	digits := number[len(s.Prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Last returns the counter value the next number must exceed. Zero means
// no usable previous number exists.
func (s *Sequencer) Last(existing []string) (int, error) {
	if len(existing) == 0 {
		return 0, nil
	}
	if s.Strategy == StrategyLast {
		last := existing[len(existing)-1]
		n, ok := s.Parse(last)
		if !ok {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidInvoiceNumber, last)
		}
		return n, nil
	}

	highest := 0
	for _, num := range existing {
		if n, ok := s.Parse(num); ok && n > highest {
			highest = n
		}
	}
	return highest, nil
}

// Next returns the number following existing, which is ordered by insertion.
func (s *Sequencer) Next(existing []string) (string, error) {
	last, err := s.Last(existing)
	if err != nil {
		return "", err
	}
	return s.Format(last + 1), nil
}
