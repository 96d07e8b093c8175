package food

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pricePattern accepts plain decimals with at most two fraction digits, e.g. "19.90" or "19,9".
var pricePattern = regexp.MustCompile(`^(\d{1,9})(?:[.,](\d{1,2}))?$`)

// Food is a plate on the menu as served by the /foods resource.
type Food struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Draft holds user-entered fields. Nil fields were not edited.
type Draft struct {
	Name        *string
	Image       *string
	Price       *string
	Description *string
	Available   *bool
}

// NewFood builds the create payload. Availability is always true for new plates.
func (d Draft) NewFood() Food {
	return Food{
		Name:        deref(d.Name),
		Image:       deref(d.Image),
		Price:       deref(d.Price),
		Description: deref(d.Description),
		Available:   true,
	}
}

// Apply merges the draft over prev; edited fields win, the rest keep prev's values.
func (d Draft) Apply(prev Food) Food {
	out := prev
	if d.Name != nil {
		out.Name = *d.Name
	}
	if d.Image != nil {
		out.Image = *d.Image
	}
	if d.Price != nil {
		out.Price = *d.Price
	}
	if d.Description != nil {
		out.Description = *d.Description
	}
	if d.Available != nil {
		out.Available = *d.Available
	}
	return out
}

// Validate checks the fields the backend requires.
func (f Food) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := ParsePrice(f.Price); err != nil {
		return err
	}
	return nil
}

// ParsePrice parses a text price such as "19.90" or "19,90" into cents.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is required")
	}
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	units, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	var frac int64
	if m[2] != "" {
		frac, _ = strconv.ParseInt((m[2] + "0")[:2], 10, 64)
	}
	return units*100 + frac, nil
}

// FormatPrice renders a price with the currency symbol, falling back to the raw text.
func FormatPrice(symbol, price string) string {
	cents, err := ParsePrice(price)
	if err != nil {
		return price
	}
	return fmt.Sprintf("%s %d.%02d", symbol, cents/100, cents%100)
}

// String returns a pointer to s, for building drafts.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building drafts.
func Bool(b bool) *bool { return &b }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
