package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration that parses from and renders to the ISO-8601
// duration syntax used in config files ("PT30S", "PT5M", "P1DT12H").
type Duration time.Duration

// ParseISODuration parses an ISO-8601 duration. Only the day/time designators
// are supported (weeks via nW; years and months are rejected because their
// length is calendar-dependent). Fractional values are allowed, as in
// "PT0.5S".
func ParseISODuration(raw string) (Duration, error) {
	s := strings.TrimSpace(raw)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) < 2 || (s[0] != 'P' && s[0] != 'p') {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", raw)
	}
	s = s[1:]

	datePart := s
	timePart := ""
	if i := strings.IndexAny(s, "Tt"); i >= 0 {
		datePart, timePart = s[:i], s[i+1:]
		if timePart == "" {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q", raw)
		}
	}

	var total time.Duration
	consume := func(part string, units map[byte]time.Duration, order string) error {
		rest := part
		seen := -1
		for rest != "" {
			i := 0
			for i < len(rest) && (rest[i] >= '0' && rest[i] <= '9' || rest[i] == '.') {
				i++
			}
			if i == 0 || i == len(rest) {
				return fmt.Errorf("invalid ISO-8601 duration %q", raw)
			}
			unit := rest[i] &^ 0x20 // uppercase
			u, ok := units[unit]
			if !ok {
				return fmt.Errorf("invalid ISO-8601 duration %q: unit %q", raw, string(rest[i]))
			}
			pos := strings.IndexByte(order, unit)
			if pos <= seen {
				return fmt.Errorf("invalid ISO-8601 duration %q: component order", raw)
			}
			seen = pos
			v, err := strconv.ParseFloat(rest[:i], 64)
			if err != nil {
				return fmt.Errorf("invalid ISO-8601 duration %q: %w", raw, err)
			}
			total += time.Duration(v * float64(u))
			rest = rest[i+1:]
		}
		return nil
	}

	dateUnits := map[byte]time.Duration{'W': 7 * 24 * time.Hour, 'D': 24 * time.Hour}
	timeUnits := map[byte]time.Duration{'H': time.Hour, 'M': time.Minute, 'S': time.Second}
	if err := consume(datePart, dateUnits, "WD"); err != nil {
		return 0, err
	}
	if err := consume(timePart, timeUnits, "HMS"); err != nil {
		return 0, err
	}
	if neg {
		total = -total
	}
	return Duration(total), nil
}

// String renders the duration back in ISO-8601 form. Zero renders as "PT0S".
func (d Duration) String() string {
	v := time.Duration(d)
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	b.WriteByte('P')
	if days := v / (24 * time.Hour); days > 0 {
		fmt.Fprintf(&b, "%dD", days)
		v -= days * 24 * time.Hour
	}
	if v == 0 {
		if b.String() == "P" || b.String() == "-P" {
			b.WriteString("T0S")
		}
		return b.String()
	}
	b.WriteByte('T')
	if h := v / time.Hour; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		v -= h * time.Hour
	}
	if m := v / time.Minute; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		v -= m * time.Minute
	}
	if v > 0 {
		sec := float64(v) / float64(time.Second)
		fmt.Fprintf(&b, "%sS", strconv.FormatFloat(sec, 'f', -1, 64))
	}
	return b.String()
}

// Std returns the value as a plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
