package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseClock reads h:mm:ss followed by a fraction after sep. Fractions of one,
// two or three digits are tenths, centiseconds or milliseconds.
func parseClock(value string, sep string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	clock, frac, ok := strings.Cut(value, sep)
	if !ok {
		return 0, fmt.Errorf("timestamp %q: missing fraction", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("timestamp %q: invalid h:m:s", value)
	}
	var parts [3]int
	for i, field := range hms {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("timestamp %q: invalid field %q", value, field)
		}
		parts[i] = n
	}
	frac = strings.TrimSpace(frac)
	if len(frac) > 3 {
		frac = frac[:3]
	}
	ms, err := strconv.Atoi(frac)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("timestamp %q: invalid fraction", value)
	}
	switch len(frac) {
	case 1:
		ms *= 100
	case 2:
		ms *= 10
	}
	return time.Duration(parts[0])*time.Hour +
		time.Duration(parts[1])*time.Minute +
		time.Duration(parts[2])*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// formatSRTTime renders HH:MM:SS,mmm.
func formatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3_600_000, ms/60_000%60, ms/1000%60, ms%1000)
}

// formatASSTime renders H:MM:SS.cc, rounding to the nearest centisecond.
func formatASSTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := (d.Milliseconds() + 5) / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d", cs/360_000, cs/6000%60, cs/100%60, cs%100)
}
