// Package humanize renders durations as English phrases such as
// "2 days, 1 hour, and 1 minute".
package humanize

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	secondsPerHour   = secondsPerMinute * minutesPerHour
	hoursPerDay      = 24
	secondsPerDay    = secondsPerHour * hoursPerDay
)

// Duration renders d as a phrase.
//
// Only the coarsest units are kept: with days present the phrase ends at
// minutes, with hours present it ends at minutes, with minutes present it ends
// at whole seconds. Sub-second precision is shown only below one minute, as
// four fractional digits.
func Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	total := int64(d / time.Second)
	days, rest := total/secondsPerDay, total%secondsPerDay
	hours, rest := rest/secondsPerHour, rest%secondsPerHour
	minutes, seconds := rest/secondsPerMinute, rest%secondsPerMinute
	frac := int64(d%time.Second) / int64(100*time.Microsecond)

	switch {
	case days > 0:
		return list(unit(days, "day"), unit(hours, "hour"), unit(minutes, "minute"))
	case hours > 0:
		return list(unit(hours, "hour"), unit(minutes, "minute"))
	case minutes > 0:
		return list(unit(minutes, "minute"), unit(seconds, "second"))
	case seconds == 0 && frac == 0:
		return "0 seconds"
	case seconds == 1 && frac == 0:
		return "1 second"
	default:
		return fmt.Sprintf("%d.%04d seconds", seconds, frac)
	}
}

// unit returns "1 <name>", "<n> <name>s", or "" for zero.
func unit(n int64, name string) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 " + name
	default:
		return fmt.Sprintf("%d %ss", n, name)
	}
}

// list joins the non-empty parts: "a", "a and b", "a, b, and c".
func list(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	case 2:
		return kept[0] + " and " + kept[1]
	default:
		return kept[0] + ", " + kept[1] + ", and " + kept[2]
	}
}
