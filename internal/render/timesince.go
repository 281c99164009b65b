package render

import (
	"fmt"
	"time"
)

// Unités du plus grand au plus petit ; la première qui donne au moins 1 gagne
var intervals = []struct {
	unit    string
	seconds int64
}{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

// TimeSince formate l'ancienneté d'une date : "3 hours ago", "1 minute ago",
// ou "just now" sous la minute.
func TimeSince(created time.Time) string {
	return timeSinceAt(created, time.Now())
}

func timeSinceAt(created, now time.Time) string {
	seconds := int64(now.Sub(created).Seconds())

	for _, iv := range intervals {
		count := seconds / iv.seconds
		if count >= 1 {
			plural := ""
			if count > 1 {
				plural = "s"
			}
			return fmt.Sprintf("%d %s%s ago", count, iv.unit, plural)
		}
	}

	return "just now"
}
