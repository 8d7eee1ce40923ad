// Package duration parses and formats the flexible countdown durations
// storytellers type in chat: bare seconds ("90"), colon formats ("4:30",
// "1:30:00") and unit segments ("5m", "1h30m", "2d").
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Max caps every countdown at 24 hours.
const Max = 24 * time.Hour

// ErrInvalid is returned for strings that cannot be read as a duration.
var ErrInvalid = errors.New("invalid duration")

var segmentRe = regexp.MustCompile(`^(\d+)\s*(d|h|m|s)?`)

// Parse converts a duration string into a time.Duration.
func Parse(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalid
	}

	if strings.Contains(s, ":") {
		return parseColon(s)
	}

	var total time.Duration
	rest := s
	for rest != "" {
		m := segmentRe.FindStringSubmatch(rest)
		if m == nil {
			return 0, ErrInvalid
		}
		val, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, ErrInvalid
		}
		switch m[2] {
		case "d":
			total += time.Duration(val) * 24 * time.Hour
		case "h":
			total += time.Duration(val) * time.Hour
		case "m":
			total += time.Duration(val) * time.Minute
		case "s", "":
			// unitless numbers are seconds
			total += time.Duration(val) * time.Second
		}
		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	if total <= 0 {
		return 0, ErrInvalid
	}
	return total, nil
}

func parseColon(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, ErrInvalid
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 2:
		return time.Duration(nums[0])*time.Minute + time.Duration(nums[1])*time.Second, nil
	case 3:
		return time.Duration(nums[0])*time.Hour + time.Duration(nums[1])*time.Minute + time.Duration(nums[2])*time.Second, nil
	default:
		return 0, ErrInvalid
	}
}

// Humanize renders a duration like "1h 30m" or "45s".
func Humanize(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}

	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	minutes := secs / 60
	secs %= 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// FormatEndTime returns Discord timestamp markup for an absolute time,
// e.g. <t:1615555200:T>.
func FormatEndTime(t time.Time) string {
	return fmt.Sprintf("<t:%d:T>", t.Unix())
}
