package jikan

import (
	"fmt"
	"strings"
	"time"
)

// Season is one of the four broadcast seasons.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// Seasons lists the seasons in calendar order.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// ParseSeason accepts a season name in any case. "autumn" is an alias for fall.
func ParseSeason(s string) (Season, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "winter":
		return Winter, nil
	case "spring":
		return Spring, nil
	case "summer":
		return Summer, nil
	case "fall", "autumn":
		return Fall, nil
	default:
		return "", fmt.Errorf("unknown season %q", s)
	}
}

// CurrentSeason returns the year and season containing t.
func CurrentSeason(t time.Time) (int, Season) {
	switch t.Month() {
	case time.March, time.April, time.May:
		return t.Year(), Spring
	case time.June, time.July, time.August:
		return t.Year(), Summer
	case time.September, time.October, time.November:
		return t.Year(), Fall
	default:
		return t.Year(), Winter
	}
}
