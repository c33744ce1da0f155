// Package worker provides background cache warming for Mausam.
package worker

import (
	"strings"
	"time"

	"github.com/mausam/mausam/internal/location"
)

// WarmTarget is one place whose caches the worker keeps warm.
type WarmTarget struct {
	// Query is the free-text string users are most likely to type for
	// this place, used to warm the suggestion cache.
	Query string

	// Location pins the canonical coordinates for the weather warm.
	Location location.Location

	// Priority determines warm order (lower = higher priority).
	Priority int
}

// WarmConfig holds configuration for the cache warm job.
type WarmConfig struct {
	// Targets are the places to warm. If empty, uses DefaultWarmTargets.
	Targets []WarmTarget

	// Concurrency is the number of concurrent warm operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for warming a single target.
	// Default: 30 seconds
	Timeout time.Duration

	// WarmSuggestions enables suggestion cache warming.
	// Default: true
	WarmSuggestions bool

	// WarmWeather enables weather snapshot warming.
	// Default: true
	WarmWeather bool
}

// DefaultWarmConfig returns the default warm configuration.
func DefaultWarmConfig() WarmConfig {
	return WarmConfig{
		Targets:         DefaultWarmTargets(),
		Concurrency:     3,
		Timeout:         30 * time.Second,
		WarmSuggestions: true,
		WarmWeather:     true,
	}
}

// DefaultWarmTargets returns the default warm list: the most-searched
// Nepali cities plus the trekking hubs whose weather changes fastest.
func DefaultWarmTargets() []WarmTarget {
	return []WarmTarget{
		{
			Query:    "Kathmandu",
			Priority: 1,
			Location: location.Location{Display: "Kathmandu, Bagmati, Nepal", Lat: 27.701690, Lng: 85.320600},
		},
		{
			Query:    "Pokhara",
			Priority: 1,
			Location: location.Location{Display: "Pokhara, Gandaki, Nepal", Lat: 28.266890, Lng: 83.968510},
		},
		{
			Query:    "Lalitpur",
			Priority: 1,
			Location: location.Location{Display: "Lalitpur (Patan), Bagmati, Nepal", Lat: 27.668820, Lng: 85.316580},
		},
		{
			Query:    "Bhaktapur",
			Priority: 1,
			Location: location.Location{Display: "Bhaktapur, Bagmati, Nepal", Lat: 27.671520, Lng: 85.428130},
		},
		{
			Query:    "Biratnagar",
			Priority: 2,
			Location: location.Location{Display: "Biratnagar, Koshi, Nepal", Lat: 26.455050, Lng: 87.270070},
		},
		{
			Query:    "Bharatpur",
			Priority: 2,
			Location: location.Location{Display: "Bharatpur, Chitwan, Nepal", Lat: 27.676940, Lng: 84.431760},
		},
		{
			Query:    "Butwal",
			Priority: 2,
			Location: location.Location{Display: "Butwal, Lumbini, Nepal", Lat: 27.700580, Lng: 83.448290},
		},
		{
			Query:    "Nepalgunj",
			Priority: 2,
			Location: location.Location{Display: "Nepalgunj, Lumbini, Nepal", Lat: 28.050000, Lng: 81.616670},
		},
		{
			Query:    "Namche Bazaar",
			Priority: 3,
			Location: location.Location{Display: "Namche Bazaar, Koshi, Nepal", Lat: 27.806350, Lng: 86.714170},
		},
		{
			Query:    "Lukla",
			Priority: 3,
			Location: location.Location{Display: "Lukla, Koshi, Nepal", Lat: 27.686880, Lng: 86.728330},
		},
		{
			Query:    "Jomsom",
			Priority: 3,
			Location: location.Location{Display: "Jomsom, Gandaki, Nepal", Lat: 28.781670, Lng: 83.731110},
		},
		{
			Query:    "Lumbini",
			Priority: 3,
			Location: location.Location{Display: "Lumbini, Lumbini, Nepal", Lat: 27.483330, Lng: 83.276390},
		},
	}
}

// TargetsFor filters the default warm list down to the named places.
// Names match case-insensitively against the target query or any prefix
// of its display string. Unknown names are skipped; an empty name list
// returns the full default set.
func TargetsFor(names []string) []WarmTarget {
	defaults := DefaultWarmTargets()
	if len(names) == 0 {
		return defaults
	}

	var targets []WarmTarget
	for _, name := range names {
		want := strings.ToLower(strings.TrimSpace(name))
		if want == "" {
			continue
		}
		for _, t := range defaults {
			if strings.ToLower(t.Query) == want ||
				strings.HasPrefix(strings.ToLower(t.Location.Display), want) {
				targets = append(targets, t)
				break
			}
		}
	}
	return targets
}

// AllTargets returns the targets sorted by priority, stable within a
// priority band.
func (c WarmConfig) AllTargets() []WarmTarget {
	targets := make([]WarmTarget, len(c.Targets))
	copy(targets, c.Targets)

	// Insertion sort keeps bundled order within equal priorities.
	for i := 1; i < len(targets); i++ {
		for j := i; j > 0 && targets[j].Priority < targets[j-1].Priority; j-- {
			targets[j], targets[j-1] = targets[j-1], targets[j]
		}
	}
	return targets
}

// TotalTargets returns the number of places to warm.
func (c WarmConfig) TotalTargets() int {
	return len(c.Targets)
}
