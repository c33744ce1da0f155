// Package forecast turns the provider's coarse 3-hour sample series into
// the hour-by-hour trend and per-day summaries served by the API.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/mausam/mausam/internal/weather"
)

const (
	// MaxHourlyPoints caps the hourly trend length.
	MaxHourlyPoints = 12

	// MaxDailySummaries caps the daily summary length.
	MaxDailySummaries = 5

	// rawWindow limits how many samples feed the hourly interpolation:
	// the synthesized now-sample plus roughly the next 24 hours.
	rawWindow = 9
)

// HourlyPoint is one interpolated point of the hourly temperature trend.
type HourlyPoint struct {
	TimeLabel   string    `json:"timeLabel"`
	Time        time.Time `json:"time"`
	Temperature int       `json:"temperature"`
}

// DailySummary aggregates one local calendar day of forecast samples.
type DailySummary struct {
	DateLabel         string `json:"dateLabel"`
	MinTemp           int    `json:"minTemp"`
	MaxTemp           int    `json:"maxTemp"`
	DominantCondition string `json:"dominantCondition"`
}

// BuildHourlyTrend produces an hour-by-hour temperature trend from a 3-hour
// sample series. A leading sample is synthesized from the current snapshot
// so the trend starts at the present moment rather than the nearest 3-hour
// boundary. Temperatures at whole-hour boundaries between samples are filled
// by linear interpolation. The result is ordered, starts at the current hour
// and holds at most MaxHourlyPoints points.
func BuildHourlyTrend(series []weather.Sample, current *weather.Snapshot, now time.Time) []HourlyPoint {
	samples := series
	if current != nil {
		lead := weather.Sample{
			Time:          now,
			Temperature:   current.Temperature,
			ConditionID:   current.ConditionID,
			ConditionMain: current.ConditionMain,
		}
		samples = append([]weather.Sample{lead}, series...)
	}
	if len(samples) > rawWindow {
		samples = samples[:rawWindow]
	}
	if len(samples) < 2 {
		return nil
	}

	currentHourStart := now.Truncate(time.Hour)
	tolerance := currentHourStart.Add(-time.Hour)

	var points []HourlyPoint
	seen := make(map[string]struct{})

	for i := 0; i < len(samples)-1; i++ {
		a, b := samples[i], samples[i+1]

		duration := b.Time.Sub(a.Time)
		if duration <= 0 {
			continue
		}

		steps := int(duration / time.Hour)
		if steps < 1 {
			steps = 1
		}

		for j := 0; j < steps; j++ {
			fraction := float64(j) / float64(steps)
			at := a.Time.Add(time.Duration(fraction * float64(duration)))
			if at.Before(tolerance) {
				continue
			}

			label := at.Format("3 PM")
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}

			temp := a.Temperature + (b.Temperature-a.Temperature)*fraction
			points = append(points, HourlyPoint{
				TimeLabel:   label,
				Time:        at,
				Temperature: int(math.Round(temp)),
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	trimmed := points[:0]
	for _, p := range points {
		if !p.Time.Before(currentHourStart) {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) > MaxHourlyPoints {
		trimmed = trimmed[:MaxHourlyPoints]
	}

	return trimmed
}

// BuildDailySummary buckets forecast samples by local calendar day and
// reduces each bucket to rounded min/max temperatures and its dominant
// condition. The dominant condition is the most frequent condition label
// in the bucket; ties go to the condition that appeared first. At most
// MaxDailySummaries days are returned, chronologically.
func BuildDailySummary(series []weather.Sample) []DailySummary {
	type bucket struct {
		label      string
		first      time.Time
		temps      []float64
		conditions []string
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, sample := range series {
		if sample.ConditionMain == "" {
			continue
		}

		label := sample.Time.Format("Mon, Jan 2")
		day, ok := buckets[label]
		if !ok {
			day = &bucket{label: label, first: sample.Time}
			buckets[label] = day
			order = append(order, label)
		}
		day.temps = append(day.temps, sample.Temperature)
		day.conditions = append(day.conditions, sample.ConditionMain)
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, label := range order {
		day := buckets[label]

		minTemp, maxTemp := day.temps[0], day.temps[0]
		for _, t := range day.temps[1:] {
			minTemp = math.Min(minTemp, t)
			maxTemp = math.Max(maxTemp, t)
		}

		summaries = append(summaries, DailySummary{
			DateLabel:         day.label,
			MinTemp:           int(math.Round(minTemp)),
			MaxTemp:           int(math.Round(maxTemp)),
			DominantCondition: dominantCondition(day.conditions),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return buckets[summaries[i].DateLabel].first.Before(buckets[summaries[j].DateLabel].first)
	})

	if len(summaries) > MaxDailySummaries {
		summaries = summaries[:MaxDailySummaries]
	}

	return summaries
}

// dominantCondition picks the most frequent label; ties go to the label
// whose first occurrence comes earliest.
func dominantCondition(conditions []string) string {
	counts := make(map[string]int)
	firstIndex := make(map[string]int)

	for i, c := range conditions {
		if _, ok := firstIndex[c]; !ok {
			firstIndex[c] = i
		}
		counts[c]++
	}

	best := ""
	for _, c := range conditions {
		if best == "" {
			best = c
			continue
		}
		if counts[c] > counts[best] {
			best = c
		} else if counts[c] == counts[best] && firstIndex[c] < firstIndex[best] {
			best = c
		}
	}

	return best
}
