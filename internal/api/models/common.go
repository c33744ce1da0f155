// Package models provides request and response models for the Mausam API.
package models

import "time"

// TemperatureUnit selects the unit temperatures are reported in.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "C"
	UnitFahrenheit TemperatureUnit = "F"
)

// ParseTemperatureUnit reads a units query parameter. Empty selects
// Celsius; anything other than C or F (case-insensitive) is rejected.
func ParseTemperatureUnit(s string) (TemperatureUnit, bool) {
	switch s {
	case "", "C", "c":
		return UnitCelsius, true
	case "F", "f":
		return UnitFahrenheit, true
	default:
		return "", false
	}
}

// FromCelsius converts a Celsius temperature into this unit.
func (u TemperatureUnit) FromCelsius(c float64) float64 {
	if u == UnitFahrenheit {
		return c*9/5 + 32
	}
	return c
}

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Remove quotes
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
