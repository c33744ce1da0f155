package weather

// Condition ID families, per the OpenWeatherMap condition code table.
// 2xx thunderstorm, 3xx drizzle, 5xx rain; 531 is the last rain code.
const (
	rainFamilyMin = 200
	rainFamilyMax = 531
)

// RainExpected reports whether a condition ID falls in the thunderstorm,
// drizzle, or rain families.
func RainExpected(conditionID int) bool {
	return conditionID >= rainFamilyMin && conditionID <= rainFamilyMax
}

// HeatIndex returns the apparent temperature in Celsius for the given air
// temperature (Celsius) and relative humidity (percent), using the NOAA
// Rothfusz regression. The regression is defined in Fahrenheit, so the
// input is converted and the result converted back.
func HeatIndex(tempC, humidity float64) float64 {
	t := tempC*9/5 + 32
	r := humidity

	const (
		c1 = -42.379
		c2 = 2.04901523
		c3 = 10.14333127
		c4 = -0.22475541
		c5 = -6.83783e-3
		c6 = -5.481717e-2
		c7 = 1.22874e-3
		c8 = 8.5282e-4
		c9 = -1.99e-6
	)

	hi := c1 +
		c2*t +
		c3*r +
		c4*t*r +
		c5*t*t +
		c6*r*r +
		c7*t*t*r +
		c8*t*r*r +
		c9*t*t*r*r

	return (hi - 32) * 5 / 9
}

// HeatIndexLabel names the NOAA risk band for a heat index in Celsius.
func HeatIndexLabel(heatIndexC float64) string {
	switch {
	case heatIndexC < 27:
		return "Comfortable"
	case heatIndexC < 32:
		return "Caution"
	case heatIndexC < 41:
		return "Extreme Caution"
	case heatIndexC < 54:
		return "Danger"
	default:
		return "Extreme Danger"
	}
}

// AdviceStatus grades a lifestyle recommendation.
type AdviceStatus string

const (
	AdviceGood    AdviceStatus = "good"
	AdviceCaution AdviceStatus = "caution"
	AdviceBad     AdviceStatus = "bad"
)

// Advice is one lifestyle recommendation with an English and a Nepali
// message.
type Advice struct {
	Status    AdviceStatus `json:"status"`
	Message   string       `json:"message"`
	MessageNe string       `json:"messageNe,omitempty"`
}

// LaundryAdvice grades how well laundry will dry under the given
// conditions. Rain trumps humidity, humidity trumps cloud cover.
func LaundryAdvice(conditionID int, humidity, cloudCover float64) Advice {
	if RainExpected(conditionID) {
		return Advice{
			Status:    AdviceBad,
			Message:   "Don't do laundry. Rain expected.",
			MessageNe: "कपडा नधुनुहोस्। पानी पर्छ।",
		}
	}

	if humidity > 85 {
		return Advice{
			Status:    AdviceCaution,
			Message:   "Hard to dry. Humid air.",
			MessageNe: "सुक्न गाह्रो। हावा चिसो छ।",
		}
	}

	if cloudCover > 80 {
		return Advice{
			Status:    AdviceCaution,
			Message:   "Cloudy. Slow drying.",
			MessageNe: "बादल छ। सुक्न ढिलो हुन्छ।",
		}
	}

	return Advice{
		Status:    AdviceGood,
		Message:   "Great day for laundry!",
		MessageNe: "कपडा धुन राम्रो दिन!",
	}
}

// UmbrellaAdvice recommends carrying an umbrella for rain or strong sun.
// Returns nil when no umbrella is needed.
func UmbrellaAdvice(conditionID int, tempC float64) *Advice {
	if RainExpected(conditionID) {
		return &Advice{
			Status:    AdviceBad,
			Message:   "Bring an umbrella. Rain expected.",
			MessageNe: "छाता लिनुहोस्। पानी पर्छ।",
		}
	}

	if tempC > 32 {
		return &Advice{
			Status:    AdviceCaution,
			Message:   "Hot! Use umbrella for sun.",
			MessageNe: "गर्मी छ! घामको लागि छाता लिनुहोस्।",
		}
	}

	return nil
}
