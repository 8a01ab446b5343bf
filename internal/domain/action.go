package domain

// ActionKind enumerates the reward-bearing user operations.
type ActionKind string

const (
	ActionAirQualityCheck   ActionKind = "air_quality_check"
	ActionForecastCheck     ActionKind = "forecast_check"
	ActionCarbonCalculation ActionKind = "carbon_calculation"
)

// ActionKinds lists every recognized kind in a fixed order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionAirQualityCheck, ActionForecastCheck, ActionCarbonCalculation}
}

// Valid reports whether k is one of the recognized kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionAirQualityCheck, ActionForecastCheck, ActionCarbonCalculation:
		return true
	}
	return false
}

// Reward returns the points granted for one allowed use of the kind.
func (k ActionKind) Reward() int {
	switch k {
	case ActionAirQualityCheck:
		return 10
	case ActionForecastCheck:
		return 5
	case ActionCarbonCalculation:
		return 15
	}
	return 0
}

// DefaultDailyLimit returns the fallback per-day ceiling used when the
// user record does not carry a server-supplied limit for the kind.
func (k ActionKind) DefaultDailyLimit() int {
	switch k {
	case ActionAirQualityCheck:
		return 5
	case ActionForecastCheck:
		return 3
	case ActionCarbonCalculation:
		return 10
	}
	return 0
}
