package services

// Default substitutions used when a collaborator is absent, empty, or failing.
// Centralized so every fallback the engine can silently apply is auditable in
// one place. A degraded dependency degrades prediction quality, never
// availability.
const (
	// DefaultHistoricalAverage is the neutral midpoint used when a lot has no
	// history, so new lots degrade gracefully instead of failing.
	DefaultHistoricalAverage = 50.0
	// DefaultHistoricalVolatility assumes a flat series when history is absent.
	DefaultHistoricalVolatility = 0.0

	// Neutral weather: mild, dry, calm.
	DefaultTemperatureF = 65.0
	DefaultPrecipProb   = 0.0
	DefaultWindSpeedMph = 5.0

	// Event impact scores by priority order. Concurrent events never sum; only
	// the highest-impact one counts.
	ImpactFootball   = 90.0
	ImpactGraduation = 85.0
	ImpactBasketball = 70.0
	ImpactConcert    = 60.0
	ImpactOther      = 40.0
	ImpactNone       = 0.0

	// Real-time report confidence saturates at this many reports.
	realtimeSaturationCount = 5
	// Reports older than this many minutes contribute no freshness.
	realtimeFreshnessMinutes = 30.0
)
