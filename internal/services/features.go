package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/sirupsen/logrus"

	"github.com/parkcast/parkcast-go/internal/config"
	"github.com/parkcast/parkcast-go/internal/datastore"
	"github.com/parkcast/parkcast-go/internal/models"
)

// ExternalSnapshot is one consistent read of every collaborator, taken once
// per request and shared by all timeline steps. Batching the fetches here
// keeps round-trips independent of step count.
type ExternalSnapshot struct {
	Lot        *models.ParkingLot
	Events     []models.CampusEvent
	Historical []models.OccupancyReport
	Realtime   []models.OccupancyReport
	Weather    *models.WeatherObservation
	CrossLot   []models.LotOccupancy
	FetchedAt  time.Time
}

// FeatureExtractor builds the fixed-order feature vector for a (lot, time)
// pair. Extraction itself is a pure function of the snapshot; all I/O happens
// in Snapshot.
type FeatureExtractor struct {
	registry   datastore.LotRegistry
	events     datastore.EventSource
	historical datastore.HistoricalReportStore
	realtime   datastore.RealtimeReportStore
	weather    datastore.WeatherSource
	crossLot   datastore.CrossLotSnapshot
	calendar   *AcademicCalendar
	cfg        config.PredictionConfig
	logger     *logrus.Logger
}

// NewFeatureExtractor creates a feature extractor over the given collaborators.
// The weather source may be nil; neutral values are substituted.
func NewFeatureExtractor(
	registry datastore.LotRegistry,
	events datastore.EventSource,
	historical datastore.HistoricalReportStore,
	realtime datastore.RealtimeReportStore,
	weather datastore.WeatherSource,
	crossLot datastore.CrossLotSnapshot,
	cfg config.PredictionConfig,
	logger *logrus.Logger,
) *FeatureExtractor {
	return &FeatureExtractor{
		registry:   registry,
		events:     events,
		historical: historical,
		realtime:   realtime,
		weather:    weather,
		crossLot:   crossLot,
		calendar:   NewAcademicCalendar(),
		cfg:        cfg,
		logger:     logger,
	}
}

// Snapshot fetches every collaborator once, covering the whole [from, to)
// horizon. The registry lookup is the only fatal path: an unknown lot returns
// datastore.ErrLotNotFound. Every other collaborator failure is absorbed and
// its feature group falls back to documented defaults.
func (fe *FeatureExtractor) Snapshot(ctx context.Context, lotID string, from, to time.Time) (*ExternalSnapshot, error) {
	lot, err := fe.registry.Lookup(ctx, lotID)
	if err != nil {
		return nil, err
	}

	snap := &ExternalSnapshot{
		Lot:       lot,
		FetchedAt: time.Now(),
	}

	histFrom := from.AddDate(0, 0, -fe.cfg.HistoricalWindowDays)
	realtimeWindow := time.Duration(fe.cfg.RealtimeWindowMinutes) * time.Minute

	// The remaining collaborators are independent pure reads; issue them
	// concurrently to bound request latency.
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		events, err := fe.events.EventsBetween(ctx, dayStart(from), dayStart(to).AddDate(0, 0, 1))
		if err != nil {
			fe.logger.WithError(err).WithField("lot_id", lotID).Warn("Event source degraded, assuming no events")
			return
		}
		snap.Events = events
	}()

	go func() {
		defer wg.Done()
		reports, err := fe.historical.ReportsBetween(ctx, lot.ID, histFrom, from)
		if err != nil {
			fe.logger.WithError(err).WithField("lot_id", lotID).Warn("Historical store degraded, using neutral baseline")
			return
		}
		snap.Historical = reports
	}()

	go func() {
		defer wg.Done()
		reports, err := fe.realtime.RecentReports(ctx, lot.ID, realtimeWindow)
		if err != nil {
			fe.logger.WithError(err).WithField("lot_id", lotID).Warn("Realtime store degraded, ignoring crowd reports")
			return
		}
		snap.Realtime = reports
	}()

	go func() {
		defer wg.Done()
		if fe.weather == nil {
			return
		}
		obs, err := fe.weather.Forecast(ctx, from)
		if err != nil {
			fe.logger.WithError(err).Warn("Weather source degraded, using neutral weather")
			return
		}
		snap.Weather = obs
	}()

	go func() {
		defer wg.Done()
		entries, err := fe.crossLot.Snapshot(ctx)
		if err != nil {
			fe.logger.WithError(err).Warn("Cross-lot snapshot degraded, using lot occupancy as ambient signal")
			return
		}
		snap.CrossLot = entries
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Extract computes the named feature record for a target time against a
// snapshot. Deterministic: identical snapshot and time produce an identical
// record.
func (fe *FeatureExtractor) Extract(targetTime time.Time, snap *ExternalSnapshot) *models.FeatureRecord {
	rec := &models.FeatureRecord{
		LotID:      snap.Lot.ID,
		TargetTime: targetTime,
	}

	fe.extractTemporal(rec, targetTime)
	fe.extractAcademic(rec, targetTime)
	fe.extractEvents(rec, targetTime, snap.Events)
	fe.extractWeather(rec, snap.Weather)
	fe.extractHistorical(rec, targetTime, snap.Historical)
	fe.extractRealtime(rec, targetTime, snap)
	fe.extractLot(rec, snap.Lot)
	fe.extractCrossLot(rec, snap)

	return rec
}

func (fe *FeatureExtractor) extractTemporal(rec *models.FeatureRecord, t time.Time) {
	rec.Hour = t.Hour()
	rec.Minute = t.Minute()
	rec.DayOfMonth = t.Day()
	_, rec.WeekOfYear = t.ISOWeek()
	rec.Month = int(t.Month())
	rec.DayOfWeek = int(t.Weekday())
	rec.DayOfYear = t.YearDay()
	rec.IsWeekend = t.Weekday() == time.Saturday || t.Weekday() == time.Sunday

	// Cyclical encodings keep hour 23 and hour 0 numerically adjacent where a
	// raw integer would create a false discontinuity at midnight.
	hourAngle := 2 * math.Pi * float64(t.Hour()) / 24
	rec.HourSin = math.Sin(hourAngle)
	rec.HourCos = math.Cos(hourAngle)

	dayAngle := 2 * math.Pi * float64(t.Weekday()) / 7
	rec.DaySin = math.Sin(dayAngle)
	rec.DayCos = math.Cos(dayAngle)
}

func (fe *FeatureExtractor) extractAcademic(rec *models.FeatureRecord, t time.Time) {
	term := fe.calendar.TermFor(t)
	rec.IsClassDay = term.IsClassDay
	rec.IsFinalsWeek = term.IsFinalsWeek
	rec.IsFirstWeek = term.IsFirstWeek
	rec.IsSpringBreak = term.IsSpringBreak
	rec.IsSummerSession = term.IsSummerSession
	rec.DaysIntoSemester = term.DaysIntoSemester
}

func (fe *FeatureExtractor) extractEvents(rec *models.FeatureRecord, t time.Time, events []models.CampusEvent) {
	for _, ev := range events {
		if !sameDay(ev.StartsAt, t) {
			continue
		}
		rec.EventCount++
		switch ev.Type {
		case models.EventFootball:
			rec.HasFootball = true
		case models.EventBasketball:
			rec.HasBasketball = true
		case models.EventConcert:
			rec.HasConcert = true
		case models.EventGraduation:
			rec.HasGraduation = true
		}
	}
	rec.HasAnyEvent = rec.EventCount > 0

	// Impact is chosen by priority order, never summed; two overlapping events
	// must not double-count demand.
	switch {
	case rec.HasFootball:
		rec.EventImpact = ImpactFootball
	case rec.HasGraduation:
		rec.EventImpact = ImpactGraduation
	case rec.HasBasketball:
		rec.EventImpact = ImpactBasketball
	case rec.HasConcert:
		rec.EventImpact = ImpactConcert
	case rec.HasAnyEvent:
		rec.EventImpact = ImpactOther
	default:
		rec.EventImpact = ImpactNone
	}
}

func (fe *FeatureExtractor) extractWeather(rec *models.FeatureRecord, obs *models.WeatherObservation) {
	if obs == nil {
		rec.TemperatureF = DefaultTemperatureF
		rec.PrecipProb = DefaultPrecipProb
		rec.WindSpeedMph = DefaultWindSpeedMph
		rec.IsRaining = false
		rec.WeatherImpact = 0
		return
	}

	rec.TemperatureF = obs.TemperatureF
	rec.PrecipProb = obs.PrecipProbability
	rec.WindSpeedMph = obs.WindSpeedMph
	rec.IsRaining = obs.IsRaining

	// Bad weather pushes people into cars and garages; score the severity.
	impact := 0.0
	if obs.IsRaining {
		impact += 15
	}
	switch {
	case obs.PrecipProbability >= 0.5:
		impact += 10
	case obs.PrecipProbability >= 0.3:
		impact += 5
	}
	if obs.TemperatureF <= 32 || obs.TemperatureF >= 95 {
		impact += 10
	}
	if obs.WindSpeedMph >= 25 {
		impact += 5
	}
	rec.WeatherImpact = impact
}

// extractHistorical computes the same-time-of-week baseline: reports from the
// trailing window on the same weekday within an hour of the target time.
func (fe *FeatureExtractor) extractHistorical(rec *models.FeatureRecord, t time.Time, reports []models.OccupancyReport) {
	var samples []float64
	for _, rep := range reports {
		if rep.ReportedAt.Weekday() != t.Weekday() {
			continue
		}
		if minutesOfDayDistance(rep.ReportedAt, t) > 60 {
			continue
		}
		val, _ := rep.OccupancyPercent.Float64()
		samples = append(samples, val)
	}

	if len(samples) == 0 {
		rec.SameTimeAverage = DefaultHistoricalAverage
		rec.HistoricalVolatility = DefaultHistoricalVolatility
		rec.HistoricalTrend = 0
		rec.HasHistory = false
		return
	}

	rec.HasHistory = true
	rec.SameTimeAverage = mean(samples)
	rec.HistoricalVolatility = stddev(samples, rec.SameTimeAverage)
	rec.HistoricalTrend = smoothedTrend(samples)
}

// smoothedTrend smooths the chronological sample series and returns the drift
// between its ends, so one outlier week does not read as a trend.
func smoothedTrend(samples []float64) float64 {
	const period = 3
	if len(samples) < period+1 {
		return 0
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	smoothed := helper.ChanToSlice(sma.Compute(helper.SliceToChan(samples)))
	if len(smoothed) < 2 {
		return 0
	}
	return smoothed[len(smoothed)-1] - smoothed[0]
}

func (fe *FeatureExtractor) extractRealtime(rec *models.FeatureRecord, targetTime time.Time, snap *ExternalSnapshot) {
	reports := snap.Realtime
	rec.ReportCount = len(reports)
	if len(reports) == 0 {
		rec.ReportAverage = models.MissingValue
		rec.MinutesSinceReport = models.MissingValue
		rec.LatestReport = models.MissingValue
		rec.RealtimeConfidence = 0
		return
	}

	sum := 0.0
	for _, rep := range reports {
		val, _ := rep.OccupancyPercent.Float64()
		sum += val
	}
	rec.ReportAverage = sum / float64(len(reports))

	latest, _ := reports[0].OccupancyPercent.Float64()
	rec.LatestReport = latest
	// Recency is measured against the step's target time so the crowd-report
	// signal ages out over the forecast horizon.
	rec.MinutesSinceReport = targetTime.Sub(reports[0].ReportedAt).Minutes()
	if rec.MinutesSinceReport < 0 {
		rec.MinutesSinceReport = 0
	}

	// Rewards freshness and volume, saturating at five reports.
	freshness := math.Max(0, 1-rec.MinutesSinceReport/realtimeFreshnessMinutes)
	volume := math.Min(1, float64(rec.ReportCount)/realtimeSaturationCount)
	rec.RealtimeConfidence = clamp(0.5*freshness+0.5*volume, 0, 1)
}

func (fe *FeatureExtractor) extractLot(rec *models.FeatureRecord, lot *models.ParkingLot) {
	rec.Capacity = lot.Capacity
	rec.OccupancyFraction, _ = lot.OccupancyFraction.Float64()
	rec.IsCommuter = lot.Category == models.CategoryCommuter
	rec.IsResidence = lot.Category == models.CategoryResidence
	rec.IsGarage = lot.Category == models.CategoryGarage
}

func (fe *FeatureExtractor) extractCrossLot(rec *models.FeatureRecord, snap *ExternalSnapshot) {
	if len(snap.CrossLot) == 0 {
		// Fall back to this lot's own occupancy as the ambient signal.
		rec.AreaAverageOccupancy = rec.OccupancyFraction * 100
		rec.CampusAverageOccupancy = rec.OccupancyFraction * 100
		return
	}

	var areaSum, campusSum float64
	var areaCount int
	for _, entry := range snap.CrossLot {
		frac, _ := entry.OccupancyFraction.Float64()
		campusSum += frac * 100
		if entry.Area == snap.Lot.Area {
			areaSum += frac * 100
			areaCount++
		}
	}
	rec.CampusAverageOccupancy = campusSum / float64(len(snap.CrossLot))
	if areaCount > 0 {
		rec.AreaAverageOccupancy = areaSum / float64(areaCount)
	} else {
		rec.AreaAverageOccupancy = rec.CampusAverageOccupancy
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// minutesOfDayDistance is the wrap-around distance in minutes between two
// times of day, ignoring the date.
func minutesOfDayDistance(a, b time.Time) float64 {
	am := float64(a.Hour()*60 + a.Minute())
	bm := float64(b.Hour()*60 + b.Minute())
	d := math.Abs(am - bm)
	return math.Min(d, 1440-d)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stddev(vals []float64, mean float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range vals {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
