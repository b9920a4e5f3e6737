// Package insight derives plain-text investor insights from a registration ledger.
package insight

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// Fixed insight texts.
const (
	NoDataText        = "No data available for analysis."
	SteadyText        = "Growth is steady with no standout outliers in the selected view."
	FailureText       = "Could not generate insights for the current selection."
	ConcentratedText  = "Market looks concentrated in the latest year (high concentration index)."
	CompetitiveText   = "Market looks relatively competitive in the latest year (low concentration index)."
	VolatileText      = "Quarterly growth is volatile (>20% avg absolute change). Consider risk in short-term projections."
	StableText        = "Quarterly growth is relatively stable (<20% avg absolute change)."
	concentrationCut  = 0.20
	volatilityCut     = 20.0
	minVolatilityQtrs = 4
	topGrowers        = 3
)

// Level is the grouping used for per-entity growth and concentration insights.
type Level int

const (
	// LevelManufacturer groups by manufacturer.
	LevelManufacturer Level = iota
	// LevelCategory groups by vehicle category.
	LevelCategory
	// LevelNone skips level-based insights.
	LevelNone
)

// ParseLevel maps a configuration value to a Level. Empty means manufacturer.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manufacturer":
		return LevelManufacturer, nil
	case "category", "vehicle_category":
		return LevelCategory, nil
	case "none":
		return LevelNone, nil
	default:
		return LevelNone, fmt.Errorf("unknown insight level %q (want manufacturer, category or none)", s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelManufacturer:
		return "manufacturer"
	case LevelCategory:
		return "category"
	default:
		return "none"
	}
}

func (l Level) key(r registration.Record) string {
	if l == LevelCategory {
		return r.VehicleCategory
	}
	return r.Manufacturer
}

// Generator produces insights at a level fixed at construction.
type Generator struct {
	level  Level
	logger *slog.Logger
}

// New creates a Generator for level.
func New(level Level, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{level: level, logger: logger}
}

// Level returns the grouping the generator was built with.
func (g *Generator) Level() Level {
	return g.level
}

// Generate returns an ordered list of insights for records.
// It never returns an empty list and never panics: any failure becomes FailureText.
func (g *Generator) Generate(records []registration.Record) (insights []string) {
	if len(records) == 0 {
		return []string{NoDataText}
	}

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("[Insights] Error generating insights", "error", r)
			insights = []string{FailureText}
		}
	}()

	if g.level != LevelNone {
		insights = append(insights, g.levelInsights(records)...)
	}

	if text, ok := overallChange(records); ok {
		insights = append(insights, text)
	}

	if text, ok := volatility(records); ok {
		insights = append(insights, text)
	}

	if len(insights) == 0 {
		insights = append(insights, SteadyText)
	}
	return insights
}

type levelYear struct {
	name  string
	year  int
	total int64
	yoy   float64
	valid bool
}

// levelInsights emits the top growers of the latest year and the concentration signal.
func (g *Generator) levelInsights(records []registration.Record) []string {
	type key struct {
		name string
		year int
	}
	totals := make(map[key]int64)
	for _, r := range records {
		totals[key{name: g.level.key(r), year: r.Year}] += r.Registrations
	}

	rows := make([]levelYear, 0, len(totals))
	for k, total := range totals {
		rows = append(rows, levelYear{name: k.name, year: k.year, total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].name != rows[j].name {
			return rows[i].name < rows[j].name
		}
		return rows[i].year < rows[j].year
	})

	// YoY against the previous row of the same entity, not the previous calendar year.
	latestYear := rows[0].year
	for i := range rows {
		if rows[i].year > latestYear {
			latestYear = rows[i].year
		}
		if i == 0 || rows[i-1].name != rows[i].name {
			continue
		}
		prev := rows[i-1].total
		if prev == 0 {
			continue
		}
		rows[i].yoy = float64(rows[i].total-prev) / float64(prev) * 100.0
		rows[i].valid = true
	}

	var latest []levelYear
	for _, r := range rows {
		if r.year == latestYear {
			latest = append(latest, r)
		}
	}

	var out []string
	if text, ok := topGrowersText(latest, latestYear); ok {
		out = append(out, text)
	}
	out = append(out, concentrationText(latest))
	return out
}

func topGrowersText(latest []levelYear, year int) (string, bool) {
	var growers []levelYear
	for _, r := range latest {
		if r.valid {
			growers = append(growers, r)
		}
	}
	if len(growers) == 0 {
		return "", false
	}

	sort.SliceStable(growers, func(i, j int) bool {
		if growers[i].yoy != growers[j].yoy {
			return growers[i].yoy > growers[j].yoy
		}
		return growers[i].name < growers[j].name
	})
	if len(growers) > topGrowers {
		growers = growers[:topGrowers]
	}

	names := make([]string, 0, len(growers))
	for _, r := range growers {
		names = append(names, fmt.Sprintf("%s (%.1f%%)", r.name, r.yoy))
	}
	return fmt.Sprintf("Top YoY growers in %d: %s.", year, strings.Join(names, ", ")), true
}

// concentrationText classifies the latest year by the sum of squared market shares.
func concentrationText(latest []levelYear) string {
	var total int64
	for _, r := range latest {
		total += r.total
	}

	var index float64
	if total > 0 {
		for _, r := range latest {
			share := float64(r.total) / float64(total)
			index += share * share
		}
	}

	if index >= concentrationCut {
		return ConcentratedText
	}
	return CompetitiveText
}

// overallChange compares total registrations of the two latest years.
// A zero prior-year total is replaced by 1.
func overallChange(records []registration.Record) (string, bool) {
	byYear := make(map[int]int64)
	for _, r := range records {
		byYear[r.Year] += r.Registrations
	}
	if len(byYear) < 2 {
		return "", false
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	prev := byYear[years[len(years)-2]]
	curr := byYear[years[len(years)-1]]
	denom := prev
	if denom == 0 {
		denom = 1
	}
	change := float64(curr-prev) / float64(denom) * 100.0
	return fmt.Sprintf("Overall YoY change latest year: %.1f%%.", change), true
}

// volatility averages the absolute percent change between consecutive quarters
// in chronological order. Changes from a zero quarter are undefined and skipped.
func volatility(records []registration.Record) (string, bool) {
	byQuarter := make(map[registration.Period]int64)
	for _, r := range records {
		byQuarter[r.Period()] += r.Registrations
	}
	if len(byQuarter) < minVolatilityQtrs {
		return "", false
	}

	periods := make([]registration.Period, 0, len(byQuarter))
	for p := range byQuarter {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Less(periods[j]) })

	var sum float64
	var n int
	for i := 1; i < len(periods); i++ {
		prev := byQuarter[periods[i-1]]
		if prev == 0 {
			continue
		}
		curr := byQuarter[periods[i]]
		sum += math.Abs(float64(curr-prev) / float64(prev))
		n++
	}

	if n > 0 && sum/float64(n)*100.0 > volatilityCut {
		return VolatileText, true
	}
	return StableText, true
}
