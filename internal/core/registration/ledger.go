package registration

import "sort"

// The functions below are the reference (in-process) implementations of the
// ledger queries. The memory store delegates to them; SQL stores express the
// same GROUP BY shapes in their queries.

// TotalsByCategory sums registrations per category and counts distinct manufacturers.
// Ordered by registrations DESC, then category ASC.
func TotalsByCategory(records []Record, yr *YearRange) []CategoryTotal {
	type acc struct {
		total  int64
		makers map[string]struct{}
	}

	byCategory := make(map[string]*acc)
	for _, r := range records {
		if !yr.Contains(r.Year) {
			continue
		}
		a, ok := byCategory[r.VehicleCategory]
		if !ok {
			a = &acc{makers: make(map[string]struct{})}
			byCategory[r.VehicleCategory] = a
		}
		a.total += r.Registrations
		a.makers[r.Manufacturer] = struct{}{}
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for category, a := range byCategory {
		out = append(out, CategoryTotal{
			VehicleCategory:   category,
			Registrations:     a.total,
			ManufacturerCount: len(a.makers),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Registrations != out[j].Registrations {
			return out[i].Registrations > out[j].Registrations
		}
		return out[i].VehicleCategory < out[j].VehicleCategory
	})
	return out
}

// TotalsByManufacturer sums and averages registrations per (manufacturer, category).
// The average is over ledger rows, not periods. Ordered by registrations DESC, then key ASC.
func TotalsByManufacturer(records []Record, yr *YearRange) []ManufacturerTotal {
	type acc struct {
		total int64
		rows  int64
	}

	bySeries := make(map[SeriesKey]*acc)
	for _, r := range records {
		if !yr.Contains(r.Year) {
			continue
		}
		a, ok := bySeries[r.Series()]
		if !ok {
			a = &acc{}
			bySeries[r.Series()] = a
		}
		a.total += r.Registrations
		a.rows++
	}

	out := make([]ManufacturerTotal, 0, len(bySeries))
	for key, a := range bySeries {
		out = append(out, ManufacturerTotal{
			Manufacturer:     key.Manufacturer,
			VehicleCategory:  key.VehicleCategory,
			Registrations:    a.total,
			AvgRegistrations: float64(a.total) / float64(a.rows),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Registrations != out[j].Registrations {
			return out[i].Registrations > out[j].Registrations
		}
		if out[i].Manufacturer != out[j].Manufacturer {
			return out[i].Manufacturer < out[j].Manufacturer
		}
		return out[i].VehicleCategory < out[j].VehicleCategory
	})
	return out
}

// Summarize computes headline statistics. An empty ledger yields the zero Summary.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	makers := make(map[string]struct{})
	categories := make(map[string]struct{})
	s := Summary{
		TotalRecords: int64(len(records)),
		EarliestYear: records[0].Year,
		LatestYear:   records[0].Year,
	}
	for _, r := range records {
		s.TotalRegistrations += r.Registrations
		makers[r.Manufacturer] = struct{}{}
		categories[r.VehicleCategory] = struct{}{}
		if r.Year < s.EarliestYear {
			s.EarliestYear = r.Year
		}
		if r.Year > s.LatestYear {
			s.LatestYear = r.Year
		}
	}
	s.UniqueManufacturers = len(makers)
	s.UniqueCategories = len(categories)
	return s
}
