package insight

import "github.com/sonijitendra/vehicle-registrations/internal/core/registration"

// Filter narrows a ledger before insights are generated. Zero values match everything.
type Filter struct {
	Years         *registration.YearRange
	Categories    []string
	Manufacturers []string
}

// Apply returns the records matching every set criterion.
func (f Filter) Apply(records []registration.Record) []registration.Record {
	categories := toSet(f.Categories)
	makers := toSet(f.Manufacturers)

	out := make([]registration.Record, 0, len(records))
	for _, r := range records {
		if !f.Years.Contains(r.Year) {
			continue
		}
		if categories != nil {
			if _, ok := categories[r.VehicleCategory]; !ok {
				continue
			}
		}
		if makers != nil {
			if _, ok := makers[r.Manufacturer]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
