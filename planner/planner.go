package planner

import (
	"fmt"
	"math/rand/v2"
)

// DaysPerPlan is the length of every generated plan.
const DaysPerPlan = 7

// Preferences drive the tag filters. HasHypertension and HasHighCholesterol
// come from the profile comorbidity flags and map to the low_sodium and
// low_satfat narrowing steps.
type Preferences struct {
	PreferDesi         bool `json:"prefer_desi"`
	VegOnly            bool `json:"veg_only"`
	HasHypertension    bool `json:"has_hypertension"`
	HasHighCholesterol bool `json:"has_high_cholesterol"`
}

// DayPlan holds one meal per slot.
type DayPlan struct {
	Day       int       `json:"day"`
	Breakfast MealEntry `json:"breakfast"`
	Lunch     MealEntry `json:"lunch"`
	Dinner    MealEntry `json:"dinner"`
	Snack     MealEntry `json:"snack"`
}

// Meal returns the entry for a slot.
func (d DayPlan) Meal(s Slot) MealEntry {
	switch s {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	case Dinner:
		return d.Dinner
	default:
		return d.Snack
	}
}

// CarbServings sums the four slots.
func (d DayPlan) CarbServings() int {
	return d.Breakfast.CarbServings + d.Lunch.CarbServings + d.Dinner.CarbServings + d.Snack.CarbServings
}

// WeekPlan is always seven days, day numbers 1-7 in order.
type WeekPlan []DayPlan

// Planner picks meals from a validated catalog.
type Planner struct {
	catalog Catalog
	intn    func(n int) int
}

// Option configures a Planner.
type Option func(*Planner)

// WithRand makes selection deterministic for a given source.
// *rand.Rand is not safe for concurrent use; callers sharing a planner across
// goroutines should keep the default.
func WithRand(r *rand.Rand) Option {
	return func(p *Planner) { p.intn = r.IntN }
}

// New validates the catalog and returns a planner over it.
func New(c Catalog, opts ...Option) (*Planner, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid meal catalog: %w", err)
	}
	p := &Planner{catalog: c, intn: rand.IntN}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Catalog returns the catalog the planner draws from.
func (p *Planner) Catalog() Catalog { return p.catalog }

// GenerateWeek regenerates a full plan. Picks are independent per slot per
// day, so repeats across days are expected.
func (p *Planner) GenerateWeek(prefs Preferences) WeekPlan {
	week := make(WeekPlan, 0, DaysPerPlan)
	for day := 1; day <= DaysPerPlan; day++ {
		week = append(week, DayPlan{
			Day:       day,
			Breakfast: p.pick(p.Candidates(Breakfast, prefs)),
			Lunch:     p.pick(p.Candidates(Lunch, prefs)),
			Dinner:    p.pick(p.Candidates(Dinner, prefs)),
			Snack:     p.pick(p.Candidates(Snack, prefs)),
		})
	}
	return week
}

// Candidates applies the narrowing steps for one slot. A step that would
// leave nothing is skipped, so the result is never empty for a valid catalog.
//
// The veg-only step keeps entries tagged veg OR desi. Desi dishes are not all
// vegetarian; the proxy is kept as-is until the catalog carries a strict tag.
func (p *Planner) Candidates(s Slot, prefs Preferences) []MealEntry {
	cands := p.catalog.ForSlot(s)

	if prefs.VegOnly {
		cands = narrow(cands, func(m MealEntry) bool {
			return m.HasTag(TagVeg) || m.HasTag(TagDesi)
		})
	}
	if prefs.PreferDesi {
		cands = narrow(cands, tagged(TagDesi))
	}
	if s != Snack {
		if prefs.HasHypertension {
			cands = narrow(cands, tagged(TagLowSodium))
		}
		if prefs.HasHighCholesterol {
			cands = narrow(cands, tagged(TagLowSatFat))
		}
	}
	return cands
}

func (p *Planner) pick(cands []MealEntry) MealEntry {
	return cands[p.intn(len(cands))]
}

func tagged(tag string) func(MealEntry) bool {
	return func(m MealEntry) bool { return m.HasTag(tag) }
}

// narrow returns the matching subset, or the input unchanged when nothing matches.
func narrow(in []MealEntry, keep func(MealEntry) bool) []MealEntry {
	var out []MealEntry
	for _, m := range in {
		if keep(m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return in
	}
	return out
}
