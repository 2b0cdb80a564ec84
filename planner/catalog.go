// Package planner builds 7-day meal plans from a static, tagged meal catalog.
package planner

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CarbServingGrams is the carbohydrate content of one carb serving.
const CarbServingGrams = 15

// Slot is one of the four daily meal categories.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snack     Slot = "snack"
)

// Slots lists the daily slots in serving order.
var Slots = []Slot{Breakfast, Lunch, Dinner, Snack}

// Catalog tags the planner filters on.
const (
	TagDesi      = "desi"
	TagVeg       = "veg"
	TagLowSodium = "low_sodium"
	TagLowSatFat = "low_satfat"
	TagHighFiber = "high_fiber"
	TagSnack     = "snack"
)

// MealEntry is one immutable catalog item.
type MealEntry struct {
	Name         string   `yaml:"name" json:"name"`
	Slot         Slot     `yaml:"slot" json:"slot"`
	Tags         []string `yaml:"tags" json:"tags"`
	CarbServings int      `yaml:"carb_servings" json:"carb_servings"`
	Notes        string   `yaml:"notes" json:"notes"`
}

// HasTag reports whether the entry carries tag.
func (m MealEntry) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}

// CarbGrams is the rough carbohydrate estimate for the entry.
func (m MealEntry) CarbGrams() int {
	return m.CarbServings * CarbServingGrams
}

// Catalog is the full list of meals a plan can draw from.
type Catalog []MealEntry

// ForSlot returns the entries for one slot in catalog order.
func (c Catalog) ForSlot(s Slot) []MealEntry {
	var out []MealEntry
	for _, m := range c {
		if m.Slot == s {
			out = append(out, m)
		}
	}
	return out
}

// Validate requires every slot to be fillable and every entry well formed.
func (c Catalog) Validate() error {
	for i, m := range c {
		if m.Name == "" {
			return fmt.Errorf("meal %d: name is required", i)
		}
		if !slices.Contains(Slots, m.Slot) {
			return fmt.Errorf("meal %q: unknown slot %q", m.Name, m.Slot)
		}
		if m.CarbServings < 0 {
			return fmt.Errorf("meal %q: negative carb servings", m.Name)
		}
	}
	for _, s := range Slots {
		if len(c.ForSlot(s)) == 0 {
			return fmt.Errorf("catalog has no %s entries", s)
		}
	}
	return nil
}

// LoadCatalog reads a YAML list of meals. An empty path returns DefaultCatalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog returns a fresh copy of the built-in meal bank.
func DefaultCatalog() Catalog {
	return Catalog{
		// Breakfast
		{Name: "Besan chilla + unsweetened yogurt", Slot: Breakfast, Tags: []string{TagDesi, TagHighFiber, TagLowSatFat, TagLowSodium}, CarbServings: 2,
			Notes: "Add veggies. Keep oil minimal. Avoid sweetened yogurt."},
		{Name: "Veg omelette + 1 slice wholegrain toast", Slot: Breakfast, Tags: []string{TagLowSatFat, TagLowSodium}, CarbServings: 2,
			Notes: "Add tomato/capsicum/onion. Avoid extra butter."},
		{Name: "Oats porridge (unsweetened) + cinnamon", Slot: Breakfast, Tags: []string{TagHighFiber, TagLowSatFat}, CarbServings: 3,
			Notes: "Use milk/water as preferred. Avoid sugar; add nuts in small portion."},
		{Name: "Greek yogurt bowl + berries (small portion)", Slot: Breakfast, Tags: []string{TagLowSatFat, TagLowSodium}, CarbServings: 2,
			Notes: "Avoid honey/syrups. Add chia/flax if available."},

		// Lunch
		{Name: "Grilled chicken + salad + small brown rice", Slot: Lunch, Tags: []string{TagLowSatFat, TagLowSodium}, CarbServings: 3,
			Notes: "Keep rice portion small; add veg for volume."},
		{Name: "Chana salad bowl (chickpeas + veg + lemon)", Slot: Lunch, Tags: []string{TagVeg, TagHighFiber, TagLowSatFat}, CarbServings: 3,
			Notes: "Use lemon/spices instead of heavy sauces."},
		{Name: "Daal + salad + 1 medium roti", Slot: Lunch, Tags: []string{TagDesi, TagHighFiber, TagLowSatFat}, CarbServings: 3,
			Notes: "Avoid extra ghee; keep pickle minimal (salt)."},

		// Dinner
		{Name: "Baked fish + sautéed veg + small rice portion", Slot: Dinner, Tags: []string{TagLowSatFat, TagLowSodium}, CarbServings: 2,
			Notes: "Season with spices/lemon; keep salt low."},
		{Name: "Mixed veg curry (light oil) + 1 roti", Slot: Dinner, Tags: []string{TagDesi, TagVeg, TagHighFiber}, CarbServings: 3,
			Notes: "Control oil. Add salad. Keep roti medium."},
		{Name: "Chicken/veg soup + side salad", Slot: Dinner, Tags: []string{TagLowSatFat, TagLowSodium}, CarbServings: 1,
			Notes: "Watch salt in stock cubes; prefer homemade/low-sodium."},
		{Name: "Daal + mixed veg + 1 roti", Slot: Dinner, Tags: []string{TagDesi, TagHighFiber, TagLowSatFat}, CarbServings: 3,
			Notes: "Avoid extra ghee; add salad."},

		// Snacks
		{Name: "Fruit: apple OR guava (1 portion)", Slot: Snack, Tags: []string{TagSnack}, CarbServings: 1,
			Notes: "Keep to one portion; avoid fruit juice."},
		{Name: "Nuts (small handful, unsalted)", Slot: Snack, Tags: []string{TagSnack, TagLowSodium}, CarbServings: 0,
			Notes: "Small portion. Avoid salted nuts."},
		{Name: "Cucumber + hummus (small)", Slot: Snack, Tags: []string{TagSnack, TagLowSatFat}, CarbServings: 1,
			Notes: "Check hummus salt; keep portion small."},
	}
}
