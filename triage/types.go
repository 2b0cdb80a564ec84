// Package triage classifies a health profile into a GREEN/AMBER/RED risk tier.
//
// Evaluation is a pure function of the profile flags, one vitals snapshot and
// a Thresholds value. Nothing here performs I/O or keeps state between calls.
package triage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is ordered: Green < Amber < Red.
type Tier int

const (
	Green Tier = iota
	Amber
	Red
)

func (t Tier) String() string {
	switch t {
	case Green:
		return "GREEN"
	case Amber:
		return "AMBER"
	case Red:
		return "RED"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier accepts the upper or lower case tier name.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GREEN":
		return Green, nil
	case "AMBER":
		return Amber, nil
	case "RED":
		return Red, nil
	}
	return Green, fmt.Errorf("unknown triage tier %q", s)
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value stores the tier as its name so rows stay readable.
func (t Tier) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *Tier) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Green
		return nil
	case string:
		p, err := ParseTier(v)
		*t = p
		return err
	case []byte:
		p, err := ParseTier(string(v))
		*t = p
		return err
	}
	return fmt.Errorf("cannot scan %T into Tier", src)
}

// DiabetesType as selected on the profile form.
type DiabetesType string

const (
	Type1  DiabetesType = "Type 1"
	Type2  DiabetesType = "Type 2"
	Unsure DiabetesType = "Not sure"
)

// ParseDiabetesType is lenient about case and spacing. Anything unrecognised
// maps to Unsure.
func ParseDiabetesType(s string) DiabetesType {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	switch norm {
	case "type1", "t1", "1":
		return Type1
	case "type2", "t2", "2":
		return Type2
	default:
		return Unsure
	}
}

// ProfileFlags is the subset of the health profile the rules read.
type ProfileFlags struct {
	DiabetesType        DiabetesType `json:"diabetes_type"`
	HasHypertension     bool         `json:"has_hypertension"`
	HasHighCholesterol  bool         `json:"has_high_cholesterol"`
	OtherMajorCondition bool         `json:"other_major_condition"`
}

// Vitals is one transient snapshot. A zero value means "not provided".
// Fasting holds 0-3 positive readings, oldest first.
type Vitals struct {
	Systolic         float64   `json:"systolic"`
	Diastolic        float64   `json:"diastolic"`
	HbA1c            float64   `json:"hba1c"`
	TotalCholesterol float64   `json:"total_cholesterol"`
	Fasting          []float64 `json:"fasting"`
}

// Result is the tier plus the notes produced on the way, in rule order.
type Result struct {
	Tier  Tier     `json:"tier"`
	Flags []string `json:"flags"`
}

// Blocked reports whether the rest of the product should be disabled.
func (r Result) Blocked() bool { return r.Tier == Red }
