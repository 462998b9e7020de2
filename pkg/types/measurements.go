package types

// Measurements holds the tailor's numbers for a bespoke order, in
// centimeters. Every field is optional: blank inputs stay unset rather than
// zero, so "not yet collected" is distinguishable from a real measurement.
// Stored as jsonb.
type Measurements struct {
	Chest         *float64 `json:"chest,omitempty"`
	Waist         *float64 `json:"waist,omitempty"`
	Hips          *float64 `json:"hips,omitempty"`
	Shoulder      *float64 `json:"shoulder,omitempty"`
	SleeveLength  *float64 `json:"sleeve_length,omitempty"`
	Neck          *float64 `json:"neck,omitempty"`
	Thigh         *float64 `json:"thigh,omitempty"`
	Inseam        *float64 `json:"inseam,omitempty"`
	Outseam       *float64 `json:"outseam,omitempty"`
	Wrist         *float64 `json:"wrist,omitempty"`
	JacketLength  *float64 `json:"jacket_length,omitempty"`
	TrouserLength *float64 `json:"trouser_length,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether no measurement field is set.
func (m *Measurements) IsEmpty() bool {
	if m == nil {
		return true
	}
	fields := []*float64{
		m.Chest, m.Waist, m.Hips, m.Shoulder, m.SleeveLength, m.Neck,
		m.Thigh, m.Inseam, m.Outseam, m.Wrist, m.JacketLength, m.TrouserLength,
	}
	for _, f := range fields {
		if f != nil {
			return false
		}
	}
	return m.Notes == nil
}
