package domain

// Adjustment parameter names as they appear in the adjustments file and the
// admin command. The Spanish names are the persisted wire format.
const (
	ParamHeightDelta  = "delta_altura"
	ParamPeriodFactor = "factor_periodo"
)

// AdjustmentSet holds the manual calibration knobs for one spot/beach pair.
// A nil field means "no change for this parameter", not zero: an absent
// period factor multiplies by 1, an absent height delta adds 0.
type AdjustmentSet struct {
	HeightDelta  *float64 `json:"delta_altura,omitempty"`
	PeriodFactor *float64 `json:"factor_periodo,omitempty"`
}

// IsZero reports whether no adjustment parameter is set.
func (a AdjustmentSet) IsZero() bool {
	return a.HeightDelta == nil && a.PeriodFactor == nil
}

// Apply returns the calibrated height and period for one raw sample.
func (a AdjustmentSet) Apply(heightM, periodS float64) (float64, float64) {
	if a.HeightDelta != nil {
		heightM += *a.HeightDelta
	}
	if a.PeriodFactor != nil {
		periodS *= *a.PeriodFactor
	}
	return heightM, periodS
}

// ApplyAll calibrates every observation in place. Run before ScoreAll.
func (a AdjustmentSet) ApplyAll(obs []Observation) {
	if a.IsZero() {
		return
	}
	for i := range obs {
		obs[i].HeightM, obs[i].PeriodS = a.Apply(obs[i].HeightM, obs[i].PeriodS)
	}
}
