package catalog

import "math"

// Kill-power multipliers per move category. Categories not listed use 1.0.
var killPowerMultiplier = map[string]float64{
	"smash":    1.5,
	"throw":    1.4,
	"special":  1.3,
	"aerial":   1.2,
	"tilt":     1.0,
	"jab":      0.7,
	"grab":     0.5,
	"movement": 0.3,
}

// derive fills the analysis fields from raw frame data. A move with zero
// startup is treated as non-attacking (movement options, some grabs) and
// gets zero safety and combo scores.
func derive(m *Move) {
	if m.TotalFrames == 0 {
		m.TotalFrames = m.StartupFrames + m.EndLag
	}

	if m.StartupFrames > 0 {
		m.SafetyRating = round2(float64(m.OnShieldLag) -
			float64(m.StartupFrames)*0.1 -
			float64(m.EndLag)*0.05)

		combo := m.Damage*0.5 +
			float64(m.ShieldStun)*0.3 -
			float64(m.StartupFrames)*0.2
		m.ComboPotential = round2(math.Max(0, combo))
	}

	mult, ok := killPowerMultiplier[m.Type]
	if !ok {
		mult = 1.0
	}
	m.KillPowerIndex = round2(m.Damage * mult)

	if m.TotalFrames > 0 {
		m.FrameEfficiency = round3(m.Damage / float64(m.TotalFrames))
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
