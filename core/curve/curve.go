// core/curve/curve.go
// Standard-curve efficiency estimation from a serial dilution series.
//
// Point i of the series sits at relative concentration D^(−i); the fit is
// ordinary least squares of Ct on log10(concentration). Efficiency
// follows E = 10^(−1/slope), so the ideal doubling assay has slope
// ≈ −3.32 with D = 10.
package curve

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Input errors.
var (
	ErrShortSeries = errors.New("curve: need at least 3 numeric Ct values")
	ErrDilution    = errors.New("curve: dilution factor must be ≥ 2")
	ErrZeroSlope   = errors.New("curve: regression slope is zero")
)

// Status grades a fit; higher is worse.
type Status int

const (
	StatusSuccess Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	default:
		return "error"
	}
}

// Efficiency ratings by percent efficiency.
const (
	RatingExcellent  = "excellent"  // [90,110]
	RatingAcceptable = "acceptable" // [80,90) or (110,120]
	RatingPoor       = "poor"
)

// R² ratings.
const (
	RatingGood    = "good" // R² ≥ 0.98
	RatingWarning = "warning"
)

// Fit is a calibrated standard curve.
type Fit struct {
	Slope             float64
	Intercept         float64
	R2                float64
	Efficiency        float64 // per-cycle amplification factor E
	PercentEfficiency float64 // (E−1)×100
	EfficiencyRating  string
	R2Rating          string
	Status            Status // worse of the two ratings
}

// Calibrate fits the dilution series and estimates amplification
// efficiency. cts holds the readings in dilution order starting at
// relative concentration 1; a NaN entry marks a skipped reading whose
// dilution position still advances. At least 3 numeric readings are
// required.
func Calibrate(cts []float64, dilution int) (Fit, error) {
	if dilution < 2 {
		return Fit{}, ErrDilution
	}
	logD := math.Log10(float64(dilution))
	var xs, ys []float64
	for i, ct := range cts {
		if math.IsNaN(ct) || math.IsInf(ct, 0) {
			continue
		}
		xs = append(xs, -float64(i)*logD) // log10(D^−i)
		ys = append(ys, ct)
	}
	if len(ys) < 3 {
		return Fit{}, ErrShortSeries
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope == 0 {
		return Fit{}, ErrZeroSlope
	}
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	eff := math.Pow(10, -1/slope)
	fit := Fit{
		Slope:             slope,
		Intercept:         intercept,
		R2:                r2,
		Efficiency:        eff,
		PercentEfficiency: (eff - 1) * 100,
	}
	fit.EfficiencyRating = rateEfficiency(fit.PercentEfficiency)
	fit.R2Rating = rateR2(r2)
	fit.Status = overall(fit.EfficiencyRating, fit.R2Rating)
	return fit, nil
}

func rateEfficiency(pct float64) string {
	switch {
	case pct >= 90 && pct <= 110:
		return RatingExcellent
	case (pct >= 80 && pct < 90) || (pct > 110 && pct <= 120):
		return RatingAcceptable
	default:
		return RatingPoor
	}
}

func rateR2(r2 float64) string {
	if r2 < 0.98 {
		return RatingWarning
	}
	return RatingGood
}

func overall(effRating, r2Rating string) Status {
	s := StatusSuccess
	switch effRating {
	case RatingAcceptable:
		s = StatusWarning
	case RatingPoor:
		s = StatusError
	}
	if r2Rating == RatingWarning && s < StatusWarning {
		s = StatusWarning
	}
	return s
}
