package curve

import (
	"errors"
	"math"
	"testing"
)

// Ct values exactly on slope −3.32193 with D=10 must round-trip to 100%
// efficiency (E ≈ 2.000) with R² = 1.
func TestCalibrate_IdealDoubling(t *testing.T) {
	const slope = -3.32193
	cts := make([]float64, 5)
	for i := range cts {
		cts[i] = 20 + slope*(-float64(i)) // x_i = −i for D=10
	}
	fit, err := Calibrate(cts, 10)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if math.Abs(fit.Slope-slope) > 1e-9 {
		t.Fatalf("slope: %g", fit.Slope)
	}
	if math.Abs(fit.Intercept-20) > 1e-9 {
		t.Fatalf("intercept: %g", fit.Intercept)
	}
	if math.Abs(fit.Efficiency-2) > 1e-4 {
		t.Fatalf("efficiency: %g", fit.Efficiency)
	}
	if math.Abs(fit.PercentEfficiency-100) > 1e-2 {
		t.Fatalf("percent: %g", fit.PercentEfficiency)
	}
	if math.Abs(fit.R2-1) > 1e-12 {
		t.Fatalf("r2: %g", fit.R2)
	}
	if fit.EfficiencyRating != RatingExcellent || fit.R2Rating != RatingGood || fit.Status != StatusSuccess {
		t.Fatalf("ratings: %+v", fit)
	}
}

func TestCalibrate_ShortSeries(t *testing.T) {
	t.Run("too few readings", func(t *testing.T) {
		if _, err := Calibrate([]float64{30, 26.7}, 10); !errors.Is(err, ErrShortSeries) {
			t.Fatalf("want ErrShortSeries, got %v", err)
		}
	})
	t.Run("NaN readings do not count", func(t *testing.T) {
		if _, err := Calibrate([]float64{30, math.NaN(), 23.4, math.NaN()}, 10); !errors.Is(err, ErrShortSeries) {
			t.Fatalf("want ErrShortSeries, got %v", err)
		}
	})
}

func TestCalibrate_SkippedReadingKeepsPosition(t *testing.T) {
	// Same ideal series with point 1 missing: the remaining points still
	// sit on the line, so the fit is unchanged.
	const slope = -3.4
	cts := []float64{20, math.NaN(), 20 - 2*slope, 20 - 3*slope}
	fit, err := Calibrate(cts, 10)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if math.Abs(fit.Slope-slope) > 1e-9 || math.Abs(fit.R2-1) > 1e-9 {
		t.Fatalf("fit: %+v", fit)
	}
}

func TestCalibrate_ZeroSlope(t *testing.T) {
	if _, err := Calibrate([]float64{25, 25, 25, 25}, 10); !errors.Is(err, ErrZeroSlope) {
		t.Fatalf("want ErrZeroSlope, got %v", err)
	}
}

func TestCalibrate_BadDilution(t *testing.T) {
	if _, err := Calibrate([]float64{30, 27, 24}, 1); !errors.Is(err, ErrDilution) {
		t.Fatalf("want ErrDilution, got %v", err)
	}
}

func TestRatings(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{100, RatingExcellent},
		{90, RatingExcellent},
		{110, RatingExcellent},
		{85, RatingAcceptable},
		{89.99, RatingAcceptable},
		{115, RatingAcceptable},
		{120, RatingAcceptable},
		{79, RatingPoor},
		{121, RatingPoor},
		{-10, RatingPoor},
	}
	for _, c := range cases {
		if got := rateEfficiency(c.pct); got != c.want {
			t.Fatalf("rateEfficiency(%g) = %q, want %q", c.pct, got, c.want)
		}
	}

	if rateR2(0.99) != RatingGood || rateR2(0.979) != RatingWarning {
		t.Fatal("r2 rating thresholds")
	}
}

func TestOverallStatus_WorseWins(t *testing.T) {
	cases := []struct {
		eff, r2 string
		want    Status
	}{
		{RatingExcellent, RatingGood, StatusSuccess},
		{RatingExcellent, RatingWarning, StatusWarning},
		{RatingAcceptable, RatingGood, StatusWarning},
		{RatingAcceptable, RatingWarning, StatusWarning},
		{RatingPoor, RatingGood, StatusError},
		{RatingPoor, RatingWarning, StatusError},
	}
	for _, c := range cases {
		if got := overall(c.eff, c.r2); got != c.want {
			t.Fatalf("overall(%s,%s) = %v, want %v", c.eff, c.r2, got, c.want)
		}
	}
}

func TestCalibrate_NoisySeriesFlagsR2(t *testing.T) {
	// Scattered readings around slope −3.0: R² ≈ 0.92 flags a warning and
	// the 115% efficiency is only acceptable.
	cts := []float64{20.0, 25.5, 25.8, 31.5, 32.0}
	fit, err := Calibrate(cts, 10)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if math.Abs(fit.Slope+3.0) > 1e-9 {
		t.Fatalf("slope: %g", fit.Slope)
	}
	if fit.R2 >= 0.98 {
		t.Fatalf("r2: %g", fit.R2)
	}
	if fit.R2Rating != RatingWarning || fit.EfficiencyRating != RatingAcceptable || fit.Status != StatusWarning {
		t.Fatalf("fit: %+v", fit)
	}
}
