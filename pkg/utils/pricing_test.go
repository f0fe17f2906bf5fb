package utils

import (
	"math"
	"testing"
)

func TestTaxAmount(t *testing.T) {
	cases := []struct {
		base, rate, want float64
	}{
		{999, 18, 179.82},
		{500, 18, 90},
		{1999, 18, 359.82},
		{100, 0, 0},
		{0, 18, 0},
	}

	for _, tc := range cases {
		if got := TaxAmount(tc.base, tc.rate); got != tc.want {
			t.Errorf("TaxAmount(%v, %v) = %v, want %v", tc.base, tc.rate, got, tc.want)
		}
	}
}

func TestTotalWithTax(t *testing.T) {
	cases := []struct {
		base, rate, want float64
	}{
		{999, 18, 1178.82},
		{500, 18, 590},
		{1999, 18, 2358.82},
		{100, 0, 100},
	}

	for _, tc := range cases {
		if got := TotalWithTax(tc.base, tc.rate); got != tc.want {
			t.Errorf("TotalWithTax(%v, %v) = %v, want %v", tc.base, tc.rate, got, tc.want)
		}
	}
}

func TestBaseFromTotalRoundTrip(t *testing.T) {
	for _, base := range []float64{999, 500, 1999, 49.50, 12345.67} {
		total := TotalWithTax(base, 18)
		back := BaseFromTotal(total, 18)
		if math.Abs(back-base) > 0.01 {
			t.Errorf("round trip for base %v: total %v -> %v", base, total, back)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{1178.82, 117882},
		{590, 59000},
		{0.01, 1},
		{0, 0},
		// 19.99 is not representable exactly in binary, rounding must absorb it.
		{19.99, 1999},
	}

	for _, tc := range cases {
		if got := ToMinorUnits(tc.amount); got != tc.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(179.8199999); got != 179.82 {
		t.Errorf("Round2 = %v, want 179.82", got)
	}
	if got := Round2(90.004); got != 90 {
		t.Errorf("Round2 = %v, want 90", got)
	}
}
