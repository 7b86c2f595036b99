package util_test

import (
	"testing"

	"github.com/hwlab/pigcs2/util"
)

func TestLimiterCheck(t *testing.T) {
	l := util.Limiter{Min: -1, Max: 1}
	for _, v := range []float64{-1, 0, 1} {
		if !l.Check(v) {
			t.Errorf("%v rejected", v)
		}
	}
	for _, v := range []float64{-1.01, 1.01, 100} {
		if l.Check(v) {
			t.Errorf("%v admitted", v)
		}
	}
}

func TestLimiterClamp(t *testing.T) {
	l := util.Limiter{Min: -1, Max: 1}
	if got := l.Clamp(5); got != 1 {
		t.Errorf("clamp high: got %v", got)
	}
	if got := l.Clamp(-5); got != -1 {
		t.Errorf("clamp low: got %v", got)
	}
	if got := l.Clamp(0.5); got != 0.5 {
		t.Errorf("clamp inside: got %v", got)
	}
}
