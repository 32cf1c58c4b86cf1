package chart

import "testing"

func TestScaleValue(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		domainMax float64
		rangeMax  float64
		rangeMin  []float64
		want      float64
	}{
		{name: "zero value", value: 0, domainMax: 100, rangeMax: 180, want: 0},
		{name: "max value", value: 100, domainMax: 100, rangeMax: 180, want: 180},
		{name: "mid value", value: 50, domainMax: 100, rangeMax: 180, want: 90},
		{name: "zero domain floors to 1", value: 0, domainMax: 0, rangeMax: 180, want: 0},
		{name: "fractional domain floors to 1", value: 0.5, domainMax: 0.25, rangeMax: 100, want: 50},
		{name: "range min offset", value: 50, domainMax: 100, rangeMax: 200, rangeMin: []float64{100}, want: 150},
		{name: "out of range extrapolates", value: 200, domainMax: 100, rangeMax: 100, want: 200},
		{name: "negative extrapolates", value: -50, domainMax: 100, rangeMax: 100, want: -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleValue(tt.value, tt.domainMax, tt.rangeMax, tt.rangeMin...); got != tt.want {
				t.Errorf("ScaleValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
