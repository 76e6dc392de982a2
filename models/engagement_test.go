package models

import "testing"

func TestAverageFromAggregates(t *testing.T) {
	if got := AverageFromAggregates(0, 0); got != nil {
		t.Errorf("empty aggregates = %v, want nil", *got)
	}
	if got := AverageFromAggregates(8, 2); got == nil || *got != 4.0 {
		t.Errorf("8/2 = %v, want 4.0", got)
	}
	if got := AverageFromAggregates(13, 3); got == nil || *got != 4.3 {
		t.Errorf("13/3 = %v, want 4.3", got)
	}
	if got := AverageFromAggregates(5, -1); got != nil {
		t.Errorf("negative count = %v, want nil", *got)
	}
}
