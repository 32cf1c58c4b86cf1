package chart

// SampleIndices selects a representative, evenly spaced subset of indices
// from a series of length n, bounding marker/label clutter on dense series.
// Step is max(1, n/target); indices are 0, step, 2*step, … with the final
// index n-1 always included even when it misses a step boundary, so the most
// recent data point is never dropped. For n <= target every index is
// returned.
func SampleIndices(n, target int) []int {
	if n <= 0 {
		return nil
	}
	if target < 1 {
		target = 1
	}

	step := n / target
	if step < 1 {
		step = 1
	}

	indices := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		indices = append(indices, i)
	}
	if last := indices[len(indices)-1]; last != n-1 {
		indices = append(indices, n-1)
	}
	return indices
}
