package chart

// HeatmapBandCount is the number of discrete intensity tiers.
const HeatmapBandCount = 5

// HeatmapBands maps every cell of a grid (row key → hour buckets) to a band
// index in [0, HeatmapBandCount). Intensity is cell/max over the whole grid,
// discretized at 25/50/75/100% cutoffs; the grid maximum is floored to 1 so
// an empty or all-zero grid bands to 0 throughout. Zero cells are band 0
// explicitly, independent of how the max turns out. The band→color table
// belongs to the renderer, not here.
func HeatmapBands(grid map[string][]int) map[string][]int {
	max := gridMax(grid)
	if max < 1 {
		max = 1
	}

	bands := make(map[string][]int, len(grid))
	for row, cells := range grid {
		rowBands := make([]int, len(cells))
		for i, v := range cells {
			rowBands[i] = bandIndex(v, max)
		}
		bands[row] = rowBands
	}
	return bands
}

func gridMax(grid map[string][]int) int {
	var max int
	for _, cells := range grid {
		for _, v := range cells {
			if v > max {
				max = v
			}
		}
	}
	return max
}

func bandIndex(value, max int) int {
	if value == 0 {
		return 0
	}
	intensity := float64(value) / float64(max)
	switch {
	case intensity < 0.25:
		return 0
	case intensity < 0.5:
		return 1
	case intensity < 0.75:
		return 2
	case intensity < 1:
		return 3
	default:
		return 4
	}
}
