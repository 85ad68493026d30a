package profile

import (
	"math"
	"sort"
)

// CorrPair is the Pearson correlation between two numeric columns.
type CorrPair struct {
	A, B string
	R    float64
	N    int
}

// pairAcc accumulates the sums needed for an exact Pearson r over the
// rows where both columns held a numeric value.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (a *pairAcc) r() (float64, bool) {
	if a.n < 2 {
		return 0, false
	}
	denom := math.Sqrt((a.n*a.sumXX - a.sumX*a.sumX) * (a.n*a.sumYY - a.sumY*a.sumY))
	if denom == 0 {
		return 0, false
	}
	r := (a.n*a.sumXY - a.sumX*a.sumY) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

type corrTracker struct {
	ncol  int
	pairs map[int]*pairAcc // key = i*ncol + j with i > j
}

func newCorrTracker(ncol int) *corrTracker {
	return &corrTracker{ncol: ncol, pairs: make(map[int]*pairAcc)}
}

// observeRow feeds every pair of numeric values present in one row.
// Missingness is handled per pair: a pair only accumulates on rows where
// both columns parsed.
func (c *corrTracker) observeRow(nums map[int]float64) {
	idxs := make([]int, 0, len(nums))
	for i := range nums {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	for a := 1; a < len(idxs); a++ {
		i := idxs[a]
		x := nums[i]
		for b := 0; b < a; b++ {
			j := idxs[b]
			y := nums[j]
			key := i*c.ncol + j
			pa := c.pairs[key]
			if pa == nil {
				pa = &pairAcc{}
				c.pairs[key] = pa
			}
			pa.n++
			pa.sumX += x
			pa.sumY += y
			pa.sumXX += x * x
			pa.sumYY += y * y
			pa.sumXY += x * y
		}
	}
}

func (c *corrTracker) pairsByStrength(headers []string) []CorrPair {
	out := make([]CorrPair, 0, len(c.pairs))
	for key, pa := range c.pairs {
		r, ok := pa.r()
		if !ok {
			continue
		}
		i, j := key/c.ncol, key%c.ncol
		out = append(out, CorrPair{A: headers[j], B: headers[i], R: r, N: int(pa.n)})
	}
	sort.Slice(out, func(a, b int) bool {
		ra, rb := math.Abs(out[a].R), math.Abs(out[b].R)
		if ra == rb {
			return out[a].A+out[a].B < out[b].A+out[b].B
		}
		return ra > rb
	})
	return out
}
