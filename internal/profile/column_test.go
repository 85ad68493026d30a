package profile

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observeAll(p *ColumnProfile, values []string) {
	for _, v := range values {
		p.Observe(v)
	}
}

func TestNumericColumnWithSpike(t *testing.T) {
	p := NewColumnProfile("score")
	observeAll(p, []string{"1", "2", "3", "4", "100"})

	require.Equal(t, KindNumeric, p.Kind())
	require.Equal(t, 5, p.Total())
	require.Equal(t, 0, p.Missing())
	require.Equal(t, 5, p.NumericCount())

	mn, ok := p.Min()
	require.True(t, ok)
	assert.Equal(t, 1.0, mn)
	mx, ok := p.Max()
	require.True(t, ok)
	assert.Equal(t, 100.0, mx)
	mean, ok := p.Mean()
	require.True(t, ok)
	assert.InDelta(t, 22.0, mean, 1e-12)

	// Bessel-corrected against a two-pass reference.
	ref, err := stats.StandardDeviationSample([]float64{1, 2, 3, 4, 100})
	require.NoError(t, err)
	sd, ok := p.Stddev()
	require.True(t, ok)
	assert.InEpsilon(t, ref, sd, 1e-9)

	// At insertion of 100: n_prev=4, mean=2.5, sd=sqrt(5/3), so z≈75.5.
	assert.Equal(t, 1, p.Outliers())
}

func TestWelfordMatchesTwoPassReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vals := make([]float64, 500)
	p := NewColumnProfile("x")
	for i := range vals {
		vals[i] = rng.NormFloat64()*17 + 3
		p.Observe(strconv.FormatFloat(vals[i], 'g', -1, 64))
	}

	refMean, err := stats.Mean(vals)
	require.NoError(t, err)
	refSD, err := stats.StandardDeviationSample(vals)
	require.NoError(t, err)

	mean, ok := p.Mean()
	require.True(t, ok)
	assert.InEpsilon(t, refMean, mean, 1e-9)
	sd, ok := p.Stddev()
	require.True(t, ok)
	assert.InEpsilon(t, refSD, sd, 1e-9)
}

func TestCategoricalUniquesPermutationInvariant(t *testing.T) {
	values := []string{"a", "b", "", "c", "a"}

	p := NewColumnProfile("label")
	observeAll(p, values)
	require.Equal(t, KindCategorical, p.Kind())
	assert.Equal(t, 1, p.Missing())
	assert.Equal(t, 3, p.UniqueCount())

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]string(nil), values...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		q := NewColumnProfile("label")
		observeAll(q, shuffled)
		assert.Equal(t, 3, q.UniqueCount())
		assert.Equal(t, 1, q.Missing())
	}
}

func TestNumericParseFailuresAfterDeclaration(t *testing.T) {
	p := NewColumnProfile("amount")
	observeAll(p, []string{"1", "x", "2", "3"})

	require.Equal(t, KindNumeric, p.Kind())
	assert.Equal(t, 1, p.ParseFailures())
	assert.Equal(t, 3, p.NumericCount())
	assert.Equal(t, 0, p.Missing(), "parse failures never count as missing")
	assert.Equal(t, 4, p.Total())
}

func TestPromotionIsOneWay(t *testing.T) {
	p := NewColumnProfile("mixed")
	p.Observe("hello")
	require.Equal(t, KindCategorical, p.Kind())
	require.Equal(t, 1, p.UniqueCount())

	p.Observe("42")
	require.Equal(t, KindNumeric, p.Kind())
	assert.Equal(t, 0, p.UniqueCount(), "unique set discarded on promotion")

	// Further strings count as parse failures, never a demotion.
	p.Observe("world")
	assert.Equal(t, KindNumeric, p.Kind())
	assert.Equal(t, 1, p.ParseFailures())
}

func TestPromotingValueIsFirstNumericSample(t *testing.T) {
	p := NewColumnProfile("v")
	observeAll(p, []string{"a", "b", "42"})

	require.Equal(t, KindNumeric, p.Kind())
	require.Equal(t, 1, p.NumericCount())
	mean, ok := p.Mean()
	require.True(t, ok)
	assert.Equal(t, 42.0, mean)
	mn, _ := p.Min()
	mx, _ := p.Max()
	assert.Equal(t, 42.0, mn)
	assert.Equal(t, 42.0, mx)
}

func TestLeadingEmptiesLeaveKindUndetermined(t *testing.T) {
	p := NewColumnProfile("late")
	p.Observe("")
	p.Observe("")
	require.Equal(t, KindUndetermined, p.Kind())
	assert.Equal(t, "unknown", p.Kind().String())

	p.Observe("5")
	require.Equal(t, KindNumeric, p.Kind())
	p.Observe("6")
	assert.Equal(t, 2, p.NumericCount())
	assert.Equal(t, 2, p.Missing())
	assert.Equal(t, 4, p.Total())
	mean, ok := p.Mean()
	require.True(t, ok)
	assert.InDelta(t, 5.5, mean, 1e-12)
}

func TestNoOutlierFlagsWithoutHistory(t *testing.T) {
	// The first two samples have no prior stddev to be judged against.
	p := NewColumnProfile("v")
	p.Observe("0")
	p.Observe("1000000")
	assert.Equal(t, 0, p.Outliers())

	// A constant run has zero stddev; nothing can be flagged.
	q := NewColumnProfile("w")
	observeAll(q, []string{"3", "3", "3", "3"})
	assert.Equal(t, 0, q.Outliers())
}

func TestStddevUndefinedBelowTwoSamples(t *testing.T) {
	p := NewColumnProfile("v")
	_, ok := p.Stddev()
	assert.False(t, ok)
	p.Observe("7")
	_, ok = p.Stddev()
	assert.False(t, ok)
	p.Observe("9")
	sd, ok := p.Stddev()
	require.True(t, ok)
	assert.InDelta(t, 1.4142135623730951, sd, 1e-12)
}

func TestMissingOnlyCountsEmptyStrings(t *testing.T) {
	p := NewColumnProfile("v")
	observeAll(p, []string{"", "1", "nope", "", "2"})
	assert.Equal(t, 2, p.Missing())
	assert.Equal(t, 5, p.Total())
	assert.Equal(t, 1, p.ParseFailures())
}

func TestColumnClassDetail(t *testing.T) {
	ints := NewColumnProfile("i")
	observeAll(ints, []string{"1", "2", "3"})
	assert.Equal(t, ClassInt, ints.Class())

	floats := NewColumnProfile("f")
	observeAll(floats, []string{"1", "2.5"})
	assert.Equal(t, ClassFloat, floats.Class())

	bools := NewColumnProfile("b")
	observeAll(bools, []string{"true", "FALSE", "True"})
	assert.Equal(t, KindCategorical, bools.Kind())
	assert.Equal(t, ClassBool, bools.Class())

	text := NewColumnProfile("s")
	observeAll(text, []string{"true", "yes"})
	assert.Equal(t, ClassString, text.Class())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Class
	}{
		{"0", ClassInt},
		{"-12", ClassInt},
		{"9223372036854775807", ClassInt},
		{"9223372036854775808", ClassFloat}, // overflows int64
		{"3.14", ClassFloat},
		{"-0.5", ClassFloat},
		{"1e6", ClassFloat},
		{"true", ClassBool},
		{"FALSE", ClassBool},
		{"True", ClassBool},
		{"yes", ClassString},
		{"12abc", ClassString},
		{"NaN", ClassFloat},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.in), "classify %q", c.in)
	}
}
