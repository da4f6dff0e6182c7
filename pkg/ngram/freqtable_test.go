package ngram

import (
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestFrequencyTableObserve(t *testing.T) {
	table := NewFrequencyTable("a")
	for _, w := range []string{"b", "a", "c", "a", "", "b"} {
		table.Observe(w)
	}

	sum := 0
	for _, w := range table.Words() {
		c := table.Count(w)
		if c < 1 {
			t.Errorf("word %q has count %d, want >= 1", w, c)
		}
		sum += c
	}
	if sum != table.Total() {
		t.Errorf("sum of counts = %d, Total() = %d", sum, table.Total())
	}
	if table.Total() != 7 {
		t.Errorf("Total() = %d, want 7", table.Total())
	}

	wantOrder := []string{"a", "b", "c", ""}
	got := table.Words()
	if len(got) != len(wantOrder) {
		t.Fatalf("Words() = %q, want %q", got, wantOrder)
	}
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], wantOrder[i])
		}
	}
	if table.Count("missing") != 0 {
		t.Errorf("Count of unobserved word = %d, want 0", table.Count("missing"))
	}
}

func TestFrequencyTableZeroValue(t *testing.T) {
	var table FrequencyTable
	table.Observe("x")
	if table.Total() != 1 || table.Count("x") != 1 {
		t.Errorf("zero-value table after Observe: total=%d count=%d", table.Total(), table.Count("x"))
	}
}

func TestFrequencyTableSample(t *testing.T) {
	table := NewFrequencyTable("a")
	table.Observe("b")
	table.Observe("a")
	table.Observe("c")
	// counts {a:2, b:1, c:1}, total 4

	testCases := []struct {
		r    int
		want string
	}{
		{0, "a"},
		{1, "a"},
		{2, "b"},
		{3, "c"},
	}
	for _, tc := range testCases {
		var gotN int
		src := SourceFunc(func(n int) int {
			gotN = n
			return tc.r
		})
		if got := table.Sample(src); got != tc.want {
			t.Errorf("Sample() with r=%d = %q, want %q", tc.r, got, tc.want)
		}
		if gotN != 4 {
			t.Errorf("source asked for range %d, want 4", gotN)
		}
	}
}

func TestFrequencyTableSampleSingleCandidate(t *testing.T) {
	table := NewFrequencyTable("only")
	table.Observe("only")
	table.Observe("only")

	if got := table.Sample(panicSource(t)); got != "only" {
		t.Errorf("Sample() = %q, want %q", got, "only")
	}
}

func TestFrequencyTableSampleEmpty(t *testing.T) {
	table := NewFrequencyTable()
	if got := table.Sample(panicSource(t)); got != Terminator {
		t.Errorf("Sample() on empty table = %q, want %q", got, Terminator)
	}
}

func TestFrequencyTableSampleOutOfRangeSource(t *testing.T) {
	table := NewFrequencyTable("a", "b")
	if got := table.Sample(fixedSource(99)); got != Terminator {
		t.Errorf("Sample() with out-of-range draw = %q, want %q", got, Terminator)
	}
}

func TestFrequencyTableClone(t *testing.T) {
	table := NewFrequencyTable("a", "b")
	clone := table.Clone()
	clone.Observe("c")

	if table.Total() != 2 || table.Len() != 2 {
		t.Errorf("original changed after mutating clone: total=%d len=%d", table.Total(), table.Len())
	}
	if clone.Total() != 3 || clone.Count("c") != 1 {
		t.Errorf("clone not updated: total=%d count(c)=%d", clone.Total(), clone.Count("c"))
	}
}

// TestFrequencyTableSampleDistribution checks the empirical distribution of
// many draws against the counts with a chi-squared goodness-of-fit test.
func TestFrequencyTableSampleDistribution(t *testing.T) {
	table := NewFrequencyTable("a", "b", "a", "c")
	src := NewSource(42)

	const draws = 40000
	observed := map[string]float64{}
	for i := 0; i < draws; i++ {
		observed[table.Sample(src)]++
	}

	var stat float64
	for _, w := range table.Words() {
		expected := draws * float64(table.Count(w)) / float64(table.Total())
		d := observed[w] - expected
		stat += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(table.Len() - 1)}
	if p := 1 - dist.CDF(stat); p < 1e-4 {
		t.Errorf("sample distribution deviates from counts: chi2=%.2f p=%.6f observed=%v", stat, p, observed)
	}
}

func BenchmarkFrequencyTableSample(b *testing.B) {
	words := createBenchmarkCorpus()
	if len(words) > 1000 {
		words = words[:1000]
	}
	table := NewFrequencyTable()
	for _, w := range words {
		table.Observe(w)
	}
	src := NewSource(1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.Sample(src)
	}
}
