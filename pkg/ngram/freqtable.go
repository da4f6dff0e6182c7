package ngram

// FrequencyTable counts the words observed after one fixed context. Words are
// kept in the order they were first observed, which fixes the order used when
// sampling.
type FrequencyTable struct {
	counts map[string]int
	order  []string
	total  int
}

// NewFrequencyTable creates a table, observing each of the given words once.
// Training seeds every new table with exactly one word.
func NewFrequencyTable(words ...string) *FrequencyTable {
	t := &FrequencyTable{counts: make(map[string]int, len(words))}
	for _, w := range words {
		t.Observe(w)
	}
	return t
}

// Observe records one more occurrence of word.
func (t *FrequencyTable) Observe(word string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word]++
	t.total++
}

// Sample draws one word with probability count/total using src. An empty table
// yields Terminator.
func (t *FrequencyTable) Sample(src Source) string {
	switch len(t.order) {
	case 0:
		return Terminator
	case 1:
		return t.order[0]
	}

	r := src.IntN(t.total)
	cumulative := 0
	for _, w := range t.order {
		cumulative += t.counts[w]
		if r < cumulative {
			return w
		}
	}
	// Only reachable with a source returning values outside [0, total).
	return Terminator
}

// Total returns the number of observations recorded in the table.
func (t *FrequencyTable) Total() int { return t.total }

// Len returns the number of distinct words in the table.
func (t *FrequencyTable) Len() int { return len(t.order) }

// Count returns how many times word was observed.
func (t *FrequencyTable) Count(word string) int { return t.counts[word] }

// Words returns the distinct words in first-observed order.
func (t *FrequencyTable) Words() []string {
	words := make([]string, len(t.order))
	copy(words, t.order)
	return words
}

// Clone returns an independent copy of the table.
func (t *FrequencyTable) Clone() *FrequencyTable {
	c := &FrequencyTable{
		counts: make(map[string]int, len(t.counts)),
		order:  t.Words(),
		total:  t.total,
	}
	for w, n := range t.counts {
		c.counts[w] = n
	}
	return c
}
