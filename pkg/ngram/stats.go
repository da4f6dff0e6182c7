package ngram

// ModelStats holds aggregated statistics for a trained model.
type ModelStats struct {
	Order         int `json:"order"`         // The context length n.
	Contexts      int `json:"contexts"`      // The number of distinct contexts.
	Transitions   int `json:"transitions"`   // The number of distinct context->word pairs.
	Observations  int `json:"observations"`  // The sum of all table totals; the number of trained transitions.
	Vocabulary    int `json:"vocabulary"`    // The number of distinct words that follow some context.
	Deterministic int `json:"deterministic"` // Contexts with exactly one possible continuation.
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Order:    m.order,
		Contexts: len(m.contexts),
	}
	vocab := make(map[string]struct{})
	for _, t := range m.tables {
		stats.Transitions += t.Len()
		stats.Observations += t.Total()
		if t.Len() == 1 {
			stats.Deterministic++
		}
		for _, w := range t.order {
			vocab[w] = struct{}{}
		}
	}
	stats.Vocabulary = len(vocab)
	return stats
}
