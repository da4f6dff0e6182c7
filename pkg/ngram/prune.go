package ngram

import "log/slog"

// Prune returns a new model keeping only the continuations observed more than
// minCount times. Contexts left without any continuation are dropped, so
// every remaining table still holds at least one observation. The receiver is
// not modified.
func (m *Model) Prune(minCount int) *Model {
	pruned := &Model{
		order:  m.order,
		tables: make(map[string]*FrequencyTable, len(m.tables)),
		logger: m.logger,
	}

	var removed int
	for _, key := range m.contexts {
		src := m.tables[key]
		var kept *FrequencyTable
		for _, w := range src.order {
			c := src.counts[w]
			if c <= minCount {
				removed++
				continue
			}
			if kept == nil {
				kept = NewFrequencyTable()
			}
			kept.order = append(kept.order, w)
			kept.counts[w] = c
			kept.total += c
		}
		if kept == nil {
			continue
		}
		pruned.tables[key] = kept
		pruned.contexts = append(pruned.contexts, key)
	}

	m.logger.Info("Model pruned",
		slog.Int("min_count", minCount),
		slog.Int("transitions_removed", removed),
		slog.Int("contexts_removed", len(m.contexts)-len(pruned.contexts)),
	)
	return pruned
}
