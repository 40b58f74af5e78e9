package ime

import (
	"fmt"

	"banglawriter/internal/config"
	"banglawriter/internal/dictionary"
	"banglawriter/internal/logging"
	"banglawriter/internal/metrics"
	"banglawriter/internal/phonetic"
	"banglawriter/internal/suggest"
)

// FactoryFromConfig builds the shared transducer, loads the configured
// dictionary and returns a Factory for new sessions. A dictionary that
// cannot be loaded is logged and replaced by the built-in list; the
// returned LoadResult tells which one is in use.
func FactoryFromConfig(cfg *config.Config, m *metrics.Metrics) (*Factory, dictionary.LoadResult, error) {
	tr, err := phonetic.NewDefault()
	if err != nil {
		return nil, dictionary.LoadResult{}, fmt.Errorf("build transducer: %w", err)
	}
	mode, err := ParseMode(cfg.Engine.DefaultMode)
	if err != nil {
		return nil, dictionary.LoadResult{}, err
	}

	res := dictionary.LoadOrBuiltin(cfg.DictionaryPath())
	if res.Fallback() {
		logging.Warn("dictionary unavailable, using built-in list", "path", res.Path, "error", res.Err)
	}
	m.Dictionary(res.Index.Len(), res.Fallback())

	ranker := suggest.NewRanker(tr, res.Index, suggest.Options{Phonetic: cfg.Engine.PhoneticSuggestions})
	return NewFactory(tr, ranker, m).WithDefaultMode(mode), res, nil
}
