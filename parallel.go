package medlai

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// translateBatch translates texts element by element, at most r.concurrency
// at a time, and stores the aggregate in the batch cache. It does not consult
// the rate limiter.
func (r *Resolver) translateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) (*BatchTranslationResult, error) {
	results := make([]TranslationResult, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			res, err := r.translateOne(gctx, text, sourceLang, targetLang)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := combineResults(texts, results)
	r.cacheSet(BatchCacheKey(texts, sourceLang, targetLang), out)
	return out, nil
}

// combineResults builds the batch view of per-element results.
func combineResults(texts []string, results []TranslationResult) *BatchTranslationResult {
	out := &BatchTranslationResult{
		TranslatedTexts: make([]string, len(results)),
		OriginalTexts:   append([]string{}, texts...),
		Results:         results,
		ServiceUsed:     ServiceNone,
	}

	if len(results) == 0 {
		out.Confidence = 1.0
		return out
	}

	sum := 0.0
	for i, res := range results {
		out.TranslatedTexts[i] = res.TranslatedText
		sum += res.Confidence
	}
	out.Confidence = sum / float64(len(results))
	out.ServiceUsed = results[0].ServiceUsed

	return out
}

// cachedBatch reports whether every batch is already in the batch cache.
// It only reads the cache and does not update hit counters.
func (r *Resolver) cachedBatch(batches [][]string, sourceLang, targetLang string) bool {
	if r.cache == nil {
		return false
	}

	var wg sync.WaitGroup
	hits := make([]bool, len(batches))
	for i, texts := range batches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, hits[i] = r.cache.Get(BatchCacheKey(texts, sourceLang, targetLang))
		}()
	}
	wg.Wait()

	for _, hit := range hits {
		if !hit {
			return false
		}
	}
	return true
}
