package medlai

import (
	"context"
	"sync"
)

// Aggregate translates every non-empty category of record into targetLang.
//
// Categories are translated concurrently, one batch per category. A category
// whose provider chain fails keeps its original text and is reported in the
// returned error list; the remaining categories are unaffected. The returned
// error is non-nil only when the request is rate limited or ctx ends.
func (r *Resolver) Aggregate(ctx context.Context, record *DischargeRecord, targetLang string) (*TranslatedRecord, []CategoryError, error) {
	r.stats.requests.Add(1)

	out := newTranslatedRecord(record, targetLang)

	var pending []Category
	for _, c := range Categories {
		if len(record.Sections[c]) > 0 {
			pending = append(pending, c)
		}
	}

	if len(pending) == 0 {
		return out, nil, nil
	}

	if SameLanguage(r.sourceLang, targetLang) {
		for _, c := range pending {
			out.Confidence[c] = 1.0
			out.Services[c] = ServiceNone
		}
		out.Overall = 1.0
		return out, nil, nil
	}

	batches := make([][]string, len(pending))
	for i, c := range pending {
		batches[i] = record.Sections[c]
	}

	// Serving a fully cached record does not count against the rate limit.
	if !r.cachedBatch(batches, r.sourceLang, targetLang) {
		if err := r.allow(targetLang); err != nil {
			return nil, nil, err
		}
	}

	results := make([]*BatchTranslationResult, len(pending))
	failures := make([]error, len(pending))

	var wg sync.WaitGroup
	for i, c := range pending {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], failures[i] = r.categoryBatch(ctx, record.Sections[c], targetLang)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var errs []CategoryError
	sum, translated := 0.0, 0
	for i, c := range pending {
		if failures[i] != nil {
			r.logger.Warn().
				Str("category", string(c)).
				Str("target_lang", targetLang).
				Err(failures[i]).
				Msg("category left untranslated")
			errs = append(errs, CategoryError{
				Category: c,
				Message:  "translation unavailable, showing original text",
				Err:      failures[i],
			})
			continue
		}

		res := results[i]
		out.Categories[c] = res.TranslatedTexts
		out.Confidence[c] = res.Confidence
		out.Services[c] = res.ServiceUsed
		sum += res.Confidence
		translated++
	}

	if translated > 0 {
		out.Overall = sum / float64(translated)
	}

	return out, errs, nil
}

// categoryBatch translates one category, serving it from the batch cache
// when possible.
func (r *Resolver) categoryBatch(ctx context.Context, items []string, targetLang string) (*BatchTranslationResult, error) {
	var cached BatchTranslationResult
	if r.cacheGet(BatchCacheKey(items, r.sourceLang, targetLang), &cached) {
		return &cached, nil
	}
	return r.translateBatch(ctx, items, r.sourceLang, targetLang)
}

func newTranslatedRecord(record *DischargeRecord, targetLang string) *TranslatedRecord {
	out := &TranslatedRecord{
		Language:      BaseLanguage(targetLang),
		Direction:     GetDirection(targetLang),
		Categories:    make(map[Category][]string, len(Categories)),
		Confidence:    make(map[Category]float64),
		Services:      make(map[Category]string),
		Patient:       record.Patient,
		Facility:      record.Facility,
		Vitals:        record.Vitals,
		Allergies:     append([]string{}, record.Allergies...),
		DischargeDate: record.DischargeDate,
		AdmissionDate: record.AdmissionDate,
	}
	for _, c := range Categories {
		out.Categories[c] = append([]string{}, record.Sections[c]...)
	}
	return out
}
