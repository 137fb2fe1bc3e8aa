package medlai_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/cache"
	"github.com/ZaguanLabs/medlai/provider"
	"github.com/ZaguanLabs/medlai/structure"
)

// Integration tests using all real components

func offlineChain() []medlai.Provider {
	return provider.NewChain(provider.ChainConfig{DisableLibre: true})
}

func TestIntegration_HeaderlessSummaryToSpanish(t *testing.T) {
	r := medlai.NewResolver(offlineChain(), medlai.WithRateLimit(0))
	p := medlai.NewPipeline(structure.NewEngine(), r)

	out, err := p.Process(context.Background(),
		"Take tylenol by mouth three times daily for pain. Follow up with doctor in 2 weeks.", "es")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	tr := out.Translated
	if got := tr.Categories[medlai.Medications]; len(got) != 1 || got[0] != "Tome tylenol por vía oral tres veces al día para el dolor" {
		t.Errorf("unexpected medications %q", got)
	}
	if got := tr.Categories[medlai.FollowUp]; len(got) != 1 || got[0] != "Haga seguimiento con su médico en 2 semanas" {
		t.Errorf("unexpected follow-up %q", got)
	}
	if tr.Services[medlai.Medications] != medlai.ServiceDictionary {
		t.Errorf("expected dictionary service, got %q", tr.Services[medlai.Medications])
	}
	if len(out.Errors) != 0 {
		t.Errorf("unexpected category errors %v", out.Errors)
	}
}

func TestIntegration_MalformedJSONStillStructures(t *testing.T) {
	r := medlai.NewResolver(offlineChain(), medlai.WithRateLimit(0))
	p := medlai.NewPipeline(structure.NewEngine(), r)

	out, err := p.Process(context.Background(), "{bad json", "es")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out.Record == nil || out.Record.Sections == nil {
		t.Fatal("expected a record")
	}
}

func TestIntegration_UnknownLanguageUsesSuffix(t *testing.T) {
	r := medlai.NewResolver(offlineChain(), medlai.WithRateLimit(0))
	p := medlai.NewPipeline(structure.NewEngine(), r)

	out, err := p.Process(context.Background(), "Diagnosis: Pneumonia\nInstructions:\n- Rest at home\n- Drink fluids", "xx")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	for c, items := range out.Translated.Categories {
		for _, item := range items {
			if !strings.HasSuffix(item, " (in xx)") {
				t.Errorf("%s: expected suffix on %q", c, item)
			}
		}
		if len(items) > 0 && out.Translated.Confidence[c] > 0.5 {
			t.Errorf("%s: confidence %v above 0.5", c, out.Translated.Confidence[c])
		}
	}
	if out.Translated.Overall > 0.5 {
		t.Errorf("overall confidence %v above 0.5", out.Translated.Overall)
	}
}

func TestIntegration_RepeatServedFromCache(t *testing.T) {
	mock := provider.NewMockProvider()
	r := medlai.NewResolver([]medlai.Provider{mock},
		medlai.WithCache(cache.NewInMemoryCache(time.Hour)),
	)

	ctx := context.Background()
	first, err := r.Translate(ctx, "Rest at home", "es")
	if err != nil {
		t.Fatalf("first translate failed: %v", err)
	}

	// Immediate repeat: inside the rate-limit window, but the cache answers.
	second, err := r.Translate(ctx, "Rest at home", "es")
	if err != nil {
		t.Fatalf("second translate failed: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
	if first.TranslatedText != second.TranslatedText {
		t.Errorf("cached result differs: %q vs %q", first.TranslatedText, second.TranslatedText)
	}
	if stats := r.Stats(); stats.CacheHits != 1 {
		t.Errorf("expected 1 cache hit, got %d", stats.CacheHits)
	}
}

func TestIntegration_SlowProviderIsSkipped(t *testing.T) {
	slow := &provider.MockProvider{ProviderName: "slow", Delay: 500 * time.Millisecond}
	chain := append([]medlai.Provider{slow}, offlineChain()...)
	r := medlai.NewResolver(chain,
		medlai.WithRateLimit(0),
		medlai.WithProviderTimeout(30*time.Millisecond),
	)

	start := time.Now()
	res, err := r.Translate(context.Background(), "Rest at home", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if res.ServiceUsed != medlai.ServiceDictionary {
		t.Errorf("expected dictionary to answer, got %q", res.ServiceUsed)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("slow provider was awaited: %v", elapsed)
	}
}

func TestIntegration_CacheExportWarmsNewInstance(t *testing.T) {
	src := cache.NewInMemoryCache(0)
	mock := provider.NewMockProvider()
	r := medlai.NewResolver([]medlai.Provider{mock}, medlai.WithCache(src), medlai.WithRateLimit(0))

	record := structure.NewEngine().Structure("Instructions:\n- Rest at home\n- Drink plenty of fluids")
	if _, _, err := r.Aggregate(context.Background(), record, "es"); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	var buf strings.Builder
	if _, err := cache.NewExporter(src).Export(&buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := cache.NewInMemoryCache(0)
	if _, err := cache.NewImporter(dst).Import(strings.NewReader(buf.String())); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	fresh := provider.NewMockProvider()
	warm := medlai.NewResolver([]medlai.Provider{fresh}, medlai.WithCache(dst))
	out, errs, err := warm.Aggregate(context.Background(), record, "es")
	if err != nil || len(errs) != 0 {
		t.Fatalf("Aggregate failed: %v %v", err, errs)
	}

	if fresh.CallCount() != 0 {
		t.Errorf("expected warmed cache to answer, got %d provider calls", fresh.CallCount())
	}
	if got := out.Categories[medlai.Instructions]; len(got) != 2 || got[0] != "Descanse en casa" {
		t.Errorf("unexpected instructions %q", got)
	}
}

func TestIntegration_EnvelopeRoundTrip(t *testing.T) {
	r := medlai.NewResolver(offlineChain(), medlai.WithRateLimit(0))
	engine := structure.NewEngine()
	p := medlai.NewPipeline(engine, r)

	original := "Medications:\n- Take medication twice daily\nFollow-up: Follow up with doctor in 2 weeks"
	out, err := p.Process(context.Background(), original, "fr")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	data, err := medlai.EncodeEnvelope(original, out.Translated, &medlai.HospitalBranding{Name: "General Hospital"})
	if err != nil {
		t.Fatalf("EncodeEnvelope failed: %v", err)
	}

	// Scanning the QR code feeds the envelope back into the engine.
	again := engine.Structure(string(data))
	if again.InputFormat != structure.FormatEnvelope {
		t.Errorf("expected envelope input, got %q", again.InputFormat)
	}
	if got := again.Items(medlai.Medications); len(got) != 1 || got[0] != "Take medication twice daily" {
		t.Errorf("unexpected medications after round trip %q", got)
	}
}

func TestIntegration_DiffDrivesRetranslation(t *testing.T) {
	engine := structure.NewEngine()
	prev := engine.Structure("Medications:\n- Aspirin 81mg daily\nInstructions:\n- Rest at home")
	curr := engine.Structure("Medications:\n- Aspirin 81mg daily\nInstructions:\n- Rest at home\n- Drink plenty of fluids")

	diff := medlai.DiffRecords(prev, curr)
	need := diff.NeedsTranslation()
	if len(need) != 1 || need[0].Category != medlai.Instructions || need[0].Text != "Drink plenty of fluids" {
		t.Fatalf("unexpected items needing translation %+v", need)
	}

	mock := provider.NewMockProvider()
	r := medlai.NewResolver([]medlai.Provider{mock}, medlai.WithRateLimit(0))
	texts := make([]string, len(need))
	for i, item := range need {
		texts[i] = item.Text
	}
	if _, err := r.TranslateBatch(context.Background(), texts, "es"); err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected only the new item to be translated, got %d calls", mock.CallCount())
	}
}
