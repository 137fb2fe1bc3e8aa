package provider

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/medlai"
)

func TestNewChain_Order(t *testing.T) {
	tests := []struct {
		name string
		cfg  ChainConfig
		want []string
	}{
		{
			name: "free only",
			cfg:  ChainConfig{},
			want: []string{"libretranslate", "dictionary", "suffix"},
		},
		{
			name: "offline",
			cfg:  ChainConfig{DisableLibre: true},
			want: []string{"dictionary", "suffix"},
		},
		{
			name: "all paid",
			cfg:  ChainConfig{GoogleAPIKey: "g", DeepLAPIKey: "d", OpenAIAPIKey: "o"},
			want: []string{"google", "deepl", "openai", "libretranslate", "dictionary", "suffix"},
		},
		{
			name: "deepl only",
			cfg:  ChainConfig{DeepLAPIKey: "d", DisableLibre: true},
			want: []string{"deepl", "dictionary", "suffix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Names(NewChain(tt.cfg))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func offlineResolver(opts ...medlai.ResolverOption) *medlai.Resolver {
	opts = append([]medlai.ResolverOption{medlai.WithRateLimit(0)}, opts...)
	return medlai.NewResolver(NewChain(ChainConfig{DisableLibre: true}), opts...)
}

func TestChain_DictionaryPhrase(t *testing.T) {
	r := offlineResolver()

	result, err := r.Translate(context.Background(), "Take medication twice daily", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.TranslatedText != "Tome el medicamento dos veces al día" {
		t.Errorf("Expected the whole phrase mapping, got %q", result.TranslatedText)
	}
	if result.ServiceUsed != medlai.ServiceDictionary {
		t.Errorf("Expected dictionary, got %q", result.ServiceUsed)
	}
}

func TestChain_UncoveredLanguageFallsToSuffix(t *testing.T) {
	r := offlineResolver()

	items := []string{
		"Take tylenol by mouth three times daily for pain",
		"Follow up with doctor in 2 weeks",
	}

	result, err := r.TranslateBatch(context.Background(), items, "xx")
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}

	for i, text := range result.TranslatedTexts {
		if text != items[i]+" (in xx)" {
			t.Errorf("item %d: got %q", i, text)
		}
	}
	if result.Confidence > 0.5 {
		t.Errorf("Expected confidence <= 0.5, got %v", result.Confidence)
	}
	if result.ServiceUsed != medlai.ServiceSuffix {
		t.Errorf("Expected suffix, got %q", result.ServiceUsed)
	}
}

func TestChain_UnmatchedTextFallsToSuffix(t *testing.T) {
	r := offlineResolver()

	result, err := r.Translate(context.Background(), "Zzz qqq", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if !strings.HasSuffix(result.TranslatedText, " (in es)") {
		t.Errorf("Expected suffix annotation, got %q", result.TranslatedText)
	}
	if !result.Unavailable {
		t.Error("Expected the result to be marked unavailable")
	}
}

func TestChain_TimeoutAdvances(t *testing.T) {
	slow := NewMockProvider()
	slow.ProviderName = "slow"
	slow.Delay = 500 * time.Millisecond

	chain := append([]medlai.Provider{slow}, NewChain(ChainConfig{DisableLibre: true})...)
	r := medlai.NewResolver(chain, medlai.WithRateLimit(0), medlai.WithProviderTimeout(30*time.Millisecond))

	start := time.Now()
	result, err := r.Translate(context.Background(), "Rest at home", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.ServiceUsed != medlai.ServiceDictionary {
		t.Errorf("Expected dictionary after timeout, got %q", result.ServiceUsed)
	}
	if result.TranslatedText != "Descanse en casa" {
		t.Errorf("Unexpected translation %q", result.TranslatedText)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("Timeout did not cut the slow provider short: %v", elapsed)
	}
}

func TestChain_CacheSkipsProviders(t *testing.T) {
	m := NewMockProvider()
	r := medlai.NewResolver([]medlai.Provider{m}, medlai.WithRateLimit(0), medlai.WithCache(newMapCache()))

	for i := 0; i < 2; i++ {
		if _, err := r.Translate(context.Background(), "Hello", "es"); err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
	}

	if m.CallCount() != 1 {
		t.Errorf("Expected one provider call, got %d", m.CallCount())
	}
}

func TestChain_FailingProviderSkipped(t *testing.T) {
	broken := NewMockProvider()
	broken.ProviderName = "broken"
	broken.Err = errors.New("boom")

	r := medlai.NewResolver([]medlai.Provider{broken, NewMockProvider()}, medlai.WithRateLimit(0))

	result, err := r.Translate(context.Background(), "World", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Mundo" || result.ServiceUsed != "mock" {
		t.Errorf("Unexpected result %+v", result)
	}
}

type mapCache struct {
	data map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]string{}}
}

func (c *mapCache) Get(key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(key, value string) error {
	c.data[key] = value
	return nil
}
