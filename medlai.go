// Package medlai structures free-form hospital discharge text and translates
// it for patients.
//
// The structuring side turns raw text, JSON or XML into a DischargeRecord with
// ordered, de-duplicated clinical categories. The translation side resolves
// each category through an ordered chain of providers (paid API, free API,
// static phrase dictionary, language-tag suffix) with caching, per-language
// rate limiting and confidence scoring.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/medlai"
//	    "github.com/ZaguanLabs/medlai/cache"
//	    "github.com/ZaguanLabs/medlai/provider"
//	    "github.com/ZaguanLabs/medlai/structure"
//	)
//
//	func main() {
//	    chain := provider.NewChain(provider.ChainConfig{
//	        GoogleAPIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
//	    })
//
//	    r := medlai.NewResolver(chain,
//	        medlai.WithCache(cache.NewInMemoryCache(0)),
//	    )
//	    p := medlai.NewPipeline(structure.NewEngine(), r)
//
//	    out, err := p.Process(context.Background(), dischargeText, "es")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out.Translated.Categories[medlai.Medications])
//	}
package medlai
