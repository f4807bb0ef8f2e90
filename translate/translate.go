// Package translate resolves UI strings for the supported languages.
// Static keys resolve synchronously from compiled-in tables; dynamic
// backend-produced content goes through a remote translation service with
// an in-memory cache in front of it.
package translate

import "context"

// Remote is the external translation collaborator. Implementations make a
// single best-effort attempt per call.
type Remote interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Translator is the two-tier string lookup: static table first, remote
// service with caching as the fallback for uncovered strings.
type Translator struct {
	remote Remote
	cache  KV
}

// NewTranslator creates a Translator. A nil cache gets a default bounded
// LRU; a nil remote disables the fallback tier entirely (lookups then
// degrade to the source text).
func NewTranslator(remote Remote, cache KV) *Translator {
	if cache == nil {
		cache = NewLRUCache(0)
	}
	return &Translator{remote: remote, cache: cache}
}

// T returns the static translation for key in the target language. Unknown
// keys and unsupported languages return the key unchanged; T never fails.
func (tr *Translator) T(key, lang string) string {
	if lang == "" || lang == "en" {
		return key
	}
	table, ok := staticTables[lang]
	if !ok {
		return key
	}
	if translated, ok := table[key]; ok {
		return translated
	}
	return key
}

// TranslateAsync resolves dynamic content through the remote service,
// consulting the static table and cache first. Any remote failure returns
// the source text; repeated lookups of the same (text, lang) pair hit the
// cache and make no further network calls.
func (tr *Translator) TranslateAsync(ctx context.Context, text, lang string) string {
	if text == "" || lang == "" || lang == "en" {
		return text
	}

	if table, ok := staticTables[lang]; ok {
		if translated, ok := table[text]; ok {
			return translated
		}
	}

	key := cacheKey(text, lang)
	if cached, ok := tr.cache.Get(key); ok {
		return cached
	}

	if tr.remote == nil {
		return text
	}

	translated, err := tr.remote.Translate(ctx, text, lang)
	if err != nil {
		// Best effort only: surface the source text and leave the cache
		// empty so a later call can try again.
		return text
	}

	tr.cache.Set(key, translated)
	return translated
}

func cacheKey(text, lang string) string {
	return lang + "\x00" + text
}
