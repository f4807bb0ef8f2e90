package translate

import (
	"context"
	"fmt"
	"testing"
)

// fakeRemote counts calls and optionally fails.
type fakeRemote struct {
	calls int
	fail  bool
}

func (f *fakeRemote) Translate(_ context.Context, text, targetLang string) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("remote unavailable")
	}
	return "[" + targetLang + "] " + text, nil
}

func TestTStaticLookup(t *testing.T) {
	tr := NewTranslator(nil, nil)

	if got := tr.T("Dashboard", "hi"); got != "डैशबोर्ड" {
		t.Errorf("T(Dashboard, hi) = %q", got)
	}
	if got := tr.T("Dashboard", "kn"); got != "ಡ್ಯಾಶ್‌ಬೋರ್ಡ್" {
		t.Errorf("T(Dashboard, kn) = %q", got)
	}
	if got := tr.T("Dashboard", "en"); got != "Dashboard" {
		t.Errorf("T(Dashboard, en) = %q", got)
	}
}

func TestTUnknownKeyReturnsKeyUnchanged(t *testing.T) {
	tr := NewTranslator(nil, nil)

	for _, lang := range []string{"hi", "kn", "fr", ""} {
		if got := tr.T("Some Untranslated Key", lang); got != "Some Untranslated Key" {
			t.Errorf("T(unknown, %q) = %q, want key unchanged", lang, got)
		}
	}
}

func TestTranslateAsyncCachesRemoteResults(t *testing.T) {
	remote := &fakeRemote{}
	tr := NewTranslator(remote, NewLRUCache(16))

	text := "Your glucose trend is improving"
	first := tr.TranslateAsync(context.Background(), text, "hi")
	second := tr.TranslateAsync(context.Background(), text, "hi")

	if first != "[hi] "+text || second != first {
		t.Errorf("unexpected translations: %q / %q", first, second)
	}
	if remote.calls != 1 {
		t.Errorf("remote calls = %d, want exactly 1", remote.calls)
	}
}

func TestTranslateAsyncDistinctLanguagesAreCachedSeparately(t *testing.T) {
	remote := &fakeRemote{}
	tr := NewTranslator(remote, NewLRUCache(16))

	tr.TranslateAsync(context.Background(), "hello", "hi")
	tr.TranslateAsync(context.Background(), "hello", "kn")

	if remote.calls != 2 {
		t.Errorf("remote calls = %d, want 2 for two languages", remote.calls)
	}
}

func TestTranslateAsyncFailureReturnsSourceText(t *testing.T) {
	remote := &fakeRemote{fail: true}
	tr := NewTranslator(remote, NewLRUCache(16))

	got := tr.TranslateAsync(context.Background(), "hello there", "hi")
	if got != "hello there" {
		t.Errorf("failed translation = %q, want source text", got)
	}

	// Failures are not cached; the next call tries the remote again.
	tr.TranslateAsync(context.Background(), "hello there", "hi")
	if remote.calls != 2 {
		t.Errorf("remote calls = %d, want 2 (failures not cached)", remote.calls)
	}
}

func TestTranslateAsyncPrefersStaticTable(t *testing.T) {
	remote := &fakeRemote{}
	tr := NewTranslator(remote, NewLRUCache(16))

	got := tr.TranslateAsync(context.Background(), "Dashboard", "hi")
	if got != "डैशबोर्ड" {
		t.Errorf("TranslateAsync(Dashboard, hi) = %q", got)
	}
	if remote.calls != 0 {
		t.Errorf("static hits should not call the remote, calls = %d", remote.calls)
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	cache := NewLRUCache(2)
	cache.Set("a", "1")
	cache.Set("b", "2")

	// Touch a so b becomes the eviction candidate.
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("a should be present")
	}

	cache.Set("c", "3")

	if _, ok := cache.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("a should survive eviction")
	}
	if cache.Len() != 2 {
		t.Errorf("cache length = %d, want 2", cache.Len())
	}
}

func TestLRUCacheUpdateExistingKey(t *testing.T) {
	cache := NewLRUCache(2)
	cache.Set("a", "1")
	cache.Set("a", "2")

	got, ok := cache.Get("a")
	if !ok || got != "2" {
		t.Errorf("Get(a) = %q, %v, want updated value", got, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("cache length = %d, want 1", cache.Len())
	}
}
