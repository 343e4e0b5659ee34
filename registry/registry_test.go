package registry

import (
	"testing"

	"github.com/unkn0wn-root/toon"
)

func newToken(t *testing.T, id toon.TokenId, v toon.Value) toon.Token {
	t.Helper()
	return toon.NewToken(id, v, toon.Metadata{})
}

func TestRegisterAndResolve(t *testing.T) {
	r := New(Options{})
	id := toon.NewTokenID()
	tok := newToken(t, id, toon.String("hello"))

	r.Register(tok)

	got, err := r.ResolveRef(toon.NewRef(id))
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if !got.Value().Equal(tok.Value()) {
		t.Fatalf("resolved value mismatch: got %+v want %+v", got.Value(), tok.Value())
	}
}

func TestResolveMissingReturnsNotFound(t *testing.T) {
	r := New(Options{})
	id := toon.NewTokenID()

	_, err := r.ResolveRef(toon.NewRef(id))
	if err == nil {
		t.Fatalf("expected error for missing id")
	}
	nf, ok := err.(*toon.NotFoundError)
	if !ok {
		t.Fatalf("expected *toon.NotFoundError, got %T: %v", err, err)
	}
	if nf.ID != id {
		t.Fatalf("NotFoundError.ID = %v, want %v", nf.ID, id)
	}
}

func TestResolveOrLoadInsertsLoadedToken(t *testing.T) {
	r := New(Options{})
	id := toon.NewTokenID()
	wantTok := newToken(t, id, toon.Int(42))

	calls := 0
	loader := func(want toon.TokenId) (toon.Token, bool) {
		calls++
		if want != id {
			t.Fatalf("loader called with unexpected id %v", want)
		}
		return wantTok, true
	}

	got, ok, err := r.ResolveRefOrLoad(toon.NewRef(id), loader)
	if err != nil || !ok {
		t.Fatalf("ResolveRefOrLoad: ok=%v err=%v", ok, err)
	}
	if !got.Value().Equal(wantTok.Value()) {
		t.Fatalf("loaded value mismatch")
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}

	// Second resolution must hit the cache, not the loader again.
	if _, _, err := r.ResolveRefOrLoad(toon.NewRef(id), loader); err != nil {
		t.Fatalf("second ResolveRefOrLoad: %v", err)
	}
	if calls != 1 {
		t.Fatalf("loader called %d times after cache hit, want 1", calls)
	}
}

func TestWeakRefMissingDoesNotLoad(t *testing.T) {
	r := New(Options{})
	id := toon.NewTokenID()

	called := false
	loader := func(toon.TokenId) (toon.Token, bool) {
		called = true
		return toon.Token{}, false
	}

	_, ok, err := r.ResolveRefOrLoad(toon.NewWeakRef(id), loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing weak ref")
	}
	if called {
		t.Fatalf("loader must not be called for a weak ref")
	}
}

func TestStrongRefMissingLoaderFailureIsNotFound(t *testing.T) {
	r := New(Options{})
	id := toon.NewTokenID()

	loader := func(toon.TokenId) (toon.Token, bool) { return toon.Token{}, false }

	_, ok, err := r.ResolveRefOrLoad(toon.NewRef(id), loader)
	if ok {
		t.Fatalf("expected ok=false")
	}
	if _, isNF := err.(*toon.NotFoundError); !isNF {
		t.Fatalf("expected *toon.NotFoundError, got %T: %v", err, err)
	}
}

func TestLRUEvictionRespectsMaxEntries(t *testing.T) {
	r := New(Options{MaxEntries: 2})
	idA, idB, idC := toon.NewTokenID(), toon.NewTokenID(), toon.NewTokenID()

	r.Register(newToken(t, idA, toon.Int(1)))
	r.Register(newToken(t, idB, toon.Int(2)))
	r.Register(newToken(t, idC, toon.Int(3))) // evicts idA, the least recently touched

	if _, ok := r.Get(idA); ok {
		t.Fatalf("expected idA to be evicted")
	}
	if _, ok := r.Get(idB); !ok {
		t.Fatalf("expected idB to still be cached")
	}
	if _, ok := r.Get(idC); !ok {
		t.Fatalf("expected idC to still be cached")
	}
}

func TestGetTouchesRecency(t *testing.T) {
	r := New(Options{MaxEntries: 2})
	idA, idB, idC := toon.NewTokenID(), toon.NewTokenID(), toon.NewTokenID()

	r.Register(newToken(t, idA, toon.Int(1)))
	r.Register(newToken(t, idB, toon.Int(2)))
	r.Get(idA) // idA is now more recently used than idB
	r.Register(newToken(t, idC, toon.Int(3))) // should evict idB, not idA

	if _, ok := r.Get(idB); ok {
		t.Fatalf("expected idB to be evicted")
	}
	if _, ok := r.Get(idA); !ok {
		t.Fatalf("expected idA to survive due to recent touch")
	}
}

func TestTokenRefStrengthDefaultsToStrong(t *testing.T) {
	id := toon.NewTokenID()
	ref := toon.NewRef(id)
	if ref.Strength() != toon.Strong {
		t.Fatalf("NewRef strength = %v, want Strong", ref.Strength())
	}
}
