package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

func noopStrategy(context.Context, string, Params) (string, error) { return "", nil }

func TestAddStrategy(t *testing.T) {
	r := NewRegistry()
	if err := r.AddStrategy("test", StrategyFunc(noopStrategy)); err != nil {
		t.Fatalf("AddStrategy failed: %v", err)
	}
	if !r.Has("test") {
		t.Error("Strategy should be registered")
	}
	if _, err := r.Lookup("test"); err != nil {
		t.Errorf("Lookup failed: %v", err)
	}
}

func TestAddStrategyDuplicate(t *testing.T) {
	r := NewRegistry()
	_ = r.AddStrategy("test", StrategyFunc(noopStrategy))

	err := r.AddStrategy("test", StrategyFunc(noopStrategy))
	if !errors.Is(err, ErrStrategy) {
		t.Fatalf("Expected ErrStrategy, got %v", err)
	}
	if !strings.Contains(err.Error(), `strategy "test" already exists`) {
		t.Errorf("Error should name the strategy: %v", err)
	}
}

func TestAddStrategyBuiltinIsProtected(t *testing.T) {
	r := NewRegistry()
	if err := r.AddStrategy(StrategyPBKDF2, StrategyFunc(noopStrategy)); !errors.Is(err, ErrStrategy) {
		t.Errorf("Built-in strategies must not be replaced, got %v", err)
	}
}

func TestAddStrategyNotAFunction(t *testing.T) {
	r := NewRegistry()

	var nilFunc StrategyFunc
	for _, fn := range []Strategy{nil, nilFunc} {
		err := r.AddStrategy("testNoFn", fn)
		if !errors.Is(err, ErrStrategy) {
			t.Fatalf("Expected ErrStrategy, got %v", err)
		}
		if !strings.Contains(err.Error(), `expected second argument "fn" to be a function`) {
			t.Errorf("Unexpected message: %v", err)
		}
	}
	if r.Has("testNoFn") {
		t.Error("Invalid strategy should not be registered")
	}
}

func TestAddStrategyEmptyName(t *testing.T) {
	if err := NewRegistry().AddStrategy("", StrategyFunc(noopStrategy)); !errors.Is(err, ErrStrategy) {
		t.Errorf("Expected ErrStrategy, got %v", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup("nope")
	if !errors.Is(err, ErrStrategy) {
		t.Errorf("Expected ErrStrategy, got %v", err)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	_ = r.AddStrategy("custom", StrategyFunc(noopStrategy))

	names := r.Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names should be sorted: %v", names)
	}
	for _, want := range []string{StrategyPBKDF2, StrategyPBKDF2HMAC, StrategyDigest, StrategyArgon2id, "custom"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Missing strategy %s in %v", want, names)
		}
	}
}

func TestRegistrationsSurviveInit(t *testing.T) {
	e := New()
	if err := e.AddStrategy("kept", StrategyFunc(noopStrategy)); err != nil {
		t.Fatalf("AddStrategy failed: %v", err)
	}
	if err := e.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := e.Init(testConfig()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !e.Registry().Has("kept") {
		t.Error("Registration should survive re-initialization")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	_ = a.AddStrategy("only-a", StrategyFunc(noopStrategy))
	if b.Registry().Has("only-a") {
		t.Error("Engines should not share registrations")
	}
}
