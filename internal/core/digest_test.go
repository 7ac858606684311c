package core

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/illarion/passworks/internal/crypto"
	"golang.org/x/crypto/pbkdf2"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := New()
	if err := e.Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return e
}

func simpleStrategy(_ context.Context, secret string, p Params) (string, error) {
	newHash, err := crypto.NewHash(p.Algorithm)
	if err != nil {
		return "", err
	}
	h := newHash()
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func TestDigestReturnsRecord(t *testing.T) {
	e := newTestEngine(t, testConfig())
	rec, _ := e.NewRecord()

	got, err := rec.Digest(context.Background(), "digestsecret")
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if got != rec {
		t.Error("Digest should return the same record")
	}
	if !rec.Sealed() {
		t.Error("Record should be sealed after Digest")
	}
}

func TestDigestMatchesPBKDF2(t *testing.T) {
	cfg := testConfig()
	e := newTestEngine(t, cfg)
	rec, _ := e.NewRecord()

	if _, err := rec.Digest(context.Background(), "resolvesecret"); err != nil {
		t.Fatalf("Digest failed: %v", err)
	}

	expected := hex.EncodeToString(pbkdf2.Key([]byte("resolvesecret"), []byte(rec.Salt()), cfg.Iterations, cfg.KeyLength, sha1.New))
	if rec.Hash() != expected {
		t.Errorf("Hash mismatch: got %s, want %s", rec.Hash(), expected)
	}
	if len(rec.Hash()) != 2*cfg.KeyLength {
		t.Errorf("Hash length mismatch: got %d, want %d", len(rec.Hash()), 2*cfg.KeyLength)
	}
}

func TestDigestHashReturnsRawHash(t *testing.T) {
	e := newTestEngine(t, testConfig())
	rec, _ := e.NewRecord()

	h, err := rec.DigestHash(context.Background(), "secret")
	if err != nil {
		t.Fatalf("DigestHash failed: %v", err)
	}
	if h == "" || h != rec.Hash() {
		t.Errorf("DigestHash should return and store the hash: got %q, stored %q", h, rec.Hash())
	}
}

func TestDigestRecomputeOverwrites(t *testing.T) {
	e := newTestEngine(t, testConfig())
	rec, _ := e.NewRecord()
	ctx := context.Background()

	first, _ := rec.DigestHash(ctx, "one")
	second, _ := rec.DigestHash(ctx, "two")
	if first == second {
		t.Fatal("Different secrets should produce different hashes")
	}
	if rec.Hash() != second {
		t.Error("Second digest should overwrite the stored hash")
	}
}

func TestDigestExternalStrategy(t *testing.T) {
	e := newTestEngine(t, Config{Strategy: "simple", Algorithm: "SHA1", Iterations: 1000, KeyLength: 16})
	if err := e.AddStrategy("simple", StrategyFunc(simpleStrategy)); err != nil {
		t.Fatalf("AddStrategy failed: %v", err)
	}

	rec, err := e.NewRecord()
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	h, err := rec.DigestHash(context.Background(), "externalsecret")
	if err != nil {
		t.Fatalf("DigestHash failed: %v", err)
	}

	sum := sha1.Sum([]byte("externalsecret"))
	if h != hex.EncodeToString(sum[:]) {
		t.Errorf("Hash mismatch: got %s, want %x", h, sum)
	}
}

func TestStrategySeesRecordParams(t *testing.T) {
	e := newTestEngine(t, testConfig())
	var seen Params
	err := e.AddStrategy("spy", StrategyFunc(func(_ context.Context, _ string, p Params) (string, error) {
		seen = p
		return "ff", nil
	}))
	if err != nil {
		t.Fatalf("AddStrategy failed: %v", err)
	}

	rec, _ := e.NewRecord(WithStrategy("spy"), WithAlgorithm("sha512"))
	if _, err := rec.Digest(context.Background(), "x"); err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if seen != rec.Params() {
		t.Errorf("Strategy params mismatch: got %+v, want %+v", seen, rec.Params())
	}
}

func TestDigestUnknownStrategy(t *testing.T) {
	e := newTestEngine(t, testConfig())
	rec, _ := e.NewRecord(WithStrategy("missing"))

	_, err := rec.Digest(context.Background(), "secret")
	if !errors.Is(err, ErrStrategy) {
		t.Fatalf("Expected ErrStrategy, got %v", err)
	}
	if KindOf(err) != KindStrategy {
		t.Errorf("Expected strategy kind, got %s", KindOf(err))
	}
	if rec.Sealed() {
		t.Error("Failed digest should not seal the record")
	}
}

func TestDigestStrategyErrorPropagates(t *testing.T) {
	e := newTestEngine(t, testConfig())
	boom := errors.New("boom")
	_ = e.AddStrategy("failing", StrategyFunc(func(context.Context, string, Params) (string, error) {
		return "", boom
	}))

	rec, _ := e.NewRecord(WithStrategy("failing"))
	if _, err := rec.Digest(context.Background(), "secret"); !errors.Is(err, boom) {
		t.Errorf("Expected strategy error, got %v", err)
	}
}

func TestDigestPrimitiveErrorPropagates(t *testing.T) {
	e := newTestEngine(t, testConfig())
	rec, err := e.Parse("pbkdf2:sha256:0:16:abcd:")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = rec.Digest(context.Background(), "secret")
	if !errors.Is(err, crypto.ErrInvalidParams) {
		t.Errorf("Expected crypto.ErrInvalidParams, got %v", err)
	}
	if KindOf(err) != KindUnknown {
		t.Errorf("Primitive errors should keep their own kind, got %s", KindOf(err))
	}
}

func TestDigestContextCanceled(t *testing.T) {
	e := newTestEngine(t, testConfig())
	release := make(chan struct{})
	defer close(release)
	_ = e.AddStrategy("slow", StrategyFunc(func(context.Context, string, Params) (string, error) {
		<-release
		return "aa", nil
	}))

	rec, _ := e.NewRecord(WithStrategy("slow"))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := rec.Digest(ctx, "secret"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func TestDigestCanceledBeforeStart(t *testing.T) {
	e := newTestEngine(t, testConfig())
	var calls atomic.Int32
	_ = e.AddStrategy("counted", StrategyFunc(func(context.Context, string, Params) (string, error) {
		calls.Add(1)
		return "aa", nil
	}))

	rec, _ := e.NewRecord(WithStrategy("counted"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rec.Digest(ctx, "secret"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("Strategy should not run on a canceled context")
	}
}

func TestBuiltinStrategies(t *testing.T) {
	e := newTestEngine(t, Config{Strategy: StrategyPBKDF2, Algorithm: "sha256", Iterations: 1, KeyLength: 16})
	ctx := context.Background()

	for _, name := range []string{StrategyPBKDF2, StrategyPBKDF2HMAC, StrategyDigest, StrategyArgon2id} {
		rec, err := e.Hash(ctx, "secret", WithStrategy(name))
		if err != nil {
			t.Fatalf("%s: Hash failed: %v", name, err)
		}
		if _, err := rec.Matches(ctx, "secret"); err != nil {
			t.Errorf("%s: Matches failed: %v", name, err)
		}
	}
}

func TestDigestStrategyUsesSaltAndAlgorithm(t *testing.T) {
	e := newTestEngine(t, Config{Strategy: StrategyDigest, Algorithm: "sha1", Iterations: 1, KeyLength: 4})
	rec, _ := e.NewRecord()

	h, err := rec.DigestHash(context.Background(), "secret")
	if err != nil {
		t.Fatalf("DigestHash failed: %v", err)
	}
	sum := sha1.Sum([]byte(rec.Salt() + "secret"))
	if h != hex.EncodeToString(sum[:]) {
		t.Errorf("Hash mismatch: got %s, want %x", h, sum)
	}
}

func TestDigestStrategyPanicIsError(t *testing.T) {
	e := newTestEngine(t, testConfig())
	_ = e.AddStrategy("panicky", StrategyFunc(func(context.Context, string, Params) (string, error) {
		panic("index out of range")
	}))

	rec, _ := e.NewRecord(WithStrategy("panicky"))
	_, err := rec.Digest(context.Background(), "secret")
	if !errors.Is(err, ErrStrategy) {
		t.Fatalf("Expected ErrStrategy, got %v", err)
	}
	if !strings.Contains(err.Error(), "index out of range") {
		t.Errorf("Error should carry the panic value: %v", err)
	}
	if rec.Sealed() {
		t.Error("Failed digest should not seal the record")
	}
}

func TestMatchesOversizedParsedParams(t *testing.T) {
	e := New()
	ctx := context.Background()

	inputs := []string{
		"pbkdf2:sha1:1:9223372036854775807:abcd:ff",
		"pbkdf2:sha1:1:8589934592:abcd:ff",
		"pbkdf2-hmac:sha256:1:8589934592:abcd:ff",
		"argon2id::1:8589934592:abcd:ff",
		"pbkdf2:sha1:9223372036854775807:16:abcd:ff",
	}
	for _, in := range inputs {
		rec, err := e.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		if _, err := rec.Matches(ctx, "secret"); !errors.Is(err, crypto.ErrInvalidParams) {
			t.Errorf("Matches(%q): expected crypto.ErrInvalidParams, got %v", in, err)
		}
	}
}

func TestArgon2idRejectsLargeTimeCost(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	_, err := e.Hash(context.Background(), "secret", WithStrategy(StrategyArgon2id))
	if !errors.Is(err, crypto.ErrInvalidParams) {
		t.Errorf("Expected crypto.ErrInvalidParams for %d iterations, got %v", DefaultIterations, err)
	}
}

func TestConcurrentDigestAndMatches(t *testing.T) {
	e := newTestEngine(t, Config{Strategy: StrategyDigest, Algorithm: "sha256", Iterations: 1, KeyLength: 16})
	ctx := context.Background()

	rec, err := e.Hash(ctx, "secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	want := rec.Hash()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := rec.Digest(ctx, "secret"); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := rec.Matches(ctx, "secret"); err != nil {
				errs <- err
			}
			_ = rec.String()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent operation failed: %v", err)
	}
	if rec.Hash() != want {
		t.Errorf("Hash changed: got %s, want %s", rec.Hash(), want)
	}
}
