package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, cfg *KeysConfig) (*KeyStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := WriteKeysFile(path, cfg); err != nil {
		t.Fatal(err)
	}
	store, err := NewKeyStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return store, path
}

func TestKeyStoreValidateCredentials(t *testing.T) {
	cfg := &KeysConfig{}
	if err := cfg.AddKey("Studio", "s3cret", 0); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddKey("retired", "old", 0); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetEnabled("retired", false); err != nil {
		t.Fatal(err)
	}

	store, _ := newTestStore(t, cfg)

	if store.KeyCount() != 1 {
		t.Errorf("KeyCount = %d, want 1", store.KeyCount())
	}
	if _, ok := store.ValidateCredentials("studio", "s3cret"); !ok {
		t.Error("valid credentials rejected")
	}
	if _, ok := store.ValidateCredentials("studio", "wrong"); ok {
		t.Error("wrong secret accepted")
	}
	if _, ok := store.ValidateCredentials("retired", "old"); ok {
		t.Error("disabled key accepted")
	}
	if _, ok := store.ValidateCredentials("ghost", "x"); ok {
		t.Error("unknown key accepted")
	}
}

func TestKeyStoreIPWhitelist(t *testing.T) {
	store, _ := newTestStore(t, &KeysConfig{IPWhitelist: []string{"10.0.0.0/8", "192.168.1.5", "::1"}})

	tests := map[string]bool{
		"10.1.2.3":      true,
		"10.1.2.3:5555": true,
		"192.168.1.5":   true,
		"192.168.1.6":   false,
		"[::1]:8080":    true,
		"not-an-ip":     false,
		"172.16.0.1:80": false,
	}
	for addr, want := range tests {
		if got := store.CheckIPAllowed(addr); got != want {
			t.Errorf("CheckIPAllowed(%q) = %v, want %v", addr, got, want)
		}
	}

	open, _ := newTestStore(t, &KeysConfig{})
	if !open.CheckIPAllowed("8.8.8.8") {
		t.Error("empty whitelist should allow all")
	}
}

func TestKeyStoreBadWhitelist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	os.WriteFile(path, []byte(`{"keys":[],"ip_whitelist":["10.0.0.0/99"]}`), 0o600)
	if _, err := NewKeyStore(path); !errors.Is(err, ErrInvalidKeysFile) {
		t.Fatalf("expected ErrInvalidKeysFile, got %v", err)
	}
}

func TestReadKeysFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadKeysFile(filepath.Join(dir, "none.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"keys": [`), 0o600)
	if _, err := ReadKeysFile(bad); !errors.Is(err, ErrInvalidKeysFile) {
		t.Errorf("expected ErrInvalidKeysFile, got %v", err)
	}

	nameless := filepath.Join(dir, "nameless.json")
	os.WriteFile(nameless, []byte(`{"keys": [{"name": " "}]}`), 0o600)
	if _, err := ReadKeysFile(nameless); !errors.Is(err, ErrInvalidKeysFile) {
		t.Errorf("expected ErrInvalidKeysFile, got %v", err)
	}

	cfg, err := ReadOrCreateKeysFile(filepath.Join(dir, "fresh.json"))
	if err != nil || len(cfg.Keys) != 0 {
		t.Errorf("ReadOrCreateKeysFile = %+v, %v", cfg, err)
	}
}

func TestAddKeyRejectsDuplicates(t *testing.T) {
	cfg := &KeysConfig{}
	if err := cfg.AddKey("ci", "a", 10); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddKey("CI", "b", 10); err == nil {
		t.Error("duplicate name accepted")
	}
	if err := cfg.AddKey("", "b", 10); err == nil {
		t.Error("empty name accepted")
	}
	if err := cfg.SetEnabled("missing", true); err == nil {
		t.Error("SetEnabled on unknown key succeeded")
	}
}

func TestKeyStoreRateLimit(t *testing.T) {
	cfg := &KeysConfig{}
	cfg.AddKey("limited", "x", 60)
	cfg.AddKey("free", "y", 0)
	store, _ := newTestStore(t, cfg)

	for i := 0; i < 10; i++ {
		if !store.CheckRateLimit("limited") {
			t.Fatalf("request %d rejected within burst", i)
		}
	}
	if store.CheckRateLimit("limited") {
		t.Error("request beyond burst allowed")
	}
	for i := 0; i < 50; i++ {
		if !store.CheckRateLimit("free") {
			t.Fatal("unlimited key was limited")
		}
	}
	if store.CheckRateLimit("unknown") {
		t.Error("unknown key allowed")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }

	rl.SetLimit("a", 60) // 1 token/s, burst 10
	for i := 0; i < 10; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d rejected", i)
		}
	}
	if rl.Allow("a") {
		t.Fatal("bucket should be empty")
	}

	now = now.Add(2 * time.Second)
	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("refill did not restore two tokens")
	}
	if rl.Allow("a") {
		t.Error("refill restored too many tokens")
	}

	if rl.Remaining("nobody") != -1 {
		t.Error("unlimited identity should report -1")
	}
	if !rl.Allow("nobody") {
		t.Error("unlimited identity rejected")
	}
}

func TestRateLimiterAllowWithDefault(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		if !rl.AllowWithDefault("203.0.113.9", 30) {
			t.Fatalf("request %d rejected", i)
		}
	}
	if rl.AllowWithDefault("203.0.113.9", 30) {
		t.Error("request beyond burst allowed")
	}
	if !rl.AllowWithDefault("198.51.100.1", 30) {
		t.Error("separate identity shares a bucket")
	}
	if !rl.AllowWithDefault("203.0.113.9", 0) {
		t.Error("rpm 0 should disable limiting")
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateSecret()
	if len(a) != 32 || a == b {
		t.Errorf("secrets %q and %q not unique 32-char values", a, b)
	}
	if _, err := HashSecret(""); err == nil {
		t.Error("empty secret hashed")
	}
}

func TestRateLimiterEvictsRefilledBuckets(t *testing.T) {
	start := time.Unix(1700000000, 0)
	now := start
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }
	rl.SetLimit("studio", 60) // 1 token/s, burst 10

	for i := 0; i < 500; i++ {
		rl.AllowWithDefault(fmt.Sprintf("client-%d", i), 60)
	}

	now = start.Add(sweepInterval - 5*time.Second)
	for i := 0; i < 10; i++ {
		rl.AllowWithDefault("203.0.113.9", 60)
	}
	if rl.Len() != 502 {
		t.Fatalf("tracked %d identities, want 502", rl.Len())
	}

	// the 500 clients have refilled; 203.0.113.9 is still 5 tokens short
	now = start.Add(sweepInterval)
	if !rl.AllowWithDefault("203.0.113.9", 60) {
		t.Fatal("partially refilled bucket rejected")
	}
	if rl.Len() != 2 {
		t.Errorf("tracked %d identities after sweep, want 2", rl.Len())
	}
	if rl.Remaining("studio") != 10 {
		t.Error("configured key bucket was evicted")
	}
	if got := rl.Remaining("203.0.113.9"); got < 3.9 || got > 4.1 {
		t.Errorf("drained bucket was reset, remaining = %v", got)
	}
}
