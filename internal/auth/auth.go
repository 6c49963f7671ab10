package auth

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKeysFile is returned when the keys file cannot be parsed.
var ErrInvalidKeysFile = errors.New("invalid keys file")

// APIKey is a named credential allowed to call the palette API.
type APIKey struct {
	Name         string `json:"name"`
	KeyHash      string `json:"key_hash"`
	RateLimitRPM int    `json:"rate_limit_rpm"` // Requests per minute, 0 = unlimited
	Enabled      bool   `json:"enabled"`
}

// KeysConfig is the on-disk keys file.
type KeysConfig struct {
	Keys        []APIKey `json:"keys"`
	IPWhitelist []string `json:"ip_whitelist"` // CIDR notation, empty = allow all
}

// KeyStore authenticates API keys and enforces per-key rate limits.
type KeyStore struct {
	mu          sync.RWMutex
	keys        map[string]*APIKey
	ipWhitelist []*net.IPNet
	rateLimiter *RateLimiter
}

// NewKeyStore creates a key store from a keys file.
func NewKeyStore(path string) (*KeyStore, error) {
	store := &KeyStore{
		keys:        make(map[string]*APIKey),
		rateLimiter: NewRateLimiter(),
	}

	if err := store.LoadFromFile(path); err != nil {
		return nil, err
	}

	return store, nil
}

// LoadFromFile replaces the store contents with the keys file at path.
func (s *KeyStore) LoadFromFile(path string) error {
	cfg, err := ReadKeysFile(path)
	if err != nil {
		return err
	}
	return s.Apply(cfg)
}

// Apply replaces the store contents with cfg.
func (s *KeyStore) Apply(cfg *KeysConfig) error {
	whitelist, err := ParseNetworks(cfg.IPWhitelist)
	if err != nil {
		return fmt.Errorf("%w: ip whitelist: %v", ErrInvalidKeysFile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = make(map[string]*APIKey)
	for i := range cfg.Keys {
		key := cfg.Keys[i]
		if !key.Enabled {
			continue
		}
		name := strings.ToLower(key.Name)
		s.keys[name] = &key
		if key.RateLimitRPM > 0 {
			s.rateLimiter.SetLimit(name, key.RateLimitRPM)
		}
	}
	s.ipWhitelist = whitelist

	return nil
}

// ParseNetworks parses CIDR ranges. A bare address is treated as a single
// host (/32 or /128).
func ParseNetworks(entries []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, cidr := range entries {
		// Handle single IP addresses without CIDR notation
		if !strings.Contains(cidr, "/") {
			if strings.Contains(cidr, ":") {
				cidr = cidr + "/128"
			} else {
				cidr = cidr + "/32"
			}
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("entry '%s': %w", cidr, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// ValidateCredentials checks a key name and secret against the stored hash.
func (s *KeyStore) ValidateCredentials(name, secret string) (*APIKey, bool) {
	s.mu.RLock()
	key, exists := s.keys[strings.ToLower(name)]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(secret)); err != nil {
		return nil, false
	}
	return key, true
}

// CheckIPAllowed reports whether addr ("ip" or "ip:port") may connect.
// An empty whitelist allows everyone.
func (s *KeyStore) CheckIPAllowed(addr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ipWhitelist) == 0 {
		return true
	}

	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	return ContainsIP(s.ipWhitelist, host)
}

// ContainsIP reports whether ip falls inside any of nets.
func ContainsIP(nets []*net.IPNet, ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, ipNet := range nets {
		if ipNet.Contains(parsed) {
			return true
		}
	}
	return false
}

// CheckRateLimit reports whether the key may make another request now.
func (s *KeyStore) CheckRateLimit(name string) bool {
	name = strings.ToLower(name)

	s.mu.RLock()
	key, exists := s.keys[name]
	s.mu.RUnlock()

	if !exists {
		return false
	}
	if key.RateLimitRPM <= 0 {
		return true
	}
	return s.rateLimiter.Allow(name)
}

// KeyCount returns the number of enabled keys.
func (s *KeyStore) KeyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
