package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ReadKeysFile parses the keys file at path.
func ReadKeysFile(path string) (*KeysConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keys file: %w", err)
	}

	var cfg KeysConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeysFile, err)
	}
	for i, k := range cfg.Keys {
		if strings.TrimSpace(k.Name) == "" {
			return nil, fmt.Errorf("%w: key %d has no name", ErrInvalidKeysFile, i)
		}
	}
	return &cfg, nil
}

// ReadOrCreateKeysFile is ReadKeysFile that treats a missing file as empty.
func ReadOrCreateKeysFile(path string) (*KeysConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &KeysConfig{Keys: []APIKey{}, IPWhitelist: []string{}}, nil
	}
	return ReadKeysFile(path)
}

// WriteKeysFile writes cfg as indented JSON readable only by the owner.
func WriteKeysFile(path string, cfg *KeysConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write keys file: %w", err)
	}
	return nil
}

// AddKey appends a new enabled key, hashing secret with bcrypt.
func (c *KeysConfig) AddKey(name, secret string, rpm int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("key name cannot be empty")
	}
	if c.find(name) >= 0 {
		return fmt.Errorf("key '%s' already exists", name)
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return err
	}
	c.Keys = append(c.Keys, APIKey{
		Name:         name,
		KeyHash:      hash,
		RateLimitRPM: rpm,
		Enabled:      true,
	})
	return nil
}

// SetEnabled toggles the named key.
func (c *KeysConfig) SetEnabled(name string, enabled bool) error {
	i := c.find(name)
	if i < 0 {
		return fmt.Errorf("key '%s' not found", name)
	}
	c.Keys[i].Enabled = enabled
	return nil
}

func (c *KeysConfig) find(name string) int {
	for i, k := range c.Keys {
		if strings.EqualFold(k.Name, name) {
			return i
		}
	}
	return -1
}

// HashSecret generates a bcrypt hash for a key secret.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("secret cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateSecret returns a random 32-character hex secret.
func GenerateSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
