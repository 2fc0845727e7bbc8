// Package countries provides the immutable registry of countries and their official visa sources.
package countries

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/visa-scraper/internal/types"
)

// RegistryError represents an invalid registry definition
type RegistryError struct {
	Message string
	Cause   error
}

func (e *RegistryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("registry error: %s", e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// Registry is an ordered, read-only set of country profiles.
// It is built once at startup and handed to the pipeline explicitly.
type Registry struct {
	keys     []string
	profiles map[string]types.CountryProfile
}

// New builds a registry from profiles, validating each one and rejecting duplicate keys.
func New(profiles ...types.CountryProfile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, &RegistryError{Message: "no countries defined"}
	}

	validate := validator.New()
	r := &Registry{
		keys:     make([]string, 0, len(profiles)),
		profiles: make(map[string]types.CountryProfile, len(profiles)),
	}

	for _, p := range profiles {
		if err := validate.Struct(p); err != nil {
			return nil, &RegistryError{
				Message: fmt.Sprintf("invalid country %q", p.Key),
				Cause:   err,
			}
		}
		if _, exists := r.profiles[p.Key]; exists {
			return nil, &RegistryError{Message: fmt.Sprintf("duplicate country key %q", p.Key)}
		}
		r.keys = append(r.keys, p.Key)
		r.profiles[p.Key] = copyProfile(p)
	}

	return r, nil
}

// Load reads a registry from a JSON file containing an array of country profiles.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RegistryError{
			Message: fmt.Sprintf("failed to read registry file %s", path),
			Cause:   err,
		}
	}

	var profiles []types.CountryProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, &RegistryError{
			Message: "failed to parse registry JSON",
			Cause:   err,
		}
	}

	return New(profiles...)
}

// Keys returns the country keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Get returns the profile for key.
func (r *Registry) Get(key string) (types.CountryProfile, bool) {
	p, ok := r.profiles[key]
	if !ok {
		return types.CountryProfile{}, false
	}
	return copyProfile(p), true
}

// Len returns the number of countries
func (r *Registry) Len() int {
	return len(r.keys)
}

// Profiles returns all profiles in registry order.
func (r *Registry) Profiles() []types.CountryProfile {
	out := make([]types.CountryProfile, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, copyProfile(r.profiles[key]))
	}
	return out
}

func copyProfile(p types.CountryProfile) types.CountryProfile {
	urls := make([]string, len(p.SourceURLs))
	copy(urls, p.SourceURLs)
	p.SourceURLs = urls
	return p
}
