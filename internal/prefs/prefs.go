// Package prefs holds per-installation preferences: the cached
// Anthropic key and the locally chosen display name. Both are plain
// strings; the key is never sent anywhere except as the auth header of
// an analysis request.
package prefs

import "github.com/idealmente/idealmente/internal/repository"

const (
	keyAnthropic = "anthropic_key"
	keyUsername  = "idealmente_username"
)

type Store struct {
	kv *repository.KVStore
}

func NewStore(kv *repository.KVStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) AnthropicKey() string {
	v, _, err := s.kv.Get(keyAnthropic)
	if err != nil {
		return ""
	}
	return v
}

func (s *Store) SetAnthropicKey(key string) error {
	return s.kv.Set(keyAnthropic, key)
}

func (s *Store) Username() string {
	v, _, err := s.kv.Get(keyUsername)
	if err != nil {
		return ""
	}
	return v
}

// SetUsername stores the new display name. Prior ratings keyed by the
// old name are not relinked; two names are two independent raters.
func (s *Store) SetUsername(name string) error {
	return s.kv.Set(keyUsername, name)
}
