// Package storage keeps the small amount of client state that survives a
// restart: the auth token and the serialized identity. It mirrors the
// key/value contract of browser local storage.
package storage

import (
	"context"
	"sync"
)

// Fixed keys shared by the api client and the session.
const (
	KeyToken = "gympro_token"
	KeyUser  = "gympro_user"
)

type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is a process local Storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory { return &Memory{data: map[string]string{}} }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Clear drops the credentials pair. Missing keys are not an error.
func Clear(ctx context.Context, s Storage) error {
	if err := s.Remove(ctx, KeyToken); err != nil {
		return err
	}
	return s.Remove(ctx, KeyUser)
}
