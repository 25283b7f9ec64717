// Package storagetest provides an in-memory storage.BlobStore for tests.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

var ErrInjected = errors.New("injected blob failure")

type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Fail* make the next calls of the matching method fail.
	FailPut    bool
	FailRemove bool
	FailURL    bool

	Removed []string
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut {
		return "", ErrInjected
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[objectName] = data
	return objectName, nil
}

func (m *Memory) URL(ref string) (string, error) {
	if m.FailURL {
		return "", ErrInjected
	}
	return "http://blobs.test/fleet/" + ref, nil
}

func (m *Memory) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[ref]
	if !ok {
		return nil, fmt.Errorf("object %s not found", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Remove(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRemove {
		return ErrInjected
	}
	delete(m.objects, ref)
	m.Removed = append(m.Removed, ref)
	return nil
}

func (m *Memory) Has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[ref]
	return ok
}

// Refs lists stored object names in order.
func (m *Memory) Refs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs := make([]string, 0, len(m.objects))
	for k := range m.objects {
		refs = append(refs, k)
	}
	sort.Strings(refs)
	return refs
}
