/*
Copyright 2026 Ben.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package resource

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benn447/uptime-kuma/declarative/pkg/client"
)

// Registry maps kind names to their implementation
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Register adds a kind. Registering the same name twice fails.
func (r *Registry) Register(k Kind) error {
	if k == nil {
		return fmt.Errorf("kind is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[k.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, k.Name())
	}
	r.kinds[k.Name()] = k
	return nil
}

// Get returns the kind registered under name
func (r *Registry) Get(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}

// Kinds returns the registered kind names, sorted
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry registers every built-in kind against c. A nil providers
// uses DefaultNotificationProviders.
func DefaultRegistry(c *client.Client, providers *NotificationProviders) (*Registry, error) {
	if providers == nil {
		providers = DefaultNotificationProviders()
	}

	r := NewRegistry()
	for _, k := range []Kind{
		&monitorKind{client: c},
		&groupKind{client: c},
		&notificationKind{client: c, providers: providers},
		&proxyKind{client: c},
		&tagKind{client: c},
		&monitorTagKind{client: c},
		&maintenanceKind{client: c, now: time.Now},
		&statusPageKind{client: c},
		&apiKeyKind{client: c},
		&dockerHostKind{client: c},
		&settingsKind{client: c},
	} {
		if err := r.Register(k); err != nil {
			return nil, err
		}
	}
	return r, nil
}
