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
	"context"
	"fmt"

	"k8s.io/utils/pointer"

	"github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

type apiKeyKind struct {
	client *client.Client
}

func (k *apiKeyKind) Name() string { return "api_key" }

func (k *apiKeyKind) States() []string {
	return []string{StatePresent, StateAbsent, StateEnabled, StateDisabled}
}

func (k *apiKeyKind) NewSpec() any { return &client.APIKey{} }

func (k *apiKeyKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *apiKeyKind) Identify(spec any) string {
	key := spec.(*client.APIKey)
	return identify(key.ID, key.Name)
}

func (k *apiKeyKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	key := spec.(*client.APIKey)

	var found *client.APIKey
	var err error
	switch {
	case key.ID != 0:
		found, err = absentIfNotFound(k.client.GetAPIKey(ctx, key.ID))
	case key.Name != nil:
		found, err = k.client.FindAPIKeyByName(ctx, *key.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || found == nil {
		return nil, err
	}
	return apiKeyObject(found)
}

// Desired is empty: keys cannot be edited once issued.
func (k *apiKeyKind) Desired(any) (*reconcile.State, error) {
	return reconcile.NewState(), nil
}

// Create returns the clear text key in Extra["key"]. It is only available
// from this call.
func (k *apiKeyKind) Create(ctx context.Context, spec any) (*Object, error) {
	key := *spec.(*client.APIKey)
	key.ID = 0
	created, err := k.client.CreateAPIKey(ctx, &key)
	if err != nil {
		return nil, err
	}
	return &Object{
		ID:    created.KeyID,
		Name:  pointer.StringDeref(key.Name, ""),
		Extra: map[string]any{"key": created.Key},
	}, nil
}

func (k *apiKeyKind) Update(context.Context, *Object, any) error {
	return fmt.Errorf("%w: API keys cannot be edited", ErrUnsupportedOperation)
}

func (k *apiKeyKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteAPIKey(ctx, obj.ID)
}

func (k *apiKeyKind) Enable(ctx context.Context, obj *Object) error {
	return k.client.EnableAPIKey(ctx, obj.ID)
}

func (k *apiKeyKind) Disable(ctx context.Context, obj *Object) error {
	return k.client.DisableAPIKey(ctx, obj.ID)
}

func (k *apiKeyKind) List(ctx context.Context) ([]*Object, error) {
	keys, err := k.client.ListAPIKeys(ctx)
	if err != nil {
		return nil, err
	}
	return objects(keys, apiKeyObject)
}

func apiKeyObject(key *client.APIKey) (*Object, error) {
	return newObject(key.ID, pointer.StringDeref(key.Name, ""), key.Active, key)
}
