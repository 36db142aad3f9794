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

	"github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// settingsName identifies the settings singleton
const settingsName = "settings"

type settingsKind struct {
	client *client.Client
}

func (k *settingsKind) Name() string { return settingsName }

func (k *settingsKind) States() []string { return []string{StatePresent} }

func (k *settingsKind) NewSpec() any { return &client.Settings{} }

func (k *settingsKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *settingsKind) Identify(any) string { return settingsName }

func (k *settingsKind) Lookup(ctx context.Context, _ any) (*Object, error) {
	settings, err := k.client.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return newObject(0, settingsName, nil, settings)
}

// Desired leaves out the password. It confirms the write and is never
// stored, so it would always differ.
func (k *settingsKind) Desired(spec any) (*reconcile.State, error) {
	st, err := reconcile.FromStruct(spec)
	if err != nil {
		return nil, err
	}
	return st.Without("password"), nil
}

func (k *settingsKind) Create(context.Context, any) (*Object, error) {
	return nil, fmt.Errorf("%w: settings always exist", ErrUnsupportedOperation)
}

func (k *settingsKind) Update(ctx context.Context, _ *Object, spec any) error {
	return k.client.SetSettings(ctx, spec.(*client.Settings))
}

func (k *settingsKind) Delete(context.Context, *Object) error {
	return fmt.Errorf("%w: settings cannot be deleted", ErrUnsupportedOperation)
}

func (k *settingsKind) List(ctx context.Context) ([]*Object, error) {
	obj, err := k.Lookup(ctx, nil)
	if err != nil {
		return nil, err
	}
	return []*Object{obj}, nil
}
