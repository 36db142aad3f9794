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

type proxyKind struct {
	client *client.Client
}

func (k *proxyKind) Name() string { return "proxy" }

func (k *proxyKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *proxyKind) NewSpec() any { return &client.Proxy{} }

// Ignore treats a stored applyExisting of false or null as matching. The
// flag only triggers a one-off action when set.
func (k *proxyKind) Ignore() reconcile.IgnorePolicy {
	return reconcile.IgnorePolicy{"applyExisting": []any{false, nil}}
}

func (k *proxyKind) Identify(spec any) string {
	p := spec.(*client.Proxy)
	if p.Host != nil && p.Port != nil {
		return fmt.Sprintf("%s:%d", *p.Host, *p.Port)
	}
	return identify(p.ID, nil)
}

func (k *proxyKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	p := spec.(*client.Proxy)

	var found *client.Proxy
	var err error
	switch {
	case p.ID != 0:
		found, err = absentIfNotFound(k.client.GetProxy(ctx, p.ID))
	case p.Host != nil && p.Port != nil:
		found, err = k.client.FindProxyByHostPort(ctx, *p.Host, *p.Port)
	default:
		return nil, fmt.Errorf("%w: id or host and port", ErrMissingKey)
	}
	if err != nil || found == nil {
		return nil, err
	}
	return proxyObject(found)
}

func (k *proxyKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(spec)
}

func (k *proxyKind) Create(ctx context.Context, spec any) (*Object, error) {
	p := *spec.(*client.Proxy)
	p.ID = 0
	id, err := k.client.CreateProxy(ctx, &p)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: k.Identify(&p)}, nil
}

func (k *proxyKind) Update(ctx context.Context, obj *Object, spec any) error {
	p := *spec.(*client.Proxy)
	p.ID = 0
	return k.client.UpdateProxy(ctx, obj.ID, &p)
}

func (k *proxyKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteProxy(ctx, obj.ID)
}

func (k *proxyKind) List(ctx context.Context) ([]*Object, error) {
	proxies, err := k.client.ListProxies(ctx)
	if err != nil {
		return nil, err
	}
	return objects(proxies, proxyObject)
}

func proxyObject(p *client.Proxy) (*Object, error) {
	name := fmt.Sprintf("%s:%d", pointer.StringDeref(p.Host, ""), pointer.IntDeref(p.Port, 0))
	return newObject(p.ID, name, p.Active, p)
}
