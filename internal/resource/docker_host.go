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

type dockerHostKind struct {
	client *client.Client
}

func (k *dockerHostKind) Name() string { return "docker_host" }

func (k *dockerHostKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *dockerHostKind) NewSpec() any { return &client.DockerHost{} }

func (k *dockerHostKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *dockerHostKind) Identify(spec any) string {
	h := spec.(*client.DockerHost)
	return identify(h.ID, h.Name)
}

func (k *dockerHostKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	h := spec.(*client.DockerHost)

	var found *client.DockerHost
	var err error
	switch {
	case h.ID != 0:
		found, err = absentIfNotFound(k.client.GetDockerHost(ctx, h.ID))
	case h.Name != nil:
		found, err = k.client.FindDockerHostByName(ctx, *h.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || found == nil {
		return nil, err
	}
	return dockerHostObject(found)
}

func (k *dockerHostKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(spec)
}

func (k *dockerHostKind) Create(ctx context.Context, spec any) (*Object, error) {
	h := *spec.(*client.DockerHost)
	h.ID = 0
	id, err := k.client.CreateDockerHost(ctx, &h)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: pointer.StringDeref(h.Name, "")}, nil
}

func (k *dockerHostKind) Update(ctx context.Context, obj *Object, spec any) error {
	h := *spec.(*client.DockerHost)
	h.ID = 0
	return k.client.UpdateDockerHost(ctx, obj.ID, &h)
}

func (k *dockerHostKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteDockerHost(ctx, obj.ID)
}

func (k *dockerHostKind) List(ctx context.Context) ([]*Object, error) {
	hosts, err := k.client.ListDockerHosts(ctx)
	if err != nil {
		return nil, err
	}
	return objects(hosts, dockerHostObject)
}

func dockerHostObject(h *client.DockerHost) (*Object, error) {
	return newObject(h.ID, pointer.StringDeref(h.Name, ""), nil, h)
}
