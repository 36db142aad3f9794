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

type groupKind struct {
	client *client.Client
}

func (k *groupKind) Name() string { return "group" }

func (k *groupKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *groupKind) NewSpec() any { return &client.Group{} }

func (k *groupKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *groupKind) Identify(spec any) string {
	g := spec.(*client.Group)
	return identify(g.ID, g.Name)
}

func (k *groupKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	g := spec.(*client.Group)

	var found *client.Group
	var err error
	switch {
	case g.ID != 0:
		found, err = absentIfNotFound(k.client.GetGroup(ctx, g.ID, false))
	case g.Name != nil:
		found, err = k.client.FindGroupByName(ctx, *g.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || found == nil {
		return nil, err
	}
	return groupObject(found)
}

func (k *groupKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(spec)
}

func (k *groupKind) Create(ctx context.Context, spec any) (*Object, error) {
	g := *spec.(*client.Group)
	g.ID = 0
	id, err := k.client.CreateGroup(ctx, &g)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: pointer.StringDeref(g.Name, "")}, nil
}

func (k *groupKind) Update(ctx context.Context, obj *Object, spec any) error {
	g := *spec.(*client.Group)
	g.ID = 0
	return k.client.UpdateGroup(ctx, obj.ID, &g)
}

func (k *groupKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteGroup(ctx, obj.ID, false)
}

func (k *groupKind) List(ctx context.Context) ([]*Object, error) {
	result, err := k.client.ListGroups(ctx, 1, 1000)
	if err != nil {
		return nil, err
	}
	return objects(result.Groups, groupObject)
}

func groupObject(g *client.Group) (*Object, error) {
	return newObject(g.ID, pointer.StringDeref(g.Name, ""), nil, g)
}
