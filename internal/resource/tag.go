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

type tagKind struct {
	client *client.Client
}

func (k *tagKind) Name() string { return "tag" }

func (k *tagKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *tagKind) NewSpec() any { return &client.Tag{} }

func (k *tagKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *tagKind) Identify(spec any) string {
	t := spec.(*client.Tag)
	return identify(t.ID, t.Name)
}

func (k *tagKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	t := spec.(*client.Tag)

	var found *client.Tag
	var err error
	switch {
	case t.ID != 0:
		found, err = absentIfNotFound(k.client.GetTag(ctx, t.ID))
	case t.Name != nil:
		found, err = k.client.FindTagByName(ctx, *t.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || found == nil {
		return nil, err
	}
	return tagObject(found)
}

func (k *tagKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(spec)
}

func (k *tagKind) Create(ctx context.Context, spec any) (*Object, error) {
	t := *spec.(*client.Tag)
	t.ID = 0
	created, err := k.client.CreateTag(ctx, &t)
	if err != nil {
		return nil, err
	}
	return tagObject(created)
}

func (k *tagKind) Update(ctx context.Context, obj *Object, spec any) error {
	t := *spec.(*client.Tag)
	t.ID = 0
	_, err := k.client.UpdateTag(ctx, obj.ID, &t)
	return err
}

func (k *tagKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteTag(ctx, obj.ID)
}

func (k *tagKind) List(ctx context.Context) ([]*Object, error) {
	tags, err := k.client.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return objects(tags, tagObject)
}

func tagObject(t *client.Tag) (*Object, error) {
	return newObject(t.ID, pointer.StringDeref(t.Name, ""), nil, t)
}
