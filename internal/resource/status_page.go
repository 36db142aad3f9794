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

// DefaultStatusPageCSS is the stylesheet the server stores for new pages
const DefaultStatusPageCSS = "body {\n  \n}\n"

// StatusPageSpec declares a status page and its pinned incident. Without an
// incident any pinned one is removed.
type StatusPageSpec struct {
	client.StatusPage
	Incident *client.Incident `json:"incident,omitempty"`
}

type statusPageKind struct {
	client *client.Client
}

func (k *statusPageKind) Name() string { return "status_page" }

func (k *statusPageKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *statusPageKind) NewSpec() any { return &StatusPageSpec{} }

// Ignore keeps the server's placeholder stylesheet from counting as a change.
func (k *statusPageKind) Ignore() reconcile.IgnorePolicy {
	return reconcile.IgnorePolicy{"custom_css": DefaultStatusPageCSS}
}

func (k *statusPageKind) Identify(spec any) string {
	return spec.(*StatusPageSpec).Slug
}

func (k *statusPageKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	s := spec.(*StatusPageSpec)
	if s.Slug == "" {
		return nil, fmt.Errorf("%w: slug", ErrMissingKey)
	}

	page, err := absentIfNotFound(k.client.GetStatusPage(ctx, s.Slug))
	if err != nil || page == nil {
		return nil, err
	}
	return statusPageObject(page)
}

func (k *statusPageKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(&spec.(*StatusPageSpec).StatusPage)
}

func (k *statusPageKind) Create(ctx context.Context, spec any) (*Object, error) {
	page := spec.(*StatusPageSpec).StatusPage
	page.ID = 0
	if err := k.client.CreateStatusPage(ctx, page.Slug, pointer.StringDeref(page.Title, page.Slug)); err != nil {
		return nil, err
	}
	if err := k.client.SaveStatusPage(ctx, &page); err != nil {
		return nil, err
	}

	created, err := k.client.GetStatusPage(ctx, page.Slug)
	if err != nil {
		return nil, err
	}
	return statusPageObject(created)
}

func (k *statusPageKind) Update(ctx context.Context, _ *Object, spec any) error {
	page := spec.(*StatusPageSpec).StatusPage
	page.ID = 0
	return k.client.SaveStatusPage(ctx, &page)
}

func (k *statusPageKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteStatusPage(ctx, obj.Name)
}

// Sync posts or unpins the incident. The server cannot report whether an
// incident is pinned, so this always counts as a change.
func (k *statusPageKind) Sync(ctx context.Context, _ *Object, spec any, dryRun bool) (reconcile.ChangeSet, error) {
	s := spec.(*StatusPageSpec)
	change := reconcile.Change{Field: "incident", Observed: nil}
	if s.Incident != nil {
		change.Desired = *s.Incident
	}
	if dryRun {
		return reconcile.ChangeSet{change}, nil
	}

	var err error
	if s.Incident != nil {
		err = k.client.PostIncident(ctx, s.Slug, s.Incident)
	} else {
		err = k.client.UnpinIncident(ctx, s.Slug)
	}
	if err != nil {
		return nil, err
	}
	return reconcile.ChangeSet{change}, nil
}

func (k *statusPageKind) List(ctx context.Context) ([]*Object, error) {
	pages, err := k.client.ListStatusPages(ctx)
	if err != nil {
		return nil, err
	}
	return objects(pages, statusPageObject)
}

func statusPageObject(page *client.StatusPage) (*Object, error) {
	return newObject(page.ID, page.Slug, nil, page)
}
