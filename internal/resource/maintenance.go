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
	"sort"
	"strconv"
	"time"

	"k8s.io/utils/pointer"

	"github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// maintenanceDateLayout is the server's date format for dateRange
const maintenanceDateLayout = "2006-01-02 15:04:05"

// DefaultMaintenanceTimeRange is used when a maintenance declares none
var DefaultMaintenanceTimeRange = []client.TimeOfDay{{Hours: 2, Minutes: 0}, {Hours: 3, Minutes: 0}}

// LinkRef selects a monitor or status page by id or by name
type LinkRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r LinkRef) String() string {
	if r.ID != 0 {
		return "#" + strconv.Itoa(r.ID)
	}
	return r.Name
}

// MaintenanceSpec declares a maintenance window and what it covers. A nil
// link list leaves the stored links alone; an empty one clears them.
type MaintenanceSpec struct {
	client.Maintenance
	Monitors    []LinkRef `json:"monitors,omitempty"`
	StatusPages []LinkRef `json:"status_pages,omitempty"`

	monitorLinks    []client.MaintenanceLink
	statusPageLinks []client.MaintenanceLink
}

type maintenanceKind struct {
	client *client.Client
	now    func() time.Time
}

func (k *maintenanceKind) Name() string { return "maintenance" }

func (k *maintenanceKind) States() []string {
	return []string{StatePresent, StateAbsent, StatePaused, StateResumed}
}

func (k *maintenanceKind) NewSpec() any { return &MaintenanceSpec{} }

func (k *maintenanceKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *maintenanceKind) Identify(spec any) string {
	s := spec.(*MaintenanceSpec)
	return identify(s.ID, s.Title)
}

// Prepare fills the schedule defaults and resolves the declared links.
func (k *maintenanceKind) Prepare(ctx context.Context, spec any) error {
	s := spec.(*MaintenanceSpec)
	if s.TimeRange == nil {
		s.TimeRange = append([]client.TimeOfDay(nil), DefaultMaintenanceTimeRange...)
	}
	if s.Weekdays == nil {
		s.Weekdays = []int{}
	}
	if s.DaysOfMonth == nil {
		s.DaysOfMonth = []any{}
	}

	var err error
	if s.Monitors != nil {
		if s.monitorLinks, err = k.resolveMonitors(ctx, s.Monitors); err != nil {
			return err
		}
	}
	if s.StatusPages != nil {
		if s.statusPageLinks, err = k.resolveStatusPages(ctx, s.StatusPages); err != nil {
			return err
		}
	}
	return nil
}

func (k *maintenanceKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	s := spec.(*MaintenanceSpec)

	var m *client.Maintenance
	var err error
	switch {
	case s.ID != 0:
		m, err = absentIfNotFound(k.client.GetMaintenance(ctx, s.ID))
	case s.Title != nil:
		m, err = k.client.FindMaintenanceByTitle(ctx, *s.Title)
	default:
		return nil, fmt.Errorf("%w: id or title", ErrMissingKey)
	}
	if err != nil || m == nil {
		return nil, err
	}
	return maintenanceObject(m)
}

func (k *maintenanceKind) Desired(spec any) (*reconcile.State, error) {
	return desiredState(&spec.(*MaintenanceSpec).Maintenance)
}

// Create starts an undated window at local midnight today.
func (k *maintenanceKind) Create(ctx context.Context, spec any) (*Object, error) {
	m := spec.(*MaintenanceSpec).Maintenance
	m.ID = 0
	if m.DateRange == nil {
		now := k.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		m.DateRange = []string{today.Format(maintenanceDateLayout)}
	}

	id, err := k.client.CreateMaintenance(ctx, &m)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: pointer.StringDeref(m.Title, "")}, nil
}

func (k *maintenanceKind) Update(ctx context.Context, obj *Object, spec any) error {
	m := spec.(*MaintenanceSpec).Maintenance
	m.ID = 0
	return k.client.UpdateMaintenance(ctx, obj.ID, &m)
}

func (k *maintenanceKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteMaintenance(ctx, obj.ID)
}

func (k *maintenanceKind) Pause(ctx context.Context, obj *Object) error {
	return k.client.PauseMaintenance(ctx, obj.ID)
}

func (k *maintenanceKind) Resume(ctx context.Context, obj *Object) error {
	return k.client.ResumeMaintenance(ctx, obj.ID)
}

// Sync replaces the linked monitors and status pages when the declared set,
// compared by id, differs from the stored one.
func (k *maintenanceKind) Sync(ctx context.Context, obj *Object, spec any, dryRun bool) (reconcile.ChangeSet, error) {
	s := spec.(*MaintenanceSpec)
	var changes reconcile.ChangeSet

	if s.monitorLinks != nil {
		desired := s.monitorLinks
		current, err := k.client.GetMaintenanceMonitors(ctx, obj.ID)
		if err != nil {
			return nil, err
		}
		diff, err := diffLinks("monitors", current, desired)
		if err != nil {
			return nil, err
		}
		if !diff.Empty() && !dryRun {
			if err := k.client.SetMaintenanceMonitors(ctx, obj.ID, desired); err != nil {
				return nil, err
			}
		}
		changes = append(changes, diff...)
	}

	if s.statusPageLinks != nil {
		desired := s.statusPageLinks
		current, err := k.client.GetMaintenanceStatusPages(ctx, obj.ID)
		if err != nil {
			return nil, err
		}
		diff, err := diffLinks("status_pages", current, desired)
		if err != nil {
			return nil, err
		}
		if !diff.Empty() && !dryRun {
			if err := k.client.SetMaintenanceStatusPages(ctx, obj.ID, desired); err != nil {
				return nil, err
			}
		}
		changes = append(changes, diff...)
	}
	return changes, nil
}

func (k *maintenanceKind) List(ctx context.Context) ([]*Object, error) {
	maintenances, err := k.client.ListMaintenances(ctx)
	if err != nil {
		return nil, err
	}
	return objects(maintenances, maintenanceObject)
}

func (k *maintenanceKind) resolveMonitors(ctx context.Context, refs []LinkRef) ([]client.MaintenanceLink, error) {
	links := make([]client.MaintenanceLink, 0, len(refs))
	for _, ref := range refs {
		var m *client.Monitor
		var err error
		if ref.ID != 0 {
			m, err = absentIfNotFound(k.client.GetMonitor(ctx, ref.ID))
		} else {
			m, err = k.client.FindMonitorByName(ctx, ref.Name)
		}
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, referenceError("monitor", ref.String())
		}
		links = append(links, client.MaintenanceLink{ID: m.ID, Name: pointer.StringDeref(m.Name, "")})
	}
	return links, nil
}

func (k *maintenanceKind) resolveStatusPages(ctx context.Context, refs []LinkRef) ([]client.MaintenanceLink, error) {
	pages, err := k.client.ListStatusPages(ctx)
	if err != nil {
		return nil, err
	}

	links := make([]client.MaintenanceLink, 0, len(refs))
	for _, ref := range refs {
		var found *client.StatusPage
		for i := range pages {
			if (ref.ID != 0 && pages[i].ID == ref.ID) || (ref.ID == 0 && pointer.StringDeref(pages[i].Title, "") == ref.Name) {
				found = &pages[i]
				break
			}
		}
		if found == nil {
			return nil, referenceError("status page", ref.String())
		}
		links = append(links, client.MaintenanceLink{ID: found.ID, Name: pointer.StringDeref(found.Title, "")})
	}
	return links, nil
}

// diffLinks compares link sets by id, ignoring order
func diffLinks(field string, current, desired []client.MaintenanceLink) (reconcile.ChangeSet, error) {
	return reconcile.Diff(
		reconcile.NewState().Set(field, linkIDs(current)),
		reconcile.NewState().Set(field, linkIDs(desired)),
		nil,
	)
}

func linkIDs(links []client.MaintenanceLink) []int {
	ids := make([]int, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ID)
	}
	sort.Ints(ids)
	return ids
}

func maintenanceObject(m *client.Maintenance) (*Object, error) {
	return newObject(m.ID, pointer.StringDeref(m.Title, ""), m.Active, m)
}
