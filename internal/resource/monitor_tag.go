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

// MonitorTagSpec declares a tag with an optional value on a monitor
type MonitorTagSpec struct {
	MonitorName string `json:"monitor_name"`
	TagName     string `json:"tag_name"`
	Value       string `json:"value,omitempty"`

	monitor *client.Monitor
	tag     *client.Tag
}

// MonitorTagLink is a tag attached to a monitor
type MonitorTagLink struct {
	MonitorID   int    `json:"monitor_id"`
	MonitorName string `json:"monitor_name"`
	client.MonitorTag
}

type monitorTagKind struct {
	client *client.Client
}

func (k *monitorTagKind) Name() string { return "monitor_tag" }

func (k *monitorTagKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *monitorTagKind) NewSpec() any { return &MonitorTagSpec{} }

func (k *monitorTagKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *monitorTagKind) Identify(spec any) string {
	s := spec.(*MonitorTagSpec)
	return monitorTagName(s.MonitorName, s.TagName, s.Value)
}

// Prepare resolves the monitor and the tag. Either may be missing, which
// only matters when the link has to be created.
func (k *monitorTagKind) Prepare(ctx context.Context, spec any) error {
	s := spec.(*MonitorTagSpec)
	if s.MonitorName == "" || s.TagName == "" {
		return fmt.Errorf("%w: monitor_name and tag_name", ErrMissingKey)
	}

	var err error
	if s.monitor, err = k.client.FindMonitorByName(ctx, s.MonitorName); err != nil {
		return err
	}
	s.tag, err = k.client.FindTagByName(ctx, s.TagName)
	return err
}

func (k *monitorTagKind) Lookup(_ context.Context, spec any) (*Object, error) {
	s := spec.(*MonitorTagSpec)
	if s.monitor == nil || s.tag == nil {
		return nil, nil
	}

	for i := range s.monitor.Tags {
		mt := &s.monitor.Tags[i]
		if mt.TagID == s.tag.ID && mt.Value == s.Value {
			return monitorTagObject(s.monitor, *mt), nil
		}
	}
	return nil, nil
}

// Desired is empty: a link either exists or it does not.
func (k *monitorTagKind) Desired(any) (*reconcile.State, error) {
	return reconcile.NewState(), nil
}

func (k *monitorTagKind) Create(ctx context.Context, spec any) (*Object, error) {
	s := spec.(*MonitorTagSpec)
	if s.monitor == nil {
		return nil, referenceError("monitor", s.MonitorName)
	}
	if s.tag == nil {
		return nil, referenceError("tag", s.TagName)
	}

	if err := k.client.AddTagToMonitor(ctx, s.monitor.ID, s.tag.ID, s.Value); err != nil {
		return nil, err
	}
	return &Object{ID: s.tag.ID, Name: k.Identify(s)}, nil
}

func (k *monitorTagKind) Update(context.Context, *Object, any) error {
	return fmt.Errorf("%w: monitor tags are only added or removed", ErrUnsupportedOperation)
}

func (k *monitorTagKind) Delete(ctx context.Context, obj *Object) error {
	link := obj.Record.(*MonitorTagLink)
	return k.client.RemoveTagFromMonitor(ctx, link.MonitorID, link.TagID, link.Value)
}

func (k *monitorTagKind) List(ctx context.Context) ([]*Object, error) {
	monitors, err := k.client.ListAllMonitors(ctx)
	if err != nil {
		return nil, err
	}

	var out []*Object
	for i, m := range monitors {
		for _, mt := range m.Tags {
			out = append(out, monitorTagObject(&monitors[i], mt))
		}
	}
	return out, nil
}

func monitorTagObject(m *client.Monitor, mt client.MonitorTag) *Object {
	link := &MonitorTagLink{MonitorID: m.ID, MonitorName: pointer.StringDeref(m.Name, ""), MonitorTag: mt}
	return &Object{
		ID:     mt.TagID,
		Name:   monitorTagName(link.MonitorName, mt.Name, mt.Value),
		Record: link,
		State:  reconcile.NewState(),
	}
}

func monitorTagName(monitor, tag, value string) string {
	if value == "" {
		return monitor + "/" + tag
	}
	return fmt.Sprintf("%s/%s:%s", monitor, tag, value)
}
