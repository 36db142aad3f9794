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
	"strconv"

	"k8s.io/utils/pointer"

	"github.com/benn447/uptime-kuma/declarative/pkg/client"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// DefaultAcceptedStatusCodes applies to monitors declaring no status codes
var DefaultAcceptedStatusCodes = []string{"200-299"}

// ProxyRef selects a proxy by address
type ProxyRef struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// MonitorSpec declares a monitor. Notifications and the proxy may be given
// by name and address instead of id.
type MonitorSpec struct {
	client.Monitor
	NotificationNames []string  `json:"notification_names,omitempty"`
	Proxy             *ProxyRef `json:"proxy,omitempty"`
}

type monitorKind struct {
	client *client.Client
}

func (k *monitorKind) Name() string { return "monitor" }

func (k *monitorKind) States() []string {
	return []string{StatePresent, StateAbsent, StatePaused, StateResumed}
}

func (k *monitorKind) NewSpec() any { return &MonitorSpec{} }

func (k *monitorKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *monitorKind) Identify(spec any) string {
	s := spec.(*MonitorSpec)
	return identify(s.ID, s.Name)
}

func (k *monitorKind) Prepare(ctx context.Context, spec any) error {
	s := spec.(*MonitorSpec)
	if s.Tags != nil {
		return fmt.Errorf("monitor tags are declared with the monitor_tag kind")
	}
	if s.AcceptedStatusCodes == nil {
		s.AcceptedStatusCodes = append([]string(nil), DefaultAcceptedStatusCodes...)
	}

	if s.NotificationNames != nil {
		ids := make([]int, 0, len(s.NotificationNames))
		for _, name := range s.NotificationNames {
			n, err := k.client.FindNotificationByName(ctx, name)
			if err != nil {
				return err
			}
			if n == nil {
				return referenceError("notification", name)
			}
			ids = append(ids, n.ID)
		}
		s.NotificationIDList = ids
	}

	if s.Proxy != nil {
		p, err := k.client.FindProxyByHostPort(ctx, s.Proxy.Host, s.Proxy.Port)
		if err != nil {
			return err
		}
		if p == nil {
			return referenceError("proxy", fmt.Sprintf("%s:%d", s.Proxy.Host, s.Proxy.Port))
		}
		s.ProxyID = pointer.Int(p.ID)
	}
	return nil
}

func (k *monitorKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	s := spec.(*MonitorSpec)

	var m *client.Monitor
	var err error
	switch {
	case s.ID != 0:
		m, err = absentIfNotFound(k.client.GetMonitor(ctx, s.ID))
	case s.Name != nil:
		m, err = k.client.FindMonitorByName(ctx, *s.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || m == nil {
		return nil, err
	}
	return monitorObject(m)
}

func (k *monitorKind) Desired(spec any) (*reconcile.State, error) {
	s := spec.(*MonitorSpec)
	return desiredState(&s.Monitor)
}

func (k *monitorKind) Create(ctx context.Context, spec any) (*Object, error) {
	m := spec.(*MonitorSpec).Monitor
	m.ID = 0
	id, err := k.client.CreateMonitor(ctx, &m)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: pointer.StringDeref(m.Name, "")}, nil
}

func (k *monitorKind) Update(ctx context.Context, obj *Object, spec any) error {
	m := spec.(*MonitorSpec).Monitor
	m.ID = 0
	return k.client.UpdateMonitor(ctx, obj.ID, &m)
}

func (k *monitorKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteMonitor(ctx, obj.ID, false)
}

func (k *monitorKind) Pause(ctx context.Context, obj *Object) error {
	return k.client.PauseMonitor(ctx, obj.ID)
}

func (k *monitorKind) Resume(ctx context.Context, obj *Object) error {
	return k.client.ResumeMonitor(ctx, obj.ID)
}

func (k *monitorKind) List(ctx context.Context) ([]*Object, error) {
	monitors, err := k.client.ListAllMonitors(ctx)
	if err != nil {
		return nil, err
	}
	return objects(monitors, monitorObject)
}

func monitorObject(m *client.Monitor) (*Object, error) {
	return newObject(m.ID, pointer.StringDeref(m.Name, ""), m.Active, m)
}

// identify names a resource by its natural key, falling back to the id
func identify(id int, name *string) string {
	if name != nil {
		return *name
	}
	if id != 0 {
		return "#" + strconv.Itoa(id)
	}
	return ""
}

// desiredState converts a declared record, leaving out the id which only
// selects the record
func desiredState(record any) (*reconcile.State, error) {
	st, err := reconcile.FromStruct(record)
	if err != nil {
		return nil, err
	}
	return st.Without("id"), nil
}

func absentIfNotFound[T any](record *T, err error) (*T, error) {
	if client.IsNotFound(err) {
		return nil, nil
	}
	return record, err
}

func objects[T any](records []T, convert func(*T) (*Object, error)) ([]*Object, error) {
	out := make([]*Object, 0, len(records))
	for i := range records {
		obj, err := convert(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}
