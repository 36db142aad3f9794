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

// NotificationSpec declares a notification. Every key that is not a common
// notification field is a provider setting.
type NotificationSpec struct {
	client.Notification
	Settings map[string]any `json:",remain"`
}

type notificationKind struct {
	client    *client.Client
	providers *NotificationProviders
}

func (k *notificationKind) Name() string { return "notification" }

func (k *notificationKind) States() []string { return []string{StatePresent, StateAbsent} }

func (k *notificationKind) NewSpec() any { return &NotificationSpec{} }

func (k *notificationKind) Ignore() reconcile.IgnorePolicy { return nil }

func (k *notificationKind) Identify(spec any) string {
	s := spec.(*NotificationSpec)
	return identify(s.ID, s.Name)
}

func (k *notificationKind) Prepare(_ context.Context, spec any) error {
	s := spec.(*NotificationSpec)
	s.Provider = s.Settings
	if s.Type == nil {
		if len(s.Settings) > 0 {
			return fmt.Errorf("provider settings need a type")
		}
		return nil
	}
	return k.providers.Check(*s.Type, s.Settings)
}

func (k *notificationKind) Lookup(ctx context.Context, spec any) (*Object, error) {
	s := spec.(*NotificationSpec)

	var n *client.Notification
	var err error
	switch {
	case s.ID != 0:
		n, err = absentIfNotFound(k.client.GetNotification(ctx, s.ID))
	case s.Name != nil:
		n, err = k.client.FindNotificationByName(ctx, *s.Name)
	default:
		return nil, fmt.Errorf("%w: id or name", ErrMissingKey)
	}
	if err != nil || n == nil {
		return nil, err
	}
	return notificationObject(n)
}

func (k *notificationKind) Desired(spec any) (*reconcile.State, error) {
	st, err := notificationState(&spec.(*NotificationSpec).Notification)
	if err != nil {
		return nil, err
	}
	return st.Without("id"), nil
}

func (k *notificationKind) Create(ctx context.Context, spec any) (*Object, error) {
	n := spec.(*NotificationSpec).Notification
	n.ID = 0
	id, err := k.client.CreateNotification(ctx, &n)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: pointer.StringDeref(n.Name, "")}, nil
}

func (k *notificationKind) Update(ctx context.Context, obj *Object, spec any) error {
	n := spec.(*NotificationSpec).Notification
	n.ID = 0
	return k.client.UpdateNotification(ctx, obj.ID, &n)
}

func (k *notificationKind) Delete(ctx context.Context, obj *Object) error {
	return k.client.DeleteNotification(ctx, obj.ID)
}

func (k *notificationKind) List(ctx context.Context) ([]*Object, error) {
	notifications, err := k.client.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	return objects(notifications, notificationObject)
}

func notificationObject(n *client.Notification) (*Object, error) {
	st, err := notificationState(n)
	if err != nil {
		return nil, err
	}
	return &Object{ID: n.ID, Name: pointer.StringDeref(n.Name, ""), Active: n.Active, Record: n, State: st}, nil
}

// notificationState lists the common fields followed by the provider
// settings in name order
func notificationState(n *client.Notification) (*reconcile.State, error) {
	st, err := reconcile.FromStruct(n)
	if err != nil {
		return nil, err
	}
	for _, key := range n.ProviderKeys() {
		st.Set(key, n.Provider[key])
	}
	return st, nil
}
