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

	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// Declared states of a resource
const (
	StatePresent  = "present"
	StateAbsent   = "absent"
	StatePaused   = "paused"
	StateResumed  = "resumed"
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
)

// Action is what a reconcile did, or would do on a dry run
type Action string

const (
	ActionNone    Action = "none"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPause   Action = "pause"
	ActionResume  Action = "resume"
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

// Object is a record as it exists on the server
type Object struct {
	ID     int
	Name   string
	Active *bool
	Record any
	// State is the observed state Diff runs against.
	State *reconcile.State
	// Extra carries values only known right after a write, such as a new
	// API key.
	Extra map[string]any
}

// Kind manages one resource family. Specs are pointers returned by NewSpec
// after the document spec was decoded into them.
type Kind interface {
	Name() string
	States() []string
	NewSpec() any
	Ignore() reconcile.IgnorePolicy
	Identify(spec any) string

	// Lookup returns the observed record, or nil when it does not exist.
	Lookup(ctx context.Context, spec any) (*Object, error)
	Desired(spec any) (*reconcile.State, error)
	Create(ctx context.Context, spec any) (*Object, error)
	Update(ctx context.Context, obj *Object, spec any) error
	Delete(ctx context.Context, obj *Object) error
	List(ctx context.Context) ([]*Object, error)
}

// Preparer resolves references and fills defaults before lookup
type Preparer interface {
	Prepare(ctx context.Context, spec any) error
}

// Pauser is implemented by kinds supporting the paused and resumed states
type Pauser interface {
	Pause(ctx context.Context, obj *Object) error
	Resume(ctx context.Context, obj *Object) error
}

// Toggler is implemented by kinds supporting the enabled and disabled states
type Toggler interface {
	Enable(ctx context.Context, obj *Object) error
	Disable(ctx context.Context, obj *Object) error
}

// Syncer brings secondary state in line once the record itself is present.
// A non-empty ChangeSet means something was (or would be) written.
type Syncer interface {
	Sync(ctx context.Context, obj *Object, spec any, dryRun bool) (reconcile.ChangeSet, error)
}

func newObject(id int, name string, active *bool, record any) (*Object, error) {
	state, err := reconcile.FromStruct(record)
	if err != nil {
		return nil, err
	}
	return &Object{ID: id, Name: name, Active: active, Record: record, State: state}, nil
}

func supports(k Kind, state string) bool {
	for _, s := range k.States() {
		if s == state {
			return true
		}
	}
	return false
}
