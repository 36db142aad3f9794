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
	"errors"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/benn447/uptime-kuma/declarative/internal/manifest"
	"github.com/benn447/uptime-kuma/declarative/pkg/reconcile"
)

// Request declares the wanted state of one resource
type Request struct {
	Kind   string
	State  string
	Spec   map[string]any
	Ignore map[string]any
	DryRun bool
}

// Result reports what a reconcile did
type Result struct {
	Kind      string
	Name      string
	Action    Action
	Changed   bool
	ChangeSet reconcile.ChangeSet
	ID        int
	Extra     map[string]any
}

// Reconciler drives a kind from its observed to its declared state
type Reconciler struct {
	registry *Registry
	nested   reconcile.NestedMode
}

// ReconcilerOption configures a Reconciler
type ReconcilerOption func(*Reconciler)

// WithNestedMode selects how nested mappings are compared
func WithNestedMode(mode reconcile.NestedMode) ReconcilerOption {
	return func(r *Reconciler) {
		r.nested = mode
	}
}

// NewReconciler returns a reconciler for the kinds in registry
func NewReconciler(registry *Registry, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{registry: registry, nested: reconcile.NestedExact}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the kinds this reconciler knows
func (r *Reconciler) Registry() *Registry {
	return r.registry
}

// Reconcile looks the resource up, computes the changes and writes them
// unless the request is a dry run. It never writes when nothing differs.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (*Result, error) {
	result, err := r.reconcile(ctx, req)
	recordMetrics(req.Kind, result, err)
	return result, err
}

func (r *Reconciler) reconcile(ctx context.Context, req Request) (*Result, error) {
	kind, err := r.registry.Get(req.Kind)
	if err != nil {
		return nil, err
	}

	state := req.State
	if state == "" {
		state = StatePresent
	}
	if !supports(kind, state) {
		return nil, fmt.Errorf("%w: %s does not support %q", ErrUnsupportedState, kind.Name(), state)
	}

	spec := kind.NewSpec()
	if err := manifest.DecodeSpec(req.Spec, spec); err != nil {
		return nil, &ReconcileError{Kind: kind.Name(), Op: "decode", Err: err}
	}

	result := &Result{Kind: kind.Name(), Name: kind.Identify(spec), Action: ActionNone}
	logger := log.FromContext(ctx).WithValues("kind", result.Kind, "name", result.Name, "state", state)
	fail := func(op string, err error) (*Result, error) {
		return result, &ReconcileError{Kind: result.Kind, Name: result.Name, Op: op, Err: err}
	}

	if p, ok := kind.(Preparer); ok {
		if err := p.Prepare(ctx, spec); err != nil {
			return fail("prepare", err)
		}
	}

	obj, err := kind.Lookup(ctx, spec)
	if err != nil {
		return fail("look up", err)
	}
	if obj != nil {
		result.ID = obj.ID
	}

	switch state {
	case StatePresent:
		if err := r.present(ctx, kind, obj, spec, req, result); err != nil {
			return result, err
		}
	case StateAbsent:
		if obj == nil {
			break
		}
		result.Action = ActionDelete
		if !req.DryRun {
			if err := kind.Delete(ctx, obj); err != nil {
				return fail("delete", err)
			}
		}
	default:
		if err := r.toggle(ctx, kind, obj, state, req.DryRun, result); err != nil {
			return fail(string(result.Action), err)
		}
	}

	result.Changed = result.Changed || result.Action != ActionNone
	logger.V(1).Info("reconciled", "action", result.Action, "changed", result.Changed, "fields", result.ChangeSet.Fields(), "dryRun", req.DryRun)
	return result, nil
}

func (r *Reconciler) present(ctx context.Context, kind Kind, obj *Object, spec any, req Request, result *Result) error {
	fail := func(op string, err error) error {
		return &ReconcileError{Kind: result.Kind, Name: result.Name, Op: op, Err: err}
	}

	desired, err := kind.Desired(spec)
	if err != nil {
		return fail("build desired state of", err)
	}

	if obj == nil {
		// Every declared field is new.
		changes, err := reconcile.Diff(reconcile.NewState(), desired, nil, reconcile.WithNestedMode(r.nested))
		if err != nil {
			return fail("diff", err)
		}
		result.Action = ActionCreate
		result.ChangeSet = changes
		if req.DryRun {
			return nil
		}

		obj, err = kind.Create(ctx, spec)
		if err != nil {
			return fail("create", err)
		}
		result.ID = obj.ID
		result.Extra = obj.Extra
	} else {
		ignore, err := mergeIgnore(kind.Ignore(), req.Ignore)
		if err != nil {
			return fail("diff", err)
		}
		changes, err := reconcile.Diff(obj.State, desired, ignore, reconcile.WithNestedMode(r.nested))
		if err != nil {
			return fail("diff", err)
		}
		if !changes.Empty() {
			result.Action = ActionUpdate
			result.ChangeSet = changes
			if !req.DryRun {
				if err := kind.Update(ctx, obj, spec); err != nil {
					return fail("update", err)
				}
			}
		}
	}

	s, ok := kind.(Syncer)
	if !ok || (obj == nil && req.DryRun) {
		return nil
	}
	extra, err := s.Sync(ctx, obj, spec, req.DryRun)
	if err != nil {
		return fail("sync", err)
	}
	if !extra.Empty() {
		result.Changed = true
		result.ChangeSet = append(result.ChangeSet, extra...)
		if result.Action == ActionNone {
			result.Action = ActionUpdate
		}
	}
	return nil
}

func (r *Reconciler) toggle(ctx context.Context, kind Kind, obj *Object, state string, dryRun bool, result *Result) error {
	if obj == nil || obj.Active == nil {
		return nil
	}
	active := *obj.Active

	var op func(context.Context, *Object) error
	switch state {
	case StatePaused, StateResumed:
		p, ok := kind.(Pauser)
		if !ok {
			return fmt.Errorf("%w: %s cannot be paused", ErrUnsupportedState, kind.Name())
		}
		if state == StatePaused && active {
			result.Action, op = ActionPause, p.Pause
		} else if state == StateResumed && !active {
			result.Action, op = ActionResume, p.Resume
		}
	default:
		t, ok := kind.(Toggler)
		if !ok {
			return fmt.Errorf("%w: %s cannot be enabled", ErrUnsupportedState, kind.Name())
		}
		if state == StateEnabled && !active {
			result.Action, op = ActionEnable, t.Enable
		} else if state == StateDisabled && active {
			result.Action, op = ActionDisable, t.Disable
		}
	}

	if op == nil || dryRun {
		return nil
	}
	return op(ctx, obj)
}

// mergeIgnore overlays the declared ignore entries on the kind defaults
func mergeIgnore(defaults reconcile.IgnorePolicy, declared map[string]any) (reconcile.IgnorePolicy, error) {
	if len(declared) == 0 {
		return defaults, nil
	}

	merged := make(reconcile.IgnorePolicy, len(defaults)+len(declared))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range declared {
		merged[k] = v
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// IsReferenceError reports whether err was caused by a missing referenced record
func IsReferenceError(err error) bool {
	return errors.Is(err, ErrReference)
}
