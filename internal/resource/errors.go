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
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for a kind no registry entry handles
	ErrUnknownKind = errors.New("unknown kind")
	// ErrDuplicateKind is returned when a kind is registered twice
	ErrDuplicateKind = errors.New("kind already registered")
	// ErrUnsupportedState is returned for a state the kind does not accept
	ErrUnsupportedState = errors.New("unsupported state")
	// ErrMissingKey is returned when a spec has neither an id nor its natural key
	ErrMissingKey = errors.New("missing identifying field")
	// ErrReference is returned when a referenced record does not exist
	ErrReference = errors.New("referenced record not found")
	// ErrUnsupportedOperation is returned by kinds that cannot perform an operation
	ErrUnsupportedOperation = errors.New("operation not supported")
)

// ReconcileError reports which step of reconciling a resource failed
type ReconcileError struct {
	Kind string
	Name string
	Op   string
	Err  error
}

func (e *ReconcileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %q: %v", e.Op, e.Kind, e.Name, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

func referenceError(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrReference, kind, name)
}
