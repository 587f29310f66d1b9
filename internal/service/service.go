// Package service orchestrates the optimistic mutation protocol: apply the
// change to the local store first, confirm it against the upstream API,
// then reconcile the server's record into the cache — or restore the
// pre-mutation snapshot when the call fails.
package service

import (
	"fmt"
	"sort"
	"strings"
)

// Actor identifies the user performing a mutation, for audit entries.
type Actor struct {
	ID   string
	Name string
}

// ValidationError reports per-field problems caught client-side before any
// network call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
