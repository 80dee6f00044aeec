package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Snapshot captures the immutable payload associated with a scope layer.
type Snapshot struct {
	Scope      opts.Scope
	Data       map[string]any
	SnapshotID string
}

// Resolver wraps a go-options Options value exposing typed helpers.
type Resolver struct {
	options *opts.Options[map[string]any]
}

var (
	// ErrNoSnapshots signals that at least one scope snapshot must be provided.
	ErrNoSnapshots = errors.New("options: at least one snapshot is required")
)

// SystemScope holds the defaults shipped with the module configuration.
func SystemScope() opts.Scope {
	return opts.NewScope("system", opts.ScopePrioritySystem, opts.WithScopeLabel("System"))
}

// StoreScope holds the values saved by the shop owner.
func StoreScope() opts.Scope {
	return opts.NewScope("store", opts.ScopePriorityUser, opts.WithScopeLabel("Store"))
}

// NewResolver merges the provided scope snapshots ordered by their scope
// priority and returns a resolver exposing trace helpers.
func NewResolver(snapshots ...Snapshot) (*Resolver, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}

	layers := make([]opts.Layer[map[string]any], 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.Scope.Name == "" {
			return nil, fmt.Errorf("options: snapshot scope name is required")
		}
		layerOpts := []opts.LayerOption[map[string]any]{}
		if snap.SnapshotID != "" {
			layerOpts = append(layerOpts, opts.WithSnapshotID[map[string]any](snap.SnapshotID))
		}
		payload := cloneMap(snap.Data)
		layers = append(layers, opts.NewLayer(snap.Scope, payload, layerOpts...))
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return &Resolver{options: merged}, nil
}

// Resolve fetches the value stored at path and returns the accompanying trace.
func (r *Resolver) Resolve(path string) (any, opts.Trace, error) {
	if r == nil || r.options == nil {
		return nil, opts.Trace{Path: path}, fmt.Errorf("options: resolver not initialised")
	}
	return r.options.ResolveWithTrace(path)
}

// ResolveBool resolves the value at path as a boolean. Option stores
// persist toggles as "yes"/"no", so those strings are accepted too.
func (r *Resolver) ResolveBool(path string) (bool, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return false, trace, err
	}
	boolean, ok := toBool(value)
	if !ok {
		return false, trace, fmt.Errorf("options: path %s is not a boolean", path)
	}
	return boolean, trace, nil
}

// ResolveString resolves the value at path and ensures it is a string.
func (r *Resolver) ResolveString(path string) (string, opts.Trace, error) {
	value, trace, err := r.Resolve(path)
	if err != nil {
		return "", trace, err
	}
	switch v := value.(type) {
	case string:
		return v, trace, nil
	case int, int64, float64:
		return fmt.Sprint(v), trace, nil
	default:
		return "", trace, fmt.Errorf("options: path %s is not a string", path)
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "on":
			return true, true
		case "no", "off", "":
			return false, true
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	case int:
		return v != 0, true
	default:
		return false, false
	}
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	return layering.Clone(src)
}
