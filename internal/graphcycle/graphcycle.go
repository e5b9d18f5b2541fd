// Package graphcycle finds cycles and dangling edges in small directed graphs
// described by callbacks.
package graphcycle

import (
	"fmt"
	"strings"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// MissingPolicy controls behavior when a referenced node is missing.
type MissingPolicy uint8

const (
	MissingPolicyIgnore MissingPolicy = iota
	MissingPolicyError
)

// CycleError reports a cycle. Path starts and ends at the same node.
type CycleError[K comparable] struct {
	Path []K
}

// Error returns the error string.
func (e CycleError[K]) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = fmt.Sprint(k)
	}
	return "cycle detected: " + strings.Join(parts, " -> ")
}

// MissingError reports a missing referenced node. From is the zero value
// when Key was a start node.
type MissingError[K comparable] struct {
	From K
	Key  K
}

// Error returns the error string.
func (e MissingError[K]) Error() string {
	return fmt.Sprintf("missing node %v", e.Key)
}

// Config configures generic cycle detection traversal.
type Config[K comparable] struct {
	Exists  func(K) bool
	Next    func(K) ([]K, error)
	Starts  []K
	Missing MissingPolicy
}

// Detect walks directed edges from Starts and reports the first cycle or
// traversal error.
func Detect[K comparable](cfg Config[K]) error {
	if cfg.Next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(cfg.Starts))
	var stack []K

	var zero K
	var visit func(key, from K) error
	visit = func(key, from K) error {
		switch states[key] {
		case stateVisiting:
			return CycleError[K]{Path: cyclePath(stack, key)}
		case stateDone:
			return nil
		}

		if cfg.Exists != nil && !cfg.Exists(key) {
			if cfg.Missing == MissingPolicyIgnore {
				return nil
			}
			return MissingError[K]{From: from, Key: key}
		}

		states[key] = stateVisiting
		stack = append(stack, key)
		neighbors, err := cfg.Next(key)
		if err != nil {
			return err
		}
		for _, next := range neighbors {
			if err := visit(next, key); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[key] = stateDone
		return nil
	}

	for _, start := range cfg.Starts {
		if err := visit(start, zero); err != nil {
			return err
		}
	}

	return nil
}

func cyclePath[K comparable](stack []K, key K) []K {
	for i, k := range stack {
		if k == key {
			path := make([]K, 0, len(stack)-i+1)
			path = append(path, stack[i:]...)
			return append(path, key)
		}
	}
	return []K{key, key}
}
