// Copyright 2026 mmmm contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a workflow-level error so callers (mainly the CLI) can
// decide how to report it without string-matching messages.
type Kind int

const (
	// ParseError means the workflow YAML itself was malformed.
	ParseError Kind = iota
	// ValidationError means the graph failed structural or type checking.
	ValidationError
	// ConfigError means a required config-file key was missing.
	ConfigError
	// IOError means a network, archive, or filesystem operation failed.
	IOError
	// DecodeError means bytes expected to be text or a manifest weren't.
	DecodeError
	// DependencyFailed means a required input's producer failed or
	// terminated without publishing.
	DependencyFailed
	// NodeError means a node's own logic failed for a reason not covered
	// by the kinds above.
	NodeError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case ValidationError:
		return "ValidationError"
	case ConfigError:
		return "ConfigError"
	case IOError:
		return "IOError"
	case DecodeError:
		return "DecodeError"
	case DependencyFailed:
		return "DependencyFailed"
	case NodeError:
		return "NodeError"
	default:
		return "UnknownError"
	}
}

// Error is the single error type returned across the workflow package and
// its subpackages. NodeID is empty for load-time errors. Multi holds a
// batch of sub-errors: for ValidationError, every stage's problems
// collected before the loader aborts; for NodeError, the scheduler's
// per-node failures of one run.
type Error struct {
	Kind   Kind
	NodeID string
	Cause  error
	Multi  []error
}

func (e *Error) Error() string {
	if len(e.Multi) > 0 {
		lines := make([]string, 0, len(e.Multi)+1)
		lines = append(lines, fmt.Sprintf("%s: %d error(s):", e.Kind, len(e.Multi)))
		for _, sub := range e.Multi {
			lines = append(lines, "  - "+sub.Error())
		}
		return strings.Join(lines, "\n")
	}
	if e.NodeID != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s[%s]: %v", e.Kind, e.NodeID, e.Cause)
		}
		return fmt.Sprintf("%s[%s]", e.Kind, e.NodeID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

// Unwrap lets errors.Is/errors.As see through to Cause.
func (e *Error) Unwrap() error { return e.Cause }

// Wrap annotates cause with a workflow Kind, preserving a stack trace via
// github.com/pkg/errors so diagnostics can print where the error actually
// originated, not just where it was last passed up.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: errors.WithStack(cause)}
}

// WrapNode is Wrap plus the id of the node the error occurred in.
func WrapNode(kind Kind, nodeID string, cause error) *Error {
	return &Error{Kind: kind, NodeID: nodeID, Cause: errors.WithStack(cause)}
}

// Newf builds a Kind-tagged error from a format string.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Cause: errors.Errorf(format, args...)}
}

// Batch collects validation errors from every pipeline stage into one
// ValidationError so the caller sees every problem in a single report.
func Batch(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &Error{Kind: ValidationError, Multi: errs}
}

// DependencyFailure builds the "producer closed without sending" error a
// node surfaces when one of its required inputs' channel closed empty.
func DependencyFailure(nodeID, inputName string) *Error {
	return &Error{
		Kind:   DependencyFailed,
		NodeID: nodeID,
		Cause:  errors.Errorf("input %q: producer closed without sending", inputName),
	}
}
