// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package errdefs defines the error taxonomy shared by the resolver,
// cache, and fetcher. Every failure that reaches the user is classified
// into a [Kind] so that callers can branch on the class of failure
// (and the CLI can exit with a kind-specific code) instead of parsing
// message strings.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The zero value is Unknown, used for
// errors that arise outside the taxonomy (programming errors, wrapped
// stdlib errors that were never classified).
type Kind int

const (
	// Unknown is an unclassified failure.
	Unknown Kind = iota

	// RepositoryNotFound: the identifier's repo segment does not match
	// any discovered repository.
	RepositoryNotFound

	// PackageNotFound: the repository exists but has no directory for
	// the package name (or the identifier's name is empty).
	PackageNotFound

	// VersionNotFound: the package directory exists but the requested
	// version directory does not.
	VersionNotFound

	// FlavourNotFound: the version directory exists but the requested
	// flavour combination does not.
	FlavourNotFound

	// ArchitectureNotSupplied: an architecture was explicitly requested
	// and the package does not publish a recipe for it. There is no
	// fallback for explicit architectures.
	ArchitectureNotSupplied

	// RecipeNotFound: neither the default-architecture recipe nor the
	// architecture-less recipe exists at the resolved path.
	RecipeNotFound

	// RecipeParse: a repository or recipe document is malformed. This
	// covers YAML syntax errors and invalid hash digests inside an
	// otherwise well-formed document.
	RecipeParse

	// ChecksumMismatch: a blob's content does not hash to the digest it
	// was declared or stored under.
	ChecksumMismatch

	// Transport: a network or streaming failure during fetch.
	Transport

	// IO: a filesystem operation failed for reasons other than simple
	// absence (permissions, disk full, rename across devices).
	IO
)

// String returns the taxonomy name of the kind, used in error messages
// and logs.
func (k Kind) String() string {
	switch k {
	case RepositoryNotFound:
		return "repository not found"
	case PackageNotFound:
		return "package not found"
	case VersionNotFound:
		return "version not found"
	case FlavourNotFound:
		return "flavour combination not found"
	case ArchitectureNotSupplied:
		return "architecture not supplied by package"
	case RecipeNotFound:
		return "recipe not found"
	case RecipeParse:
		return "recipe parse error"
	case ChecksumMismatch:
		return "checksum mismatch"
	case Transport:
		return "transport error"
	case IO:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// ExitCode returns the process exit code for the kind. Codes are
// stable: scripts may depend on them. Unknown maps to 1.
func (k Kind) ExitCode() int {
	switch k {
	case RepositoryNotFound:
		return 10
	case PackageNotFound:
		return 11
	case VersionNotFound:
		return 12
	case FlavourNotFound:
		return 13
	case ArchitectureNotSupplied:
		return 14
	case RecipeNotFound:
		return 15
	case RecipeParse:
		return 16
	case ChecksumMismatch:
		return 17
	case Transport:
		return 18
	case IO:
		return 19
	default:
		return 1
	}
}

// Error is a classified failure. Detail names the offending
// identifier, path, or hash so the user-visible message always says
// what could not be resolved or verified, not just why.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

// New creates a classified error with a formatted detail string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error with a formatted detail string and
// an underlying cause reachable via errors.Unwrap.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// ExitCode implements the interface the CLI framework checks on
// returned errors to select the process exit code.
func (e *Error) ExitCode() int { return e.Kind.ExitCode() }

// KindOf returns the Kind of the first *Error in err's chain, or
// Unknown if the chain contains no classified error.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return Unknown
}

// IsKind reports whether err's chain contains a classified error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
