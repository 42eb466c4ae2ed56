// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

//go:build production

package config

// rootDir returns the tetra root for production builds. The
// environment is deliberately not consulted: production installs
// always use the fixed default root.
func rootDir() string {
	return DefaultRoot
}
