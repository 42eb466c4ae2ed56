// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !production

package config

import "os"

// rootDir returns the tetra root for development builds: the
// TETRA_ROOT environment variable when set, otherwise [DefaultRoot].
func rootDir() string {
	if root := os.Getenv("TETRA_ROOT"); root != "" {
		return root
	}
	return DefaultRoot
}
