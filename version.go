// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sgemmbench

import "runtime/debug"

const modulePath = "github.com/LynnColeArt/sgemmbench"

// Version returns the module version and checksum the running binary was
// built from. Both are empty when build information is unavailable or the
// binary was not built from this module, and the version is "(devel)" for
// builds from a working tree.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok || b.Main.Path != modulePath {
		return "", ""
	}
	return b.Main.Version, b.Main.Sum
}
