// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sgemmbench measures single-precision matrix multiply throughput
// and saves the operands and product as text.
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sgemmbench:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
