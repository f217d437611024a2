// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sgemmbench measures the single-precision throughput of a dense
// matrix multiply.
//
// A run generates two random N×N float32 operands, multiplies them a fixed
// number of times through a compute.Backend, averages the wall-clock time of
// each multiply and reports GFLOPS = 2·N³ / average / 1e9. The operands and
// the last product can then be written as plain text for later inspection.
//
// Example usage:
//
//	backend, _ := compute.New(compute.NameNative, 1)
//	defer backend.Close()
//
//	gen := sgemmbench.NewGenerator()
//	a, _ := gen.Matrix(2048, 2048)
//	b, _ := gen.Matrix(2048, 2048)
//
//	bench := sgemmbench.Benchmark{Backend: backend, Runs: 10}
//	res, err := bench.Run(a, b)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("GFLOPS: ", res.GFLOPS)
package sgemmbench
