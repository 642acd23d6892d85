// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import "runtime"

// Yielder lets a cooperative scheduler run other work during a flush.
//
// Yield is only called between two bus writes.
type Yielder interface {
	Yield()
}

// NoYield never yields.
type NoYield struct{}

// Yield implements Yielder.
func (NoYield) Yield() {}

// GoschedYielder yields the processor to other goroutines. Use it on
// runtimes without preemption, for example TinyGo with a watchdog.
type GoschedYielder struct{}

// Yield implements Yielder.
func (GoschedYielder) Yield() {
	runtime.Gosched()
}

// YieldFunc adapts a function to Yielder.
type YieldFunc func()

// Yield implements Yielder.
func (f YieldFunc) Yield() {
	f()
}
