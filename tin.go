// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package tin is a user-space M:N concurrency runtime: lightweight
// cooperative greenlets multiplexed onto a pool of workers, with
// work-stealing scheduling and a separate thread pool for blocking calls.
//
// A host program initializes the runtime once, spawns greenlets, and hands
// blocking work to the offload pool so it never stalls a logical processor:
//
//	tin.Init(0)
//	tin.Spawn(func(g *tin.G) {
//		tin.Sleep(g, time.Second)
//	})
package tin

import (
	"time"

	"github.com/PlumpMath/tin/runtime"
)

// G is a greenlet handle. Greenlet bodies receive their own handle and use
// it at every suspension point.
type G = runtime.G

// Mutex is the raw lock greenlet synchronization is built on.
type Mutex = runtime.Mutex

// Work is one item of blocking work for the offload pool.
type Work = runtime.Work

// GletWork is the embeddable base for blocking work bound to a greenlet.
type GletWork = runtime.GletWork

// WaitQueue is a FIFO of parked greenlets, the building block for channels
// and condition variables.
type WaitQueue = runtime.WaitQueue

// Init sets up the scheduler with the given concurrency width.
// procs <= 0 takes the width from TINMAXPROCS or the CPU count.
// Must complete before any other call into the runtime.
func Init(procs int) {
	runtime.Init(procs)
}

// Spawn creates a runnable greenlet from the host program. Greenlets spawn
// further greenlets with g.Spawn, which is cheaper.
func Spawn(fn func(*G)) *G {
	return runtime.Spawn(fn)
}

// Ready marks a parked greenlet runnable from a foreign thread.
func Ready(gp *G) {
	runtime.Ready(gp)
}

// Sleep parks g for at least d.
func Sleep(gp *G, d time.Duration) {
	runtime.Sleep(gp, d)
}

// SubmitBlocking runs w on the offload pool, suspending the calling
// greenlet until the work completes.
func SubmitBlocking(gp *G, w runtime.GletRunner) {
	runtime.SubmitGletWork(gp, w)
}
