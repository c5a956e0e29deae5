// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"sync/atomic"
	"unsafe"
)

// Greenlet status values held in G.atomicstatus.
const (
	_Gidle = iota // just allocated, not initialized
	_Grunnable    // on a run queue, not executing
	_Grunning     // executing user code, owned by exactly one M
	_Gsyscall     // executing a system call, not on a run queue
	_Gwaiting     // parked on a wait list, not on a run queue
	_Gdead        // body returned, unused
)

// P status values held in P.status.
const (
	_Pidle = iota
	_Prunning // owned by an M executing greenlets; only that M may take it out of _Prunning
	_Psyscall // not running user code; detached from its M which is in a syscall
	_Pdead
)

// Words transferred to the G0 when a greenlet switches out. The context
// switch primitive carries exactly one word; the scheduler uses it to tell
// the G0 loop what to do with the outgoing greenlet.
const (
	switchExit        uintptr = iota // body returned
	switchYield                      // Reschedule: back to the local queue tail
	switchYieldGlobal                // yield to the global queue
	switchPark                       // park on a wait list, maybe aborted by unlockf
	switchSyscallExit                // slow syscall exit: enqueue, release the M
)

// A Guintptr is an atomically accessed reference to a G. It is used for the
// run queue slots, the runnext slot and the schedlink field, all of which may
// be read by stealers concurrently with the owner.
type Guintptr struct {
	v atomic.Pointer[G]
}

func (u *Guintptr) Ptr() *G   { return u.v.Load() }
func (u *Guintptr) Set(gp *G) { u.v.Store(gp) }

func (u *Guintptr) Cas(old, new *G) bool {
	return u.v.CompareAndSwap(old, new)
}

// A Gobuf is the saved execution context of a greenlet: the one-slot resume
// channel its goroutine blocks on while suspended. The slot is buffered so a
// resume issued before the target has parked is retained rather than lost.
type Gobuf struct {
	ch chan uintptr
}

// gogo transfers control to gp, publishing arg into its context.
func gogo(gp *G, arg uintptr) {
	gp.sched.ch <- arg
}

// gwait blocks until somebody transfers control to gp and returns the
// published word. Must only be called from gp's own goroutine.
func gwait(gp *G) uintptr {
	return <-gp.sched.ch
}

// G is a greenlet: a user-space cooperative task. Its stack is the goroutine
// started at first execute; while the greenlet is suspended that goroutine is
// blocked in gwait.
type G struct {
	goid         int64
	atomicstatus atomic.Uint32
	sched        Gobuf
	fn           func(*G)
	started      bool // body goroutine launched; owned by the executing M

	m          *m             // current m; nil if not running
	schedlink  Guintptr       // next G on the global run queue or a wait list
	lockedm    *m             // if non-nil, only this M may run us
	param      unsafe.Pointer // opaque wakeup parameter
	waitreason string         // if status is _Gwaiting
}

// Goid returns the greenlet's identity.
func (gp *G) Goid() int64 { return gp.goid }

func readgstatus(gp *G) uint32 { return gp.atomicstatus.Load() }

// m is an OS worker: it runs the G0 scheduler loop, bound to at most one P
// at a time.
type m struct {
	id        int32
	g0        *G // scheduler coroutine with its own context slot
	curg      *G // current running greenlet
	p         *p // attached p for executing greenlets (nil if not executing)
	nextp     *p // p to attach on wakeup, set by the waker before signalling
	oldp      *p // p that was attached before a syscall, for the fast exit path
	spinning  bool
	park      note
	schedlink *m // next m on the idle-M stack
	lockedg   *G
	mstartfn  func(*m)

	// Set by the parking greenlet, consumed by the G0 loop.
	waitunlockf func(*G, unsafe.Pointer) bool
	waitlock    unsafe.Pointer

	rand uint32 // xorshift state for steal ordering
}

func (mp *m) fastrand() uint32 {
	x := mp.rand
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	mp.rand = x
	return x
}

// p is a logical processor: the token an M must hold to execute greenlets.
type p struct {
	id        int32
	status    atomic.Uint32
	link      *p // next p on the idle-P stack
	schedtick uint32
	m         *m // back-link to associated m (nil if idle)

	// Queue of runnable greenlets. Accessed without the scheduler lock.
	runqhead atomic.Uint32
	runqtail atomic.Uint32
	runq     [256]Guintptr

	// runnext, if non-nil, is a runnable G that was readied by the current G
	// and should run next instead of what's in runq, inheriting the remainder
	// of the current time slice. Not counted in runqtail - runqhead.
	runnext Guintptr
}

// schedt is the process-wide scheduler state. The lock protects every field
// that is not per-P and not documented as atomic.
type schedt struct {
	lock Mutex

	goidgen atomic.Int64

	midle        *m    // idle m's waiting for work
	nmidle       int32 // number of idle m's waiting for work
	nmidlelocked int32 // number of locked m's waiting for work
	mcount       int32 // number of m's that have been created
	maxmcount    int32 // maximum number of m's allowed (or die)

	pidle  *p // idle p's
	npidle atomic.Int32

	nmspinning atomic.Int32

	// Global runnable queue, intrusive through G.schedlink.
	runqhead *G
	runqtail *G
	runqsize atomic.Int32

	lastpoll atomic.Int64

	allp []*p
}

var sched schedt

var initialized atomic.Bool

// Width reports the concurrency width: the number of logical processors
// fixed at Init.
func Width() int { return len(sched.allp) }

func dumpgstatus(gp *G) {
	print("runtime: gp=", unsafe.Pointer(gp), ", goid=", gp.goid, ", gp->atomicstatus=", readgstatus(gp), "\n")
}

func throw(s string) {
	print("runtime: throw: ", s, "\n")
	panic("tin runtime: " + s)
}
