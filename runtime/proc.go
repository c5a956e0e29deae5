// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"os"
	"runtime"
	"strconv"
	"unsafe"
)

var ncpu = runtime.NumCPU()

// Init sets up the process-wide scheduler state: the fixed array of logical
// processors, the steal order and the offload pools. procs <= 0 means take
// the width from TINMAXPROCS, falling back to the number of CPUs.
//
// Init is not thread-safe and must complete before any greenlet is spawned.
func Init(procs int) {
	if initialized.Load() {
		throw("sched: double init")
	}
	if procs <= 0 {
		procs = ncpu
		if v := os.Getenv("TINMAXPROCS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				procs = n
			}
		}
	}
	sched.maxmcount = 10000
	sched.lastpoll.Store(nanotime())
	procresize(int32(procs))
	startOffloadPools()
	initialized.Store(true)
}

// procresize allocates the P's. The count is fixed for the process lifetime;
// all P's start on the idle stack and are claimed by M's as work arrives.
func procresize(nprocs int32) {
	allp := make([]*p, nprocs)
	for i := int32(0); i < nprocs; i++ {
		pp := &p{id: i}
		pp.status.Store(_Pidle)
		allp[i] = pp
	}
	sched.allp = allp
	sched.lock.Lock()
	for i := nprocs - 1; i >= 0; i-- {
		pidleput(allp[i])
	}
	sched.lock.Unlock()
	stealOrder.reset(uint32(nprocs))
}

func checkmcount() {
	// sched lock is held
	if sched.mcount > sched.maxmcount {
		print("runtime: program exceeds ", sched.maxmcount, "-thread limit\n")
		throw("thread exhaustion")
	}
}

// casgstatus transitions gp from oldval to newval, spinning if some other M
// holds the status mid-transition.
func casgstatus(gp *G, oldval, newval uint32) {
	if oldval == newval {
		print("casgstatus: oldval=", oldval, " newval=", newval, "\n")
		throw("casgstatus: bad incoming values")
	}
	for !gp.atomicstatus.CompareAndSwap(oldval, newval) {
		if oldval == _Gwaiting && gp.atomicstatus.Load() == _Grunnable {
			throw("casgstatus: waiting for Gwaiting but is Grunnable")
		}
		osyield()
	}
}

func newgreenlet(fn func(*G)) *G {
	gp := &G{
		goid: sched.goidgen.Add(1),
		fn:   fn,
	}
	gp.sched.ch = make(chan uintptr, 1)
	gp.atomicstatus.Store(_Grunnable)
	return gp
}

// Spawn creates a runnable greenlet from a foreign thread: one that is not
// itself a greenlet. The new greenlet lands on the global run queue.
func Spawn(fn func(*G)) *G {
	if !initialized.Load() {
		throw("sched: spawn before init")
	}
	newg := newgreenlet(fn)
	sched.lock.Lock()
	globrunqput(newg)
	sched.lock.Unlock()
	wakePIfNecessary()
	return newg
}

// Spawn creates a runnable greenlet from inside a running greenlet. The new
// greenlet goes into the current P's runnext slot so it runs ahead of queued
// work, which keeps producer/consumer pairs on one processor.
func (gp *G) Spawn(fn func(*G)) *G {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("spawn: not a running greenlet")
	}
	newg := newgreenlet(fn)
	runqput(mp.p, newg, true)
	wakePIfNecessary()
	return newg
}

// Yield gives up the processor, moving the calling greenlet to the tail of
// its P's local run queue.
func (gp *G) Yield() {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("yield: not a running greenlet")
	}
	gogo(mp.g0, switchYield)
	gwait(gp)
}

// YieldGlobal gives up the processor, moving the calling greenlet to the
// global run queue so any P may pick it up.
func (gp *G) YieldGlobal() {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("yield: not a running greenlet")
	}
	gogo(mp.g0, switchYieldGlobal)
	gwait(gp)
}

// Park transitions the calling greenlet from running to waiting. If unlockf
// is non-nil it runs on the scheduler coroutine after the status change,
// with the runtime's internal state unlocked; returning false aborts the
// park and the greenlet resumes immediately.
func (gp *G) Park(unlockf func(*G, unsafe.Pointer) bool, lock unsafe.Pointer, reason string) {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("park: not a running greenlet")
	}
	mp.waitunlockf = unlockf
	mp.waitlock = lock
	gp.waitreason = reason
	gogo(mp.g0, switchPark)
	gwait(gp)
}

func parkunlockf(gp *G, lock unsafe.Pointer) bool {
	(*Mutex)(lock).Unlock()
	return true
}

// ParkUnlock atomically releases l and parks the calling greenlet. It is
// the building block for channels and condition variables.
func (gp *G) ParkUnlock(l *Mutex, reason string) {
	gp.Park(parkunlockf, unsafe.Pointer(l), reason)
}

// Ready marks gp runnable from a foreign thread: offload workers, timers,
// pollers. The greenlet lands on the global run queue.
func Ready(gp *G) {
	status := readgstatus(gp)
	if status != _Gwaiting {
		dumpgstatus(gp)
		throw("bad g->status in ready")
	}
	casgstatus(gp, _Gwaiting, _Grunnable)
	sched.lock.Lock()
	globrunqput(gp)
	sched.lock.Unlock()
	wakePIfNecessary()
}

// MakeReady marks target runnable from inside a running greenlet, pushing it
// onto the caller's P local queue.
func (gp *G) MakeReady(target *G) {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("makeready: not a running greenlet")
	}
	status := readgstatus(target)
	if status != _Gwaiting {
		dumpgstatus(target)
		throw("bad g->status in ready")
	}
	casgstatus(target, _Gwaiting, _Grunnable)
	runqput(mp.p, target, false)
	wakePIfNecessary()
}

// LockM locks the calling greenlet to its current M: from now on only that
// worker may run it.
func (gp *G) LockM() {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("lockm: not a running greenlet")
	}
	gp.lockedm = mp
	mp.lockedg = gp
}

// UnlockM undoes LockM.
func (gp *G) UnlockM() {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("unlockm: not a running greenlet")
	}
	gp.lockedm = nil
	mp.lockedg = nil
}

// wakePIfNecessary wakes a worker when runnable work was just published and
// nobody is searching for it.
func wakePIfNecessary() {
	if sched.npidle.Load() != 0 && sched.nmspinning.Load() == 0 {
		wakep()
	}
}

// wakep tries to add one more M to execute greenlets. Conservative about
// spinning threads: at most one transition 0 -> 1 at a time.
func wakep() {
	if !sched.nmspinning.CompareAndSwap(0, 1) {
		return
	}
	startm(nil, true)
}

// startm schedules some M to run p (creates an M if necessary).
// If p == nil, tries to get an idle P; if there is none it gives up (and
// undoes the caller's spinning increment).
func startm(pp *p, spinning bool) {
	sched.lock.Lock()
	if pp == nil {
		pp = pidleget()
		if pp == nil {
			sched.lock.Unlock()
			if spinning {
				if sched.nmspinning.Add(-1) < 0 {
					throw("startm: negative nmspinning")
				}
			}
			return
		}
	}
	mp := mget()
	sched.lock.Unlock()
	if mp == nil {
		newm(pp, spinning)
		return
	}
	if mp.spinning {
		throw("startm: m is spinning")
	}
	if mp.nextp != nil {
		throw("startm: m has p")
	}
	mp.spinning = spinning
	mp.nextp = pp
	notewakeup(&mp.park)
}

// newm creates a new M attached to pp. Fatal when the M cap is exhausted.
func newm(pp *p, spinning bool) {
	sched.lock.Lock()
	mp := &m{id: sched.mcount}
	sched.mcount++
	checkmcount()
	sched.lock.Unlock()

	mp.g0 = &G{goid: -int64(mp.id) - 1}
	mp.g0.sched.ch = make(chan uintptr, 1)
	mp.g0.m = mp
	mp.rand = 0x49f6428a + uint32(mp.id) + uint32(nanotime())
	if mp.rand == 0 {
		mp.rand = 0x49f6428a
	}
	mp.spinning = spinning
	mp.nextp = pp
	noteclear(&mp.park)
	go mstart(mp)
}

// mstart is the entry point of a worker. Its goroutine is the M's scheduler
// coroutine (the G0 stack).
func mstart(mp *m) {
	if fn := mp.mstartfn; fn != nil {
		fn(mp)
	}
	acquirep(mp, mp.nextp)
	mp.nextp = nil
	schedule(mp)
}

// stopm parks the current M until new work is available.
// Returns with an acquired P.
func stopm(mp *m) {
	if mp.p != nil {
		throw("stopm holding p")
	}
	if mp.spinning {
		mp.spinning = false
		if sched.nmspinning.Add(-1) < 0 {
			throw("stopm: negative nmspinning")
		}
	}
	sched.lock.Lock()
	mput(mp)
	sched.lock.Unlock()
	notesleep(&mp.park)
	noteclear(&mp.park)
	acquirep(mp, mp.nextp)
	mp.nextp = nil
}

// handoffp hands off P from a syscall or locked M. pp may be in _Psyscall,
// in which case handoffp must first win the race against the fast syscall
// exit path; losing it means the M kept its P and there is nothing to do.
func handoffp(pp *p) {
	if pp.status.Load() == _Psyscall {
		if !pp.status.CompareAndSwap(_Psyscall, _Pidle) {
			return
		}
	}
	// If it has local work, start it straight away.
	if !runqempty(pp) || sched.runqsize.Load() != 0 {
		startm(pp, false)
		return
	}
	// No local work, check that there are no spinning M's and no idle P's,
	// otherwise our help is not required.
	if sched.nmspinning.Load()+sched.npidle.Load() == 0 && sched.nmspinning.CompareAndSwap(0, 1) {
		startm(pp, true)
		return
	}
	sched.lock.Lock()
	if sched.runqsize.Load() != 0 {
		sched.lock.Unlock()
		startm(pp, false)
		return
	}
	pidleput(pp)
	sched.lock.Unlock()
}

// Associate pp with mp.
func acquirep(mp *m, pp *p) {
	if mp.p != nil {
		throw("acquirep: already in go")
	}
	if pp == nil {
		throw("acquirep: nil p")
	}
	if pp.m != nil || pp.status.Load() != _Pidle {
		print("acquirep: p->m=", unsafe.Pointer(pp.m), " p->status=", pp.status.Load(), "\n")
		throw("acquirep: invalid p state")
	}
	mp.p = pp
	pp.m = mp
	pp.status.Store(_Prunning)
}

// Disassociate pp from mp.
func releasep(mp *m) *p {
	if mp.p == nil {
		throw("releasep: invalid arg")
	}
	pp := mp.p
	if pp.m != mp || pp.status.Load() != _Prunning {
		print("releasep: m=", unsafe.Pointer(mp), " p->m=", unsafe.Pointer(pp.m), " p->status=", pp.status.Load(), "\n")
		throw("releasep: invalid p state")
	}
	mp.p = nil
	pp.m = nil
	pp.status.Store(_Pidle)
	return pp
}

// wirep is the syscall fast-exit variant of acquirep: the caller already
// CAS-transitioned pp from _Psyscall to _Prunning.
func wirep(mp *m, pp *p) {
	if mp.p != nil {
		throw("wirep: already in go")
	}
	mp.p = pp
	pp.m = mp
}

func incidlelocked(v int32) {
	sched.lock.Lock()
	sched.nmidlelocked += v
	sched.lock.Unlock()
}

// Put mp on the midle list. Sched must be locked.
func mput(mp *m) {
	mp.schedlink = sched.midle
	sched.midle = mp
	sched.nmidle++
}

// Try to get an m from the midle list. Sched must be locked.
func mget() *m {
	mp := sched.midle
	if mp != nil {
		sched.midle = mp.schedlink
		sched.nmidle--
	}
	return mp
}

// Put pp on the pidle stack. Sched must be locked.
func pidleput(pp *p) {
	if !runqempty(pp) {
		throw("pidleput: P has non-empty run queue")
	}
	pp.link = sched.pidle
	sched.pidle = pp
	sched.npidle.Add(1)
}

// Try to get a p from the pidle stack. Sched must be locked.
func pidleget() *p {
	pp := sched.pidle
	if pp != nil {
		sched.pidle = pp.link
		sched.npidle.Add(-1)
	}
	return pp
}

// execute resumes gp on mp, switching to its context. It returns when gp
// switches back, with the word gp published on the way out.
func execute(mp *m, gp *G, inheritTime bool) uintptr {
	casgstatus(gp, _Grunnable, _Grunning)
	gp.waitreason = ""
	mp.curg = gp
	gp.m = mp
	if !inheritTime {
		mp.p.schedtick++
	}
	if !gp.started {
		gp.started = true
		go greenletBody(gp)
	} else {
		gogo(gp, 0)
	}
	return gwait(mp.g0)
}

// greenletBody is the goroutine backing a greenlet: it runs the body once
// and hands control back to the scheduler coroutine for good.
func greenletBody(gp *G) {
	gp.fn(gp)
	gogo(gp.m.g0, switchExit)
}

// dropg removes the association between mp and its current greenlet.
func dropg(mp *m) {
	if mp.lockedg == nil {
		mp.curg.m = nil
		mp.curg = nil
	}
}

// resetspinning leaves the spinning state after work was found and wakes
// another P if there is idle capacity nobody is searching on behalf of.
func resetspinning(mp *m) {
	if mp.spinning {
		mp.spinning = false
		if sched.nmspinning.Add(-1) < 0 {
			throw("findrunnable: negative nmspinning")
		}
	}
	if sched.nmspinning.Load() == 0 && sched.npidle.Load() > 0 {
		wakep()
	}
}

// findrunnable finds a runnable greenlet to execute: local queue, global
// queue, netpoll, then work-stealing; parks the M as a last resort and
// starts over once woken. Returns with the M's P attached.
func findrunnable(mp *m) (*G, bool) {
top:
	pp := mp.p

	// Check the global runnable queue once in a while to ensure fairness.
	// Otherwise two greenlets can completely occupy the local run queue by
	// constantly respawning each other.
	if pp.schedtick%61 == 0 && sched.runqsize.Load() > 0 {
		sched.lock.Lock()
		gp := globrunqget(pp, 1)
		sched.lock.Unlock()
		if gp != nil {
			return gp, false
		}
	}

	// Local run queue.
	if gp, inheritTime := runqget(pp); gp != nil {
		return gp, inheritTime
	}

	// Global run queue.
	if sched.runqsize.Load() != 0 {
		sched.lock.Lock()
		gp := globrunqget(pp, 0)
		sched.lock.Unlock()
		if gp != nil {
			return gp, false
		}
	}

	// Poll network if not polled recently.
	if gp := netpollcheck(); gp != nil {
		return gp, false
	}

	// Steal work from other P's.
	//
	// If the number of spinning M's is large relative to the busy P's, block.
	// This is necessary to prevent excessive CPU consumption when the
	// program parallelism is low.
	if mp.spinning || 2*sched.nmspinning.Load() < int32(len(sched.allp))-sched.npidle.Load() {
		if !mp.spinning {
			mp.spinning = true
			sched.nmspinning.Add(1)
		}
		for i := 0; i < 4; i++ {
			stealNext := i == 3 // on the final pass, also take runnext slots
			for enum := stealOrder.start(mp.fastrand()); !enum.done(); enum.next() {
				p2 := sched.allp[enum.position()]
				if pp == p2 {
					continue
				}
				if gp := runqsteal(pp, p2, stealNext); gp != nil {
					return gp, false
				}
			}
		}
	}

	// Nothing found. Release the P and park, rechecking all queues once on
	// the way down so a wakeup published concurrently is not lost.
	sched.lock.Lock()
	if sched.runqsize.Load() != 0 {
		gp := globrunqget(pp, 0)
		sched.lock.Unlock()
		return gp, false
	}
	if releasep(mp) != pp {
		throw("findrunnable: wrong p")
	}
	pidleput(pp)
	sched.lock.Unlock()

	wasSpinning := mp.spinning
	if mp.spinning {
		mp.spinning = false
		if sched.nmspinning.Add(-1) < 0 {
			throw("findrunnable: negative nmspinning")
		}
	}

	// Check all run queues once again: a producer may have pushed after our
	// steal pass but before it could observe a spinner.
	for _, p2 := range sched.allp {
		if !runqempty(p2) {
			sched.lock.Lock()
			pp = pidleget()
			sched.lock.Unlock()
			if pp != nil {
				acquirep(mp, pp)
				if wasSpinning {
					mp.spinning = true
					sched.nmspinning.Add(1)
				}
				goto top
			}
			break
		}
	}

	// And the global queue.
	if sched.runqsize.Load() != 0 {
		sched.lock.Lock()
		if sched.runqsize.Load() != 0 {
			if pp = pidleget(); pp != nil {
				gp := globrunqget(pp, 0)
				sched.lock.Unlock()
				acquirep(mp, pp)
				return gp, false
			}
		}
		sched.lock.Unlock()
	}

	stopm(mp)
	goto top
}

// schedule is the per-M scheduler loop: the G0 coroutine. One round finds a
// runnable greenlet, executes it, and routes it onward when it switches out.
func schedule(mp *m) {
	var gp *G
	var inheritTime bool
	for {
		if gp == nil && mp.lockedg != nil {
			// We may run only our locked greenlet. Give the P away and wait
			// until it becomes runnable again.
			stoplockedm(mp)
			gp = mp.lockedg
			inheritTime = false
		}
		if gp == nil {
			gp, inheritTime = findrunnable(mp)
			resetspinning(mp)
		}
		if gp.lockedm != nil && gp.lockedm != mp {
			// Hand our P directly to the locked M, then block for a new one.
			startlockedm(mp, gp)
			gp = nil
			continue
		}
		reason := execute(mp, gp, inheritTime)
		gp = oneRoundSched(mp, reason)
		inheritTime = true // an aborted park keeps its quantum
	}
}

// oneRoundSched routes the greenlet that just switched out. A non-nil
// return is a greenlet to execute again immediately: an aborted park, or a
// greenlet leaving a slow syscall exit once this M holds a P for it.
func oneRoundSched(mp *m, reason uintptr) *G {
	gp := mp.curg
	switch reason {
	case switchExit:
		casgstatus(gp, _Grunning, _Gdead)
		if gp.lockedm != nil {
			gp.lockedm = nil
			mp.lockedg = nil
		}
		dropg(mp)

	case switchYield:
		casgstatus(gp, _Grunning, _Grunnable)
		dropg(mp)
		runqput(mp.p, gp, false)

	case switchYieldGlobal:
		casgstatus(gp, _Grunning, _Grunnable)
		dropg(mp)
		sched.lock.Lock()
		globrunqput(gp)
		sched.lock.Unlock()

	case switchPark:
		casgstatus(gp, _Grunning, _Gwaiting)
		dropg(mp)
		if fn := mp.waitunlockf; fn != nil {
			lock := mp.waitlock
			mp.waitunlockf = nil
			mp.waitlock = nil
			if !fn(gp, lock) {
				casgstatus(gp, _Gwaiting, _Grunnable)
				return gp // schedule it back, keeping the quantum
			}
		}

	case switchSyscallExit:
		// Slow syscall exit: the greenlet failed to reclaim a P on its own.
		casgstatus(gp, _Gsyscall, _Grunnable)
		dropg(mp)
		sched.lock.Lock()
		pp := pidleget()
		if pp == nil {
			// Re-inject ahead of queued work: the greenlet already waited
			// out a whole syscall.
			globrunqputhead(gp)
		}
		sched.lock.Unlock()
		if pp != nil {
			acquirep(mp, pp)
			return gp // run it right away
		}
		if mp.lockedg != nil {
			// The locked greenlet went onto the global queue; whichever M
			// dequeues it will hand us a P. Never put a locked M on midle.
			stoplockedm(mp)
			return mp.lockedg
		}
		stopm(mp)

	default:
		throw("oneRoundSched: bad switch reason")
	}
	return nil
}

// stoplockedm stops execution of mp until its locked greenlet is runnable
// again. Returns with an acquired P.
func stoplockedm(mp *m) {
	if mp.lockedg == nil || mp.lockedg.lockedm != mp {
		throw("stoplockedm: inconsistent locking")
	}
	if mp.p != nil {
		// Schedule another M to run this p.
		handoffp(releasep(mp))
	}
	incidlelocked(1)
	// Wait until another M schedules lockedg again.
	notesleep(&mp.park)
	noteclear(&mp.park)
	if readgstatus(mp.lockedg) != _Grunnable {
		dumpgstatus(mp.lockedg)
		throw("stoplockedm: not runnable")
	}
	acquirep(mp, mp.nextp)
	mp.nextp = nil
}

// startlockedm hands mp's P to the M that gp is locked to and wakes it,
// then parks mp.
func startlockedm(mp *m, gp *G) {
	mp2 := gp.lockedm
	if mp2 == mp {
		throw("startlockedm: locked to me")
	}
	if mp2.nextp != nil {
		throw("startlockedm: m has p")
	}
	incidlelocked(-1)
	mp2.nextp = releasep(mp)
	notewakeup(&mp2.park)
	stopm(mp)
}

// EnterSyscall marks the calling greenlet as executing a system call that is
// expected to return quickly. The P stays in _Psyscall so the fast exit path
// can CAS it back; its queued work remains stealable meanwhile.
func (gp *G) EnterSyscall() {
	mp := gp.m
	if mp == nil || mp.curg != gp {
		throw("entersyscall: not a running greenlet")
	}
	casgstatus(gp, _Grunning, _Gsyscall)
	pp := mp.p
	pp.m = nil
	mp.oldp = pp
	mp.p = nil
	pp.status.Store(_Psyscall)
}

// EnterSyscallBlock is EnterSyscall with a hint that the call will block:
// the P is handed off immediately so its remaining work keeps running.
func (gp *G) EnterSyscallBlock() {
	gp.EnterSyscall()
	mp := gp.m
	pp := mp.oldp
	mp.oldp = nil // the P is gone for good; exit must find another
	handoffp(pp)
}

// ExitSyscall undoes EnterSyscall/EnterSyscallBlock. Fast path: reclaim the
// original P if it is still in _Psyscall. Otherwise take any idle P, and as
// a last resort enqueue the greenlet and release the M to find other work.
func (gp *G) ExitSyscall() {
	mp := gp.m
	if mp == nil {
		throw("exitsyscall: no m")
	}
	if exitsyscallfast(mp) {
		// There's a cpu for us, so we can run.
		casgstatus(gp, _Gsyscall, _Grunning)
		return
	}
	gogo(mp.g0, switchSyscallExit)
	gwait(gp)
}

func exitsyscallfast(mp *m) bool {
	// Try to re-acquire the last P.
	oldp := mp.oldp
	mp.oldp = nil
	if oldp != nil && oldp.status.CompareAndSwap(_Psyscall, _Prunning) {
		wirep(mp, oldp)
		return true
	}
	// Try to get any other idle P.
	if sched.npidle.Load() != 0 {
		sched.lock.Lock()
		pp := pidleget()
		sched.lock.Unlock()
		if pp != nil {
			acquirep(mp, pp)
			return true
		}
	}
	return false
}

// Steal ordering: enumerate all P's in a pseudorandom permutation so
// concurrent stealers fan out instead of converging on one victim.
type randomOrder struct {
	count    uint32
	coprimes []uint32
}

type randomEnum struct {
	i     uint32
	count uint32
	pos   uint32
	inc   uint32
}

var stealOrder randomOrder

func (ord *randomOrder) reset(count uint32) {
	ord.count = count
	ord.coprimes = ord.coprimes[:0]
	for i := uint32(1); i <= count; i++ {
		if gcd(i, count) == 1 {
			ord.coprimes = append(ord.coprimes, i)
		}
	}
}

func (ord *randomOrder) start(i uint32) randomEnum {
	return randomEnum{
		count: ord.count,
		pos:   i % ord.count,
		inc:   ord.coprimes[i/ord.count%uint32(len(ord.coprimes))],
	}
}

func (enum *randomEnum) done() bool {
	return enum.i == enum.count
}

func (enum *randomEnum) next() {
	enum.i++
	enum.pos = (enum.pos + enum.inc) % enum.count
}

func (enum *randomEnum) position() uint32 {
	return enum.pos
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
