// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build linux

package runtime

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// This implementation depends on futex(2):
//
//	futexsleep(addr *uint32, val uint32)
//		Atomically, if *addr == val, sleep.
//		Might be woken up spuriously; that's allowed.
//
//	futexwakeup(addr *uint32, cnt uint32)
//		If any threads are sleeping on addr, wake up at most cnt.

const (
	mutexUnlocked = 0
	mutexLocked   = 1
	mutexSleeping = 2

	activeSpin    = 4
	activeSpinCnt = 30
	passiveSpin   = 1
)

// Linux futex(2) operation constants (see <linux/futex.h>). golang.org/x/sys/unix
// does not export these, so they are defined locally with their fixed kernel ABI values.
const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128
)

// Mutex is the scheduler's raw lock. It protects the global run queue and
// the idle lists, and is the lock ParkUnlock releases on the way to sleep.
// The zero value is an unlocked mutex.
//
// key holds mutexUnlocked, mutexLocked, or mutexSleeping: sleeping means
// there is presumably at least one thread parked in the kernel on it.
// Spinning threads can exist in every state; they do not count as sleeping.
type Mutex struct {
	key uint32
}

// note is a one-time event used to park and wake an M.
type note struct {
	key uint32
}

func futexsleep(addr *uint32, val uint32) {
	unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)),
		uintptr(futexWait|futexPrivateFlag), uintptr(val), 0, 0, 0)
}

func futexwakeup(addr *uint32, cnt uint32) {
	unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)),
		uintptr(futexWake|futexPrivateFlag), uintptr(cnt), 0, 0, 0)
}

func (l *Mutex) Lock() {
	// Speculative grab for lock.
	v := atomic.SwapUint32(&l.key, mutexLocked)
	if v == mutexUnlocked {
		return
	}

	// wait is either mutexLocked or mutexSleeping depending on whether there
	// is presumably a thread sleeping on this mutex. If we ever change l.key
	// from mutexSleeping to some other value, we must be careful to change
	// it back to mutexSleeping before returning, to ensure that the sleeping
	// thread gets its wakeup call.
	wait := v

	spin := 0
	if ncpu > 1 {
		spin = activeSpin
	}
	for {
		// Try for lock, spinning.
		for i := 0; i < spin; i++ {
			for atomic.LoadUint32(&l.key) == mutexUnlocked {
				if atomic.CompareAndSwapUint32(&l.key, mutexUnlocked, wait) {
					return
				}
			}
			procyield(activeSpinCnt)
		}

		// Try for lock, rescheduling.
		for i := 0; i < passiveSpin; i++ {
			for atomic.LoadUint32(&l.key) == mutexUnlocked {
				if atomic.CompareAndSwapUint32(&l.key, mutexUnlocked, wait) {
					return
				}
			}
			osyield()
		}

		// Sleep.
		v = atomic.SwapUint32(&l.key, mutexSleeping)
		if v == mutexUnlocked {
			return
		}
		wait = mutexSleeping
		futexsleep(&l.key, mutexSleeping)
	}
}

func (l *Mutex) Unlock() {
	v := atomic.SwapUint32(&l.key, mutexUnlocked)
	if v == mutexUnlocked {
		throw("unlock of unlocked lock")
	}
	if v == mutexSleeping {
		futexwakeup(&l.key, 1)
	}
}

// One-time notifications.
func noteclear(n *note) {
	atomic.StoreUint32(&n.key, 0)
}

func notewakeup(n *note) {
	old := atomic.SwapUint32(&n.key, 1)
	if old != 0 {
		print("notewakeup - double wakeup (", old, ")\n")
		throw("notewakeup - double wakeup")
	}
	futexwakeup(&n.key, 1)
}

func notesleep(n *note) {
	for atomic.LoadUint32(&n.key) == 0 {
		futexsleep(&n.key, 0)
	}
}

func procyield(cycles int) {
	for i := 0; i < cycles; i++ {
		// Burn a few cycles between lock attempts.
	}
}

func osyield() {
	runtime.Gosched()
}
