// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !linux

package runtime

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// On platforms without futex the raw lock delegates to the host mutex and
// notes are built on a one-slot semaphore channel.

// Mutex is the scheduler's raw lock. It protects the global run queue and
// the idle lists, and is the lock ParkUnlock releases on the way to sleep.
// The zero value is an unlocked mutex.
type Mutex struct {
	mu sync.Mutex
}

func (l *Mutex) Lock()   { l.mu.Lock() }
func (l *Mutex) Unlock() { l.mu.Unlock() }

// note is a one-time event used to park and wake an M.
type note struct {
	key  atomic.Uint32
	once sync.Once
	sema chan struct{}
}

func (n *note) init() {
	n.once.Do(func() { n.sema = make(chan struct{}, 1) })
}

func noteclear(n *note) {
	n.init()
	n.key.Store(0)
	select {
	case <-n.sema:
	default:
	}
}

func notewakeup(n *note) {
	n.init()
	old := n.key.Swap(1)
	if old != 0 {
		print("notewakeup - double wakeup (", old, ")\n")
		throw("notewakeup - double wakeup")
	}
	n.sema <- struct{}{}
}

func notesleep(n *note) {
	n.init()
	if n.key.Load() != 0 {
		return
	}
	<-n.sema
}

func osyield() {
	runtime.Gosched()
}
