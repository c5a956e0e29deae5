// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type sleepWork struct {
	GletWork
	d      time.Duration
	doneAt int64
}

func (w *sleepWork) Run() {
	time.Sleep(w.d)
	w.doneAt = time.Now().UnixNano()
}

type errnoWork struct {
	GletWork
	errno int
}

func (w *errnoWork) Run() {
	w.SaveLastError(w.errno)
}

func TestSubmitGletWork(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	var sawDone bool
	Spawn(func(g *G) {
		w := &sleepWork{d: 10 * time.Millisecond}
		SubmitGletWork(g, w)
		sawDone = w.doneAt != 0
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "offloaded sleep")
	if !sawDone {
		t.Fatal("greenlet resumed before its work completed")
	}
}

func TestGletWorkLastError(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	var got int
	Spawn(func(g *G) {
		w := &errnoWork{errno: 42}
		SubmitGletWork(g, w)
		got = w.LastError()
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "errno work")
	if got != 42 {
		t.Fatalf("LastError = %d, want 42", got)
	}
}

func TestOffloadDoesNotStallP(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	var sleeperAt, siblingAt atomic.Int64
	Spawn(func(g *G) {
		g.Spawn(func(*G) {
			siblingAt.Store(time.Now().UnixNano())
			wg.Done()
		})
		w := &sleepWork{d: 50 * time.Millisecond}
		SubmitGletWork(g, w)
		sleeperAt.Store(time.Now().UnixNano())
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "offload sleeper and sibling")
	if siblingAt.Load() >= sleeperAt.Load() {
		t.Fatal("sibling was stalled behind offloaded work")
	}
}

func TestGetAddrInfoPoolIsSeparate(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Spawn(func(g *G) {
		w := &sleepWork{d: time.Millisecond}
		SubmitGetAddrInfoGletWork(g, w)
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "resolver-pool work")
}

type countWork struct {
	n  *atomic.Int64
	wg *sync.WaitGroup
}

func (w *countWork) Run() {
	w.n.Add(1)
	w.wg.Done()
}

func TestSubmitDetachedWork(t *testing.T) {
	var wg sync.WaitGroup
	var n atomic.Int64
	wg.Add(8)
	for i := 0; i < 8; i++ {
		SubmitWork(&countWork{n: &n, wg: &wg})
	}
	waitTimeout(t, &wg, 5*time.Second, "detached work")
	if n.Load() != 8 {
		t.Fatalf("ran %d work items, want 8", n.Load())
	}
}

func TestThreadPoolJoinAll(t *testing.T) {
	tp := NewThreadPool(2)
	tp.Start()
	var wg sync.WaitGroup
	var n atomic.Int64
	wg.Add(16)
	for i := 0; i < 16; i++ {
		tp.AddWork(&countWork{n: &n, wg: &wg})
	}
	tp.JoinAll()
	if n.Load() != 16 {
		t.Fatalf("drained %d work items, want 16", n.Load())
	}
}
