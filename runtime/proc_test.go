// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"
)

func waitTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration, what string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestWidth(t *testing.T) {
	if Width() != 4 {
		t.Fatalf("width = %d, want 4", Width())
	}
}

func TestSpawnManyComplete(t *testing.T) {
	const n = 1000
	var wg sync.WaitGroup
	wg.Add(n)
	var ran atomic.Int64
	for i := 0; i < n; i++ {
		Spawn(func(g *G) {
			ran.Add(1)
			wg.Done()
		})
	}
	waitTimeout(t, &wg, 10*time.Second, "1000 greenlets")
	if ran.Load() != n {
		t.Fatalf("ran %d greenlets, want %d", ran.Load(), n)
	}
	quiesce(t)
	if size := sched.runqsize.Load(); size != 0 {
		t.Fatalf("global queue holds %d after completion, want 0", size)
	}
}

func TestGreenletSpawnsChildren(t *testing.T) {
	// One parent floods its own P with children, forcing overflow to the
	// global queue and giving the other P's something to steal.
	const n = 512
	var wg sync.WaitGroup
	wg.Add(n + 1)
	var ran atomic.Int64
	Spawn(func(g *G) {
		for i := 0; i < n; i++ {
			g.Spawn(func(*G) {
				ran.Add(1)
				wg.Done()
			})
		}
		wg.Done()
	})
	waitTimeout(t, &wg, 10*time.Second, "512 children")
	if ran.Load() != n {
		t.Fatalf("ran %d children, want %d", ran.Load(), n)
	}
}

func TestYield(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	var steps int
	Spawn(func(g *G) {
		for i := 0; i < 100; i++ {
			steps++
			g.Yield()
		}
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "yielding greenlet")
	if steps != 100 {
		t.Fatalf("took %d steps, want 100", steps)
	}
}

func TestYieldGlobal(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Spawn(func(g *G) {
		for i := 0; i < 10; i++ {
			g.YieldGlobal()
		}
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "globally yielding greenlet")
}

func TestSleepAndWake(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	start := time.Now()
	Spawn(func(g *G) {
		Sleep(g, 30*time.Millisecond)
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "sleeping greenlet")
	if d := time.Since(start); d < 30*time.Millisecond {
		t.Fatalf("woke after %v, want >= 30ms", d)
	}
}

func TestSleeperDoesNotBlockSiblings(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	var sleeperDone, siblingDone atomic.Int64
	Spawn(func(g *G) {
		sibling := func(*G) {
			siblingDone.Store(time.Now().UnixNano())
			wg.Done()
		}
		g.Spawn(sibling)
		Sleep(g, 50*time.Millisecond)
		sleeperDone.Store(time.Now().UnixNano())
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "sleeper and sibling")
	if siblingDone.Load() >= sleeperDone.Load() {
		t.Fatal("sibling waited for the sleeper")
	}
}

func TestParkAbort(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	aborted := false
	Spawn(func(g *G) {
		g.Park(func(gp *G, _ unsafe.Pointer) bool {
			return false // abort the park
		}, nil, "abort test")
		aborted = true
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "aborted park")
	if !aborted {
		t.Fatal("park did not abort")
	}
}

func TestParkReady(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Spawn(func(g *G) {
		g.Park(func(gp *G, _ unsafe.Pointer) bool {
			go func() {
				time.Sleep(5 * time.Millisecond)
				Ready(gp)
			}()
			return true
		}, nil, "ready test")
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "parked greenlet")
}

func TestSyscallFastPath(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Spawn(func(g *G) {
		g.EnterSyscall()
		g.ExitSyscall()
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "fast syscall")
}

func TestSyscallBlockHandsOffP(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	var syscallDone, siblingDone atomic.Int64
	Spawn(func(g *G) {
		g.Spawn(func(*G) {
			siblingDone.Store(time.Now().UnixNano())
			wg.Done()
		})
		g.EnterSyscallBlock()
		time.Sleep(40 * time.Millisecond) // the blocking call itself
		g.ExitSyscall()
		syscallDone.Store(time.Now().UnixNano())
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "syscall and sibling")
	if siblingDone.Load() >= syscallDone.Load() {
		t.Fatal("sibling was stalled behind a blocking syscall")
	}
}

func TestGlobalQueueServedUnderLocalLoad(t *testing.T) {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	// Busy greenlets cycling through their local queues.
	for i := 0; i < Width(); i++ {
		Spawn(func(g *G) {
			for {
				select {
				case <-stop:
					return
				default:
				}
				g.Yield()
			}
		})
	}
	// A straggler on the global queue must still get service.
	Spawn(func(g *G) {
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "global-queue greenlet under load")
	close(stop)
	quiesce(t)
}

func TestLockM(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Spawn(func(g *G) {
		g.LockM()
		for i := 0; i < 5; i++ {
			g.Yield()
		}
		Sleep(g, 5*time.Millisecond)
		g.UnlockM()
		wg.Done()
	})
	waitTimeout(t, &wg, 10*time.Second, "locked greenlet")
	quiesce(t)
}

func TestSpawnReturnsHandle(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	gp := Spawn(func(g *G) {
		wg.Done()
	})
	if gp == nil || gp.Goid() == 0 {
		t.Fatal("spawn returned a bad handle")
	}
	waitTimeout(t, &wg, 5*time.Second, "handle greenlet")
}
