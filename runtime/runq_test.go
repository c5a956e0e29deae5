// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"os"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	Init(4)
	os.Exit(m.Run())
}

func newTestG() *G {
	return newgreenlet(func(*G) {})
}

// quiesce waits until every P is on the idle stack and no M is spinning.
func quiesce(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if sched.npidle.Load() == int32(len(sched.allp)) && sched.nmspinning.Load() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("scheduler did not quiesce: npidle=%d nmspinning=%d",
		sched.npidle.Load(), sched.nmspinning.Load())
}

func TestRunqEmpty(t *testing.T) {
	pp := new(p)
	if !runqempty(pp) {
		t.Fatal("fresh p reports non-empty")
	}
	runqput(pp, newTestG(), false)
	if runqempty(pp) {
		t.Fatal("p with one queued g reports empty")
	}
	runqget(pp)
	if !runqempty(pp) {
		t.Fatal("drained p reports non-empty")
	}
	runqput(pp, newTestG(), true)
	if runqempty(pp) {
		t.Fatal("p with runnext reports empty")
	}
}

func TestRunqPutGetFIFO(t *testing.T) {
	pp := new(p)
	gs := make([]*G, 10)
	for i := range gs {
		gs[i] = newTestG()
		runqput(pp, gs[i], false)
	}
	for i := range gs {
		gp, inheritTime := runqget(pp)
		if gp != gs[i] {
			t.Fatalf("got g %d out of order", i)
		}
		if inheritTime {
			t.Fatal("regular pop must not inherit the time slice")
		}
	}
	if gp, _ := runqget(pp); gp != nil {
		t.Fatal("queue should be empty")
	}
}

func TestRunqPutNextDisplaces(t *testing.T) {
	pp := new(p)
	g1 := newTestG()
	g2 := newTestG()
	runqput(pp, g1, true)
	runqput(pp, g2, true) // displaces g1 to the ring

	gp, inheritTime := runqget(pp)
	if gp != g2 || !inheritTime {
		t.Fatal("runnext must pop first and inherit the quantum")
	}
	gp, inheritTime = runqget(pp)
	if gp != g1 || inheritTime {
		t.Fatal("displaced runnext must pop from the ring without inheritance")
	}
}

func TestRunqStealHalf(t *testing.T) {
	victim := new(p)
	thief := new(p)
	gs := make(map[*G]bool)
	for i := 0; i < 8; i++ {
		gp := newTestG()
		gs[gp] = true
		runqput(victim, gp, false)
	}

	gp := runqsteal(thief, victim, false)
	if gp == nil {
		t.Fatal("steal from a populated queue failed")
	}

	// Half rounded up leaves the victim, one comes back directly and the
	// rest land on the thief's queue.
	stolen := 1
	for {
		g2, _ := runqget(thief)
		if g2 == nil {
			break
		}
		if !gs[g2] {
			t.Fatal("stole a greenlet that was never queued")
		}
		stolen++
	}
	if stolen != 4 {
		t.Fatalf("stole %d greenlets, want 4", stolen)
	}
	remaining := 0
	for {
		g2, _ := runqget(victim)
		if g2 == nil {
			break
		}
		remaining++
	}
	if remaining != 4 {
		t.Fatalf("victim kept %d greenlets, want 4", remaining)
	}
}

func TestRunqStealRestoresMultiset(t *testing.T) {
	victim := new(p)
	thief := new(p)
	want := make(map[*G]bool)
	for i := 0; i < 11; i++ {
		gp := newTestG()
		want[gp] = true
		runqput(victim, gp, false)
	}

	first := runqsteal(thief, victim, false)
	if first == nil {
		t.Fatal("steal failed")
	}

	// Put the stolen set back.
	runqput(victim, first, false)
	for {
		gp, _ := runqget(thief)
		if gp == nil {
			break
		}
		runqput(victim, gp, false)
	}

	got := make(map[*G]bool)
	for {
		gp, _ := runqget(victim)
		if gp == nil {
			break
		}
		got[gp] = true
	}
	if len(got) != len(want) {
		t.Fatalf("restored %d greenlets, want %d", len(got), len(want))
	}
	for gp := range want {
		if !got[gp] {
			t.Fatal("a stolen greenlet went missing")
		}
	}
}

func TestRunqStealRunNext(t *testing.T) {
	victim := new(p)
	thief := new(p)
	gp := newTestG()
	runqput(victim, gp, true)

	if got := runqsteal(thief, victim, false); got != nil {
		t.Fatal("stole runnext although stealRunNextG was false")
	}
	got := runqsteal(thief, victim, true)
	if got != gp {
		t.Fatal("failed to steal runnext on the final pass")
	}
	if victim.runnext.Ptr() != nil {
		t.Fatal("victim kept its runnext after the steal")
	}
}

func TestRunqPutSlowMovesHalfToGlobal(t *testing.T) {
	quiesce(t)
	pp := new(p)
	for i := 0; i < len(pp.runq); i++ {
		runqput(pp, newTestG(), false)
	}
	if n := pp.runqtail.Load() - pp.runqhead.Load(); n != uint32(len(pp.runq)) {
		t.Fatalf("filled queue holds %d, want %d", n, len(pp.runq))
	}

	base := sched.runqsize.Load()
	runqput(pp, newTestG(), false)

	sched.lock.Lock()
	moved := sched.runqsize.Load() - base
	// Detach the overflow batch so later tests see a clean global queue.
	for i := int32(0); i < moved; i++ {
		gp := sched.runqhead
		sched.runqhead = gp.schedlink.Ptr()
		sched.runqsize.Add(-1)
	}
	if sched.runqsize.Load() == 0 {
		sched.runqhead = nil
		sched.runqtail = nil
	}
	sched.lock.Unlock()

	if moved != int32(len(pp.runq))/2+1 {
		t.Fatalf("overflow moved %d greenlets to the global queue, want %d",
			moved, len(pp.runq)/2+1)
	}
	if n := pp.runqtail.Load() - pp.runqhead.Load(); n != uint32(len(pp.runq))/2 {
		t.Fatalf("after overflow the local queue holds %d, want %d", n, len(pp.runq)/2)
	}
}

func TestGlobrunqBatching(t *testing.T) {
	quiesce(t)
	pp := new(p)
	sched.lock.Lock()
	for i := 0; i < 9; i++ {
		globrunqput(newTestG())
	}
	gp := globrunqget(pp, 2)
	if gp == nil {
		t.Error("globrunqget returned nothing")
	}
	// max=2: one returned, one pushed locally.
	if got := sched.runqsize.Load(); got != 7 {
		t.Errorf("global queue holds %d, want 7", got)
	}
	// Drain what's left.
	for sched.runqsize.Load() > 0 {
		if globrunqget(pp, 0) == nil {
			break
		}
	}
	sched.lock.Unlock()

	local := uint32(0)
	for {
		g2, _ := runqget(pp)
		if g2 == nil {
			break
		}
		local++
	}
	if local == 0 {
		t.Error("globrunqget never batched into the local queue")
	}
}
