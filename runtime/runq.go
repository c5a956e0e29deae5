// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

// Per-P run queue. Single producer (the M bound to the P) pushes and pops;
// any number of stealers take from the head. The ring has 256 slots indexed
// by two unwrapped 32-bit counters.

// runqempty reports whether pp has no greenlets on its local run queue.
// The observation is best-effort.
func runqempty(pp *p) bool {
	return pp.runqhead.Load() == pp.runqtail.Load() && pp.runnext.Ptr() == nil
}

// runqput tries to put gp on the local runnable queue.
// If next is true, runqput puts gp in the pp.runnext slot; a greenlet
// displaced from runnext falls through to the tail of the queue.
// If the run queue is full, runqput moves half of it to the global queue.
// Executed only by the owner M.
func runqput(pp *p, gp *G, next bool) {
	if next {
	retryNext:
		oldnext := pp.runnext.Ptr()
		if !pp.runnext.Cas(oldnext, gp) {
			goto retryNext
		}
		if oldnext == nil {
			return
		}
		// Kick the old runnext out to the regular run queue.
		gp = oldnext
	}

retry:
	h := pp.runqhead.Load() // load-acquire, synchronize with consumers
	t := pp.runqtail.Load()
	if t-h < uint32(len(pp.runq)) {
		pp.runq[t%uint32(len(pp.runq))].Set(gp)
		pp.runqtail.Store(t + 1) // store-release, makes the item available for consumption
		return
	}
	if runqputslow(pp, gp, h, t) {
		return
	}
	// The queue is not full, now the put above must succeed.
	goto retry
}

// runqputslow puts gp and a batch of work from the local runnable queue on
// the global queue. Executed only by the owner M.
func runqputslow(pp *p, gp *G, h, t uint32) bool {
	var batch [len(pp.runq)/2 + 1]*G

	// First, grab a batch from the local queue.
	n := t - h
	n = n / 2
	if n != uint32(len(pp.runq)/2) {
		throw("runqputslow: queue is not full")
	}
	for i := uint32(0); i < n; i++ {
		batch[i] = pp.runq[(h+i)%uint32(len(pp.runq))].Ptr()
	}
	if !pp.runqhead.CompareAndSwap(h, h+n) { // cas-release, commits consume
		return false
	}
	batch[n] = gp

	// Link the greenlets.
	for i := uint32(0); i < n; i++ {
		batch[i].schedlink.Set(batch[i+1])
	}

	// Now put the batch on the global queue.
	sched.lock.Lock()
	globrunqbatch(batch[0], batch[n], int32(n+1))
	sched.lock.Unlock()
	return true
}

// runqget gets a greenlet from the local runnable queue.
// If inheritTime is true, gp should inherit the remaining time in the
// current time slice; otherwise it should start a new time slice.
// Executed only by the owner M.
func runqget(pp *p) (gp *G, inheritTime bool) {
	// If there's a runnext, it's the next G to run.
	for {
		next := pp.runnext.Ptr()
		if next == nil {
			break
		}
		if pp.runnext.Cas(next, nil) {
			return next, true
		}
	}

	for {
		h := pp.runqhead.Load() // load-acquire, synchronize with other consumers
		t := pp.runqtail.Load()
		if t == h {
			return nil, false
		}
		gp := pp.runq[h%uint32(len(pp.runq))].Ptr()
		if pp.runqhead.CompareAndSwap(h, h+1) { // cas-release, commits consume
			return gp, false
		}
	}
}

// runqgrab grabs a batch of greenlets from pp's local runnable queue into
// batch. The batch array must be of size len(pp.runq)/2. Returns the number
// of grabbed greenlets. Can be executed by any M.
//
// If stealRunNextG and the queue is empty, it also attempts to steal
// pp.runnext.
func runqgrab(pp *p, batch []*G, stealRunNextG bool) uint32 {
	for {
		h := pp.runqhead.Load() // load-acquire, synchronize with other consumers
		t := pp.runqtail.Load() // load-acquire, synchronize with the producer
		n := t - h
		n = n - n/2
		if n == 0 {
			if stealRunNextG {
				// Try to steal from pp.runnext.
				if next := pp.runnext.Ptr(); next != nil {
					if !pp.runnext.Cas(next, nil) {
						continue
					}
					batch[0] = next
					return 1
				}
			}
			return 0
		}
		if n > uint32(len(pp.runq)/2) { // read inconsistent h and t
			continue
		}
		for i := uint32(0); i < n; i++ {
			batch[i] = pp.runq[(h+i)%uint32(len(pp.runq))].Ptr()
		}
		if pp.runqhead.CompareAndSwap(h, h+n) { // cas-release, commits consume
			return n
		}
	}
}

// runqsteal steals half of the elements from the local runnable queue of p2
// and puts them onto the local runnable queue of pp.
// Returns one of the stolen elements (or nil if failed).
func runqsteal(pp, p2 *p, stealRunNextG bool) *G {
	var batch [len(pp.runq) / 2]*G

	n := runqgrab(p2, batch[:], stealRunNextG)
	if n == 0 {
		return nil
	}
	n--
	gp := batch[n]
	if n == 0 {
		return gp
	}
	h := pp.runqhead.Load() // load-acquire, synchronize with consumers
	t := pp.runqtail.Load()
	if t-h+n >= uint32(len(pp.runq)) {
		throw("runqsteal: runq overflow")
	}
	for i := uint32(0); i < n; i++ {
		pp.runq[(t+i)%uint32(len(pp.runq))].Set(batch[i])
	}
	pp.runqtail.Store(t + n) // store-release, makes the items available for consumption
	return gp
}

// GlobalRunqSize reports the number of greenlets waiting on the global run
// queue. The observation is best-effort.
func GlobalRunqSize() int32 {
	return sched.runqsize.Load()
}

// Global runnable queue: an intrusive FIFO through G.schedlink.
// The scheduler lock must be held for all of the operations below.

// globrunqput puts gp on the tail of the global runnable queue.
func globrunqput(gp *G) {
	gp.schedlink.Set(nil)
	if sched.runqtail != nil {
		sched.runqtail.schedlink.Set(gp)
	} else {
		sched.runqhead = gp
	}
	sched.runqtail = gp
	sched.runqsize.Add(1)
}

// globrunqputhead puts gp at the head of the global runnable queue. Used to
// re-inject a resumed greenlet ahead of waiting work.
func globrunqputhead(gp *G) {
	gp.schedlink.Set(sched.runqhead)
	sched.runqhead = gp
	if sched.runqtail == nil {
		sched.runqtail = gp
	}
	sched.runqsize.Add(1)
}

// globrunqbatch splices a prelinked batch of n greenlets onto the tail of
// the global runnable queue.
func globrunqbatch(ghead, gtail *G, n int32) {
	gtail.schedlink.Set(nil)
	if sched.runqtail != nil {
		sched.runqtail.schedlink.Set(ghead)
	} else {
		sched.runqhead = ghead
	}
	sched.runqtail = gtail
	sched.runqsize.Add(n)
}

// globrunqget dequeues up to max greenlets from the global queue, returning
// the first and pushing the rest onto pp's local queue. max <= 0 means no
// explicit bound beyond the batching rule.
func globrunqget(pp *p, max int32) *G {
	size := sched.runqsize.Load()
	if size == 0 {
		return nil
	}

	n := size/int32(len(sched.allp)) + 1
	if n > size {
		n = size
	}
	if max > 0 && n > max {
		n = max
	}
	if n > int32(len(pp.runq))/2 {
		n = int32(len(pp.runq)) / 2
	}

	sched.runqsize.Add(-n)

	gp := sched.runqhead
	sched.runqhead = gp.schedlink.Ptr()
	n--
	for ; n > 0; n-- {
		gp1 := sched.runqhead
		sched.runqhead = gp1.schedlink.Ptr()
		runqput(pp, gp1, false)
	}
	if sched.runqsize.Load() == 0 {
		sched.runqtail = nil
		sched.runqhead = nil
	}
	return gp
}

// injectglist adds each runnable greenlet on the list to some run queue and
// wakes as many P's as there are idle ones, up to the list length. The list
// is linked through schedlink and its greenlets must be in _Gwaiting.
func injectglist(glist *G) {
	if glist == nil {
		return
	}
	sched.lock.Lock()
	var n int
	for n = 0; glist != nil; n++ {
		gp := glist
		glist = gp.schedlink.Ptr()
		casgstatus(gp, _Gwaiting, _Grunnable)
		globrunqput(gp)
	}
	sched.lock.Unlock()
	for ; n != 0 && sched.npidle.Load() != 0; n-- {
		startm(nil, false)
	}
}
