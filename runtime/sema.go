// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

// WaitQueue is a FIFO of parked greenlets linked through schedlink: the
// building block for channels and condition variables. All operations must
// be made under the same external Mutex.
type WaitQueue struct {
	head *G
	tail *G
}

func (q *WaitQueue) enqueue(gp *G) {
	gp.schedlink.Set(nil)
	if q.tail != nil {
		q.tail.schedlink.Set(gp)
	} else {
		q.head = gp
	}
	q.tail = gp
}

func (q *WaitQueue) dequeue() *G {
	gp := q.head
	if gp == nil {
		return nil
	}
	q.head = gp.schedlink.Ptr()
	if q.head == nil {
		q.tail = nil
	}
	gp.schedlink.Set(nil)
	return gp
}

// Empty reports whether no greenlet is waiting.
func (q *WaitQueue) Empty() bool { return q.head == nil }

// Wait enqueues gp and parks it, releasing l atomically with the park.
// It returns with l re-acquired once gp has been signalled.
func (q *WaitQueue) Wait(gp *G, l *Mutex, reason string) {
	q.enqueue(gp)
	gp.ParkUnlock(l, reason)
	l.Lock()
}

// Signal makes the longest-waiting greenlet runnable on the caller's P.
// caller may be nil when signalling from a foreign thread.
func (q *WaitQueue) Signal(caller *G) {
	gp := q.dequeue()
	if gp == nil {
		return
	}
	if caller != nil {
		caller.MakeReady(gp)
	} else {
		Ready(gp)
	}
}

// Broadcast makes every waiting greenlet runnable.
func (q *WaitQueue) Broadcast(caller *G) {
	for !q.Empty() {
		q.Signal(caller)
	}
}
