// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"os"
	"strconv"
	"sync"
	"unsafe"
)

// The offload pool runs blocking work on OS threads of its own so that a
// blocking call never stalls a logical processor. A second pool is dedicated
// to name resolution to keep DNS latency away from general blocking work.

// Work is one item of blocking work.
type Work interface {
	Run()
}

// GletWork is the base of blocking work submitted on behalf of a greenlet.
// Embed it and implement Run; the pool resumes the captured greenlet when
// Run returns. The last system error recorded by Run travels back with it.
type GletWork struct {
	gp        *G
	lastError int
}

// SaveLastError records the system error code observed by Run.
func (w *GletWork) SaveLastError(err int) { w.lastError = err }

// LastError returns the system error code recorded during Run, 0 if none.
func (w *GletWork) LastError() int { return w.lastError }

// Resume re-queues the captured greenlet onto the runtime.
func (w *GletWork) Resume() {
	Ready(w.gp)
}

// Finalize releases the work item. Resources are reclaimed when the last
// reference drops; the hook exists for work that holds external state.
func (w *GletWork) Finalize() {}

func (w *GletWork) bind(gp *G) { w.gp = gp }

// GletRunner is the submit-side view of greenlet-bound work: any type
// embedding GletWork and implementing Run satisfies it.
type GletRunner interface {
	Work
	Resume()
	Finalize()
	bind(gp *G)
}

// ThreadPool is a fixed set of OS threads draining a FIFO of Work.
type ThreadPool struct {
	numThreads int
	lock       Mutex
	cond       *sync.Cond
	tasks      []Work
	closing    bool
	started    bool
	wg         sync.WaitGroup
}

func NewThreadPool(numThreads int) *ThreadPool {
	tp := &ThreadPool{numThreads: numThreads}
	tp.cond = sync.NewCond(&tp.lock)
	return tp
}

// Start launches the worker threads. Not thread-safe; called once from Init.
func (tp *ThreadPool) Start() {
	if tp.started {
		throw("threadpool: double start")
	}
	tp.started = true
	tp.wg.Add(tp.numThreads)
	for i := 0; i < tp.numThreads; i++ {
		go tp.run()
	}
}

// JoinAll stops accepting work, drains the queue and waits for the workers.
func (tp *ThreadPool) JoinAll() {
	tp.lock.Lock()
	tp.closing = true
	tp.cond.Broadcast()
	tp.lock.Unlock()
	tp.wg.Wait()
}

// AddWork enqueues w and signals a worker.
func (tp *ThreadPool) AddWork(w Work) {
	tp.lock.Lock()
	if tp.closing {
		tp.lock.Unlock()
		throw("threadpool: add on closed pool")
	}
	tp.tasks = append(tp.tasks, w)
	tp.cond.Signal()
	tp.lock.Unlock()
}

// run is the worker loop: wait for a signal, drain as many items as
// possible, execute each.
func (tp *ThreadPool) run() {
	defer tp.wg.Done()
	for {
		tp.lock.Lock()
		for len(tp.tasks) == 0 && !tp.closing {
			tp.cond.Wait()
		}
		if len(tp.tasks) == 0 && tp.closing {
			tp.lock.Unlock()
			return
		}
		batch := tp.tasks
		tp.tasks = nil
		tp.lock.Unlock()

		for _, w := range batch {
			w.Run()
			if gw, ok := w.(GletRunner); ok {
				gw.Resume()
				gw.Finalize()
			}
		}
	}
}

var (
	offloadPool     *ThreadPool
	getAddrInfoPool *ThreadPool
)

func startOffloadPools() {
	n := 4
	if v := os.Getenv("TINOFFLOADTHREADS"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			n = k
		}
	}
	offloadPool = NewThreadPool(n)
	offloadPool.Start()
	getAddrInfoPool = NewThreadPool(n)
	getAddrInfoPool.Start()
}

func submitGletWork(tp *ThreadPool, gp *G, w GletRunner) {
	if gp.m == nil || gp.m.curg != gp {
		throw("submit: not a running greenlet")
	}
	w.bind(gp)
	// Enqueue from the park predicate: by then the greenlet is observably
	// waiting, so the worker's Resume cannot outrun the park.
	gp.Park(func(gp *G, _ unsafe.Pointer) bool {
		tp.AddWork(w)
		return true
	}, nil, "offload")
}

// SubmitGletWork parks the calling greenlet, runs w on the offload pool and
// returns once the work has completed and the greenlet was resumed.
func SubmitGletWork(gp *G, w GletRunner) {
	submitGletWork(offloadPool, gp, w)
}

// SubmitGetAddrInfoGletWork is SubmitGletWork on the pool dedicated to name
// resolution.
func SubmitGetAddrInfoGletWork(gp *G, w GletRunner) {
	submitGletWork(getAddrInfoPool, gp, w)
}

// SubmitWork enqueues detached blocking work not bound to any greenlet.
func SubmitWork(w Work) {
	offloadPool.AddWork(w)
}
