// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"sync"
	"testing"
	"time"
)

func TestWaitQueueSignal(t *testing.T) {
	var (
		mu   Mutex
		q    WaitQueue
		flag bool
	)
	var wg sync.WaitGroup
	wg.Add(2)

	Spawn(func(g *G) {
		mu.Lock()
		for !flag {
			q.Wait(g, &mu, "flag")
		}
		mu.Unlock()
		wg.Done()
	})
	Spawn(func(g *G) {
		time.Sleep(5 * time.Millisecond) // let the waiter park first
		mu.Lock()
		flag = true
		q.Signal(g)
		mu.Unlock()
		wg.Done()
	})
	waitTimeout(t, &wg, 5*time.Second, "condvar ping-pong")
}

func TestWaitQueueBroadcast(t *testing.T) {
	var (
		mu   Mutex
		q    WaitQueue
		open bool
	)
	const waiters = 5
	var wg sync.WaitGroup
	wg.Add(waiters)

	for i := 0; i < waiters; i++ {
		Spawn(func(g *G) {
			mu.Lock()
			for !open {
				q.Wait(g, &mu, "gate")
			}
			mu.Unlock()
			wg.Done()
		})
	}
	Spawn(func(g *G) {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		open = true
		q.Broadcast(g)
		mu.Unlock()
	})
	waitTimeout(t, &wg, 5*time.Second, "broadcast gate")
}

func TestWaitQueueForeignSignal(t *testing.T) {
	var (
		mu   Mutex
		q    WaitQueue
		flag bool
	)
	var wg sync.WaitGroup
	wg.Add(1)

	Spawn(func(g *G) {
		mu.Lock()
		for !flag {
			q.Wait(g, &mu, "foreign")
		}
		mu.Unlock()
		wg.Done()
	})

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	flag = true
	q.Signal(nil) // foreign thread wakeup
	mu.Unlock()
	waitTimeout(t, &wg, 5*time.Second, "foreign signal")
}
