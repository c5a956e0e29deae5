// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import "time"

// The scheduler does not own a poller; the socket layer registers one. The
// hook returns a list of greenlets whose I/O became ready, linked through
// schedlink, all in _Gwaiting. block is a hint the poller may ignore.
var netpollHook func(block bool) *G

// SetNetpollHook installs the poller. Must be called before workers start.
func SetNetpollHook(fn func(block bool) *G) {
	netpollHook = fn
}

// pollRecency bounds how stale the last poll may get while workers search
// for other work.
const pollRecency = 10 * time.Millisecond

var startNano = time.Now()

func nanotime() int64 {
	return int64(time.Since(startNano))
}

// LastPollTime reports the poll clock, in nanoseconds of process uptime.
func LastPollTime() int64 {
	return sched.lastpoll.Load()
}

// netpollcheck polls the network if nobody has within pollRecency. It
// returns one ready greenlet, injecting the rest into the scheduler.
func netpollcheck() *G {
	if netpollHook == nil {
		return nil
	}
	last := sched.lastpoll.Load()
	now := nanotime()
	if last != 0 && now-last <= int64(pollRecency) {
		return nil
	}
	if !sched.lastpoll.CompareAndSwap(last, now) {
		return nil // somebody else is polling
	}
	list := netpollHook(false)
	if list == nil {
		return nil
	}
	gp := list
	rest := gp.schedlink.Ptr()
	gp.schedlink.Set(nil)
	injectglist(rest)
	casgstatus(gp, _Gwaiting, _Grunnable)
	return gp
}
