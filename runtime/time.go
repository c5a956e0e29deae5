// Copyright (c) 2016 Tin Project. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtime

import (
	"time"
	"unsafe"
)

// Sleep parks the calling greenlet for at least d. The wakeup arrives from
// the timer thread through Ready, like any other external waker.
func Sleep(gp *G, d time.Duration) {
	gp.Park(func(gp *G, _ unsafe.Pointer) bool {
		time.AfterFunc(d, func() { Ready(gp) })
		return true
	}, nil, "sleep")
}
