// Package timeutil provides utilities for working with time in a consistent
// manner. Timestamps are unix seconds, which are independent of time zones.
package timeutil

import "time"

func TimestampNow() int {
	return int(time.Now().Unix())
}
