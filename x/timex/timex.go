package timex

import "time"

// NowMicros returns a microsecond reading suitable for elapsed-time
// arithmetic. On MCU builds it counts from boot.
func NowMicros() int64 { return time.Now().UnixMicro() }

// NowMs returns the same reading in milliseconds.
func NowMs() int64 { return NowMicros() / 1000 }
