package i2c

import "strings"

// Status is the completion code of one request. It is a stable, caller-facing
// identifier that also implements error, so backends and higher-level drivers
// can return it directly.
type Status uint8

const (
	StatusOK Status = iota
	StatusTruncated
	StatusNegativeAcknowledge
	StatusTransmitError
	StatusOtherBusError
	StatusTimeout
	StatusArbitrationLost
	StatusBusError
	StatusUnexpectedError
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusTruncated:
		return "transmission truncated"
	case StatusNegativeAcknowledge:
		return "no response from device (address NAK)"
	case StatusTransmitError:
		return "transmit error (data NAK)"
	case StatusOtherBusError:
		return "other bus error"
	case StatusTimeout:
		return "timeout"
	case StatusArbitrationLost:
		return "arbitration lost"
	case StatusBusError:
		return "I2C bus error"
	case StatusUnexpectedError:
		return "unexpected error"
	case StatusPending:
		return "request pending"
	default:
		return "status code not recognised"
	}
}

func (s Status) Error() string { return s.String() }

// retryable reports whether a try that ended with s may be re-issued.
func retryable(s Status) bool {
	switch s {
	case StatusNegativeAcknowledge, StatusTransmitError, StatusArbitrationLost, StatusTimeout:
		return true
	}
	return false
}

// StatusOf maps a backend error to a Status. A nil error is OK and a Status
// passes through unchanged; anything else is classified by message. Extend
// the heuristics per platform driver.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if s, ok := err.(Status); ok {
		return s
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "arbitration"):
		return StatusArbitrationLost
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return StatusTimeout
	case strings.Contains(msg, "ack") || strings.Contains(msg, "nak") || strings.Contains(msg, "no device"):
		return StatusNegativeAcknowledge
	case strings.Contains(msg, "bus error"):
		return StatusBusError
	default:
		return StatusOtherBusError
	}
}
