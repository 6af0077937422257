// i2c/status_test.go
package i2c

import (
	"errors"
	"testing"
)

func TestStatusStrings(t *testing.T) {
	cases := []struct {
		st   Status
		want string
	}{
		{StatusOK, "OK"},
		{StatusTruncated, "transmission truncated"},
		{StatusNegativeAcknowledge, "no response from device (address NAK)"},
		{StatusTransmitError, "transmit error (data NAK)"},
		{StatusOtherBusError, "other bus error"},
		{StatusTimeout, "timeout"},
		{StatusArbitrationLost, "arbitration lost"},
		{StatusBusError, "I2C bus error"},
		{StatusUnexpectedError, "unexpected error"},
		{StatusPending, "request pending"},
		{Status(200), "status code not recognised"},
	}
	for _, c := range cases {
		if got := c.st.String(); got != c.want {
			t.Errorf("Status(%d).String() = %q, want %q", c.st, got, c.want)
		}
	}
}

func TestStatusImplementsError(t *testing.T) {
	var err error = StatusTimeout
	if err.Error() != "timeout" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRetryableSet(t *testing.T) {
	yes := []Status{StatusNegativeAcknowledge, StatusTransmitError, StatusArbitrationLost, StatusTimeout}
	no := []Status{StatusOK, StatusTruncated, StatusOtherBusError, StatusBusError, StatusUnexpectedError, StatusPending}
	for _, s := range yes {
		if !retryable(s) {
			t.Errorf("retryable(%v) = false, want true", s)
		}
	}
	for _, s := range no {
		if retryable(s) {
			t.Errorf("retryable(%v) = true, want false", s)
		}
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{StatusArbitrationLost, StatusArbitrationLost},
		{errors.New("I2C timeout"), StatusTimeout},
		{errors.New("context deadline exceeded"), StatusTimeout},
		{errors.New("arbitration lost during transfer"), StatusArbitrationLost},
		{errors.New("expected ACK not received"), StatusNegativeAcknowledge},
		{errors.New("no device present"), StatusNegativeAcknowledge},
		{errors.New("bus error detected"), StatusBusError},
		{errors.New("something else entirely"), StatusOtherBusError},
	}
	for _, c := range cases {
		if got := StatusOf(c.err); got != c.want {
			t.Errorf("StatusOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
