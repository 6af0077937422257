package conv

import "testing"

func TestUtoa(t *testing.T) {
	var buf [20]byte
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{100000, "100000"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, c := range cases {
		if got := string(Utoa(buf[:], c.n)); got != c.want {
			t.Errorf("Utoa(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestItoa(t *testing.T) {
	var buf [21]byte
	if got := string(Itoa(buf[:], -42)); got != "-42" {
		t.Errorf("Itoa(-42) = %q", got)
	}
	if got := string(Itoa(buf[:], 42)); got != "42" {
		t.Errorf("Itoa(42) = %q", got)
	}
}

func TestUhex(t *testing.T) {
	var buf [16]byte
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{0x20, "20"},
		{0xDEADBEEF, "deadbeef"},
	}
	for _, c := range cases {
		if got := string(Uhex(buf[:], c.n)); got != c.want {
			t.Errorf("Uhex(%#x) = %q, want %q", c.n, got, c.want)
		}
	}
}
