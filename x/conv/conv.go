package conv

const hexd = "0123456789abcdef"

// Utoa writes the base-10 representation of n into buf and returns the used
// slice. buf should be length >= 20 for uint64. No allocations, no strconv.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (n % 10))
			n /= 10
		}
	}
	return buf[i:]
}

// Itoa is Utoa with sign handling.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	s := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(s) - 1
	buf[i] = '-'
	return buf[i:]
}

// Uhex writes the lowercase hex representation of n into buf, no 0x prefix,
// no padding, and returns the used slice.
func Uhex(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = hexd[n&0xF]
			n >>= 4
		}
	}
	return buf[i:]
}
