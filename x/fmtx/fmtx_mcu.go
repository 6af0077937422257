//go:build tinygo

package fmtx

import (
	"io"

	"i2cmanager-go/x/conv"
)

// Tiny formatter subset for MCU builds: %s %d %x %v %t %%. Width, precision
// and flags are not supported; unknown verbs are written literally.

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return w.Write([]byte(Sprintf(format, a...)))
}

type builder struct{ buf []byte }

func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.buf = append(b.buf, format[i])
			continue
		}
		if i+1 >= len(format) {
			return
		}
		i++
		verb := format[i]
		if verb == '%' {
			b.buf = append(b.buf, '%')
			continue
		}
		if ai >= len(args) {
			b.str("%!")
			b.buf = append(b.buf, verb)
			continue
		}
		arg := args[ai]
		ai++
		var scratch [20]byte
		switch verb {
		case 's', 'v':
			switch v := arg.(type) {
			case string:
				b.str(v)
			case []byte:
				b.buf = append(b.buf, v...)
			case error:
				b.str(v.Error())
			case bool:
				b.bool(v)
			default:
				if u, ok := toUint64(arg); ok {
					b.buf = append(b.buf, conv.Utoa(scratch[:], u)...)
				} else if n, ok := toInt64(arg); ok {
					b.buf = append(b.buf, conv.Itoa(scratch[:], n)...)
				} else {
					b.str("<unk>")
				}
			}
		case 'd':
			if u, ok := toUint64(arg); ok {
				b.buf = append(b.buf, conv.Utoa(scratch[:], u)...)
			} else if n, ok := toInt64(arg); ok {
				b.buf = append(b.buf, conv.Itoa(scratch[:], n)...)
			}
		case 'x':
			if u, ok := toUint64(arg); ok {
				b.buf = append(b.buf, conv.Uhex(scratch[:], u)...)
			} else if n, ok := toInt64(arg); ok {
				b.buf = append(b.buf, conv.Uhex(scratch[:], uint64(n))...)
			}
		case 't':
			v, _ := arg.(bool)
			b.bool(v)
		default:
			b.buf = append(b.buf, '%', verb)
		}
	}
}

func (b *builder) bool(v bool) {
	if v {
		b.str("true")
	} else {
		b.str("false")
	}
}

func toUint64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}
