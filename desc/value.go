package desc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/stewi1014/savedump/codepage"
)

var equateEmpty = cmpopts.EquateEmpty()

// Equal reports whether two values are the same.
// Integers of any Go type are compared by value, and strings are compared to []byte by their bytes,
// so literals like 5 and "SUBTERRANEAN_ANIMAL_PEOPLES" can be compared with parsed values directly.
func Equal(a, b Value) bool {
	return cmp.Equal(normalize(a), normalize(b), equateEmpty)
}

// diff returns a readable difference between two composite values, or "" for scalars.
func diff(want, got Value) string {
	switch got.(type) {
	case []Value, []Field:
		return cmp.Diff(normalize(want), normalize(got), equateEmpty)
	default:
		return ""
	}
}

// normalize converts v into the canonical form compared by Equal.
func normalize(v Value) Value {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case string:
		return []byte(x)
	case []Value:
		out := make([]Value, len(x))
		for i := range x {
			out[i] = normalize(x[i])
		}
		return out
	case []Field:
		out := make([]Field, len(x))
		for i := range x {
			out[i] = Field{Name: x[i].Name, Value: normalize(x[i].Value)}
		}
		return out
	default:
		return v
	}
}

// Format renders a value the way it appears in dumps.
func Format(v Value) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func format(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("<nil>")
	case []byte:
		sb.WriteByte('[')
		sb.WriteString(codepage.Octets(x))
		sb.WriteByte(']')
	case string:
		sb.WriteString(strconv.Quote(x))
	case []Value:
		sb.WriteByte('[')
		for i := range x {
			if i > 0 {
				sb.WriteByte(' ')
			}
			format(sb, x[i])
		}
		sb.WriteByte(']')
	case []Field:
		sb.WriteByte('{')
		for i := range x {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(x[i].Name)
			sb.WriteString(": ")
			format(sb, x[i].Value)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprint(sb, v)
	}
}
