package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID identifies an entry. It holds a canonical text form so that the same
// identifier compares equal no matter how the caller represented it: the
// integer 1, the string "1" and json.Number("1") all yield the same ID.
type ID string

// IDOf normalises v into its canonical ID.
//
// Integer values are formatted in base 10. Text that parses as a base-10
// integer is re-formatted ("01" and "+1" become "1"); any other text is kept
// verbatim.
func IDOf(v any) ID {
	switch x := v.(type) {
	case ID:
		return canonical(string(x))
	case string:
		return canonical(x)
	case int:
		return ID(strconv.FormatInt(int64(x), 10))
	case int8:
		return ID(strconv.FormatInt(int64(x), 10))
	case int16:
		return ID(strconv.FormatInt(int64(x), 10))
	case int32:
		return ID(strconv.FormatInt(int64(x), 10))
	case int64:
		return ID(strconv.FormatInt(x, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return ID(strconv.FormatUint(x, 10))
	case float64:
		// Numbers decoded into interface{} by encoding/json and yaml arrive as floats.
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return ID(strconv.FormatInt(int64(x), 10))
		}
		return canonical(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return canonical(x.String())
	case fmt.Stringer:
		return canonical(x.String())
	case nil:
		return ""
	default:
		return canonical(fmt.Sprint(x))
	}
}

func canonical(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ID(strconv.FormatUint(n, 10))
	}
	return ID(s)
}

// String returns the canonical text form.
func (id ID) String() string {
	return string(id)
}

// Equal reports whether id and other name the same entry once both are
// normalised.
func (id ID) Equal(other ID) bool {
	return id == other || canonical(string(id)) == canonical(string(other))
}

// Int reports the numeric value of the identifier, if it has one.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON encodes numeric identifiers as JSON numbers and everything else
// as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = IDOf(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = IDOf(n)
	return nil
}
