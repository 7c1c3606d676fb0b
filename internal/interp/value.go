package interp

import "strconv"

// isTruthy implements Lox's truthiness rule: nil and false
// are falsy, everything else — including 0 and "" — is truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, otherwise values
// of different dynamic types are never equal.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify renders a runtime value the way `print` does. Doubles drop
// a trailing ".0" for integral values, matching the literal printer in
// pkg/ast so `print 1 + 2 * 3;` reads "7", not "7.0".
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case *Function:
		return val.String()
	case *Class:
		return val.String()
	case *Instance:
		return val.String()
	case *NativeFunction:
		return val.String()
	default:
		return "<value>"
	}
}
