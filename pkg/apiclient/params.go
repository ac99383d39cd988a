package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// Params is a flat query-parameter map. Values may be scalars, pointers to
// scalars, time.Time, fmt.Stringer, or slices of those.
type Params map[string]any

// Values converts p to url.Values, omitting nil, nil-pointer and empty
// string values. Each slice element is added under the same key.
func (p Params) Values() url.Values {
	values := url.Values{}
	for key, value := range p {
		for _, s := range formatValue(value) {
			values.Add(key, s)
		}
	}
	return values
}

// Encode returns the query string for p with keys sorted, so equivalent
// maps always encode identically.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func formatValue(value any) []string {
	if value == nil {
		return nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return formatValue(rv.Elem().Interface())
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case bool:
		return []string{strconv.FormatBool(v)}
	case int:
		return []string{strconv.Itoa(v)}
	case int64:
		return []string{strconv.FormatInt(v, 10)}
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return []string{v.Format(time.RFC3339)}
	case fmt.Stringer:
		return formatValue(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var out []string
		for i := 0; i < rv.Len(); i++ {
			out = append(out, formatValue(rv.Index(i).Interface())...)
		}
		return out
	case reflect.String:
		return formatValue(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32:
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 32)}
	case reflect.Float64:
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 64)}
	case reflect.Bool:
		return []string{strconv.FormatBool(rv.Bool())}
	}

	return []string{fmt.Sprint(value)}
}
