package feed

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseOrDefault converts raw with parse, returning def when raw is nil or
// the conversion fails.
func ParseOrDefault[T any](raw any, parse func(any) (T, error), def T) T {
	if raw == nil {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// ToFloat accepts JSON numbers, Go numeric types and numeric strings.
func ToFloat(raw any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case json.Number:
		f, err = v.Float64()
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", raw)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %v", f)
	}
	return f, nil
}

// ToInt accepts integers, truncates fractional JSON numbers, and requires
// strings to hold integer text.
func ToInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return truncate(f)
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", raw)
	}
}

func truncate(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("value %v out of int64 range", f)
	}
	return int64(f), nil
}

// ToString accepts only JSON strings.
func ToString(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("cannot convert %T to string", raw)
	}
	return s, nil
}

// ToBool accepts JSON booleans and strings understood by strconv.ParseBool.
func ToBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("cannot convert %T to bool", raw)
	}
}
