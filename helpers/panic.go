package helpers

import "reflect"

// StrPanic panics with panicMessage if string p is empty (no TrimSpace, only
// p == "" is checked); otherwise returns p. Used for fail-fast validation of
// required config strings (service id, mDNS name, etc.).
//
// Called from constructors (e.g. service.NewRegistrar, adapters.NewAnnouncer).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer,
// slice, map, chan, func; for generic T it falls back to reflect); otherwise
// returns v. Return type is T, so callers need no type assertion.
//
// Called from constructors when validating required dependencies
// (service.NewRegistrar, service.NewScanner, service.NewMonitor,
// adapters.ProberHTTP and others).
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil returns true if v is nil or a nil pointer/slice/map/chan/func/interface
// (via reflect). Used only in NilPanic for types where plain v == nil is
// insufficient (e.g. a typed nil inside an interface).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
