package module

import "reflect"

// PortSet is a marker for module defined port sets
type PortSet = any

// PortsOf extracts an interface T from a module's Ports() bundle.
// The bundle may be T itself or a struct with an exported field
// implementing T. ok is false when neither holds
func PortsOf[T any](m Module) (T, bool) {
	var zero T

	bundle := m.Ports()
	if bundle == nil {
		return zero, false
	}
	if direct, ok := bundle.(T); ok {
		return direct, true
	}

	rv := reflect.ValueOf(bundle)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if port, ok := rv.Field(i).Interface().(T); ok {
			return port, true
		}
	}
	return zero, false
}

// MustPortsOf panics when the module does not expose a T port
func MustPortsOf[T any](m Module) T {
	port, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return port
}
