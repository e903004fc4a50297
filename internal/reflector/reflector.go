// Package reflector derives cached, fully qualified type names used to route
// actor messages to their handlers.
package reflector

import (
	"reflect"
	"sync"
)

var (
	mu    sync.RWMutex
	cache = make(map[reflect.Type]string)
)

// NameFor returns the qualified name ("pkg/path.TypeName") for T.
func NameFor[T any]() string {
	return nameForType(reflect.TypeOf((*T)(nil)).Elem())
}

// NameOf returns the qualified name for the dynamic type of x.
func NameOf(x any) string {
	return nameForType(reflect.TypeOf(x))
}

func nameForType(t reflect.Type) string {
	if t == nil {
		return ""
	}

	mu.RLock()
	name, ok := cache[t]
	mu.RUnlock()
	if ok {
		return name
	}

	e := t
	if e.Kind() == reflect.Pointer {
		e = e.Elem()
	}
	name = e.PkgPath() + "." + e.Name()

	mu.Lock()
	cache[t] = name
	mu.Unlock()
	return name
}
