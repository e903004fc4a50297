// Package sf provides a generic single-flight wrapper used to deduplicate
// concurrent slow-path loads for the same key. Only the first caller executes
// the function; concurrent callers for the same key block and receive the
// same result.
package sf

import "golang.org/x/sync/singleflight"

type Singleflight[T any] struct {
	group singleflight.Group
}

// Do executes fn for key, deduplicating concurrent calls. fn runs at most
// once per key at any given time.
func (s *Singleflight[T]) Do(key string, fn func() (T, error)) (out T, err error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}

func New[T any]() *Singleflight[T] {
	return &Singleflight[T]{}
}
