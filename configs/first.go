package configs

import (
	"errors"
)

func First[T any](loader Loader, path string) T {
	value, _ := Lookup[T](loader, path)
	return value
}

// Lookup is First with a flag telling whether any file sets path
func Lookup[T any](loader Loader, path string) (T, bool) {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, false
		}
		panic(err)
	}
	return value, true
}
