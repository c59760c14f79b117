package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider has no byte form")

// mapProvider feeds a map of dotted keys into koanf.
type mapProvider map[string]any

// ReadBytes is not supported; koanf uses Read for this provider.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read unflattens the dotted keys into nested maps, the shape koanf merges.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
