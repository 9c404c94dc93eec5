package lights

import "errors"

var (
	ErrUnsupportedType = errors.New("lights: unsupported light type")
	ErrDegenerateLight = errors.New("lights: area light has zero extent")
)
