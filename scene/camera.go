package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Camera is the viewer's camera mode. The geometry core does not project
// anything; the mode only decides what gets drawn.
type Camera int

const (
	World Camera = iota
	Top
	Train
)

var ErrUnsupportedCamera = errors.New("unsupported camera")

func (c Camera) String() string {
	switch c {
	case World:
		return "world"
	case Top:
		return "top"
	case Train:
		return "train"
	}
	return fmt.Sprintf("Camera(%d)", int(c))
}

func ParseCamera(s string) (Camera, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "world":
		return World, nil
	case "top":
		return Top, nil
	case "train":
		return Train, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedCamera)
}

func (c Camera) MarshalText() ([]byte, error) {
	if c < World || c > Train {
		return nil, fmt.Errorf("%d: %w", int(c), ErrUnsupportedCamera)
	}
	return []byte(c.String()), nil
}

func (c *Camera) UnmarshalText(text []byte) error {
	c2, err := ParseCamera(string(text))
	if err != nil {
		return err
	}
	*c = c2
	return nil
}
