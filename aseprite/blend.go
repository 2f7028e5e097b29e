package aseprite

import "fmt"

// BlendMode is the compositing mode of a layer.
// Only the modes listed here are accepted.
type BlendMode int

const (
	Normal BlendMode = iota + 1
)

var blendModeTags = map[BlendMode]string{
	Normal: "normal",
}

// ParseBlendMode returns the blend mode
// for its exported tag.
func ParseBlendMode(tag string) (BlendMode, error) {
	for mode, t := range blendModeTags {
		if t == tag {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: blend mode %q", ErrUnknownTag, tag)
}

func (m BlendMode) String() string {
	if tag, ok := blendModeTags[m]; ok {
		return tag
	}

	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	tag, ok := blendModeTags[m]

	if !ok {
		return nil, fmt.Errorf("%w: blend mode %d", ErrUnknownTag, int(m))
	}

	return []byte(tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, err := ParseBlendMode(string(text))

	if err != nil {
		return err
	}

	*m = mode

	return nil
}
