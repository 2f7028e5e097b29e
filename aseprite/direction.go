package aseprite

import "fmt"

// Direction is the playback direction of a frame tag.
type Direction int

const (
	Forward Direction = iota + 1
	Backward
	Pingpong
)

var directionTags = map[Direction]string{
	Forward:  "forward",
	Backward: "backward",
	Pingpong: "pingpong",
}

// ParseDirection returns the direction
// for its exported tag.
func ParseDirection(tag string) (Direction, error) {
	for dir, t := range directionTags {
		if t == tag {
			return dir, nil
		}
	}

	return 0, fmt.Errorf("%w: direction %q", ErrUnknownTag, tag)
}

func (d Direction) String() string {
	if tag, ok := directionTags[d]; ok {
		return tag
	}

	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	tag, ok := directionTags[d]

	if !ok {
		return nil, fmt.Errorf("%w: direction %d", ErrUnknownTag, int(d))
	}

	return []byte(tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))

	if err != nil {
		return err
	}

	*d = dir

	return nil
}
