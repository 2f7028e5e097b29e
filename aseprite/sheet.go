// Package aseprite reads and writes the JSON data Aseprite exports
// next to a sprite sheet image (the "array" frame layout).
package aseprite

import "time"

// Frame is a single image packed into the sheet.
type Frame struct {
	Filename string
	// Frame is the region of the frame within the packed sheet image.
	Frame   Rect
	Rotated bool
	Trimmed bool
	// SpriteSourceSize is the region kept after trimming,
	// relative to the untrimmed canvas.
	SpriteSourceSize Rect
	// SourceSize is the size of the untrimmed canvas.
	SourceSize Dimensions
	// Duration is the display time in milliseconds.
	Duration uint32
}

// Frametag is a named animation clip over an inclusive
// range of frame indices. The zero Direction means unset
// and is invalid: Serialize fails on it with ErrUnknownTag.
type Frametag struct {
	Name      string
	From      uint32
	To        uint32
	Direction Direction
}

// Layer is the metadata of a layer of the source document.
// The zero BlendMode means unset and is invalid: Serialize
// fails on it with ErrUnknownTag.
type Layer struct {
	Name      string
	Opacity   uint32
	BlendMode BlendMode
}

// Metadata describes the sheet as a whole.
//
// FrameTags and Layers are nil when the exporter omitted
// them. A non-nil empty slice stands for a present empty list.
type Metadata struct {
	App     string
	Version string
	Format  string
	Size    Dimensions
	// Scale keeps the exporter's textual form, e.g. "1".
	Scale     string
	FrameTags []Frametag
	Layers    []Layer
}

// SpritesheetData is the root of an exported sheet description.
// The order of Frames is the frame index order used by tags.
type SpritesheetData struct {
	Frames []Frame
	Meta   Metadata
}

// Sequence returns the frame indices of one playback
// pass of the tag in the order they are shown.
func (t Frametag) Sequence() []int {
	if t.From > t.To {
		return nil
	}

	from, to := int(t.From), int(t.To)
	seq := make([]int, 0, to-from+1)

	switch t.Direction {
	case Backward:
		for i := to; i >= from; i-- {
			seq = append(seq, i)
		}

	case Pingpong:
		for i := from; i <= to; i++ {
			seq = append(seq, i)
		}

		for i := to - 1; i > from; i-- {
			seq = append(seq, i)
		}

	default:
		for i := from; i <= to; i++ {
			seq = append(seq, i)
		}
	}

	return seq
}

// Tag returns the first frame tag with the given name.
func (m Metadata) Tag(name string) (Frametag, bool) {
	for _, tag := range m.FrameTags {
		if tag.Name == name {
			return tag, true
		}
	}

	return Frametag{}, false
}

// Layer returns the first layer with the given name.
func (m Metadata) Layer(name string) (Layer, bool) {
	for _, layer := range m.Layers {
		if layer.Name == name {
			return layer, true
		}
	}

	return Layer{}, false
}

// Duration returns the time one playback pass of the tag takes.
// Indices past the end of the frame list are skipped.
func (s SpritesheetData) Duration(tag Frametag) time.Duration {
	var total time.Duration

	for _, idx := range tag.Sequence() {
		if idx < len(s.Frames) {
			total += time.Duration(s.Frames[idx].Duration) * time.Millisecond
		}
	}

	return total
}
