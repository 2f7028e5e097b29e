package aseprite

import (
	"errors"
	"fmt"
)

// Check reports inconsistencies Parse deliberately lets through:
// inverted or out of range tags and frames whose trimmed region
// does not fit the source canvas. All problems are joined
// into a single error.
func (s SpritesheetData) Check() error {
	var errs []error

	for i, frame := range s.Frames {
		if !frame.SpriteSourceSize.Fits(frame.SourceSize) {
			errs = append(errs, fmt.Errorf(
				"frame %d (%q): sprite source %dx%d at (%d,%d) exceeds source size %dx%d",
				i, frame.Filename,
				frame.SpriteSourceSize.W, frame.SpriteSourceSize.H,
				frame.SpriteSourceSize.X, frame.SpriteSourceSize.Y,
				frame.SourceSize.W, frame.SourceSize.H))
		}
	}

	for i, tag := range s.Meta.FrameTags {
		if tag.From > tag.To {
			errs = append(errs, fmt.Errorf(
				"frame tag %d (%q): from %d is after to %d",
				i, tag.Name, tag.From, tag.To))

			continue
		}

		if int64(tag.To) >= int64(len(s.Frames)) {
			errs = append(errs, fmt.Errorf(
				"frame tag %d (%q): frame %d out of range, sheet has %d frames",
				i, tag.Name, tag.To, len(s.Frames)))
		}
	}

	return errors.Join(errs...)
}
