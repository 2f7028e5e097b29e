package aseprite

// Rect is an axis-aligned pixel region.
type Rect struct {
	X uint32
	Y uint32
	W uint32
	H uint32
}

// Dimensions is a pixel extent without position.
type Dimensions struct {
	W uint32
	H uint32
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Dimensions {
	return Dimensions{W: r.W, H: r.H}
}

// Fits reports whether the rectangle lies
// inside a canvas of the given dimensions.
func (r Rect) Fits(d Dimensions) bool {
	return uint64(r.X)+uint64(r.W) <= uint64(d.W) &&
		uint64(r.Y)+uint64(r.H) <= uint64(d.H)
}
