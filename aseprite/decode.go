package aseprite

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// object is one level of the document. Keys are looked up
// exactly as they are spelled in the export, unlike struct
// decoding which falls back to case-insensitive matches.
type object map[string]json.RawMessage

// Parse decodes an exported sheet description. Keys the
// schema does not know about are ignored, including ones
// that only differ from a known key in case. Any failure
// is reported as a *ParseError.
func Parse(data []byte) (SpritesheetData, error) {
	if !utf8.Valid(data) {
		return SpritesheetData{}, &ParseError{Err: ErrInvalidUTF8}
	}

	root, err := decodeObject(data, "")

	if err != nil {
		return SpritesheetData{}, err
	}

	sheet, err := root.sheet()

	if err != nil {
		return SpritesheetData{}, err
	}

	return sheet, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SpritesheetData) UnmarshalJSON(data []byte) error {
	sheet, err := Parse(data)

	if err != nil {
		return err
	}

	*s = sheet

	return nil
}

func decodeObject(raw []byte, path string) (object, error) {
	var obj object

	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return obj, nil
}

// lookup treats null the same as an absent key.
func (o object) lookup(key string) (json.RawMessage, bool) {
	raw, ok := o[key]

	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}

	return raw, true
}

func value[T any](o object, key, path string) (T, error) {
	var v T
	raw, ok := o.lookup(key)

	if !ok {
		return v, missing(path + "/" + key)
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &ParseError{Path: path + "/" + key, Err: err}
	}

	return v, nil
}

func (o object) child(key, path string) (object, error) {
	raw, ok := o.lookup(key)

	if !ok {
		return nil, missing(path + "/" + key)
	}

	return decodeObject(raw, path+"/"+key)
}

// list decodes the array under key into one object per
// element. present is false when the key is absent or null.
func (o object) list(key, path string) (elems []object, present bool, err error) {
	if _, ok := o.lookup(key); !ok {
		return nil, false, nil
	}

	raws, err := value[[]json.RawMessage](o, key, path)

	if err != nil {
		return nil, true, err
	}

	elems = make([]object, len(raws))

	for i, raw := range raws {
		elems[i], err = decodeObject(raw, fmt.Sprintf("%s/%s/%d", path, key, i))

		if err != nil {
			return nil, true, err
		}
	}

	return elems, true, nil
}

func (o object) sheet() (SpritesheetData, error) {
	var sheet SpritesheetData

	frames, ok, err := o.list("frames", "")

	if err != nil {
		return SpritesheetData{}, err
	}

	if !ok {
		return SpritesheetData{}, missing("/frames")
	}

	if len(frames) > 0 {
		sheet.Frames = make([]Frame, len(frames))
	}

	for i, frame := range frames {
		sheet.Frames[i], err = frame.frame(fmt.Sprintf("/frames/%d", i))

		if err != nil {
			return SpritesheetData{}, err
		}
	}

	meta, err := o.child("meta", "")

	if err != nil {
		return SpritesheetData{}, err
	}

	if sheet.Meta, err = meta.metadata("/meta"); err != nil {
		return SpritesheetData{}, err
	}

	return sheet, nil
}

func (o object) rect(key, path string) (Rect, error) {
	obj, err := o.child(key, path)

	if err != nil {
		return Rect{}, err
	}

	path += "/" + key

	var r Rect

	if r.X, err = value[uint32](obj, "x", path); err != nil {
		return Rect{}, err
	}

	if r.Y, err = value[uint32](obj, "y", path); err != nil {
		return Rect{}, err
	}

	if r.W, err = value[uint32](obj, "w", path); err != nil {
		return Rect{}, err
	}

	if r.H, err = value[uint32](obj, "h", path); err != nil {
		return Rect{}, err
	}

	return r, nil
}

func (o object) dimensions(key, path string) (Dimensions, error) {
	obj, err := o.child(key, path)

	if err != nil {
		return Dimensions{}, err
	}

	path += "/" + key

	var d Dimensions

	if d.W, err = value[uint32](obj, "w", path); err != nil {
		return Dimensions{}, err
	}

	if d.H, err = value[uint32](obj, "h", path); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

func (o object) frame(path string) (Frame, error) {
	var (
		f   Frame
		err error
	)

	if f.Filename, err = value[string](o, "filename", path); err != nil {
		return Frame{}, err
	}

	if f.Frame, err = o.rect("frame", path); err != nil {
		return Frame{}, err
	}

	if f.Rotated, err = value[bool](o, "rotated", path); err != nil {
		return Frame{}, err
	}

	if f.Trimmed, err = value[bool](o, "trimmed", path); err != nil {
		return Frame{}, err
	}

	if f.SpriteSourceSize, err = o.rect("spriteSourceSize", path); err != nil {
		return Frame{}, err
	}

	if f.SourceSize, err = o.dimensions("sourceSize", path); err != nil {
		return Frame{}, err
	}

	if f.Duration, err = value[uint32](o, "duration", path); err != nil {
		return Frame{}, err
	}

	return f, nil
}

func (o object) frametag(path string) (Frametag, error) {
	var (
		t   Frametag
		err error
	)

	if t.Name, err = value[string](o, "name", path); err != nil {
		return Frametag{}, err
	}

	if t.From, err = value[uint32](o, "from", path); err != nil {
		return Frametag{}, err
	}

	if t.To, err = value[uint32](o, "to", path); err != nil {
		return Frametag{}, err
	}

	tag, err := value[string](o, "direction", path)

	if err != nil {
		return Frametag{}, err
	}

	if t.Direction, err = ParseDirection(tag); err != nil {
		return Frametag{}, &ParseError{Path: path + "/direction", Err: err}
	}

	return t, nil
}

func (o object) layer(path string) (Layer, error) {
	var (
		l   Layer
		err error
	)

	if l.Name, err = value[string](o, "name", path); err != nil {
		return Layer{}, err
	}

	if l.Opacity, err = value[uint32](o, "opacity", path); err != nil {
		return Layer{}, err
	}

	tag, err := value[string](o, "blendMode", path)

	if err != nil {
		return Layer{}, err
	}

	if l.BlendMode, err = ParseBlendMode(tag); err != nil {
		return Layer{}, &ParseError{Path: path + "/blendMode", Err: err}
	}

	return l, nil
}

func (o object) metadata(path string) (Metadata, error) {
	var (
		m   Metadata
		err error
	)

	if m.App, err = value[string](o, "app", path); err != nil {
		return Metadata{}, err
	}

	if m.Version, err = value[string](o, "version", path); err != nil {
		return Metadata{}, err
	}

	if m.Format, err = value[string](o, "format", path); err != nil {
		return Metadata{}, err
	}

	if m.Size, err = o.dimensions("size", path); err != nil {
		return Metadata{}, err
	}

	if m.Scale, err = value[string](o, "scale", path); err != nil {
		return Metadata{}, err
	}

	tags, ok, err := o.list("frameTags", path)

	if err != nil {
		return Metadata{}, err
	}

	if ok {
		m.FrameTags = make([]Frametag, len(tags))

		for i, tag := range tags {
			m.FrameTags[i], err = tag.frametag(fmt.Sprintf("%s/frameTags/%d", path, i))

			if err != nil {
				return Metadata{}, err
			}
		}
	}

	layers, ok, err := o.list("layers", path)

	if err != nil {
		return Metadata{}, err
	}

	if ok {
		m.Layers = make([]Layer, len(layers))

		for i, layer := range layers {
			m.Layers[i], err = layer.layer(fmt.Sprintf("%s/layers/%d", path, i))

			if err != nil {
				return Metadata{}, err
			}
		}
	}

	return m, nil
}
