package aseprite

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// The wire types mirror the exported JSON document on output.
// Optional lists are pointers so that a present empty list
// is told apart from an absent one.

type wireRect struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

type wireDimensions struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

type wireFrame struct {
	Filename         string         `json:"filename"`
	Frame            wireRect       `json:"frame"`
	Rotated          bool           `json:"rotated"`
	Trimmed          bool           `json:"trimmed"`
	SpriteSourceSize wireRect       `json:"spriteSourceSize"`
	SourceSize       wireDimensions `json:"sourceSize"`
	Duration         uint32         `json:"duration"`
}

type wireFrametag struct {
	Name      string `json:"name"`
	From      uint32 `json:"from"`
	To        uint32 `json:"to"`
	Direction string `json:"direction"`
}

type wireLayer struct {
	Name      string `json:"name"`
	Opacity   uint32 `json:"opacity"`
	BlendMode string `json:"blendMode"`
}

type wireMetadata struct {
	App       string          `json:"app"`
	Version   string          `json:"version"`
	Format    string          `json:"format"`
	Size      wireDimensions  `json:"size"`
	Scale     string          `json:"scale"`
	FrameTags *[]wireFrametag `json:"frameTags,omitempty"`
	Layers    *[]wireLayer    `json:"layers,omitempty"`
}

type wireSheet struct {
	Frames []wireFrame  `json:"frames"`
	Meta   wireMetadata `json:"meta"`
}

// Serialize encodes the sheet description back to JSON.
// Nil FrameTags and Layers are omitted from the output.
func Serialize(data SpritesheetData) ([]byte, error) {
	w, err := encodeSheet(data)

	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}

// SerializeIndent is like Serialize but indents the output.
func SerializeIndent(data SpritesheetData, prefix, indent string) ([]byte, error) {
	w, err := encodeSheet(data)

	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(w, prefix, indent)
}

// MarshalJSON implements json.Marshaler.
func (s SpritesheetData) MarshalJSON() ([]byte, error) {
	return Serialize(s)
}

func encodeRect(r Rect) wireRect {
	return wireRect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func encodeDimensions(d Dimensions) wireDimensions {
	return wireDimensions{W: d.W, H: d.H}
}

func encodeSheet(data SpritesheetData) (*wireSheet, error) {
	frames := make([]wireFrame, len(data.Frames))

	for i, f := range data.Frames {
		frames[i] = wireFrame{
			Filename:         f.Filename,
			Frame:            encodeRect(f.Frame),
			Rotated:          f.Rotated,
			Trimmed:          f.Trimmed,
			SpriteSourceSize: encodeRect(f.SpriteSourceSize),
			SourceSize:       encodeDimensions(f.SourceSize),
			Duration:         f.Duration,
		}
	}

	meta := wireMetadata{
		App:     data.Meta.App,
		Version: data.Meta.Version,
		Format:  data.Meta.Format,
		Size:    encodeDimensions(data.Meta.Size),
		Scale:   data.Meta.Scale,
	}

	if data.Meta.FrameTags != nil {
		tags := make([]wireFrametag, len(data.Meta.FrameTags))

		for i, t := range data.Meta.FrameTags {
			dir, err := t.Direction.MarshalText()

			if err != nil {
				return nil, fmt.Errorf("aseprite: serialize frame tag %q: %w", t.Name, err)
			}

			tags[i] = wireFrametag{
				Name:      t.Name,
				From:      t.From,
				To:        t.To,
				Direction: string(dir),
			}
		}

		meta.FrameTags = &tags
	}

	if data.Meta.Layers != nil {
		layers := make([]wireLayer, len(data.Meta.Layers))

		for i, l := range data.Meta.Layers {
			mode, err := l.BlendMode.MarshalText()

			if err != nil {
				return nil, fmt.Errorf("aseprite: serialize layer %q: %w", l.Name, err)
			}

			layers[i] = wireLayer{
				Name:      l.Name,
				Opacity:   l.Opacity,
				BlendMode: string(mode),
			}
		}

		meta.Layers = &layers
	}

	return &wireSheet{Frames: frames, Meta: meta}, nil
}
