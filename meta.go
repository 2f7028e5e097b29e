package main

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/alacrity-engine/ase-packer/aseprite"
)

// AnimationMeta is animation metadata
// stored in the animations index file.
type AnimationMeta struct {
	Name          string   `yaml:"name"`
	Sheet         string   `yaml:"sheet"`
	Tag           string   `yaml:"tag"`
	TextureID     string   `yaml:"textureID"`
	SpritesheetID string   `yaml:"spritesheetID"`
	Frames        [][2]int `yaml:"frames"`
}

// SpritesheetBinding ties an exported sheet
// to the resources it is packed against.
type SpritesheetBinding struct {
	Sheet         string `yaml:"sheet"`
	Tag           string `yaml:"tag"`
	TextureID     string `yaml:"textureID"`
	SpritesheetID string `yaml:"spritesheetID"`
}

// ReadAnimationsData decodes the animations index.
func ReadAnimationsData(contents []byte) ([]AnimationMeta, error) {
	var animations []AnimationMeta

	if err := yaml.UnmarshalStrict(contents, &animations); err != nil {
		return nil, fmt.Errorf("decode animations index: %w", err)
	}

	return animations, nil
}

// WriteAnimationsData encodes the animations index.
func WriteAnimationsData(animations []AnimationMeta) ([]byte, error) {
	data, err := yaml.Marshal(animations)

	if err != nil {
		return nil, fmt.Errorf("encode animations index: %w", err)
	}

	return data, nil
}

// ReadSpritesheetBindings decodes the spritesheets
// metadata file into bindings keyed by sheet name.
func ReadSpritesheetBindings(contents []byte) (map[string]SpritesheetBinding, error) {
	var list []SpritesheetBinding

	if err := yaml.UnmarshalStrict(contents, &list); err != nil {
		return nil, fmt.Errorf("decode spritesheets metadata: %w", err)
	}

	bindings := make(map[string]SpritesheetBinding, len(list))

	for _, binding := range list {
		if binding.Sheet == "" {
			return nil, fmt.Errorf("spritesheet binding without a sheet name")
		}

		if _, ok := bindings[binding.Sheet]; ok {
			return nil, fmt.Errorf(
				"spritesheet '%s' is bound more than once", binding.Sheet)
		}

		bindings[binding.Sheet] = binding
	}

	return bindings, nil
}

// bindingFor fills the blanks of the sheet's
// binding with the sheet name itself.
func bindingFor(sheet string, bindings map[string]SpritesheetBinding) SpritesheetBinding {
	binding := bindings[sheet]
	binding.Sheet = sheet

	if binding.Tag == "" {
		binding.Tag = sheet
	}

	if binding.TextureID == "" {
		binding.TextureID = sheet
	}

	if binding.SpritesheetID == "" {
		binding.SpritesheetID = sheet
	}

	return binding
}

// BuildAnimationsMeta turns every frame tag of the sheet into
// an animation. A sheet without tags yields a single animation
// running through all of its frames.
func BuildAnimationsMeta(binding SpritesheetBinding, sheet aseprite.SpritesheetData) ([]AnimationMeta, error) {
	tags := sheet.Meta.FrameTags

	if len(tags) == 0 {
		if len(sheet.Frames) == 0 {
			return nil, nil
		}

		whole := aseprite.Frametag{
			Name:      binding.Sheet,
			To:        uint32(len(sheet.Frames) - 1),
			Direction: aseprite.Forward,
		}

		anim, err := animationMeta(binding, whole.Name, whole, sheet)

		if err != nil {
			return nil, err
		}

		return []AnimationMeta{anim}, nil
	}

	animations := make([]AnimationMeta, 0, len(tags))

	for _, tag := range tags {
		anim, err := animationMeta(binding,
			binding.Sheet+"."+tag.Name, tag, sheet)

		if err != nil {
			return nil, err
		}

		animations = append(animations, anim)
	}

	return animations, nil
}

func animationMeta(binding SpritesheetBinding, name string, tag aseprite.Frametag, sheet aseprite.SpritesheetData) (AnimationMeta, error) {
	anim := AnimationMeta{
		Name:          name,
		Sheet:         binding.Sheet,
		Tag:           binding.Tag,
		TextureID:     binding.TextureID,
		SpritesheetID: binding.SpritesheetID,
		Frames:        make([][2]int, 0),
	}

	for _, idx := range tag.Sequence() {
		if idx >= len(sheet.Frames) {
			return AnimationMeta{}, fmt.Errorf(
				"animation '%s': frame %d out of range", name, idx)
		}

		anim.Frames = append(anim.Frames,
			[2]int{idx, int(sheet.Frames[idx].Duration)})
	}

	return anim, nil
}
