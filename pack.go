package main

import (
	"fmt"
	"sort"

	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/ase-packer/aseprite"
)

// packAnimations assembles every animation from the frames of
// its parsed sheet and stores it in the animations bucket,
// one transaction per animation.
func packAnimations(resourceFile *bolt.DB, sheets map[string]aseprite.SpritesheetData, animationsMeta []AnimationMeta) error {
	for _, animationMeta := range animationsMeta {
		err := resourceFile.Update(func(tx *bolt.Tx) error {
			sheet, ok := sheets[animationMeta.Sheet]

			if !ok {
				return fmt.Errorf(
					"spritesheet export '%s' not loaded", animationMeta.Sheet)
			}

			return packAnimation(tx, sheet, animationMeta)
		})

		if err != nil {
			return fmt.Errorf("animation '%s': %w", animationMeta.Name, err)
		}
	}

	return nil
}

func packAnimation(tx *bolt.Tx, sheet aseprite.SpritesheetData, animationMeta AnimationMeta) error {
	buck := tx.Bucket([]byte("spritesheets"))

	if buck == nil {
		return fmt.Errorf("the spritesheets bucket not found")
	}

	ssBytes := buck.Get([]byte(animationMeta.SpritesheetID))

	if ssBytes == nil {
		return fmt.Errorf(
			"spritesheet '%s' not found", animationMeta.SpritesheetID)
	}

	if _, err := codec.SpritesheetDataFromBytes(ssBytes); err != nil {
		return err
	}

	textureBuck := tx.Bucket([]byte("textures"))

	if textureBuck == nil {
		return fmt.Errorf("the textures bucket not found")
	}

	textureBytes := textureBuck.Get([]byte(animationMeta.TextureID))

	if textureBytes == nil {
		return fmt.Errorf(
			"texture '%s' not found", animationMeta.TextureID)
	}

	texture, err := codec.TextureDataFromBytes(textureBytes)

	if err != nil {
		return err
	}

	picBucket := tx.Bucket([]byte("pictures"))

	if picBucket == nil {
		return fmt.Errorf("the pictures bucket not found")
	}

	picBytes := picBucket.Get([]byte(texture.PictureID))

	if picBytes == nil {
		return fmt.Errorf(
			"picture '%s' not found", texture.PictureID)
	}

	compressedPic, err := codec.CompressedPictureFromBytes(picBytes)

	if err != nil {
		return err
	}

	size := sheet.Meta.Size

	if int64(compressedPic.Width) != int64(size.W) ||
		int64(compressedPic.Height) != int64(size.H) {
		return fmt.Errorf(
			"picture '%s' is %dx%d, the spritesheet export is %dx%d",
			texture.PictureID, compressedPic.Width, compressedPic.Height,
			size.W, size.H)
	}

	// Assemble the animation.
	anim := &codec.AnimationData{
		SpritesheetID: animationMeta.SpritesheetID,
		TextureID:     animationMeta.TextureID,
		Frames:        make([]geometry.Rect, 0, len(animationMeta.Frames)),
		Durations:     make([]int32, 0, len(animationMeta.Frames)),
	}

	for _, frameMeta := range animationMeta.Frames {
		if frameMeta[0] < 0 || frameMeta[0] >= len(sheet.Frames) {
			return fmt.Errorf(
				"frame %d is out of the spritesheet '%s' bounds",
				frameMeta[0], animationMeta.SpritesheetID)
		}

		rect := sheet.Frames[frameMeta[0]].Frame

		if !rect.Fits(size) {
			return fmt.Errorf(
				"frame %d lies outside of the %dx%d picture",
				frameMeta[0], size.W, size.H)
		}

		anim.Frames = append(anim.Frames, frameRect(rect, size.H))
		anim.Durations = append(anim.Durations, int32(frameMeta[1]))
	}

	data, err := anim.ToBytes()

	if err != nil {
		return err
	}

	animBucket, err := tx.CreateBucketIfNotExists([]byte("animations"))

	if err != nil {
		return err
	}

	return animBucket.Put([]byte(animationMeta.Name), data)
}

// frameRect converts a region of the exported image, which
// has its origin at the top left corner, into picture space
// where Y grows upwards.
func frameRect(rect aseprite.Rect, height uint32) geometry.Rect {
	return geometry.R(
		float64(rect.X),
		float64(height-rect.Y-rect.H),
		float64(rect.X+rect.W),
		float64(height-rect.Y),
	)
}

// animationTags groups animation names by their tag.
func animationTags(animationsMeta []AnimationMeta) map[string][]string {
	animTags := map[string][]string{}

	for _, animMeta := range animationsMeta {
		animTags[animMeta.Tag] = append(animTags[animMeta.Tag],
			animMeta.Name)
	}

	return animTags
}

// packTags stores the animation names of every tag
// in the tags bucket of the resource file.
func packTags(resourceFile *bolt.DB, animTags map[string][]string) error {
	tagIDs := make([]string, 0, len(animTags))

	for tagID := range animTags {
		tagIDs = append(tagIDs, tagID)
	}

	sort.Strings(tagIDs)

	return resourceFile.Update(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte("tags"))

		if buck == nil {
			return fmt.Errorf("no tags bucket present")
		}

		for _, tagID := range tagIDs {
			tagData, err := codec.EncodeTag(animTags[tagID])

			if err != nil {
				return fmt.Errorf("tag '%s': %w", tagID, err)
			}

			if err := buck.Put([]byte(tagID), tagData); err != nil {
				return fmt.Errorf("tag '%s': %w", tagID, err)
			}
		}

		return nil
	})
}
