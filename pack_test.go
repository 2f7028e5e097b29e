package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	"github.com/google/go-cmp/cmp"
	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/ase-packer/aseprite"
)

func openResourceFile(t *testing.T, buckets ...string) *bolt.DB {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "stage.res"), 0666, nil)

	if err != nil {
		t.Fatalf("open resource file: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		t.Fatalf("create buckets: %v", err)
	}

	return db
}

func TestPackAnimationsMissingRecords(t *testing.T) {
	anim := AnimationMeta{
		Name:          "hero.walk",
		Sheet:         "hero",
		Tag:           "hero",
		TextureID:     "hero",
		SpritesheetID: "hero",
		Frames:        [][2]int{{0, 100}},
	}

	tests := []struct {
		name    string
		buckets []string
		want    string
	}{
		{"no spritesheets bucket", nil, "the spritesheets bucket not found"},
		{"no spritesheet record", []string{"spritesheets"}, "spritesheet 'hero' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openResourceFile(t, tt.buckets...)
			err := packAnimations(db, map[string]aseprite.SpritesheetData{
				"hero": {},
			}, []AnimationMeta{anim})

			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}

			if !strings.Contains(err.Error(), "hero.walk") {
				t.Fatalf("error does not name the animation: %v", err)
			}
		})
	}
}

func readBoonga(t *testing.T) aseprite.SpritesheetData {
	t.Helper()

	contents, err := os.ReadFile(filepath.Join("testdata", "spritesheets", "boonga.json"))

	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	sheet, err := aseprite.Parse(contents)

	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	return sheet
}

// storeBoongaRecords writes the spritesheet, texture and picture
// records the boonga animations are bound to.
func storeBoongaRecords(t *testing.T, db *bolt.DB, picWidth, picHeight int32) {
	t.Helper()

	ss := codec.SpritesheetData{Width: 19, Height: 20}
	ssBytes, err := ss.ToBytes()

	if err != nil {
		t.Fatalf("encode spritesheet: %v", err)
	}

	texture := codec.TextureData{PictureID: "boonga-pic", Filtering: 0}
	textureBytes, err := texture.ToBytes()

	if err != nil {
		t.Fatalf("encode texture: %v", err)
	}

	pic := codec.CompressedPictureData{
		Width:                 picWidth,
		Height:                picHeight,
		OriginalPixSize:       picWidth * picHeight * 4,
		CompressedPix:         []byte{1, 2, 3},
		OriginalHash:          []byte{4, 5, 6},
		OriginalPixFormat:     codec.ConsentedPixFormat,
		OriginalHashAlgorithm: codec.ConsentedHashAlgorithm,
		CompressionAlgorithm:  codec.ConsentedCompressionAlgorithm,
	}
	picBytes, err := pic.ToBytes()

	if err != nil {
		t.Fatalf("encode picture: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte("spritesheets")).Put([]byte("boonga-grid"), ssBytes); err != nil {
			return err
		}

		if err := tx.Bucket([]byte("textures")).Put([]byte("boonga-texture"), textureBytes); err != nil {
			return err
		}

		return tx.Bucket([]byte("pictures")).Put([]byte("boonga-pic"), picBytes)
	})

	if err != nil {
		t.Fatalf("store records: %v", err)
	}
}

func TestPackAnimations(t *testing.T) {
	boonga := readBoonga(t)
	first := geometry.R(1, 1, 19, 19)
	second := geometry.R(20, 1, 38, 19)

	tests := []struct {
		name      string
		sheet     string
		picWidth  int32
		picHeight int32
		frames    [][2]int
		want      *codec.AnimationData
		wantErr   string
	}{
		{
			name:      "forward",
			sheet:     "boonga",
			picWidth:  39,
			picHeight: 20,
			frames:    [][2]int{{0, 250}, {1, 250}},
			want: &codec.AnimationData{
				SpritesheetID: "boonga-grid",
				TextureID:     "boonga-texture",
				Frames:        []geometry.Rect{first, second},
				Durations:     []int32{250, 250},
			},
		},
		{
			name:      "reordered with own durations",
			sheet:     "boonga",
			picWidth:  39,
			picHeight: 20,
			frames:    [][2]int{{1, 100}, {0, 40}, {1, 100}},
			want: &codec.AnimationData{
				SpritesheetID: "boonga-grid",
				TextureID:     "boonga-texture",
				Frames:        []geometry.Rect{second, first, second},
				Durations:     []int32{100, 40, 100},
			},
		},
		{
			name:      "frame out of range",
			sheet:     "boonga",
			picWidth:  39,
			picHeight: 20,
			frames:    [][2]int{{0, 250}, {2, 250}},
			wantErr:   "frame 2 is out of the spritesheet 'boonga-grid' bounds",
		},
		{
			name:      "negative frame",
			sheet:     "boonga",
			picWidth:  39,
			picHeight: 20,
			frames:    [][2]int{{-1, 250}},
			wantErr:   "frame -1 is out of the spritesheet 'boonga-grid' bounds",
		},
		{
			name:      "picture size mismatch",
			sheet:     "boonga",
			picWidth:  40,
			picHeight: 20,
			frames:    [][2]int{{0, 250}},
			wantErr:   "picture 'boonga-pic' is 40x20, the spritesheet export is 39x20",
		},
		{
			name:      "sheet not loaded",
			sheet:     "ghost",
			picWidth:  39,
			picHeight: 20,
			frames:    [][2]int{{0, 250}},
			wantErr:   "spritesheet export 'ghost' not loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openResourceFile(t, "spritesheets", "textures", "pictures")
			storeBoongaRecords(t, db, tt.picWidth, tt.picHeight)

			meta := AnimationMeta{
				Name:          "boonga.testtag",
				Sheet:         tt.sheet,
				Tag:           "boonga",
				TextureID:     "boonga-texture",
				SpritesheetID: "boonga-grid",
				Frames:        tt.frames,
			}

			err := packAnimations(db, map[string]aseprite.SpritesheetData{
				"boonga": boonga,
			}, []AnimationMeta{meta})

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected %q, got %v", tt.wantErr, err)
				}

				if !strings.Contains(err.Error(), "boonga.testtag") {
					t.Fatalf("error does not name the animation: %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("packAnimations: %v", err)
			}

			var data []byte

			err = db.View(func(tx *bolt.Tx) error {
				data = append(data, tx.Bucket([]byte("animations")).Get([]byte(meta.Name))...)
				return nil
			})

			if err != nil {
				t.Fatalf("view: %v", err)
			}

			got, err := codec.AnimationDataFromBytes(data)

			if err != nil {
				t.Fatalf("decode animation: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("animation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackFixtureAnimations(t *testing.T) {
	boonga := readBoonga(t)
	binding := bindingFor("boonga", map[string]SpritesheetBinding{
		"boonga": {Sheet: "boonga", TextureID: "boonga-texture", SpritesheetID: "boonga-grid"},
	})

	anims, err := BuildAnimationsMeta(binding, boonga)

	if err != nil {
		t.Fatalf("BuildAnimationsMeta: %v", err)
	}

	db := openResourceFile(t, "spritesheets", "textures", "pictures", "tags")
	storeBoongaRecords(t, db, 39, 20)

	err = packAnimations(db, map[string]aseprite.SpritesheetData{
		"boonga": boonga,
	}, anims)

	if err != nil {
		t.Fatalf("packAnimations: %v", err)
	}

	if err := packTags(db, animationTags(anims)); err != nil {
		t.Fatalf("packTags: %v", err)
	}

	err = db.View(func(tx *bolt.Tx) error {
		anim, err := codec.AnimationDataFromBytes(
			tx.Bucket([]byte("animations")).Get([]byte("boonga.testtag")))

		if err != nil {
			return err
		}

		want := []geometry.Rect{geometry.R(1, 1, 19, 19), geometry.R(20, 1, 38, 19)}

		if diff := cmp.Diff(want, anim.Frames); diff != "" {
			t.Fatalf("frames mismatch (-want +got):\n%s", diff)
		}

		names, err := codec.DecodeTag(tx.Bucket([]byte("tags")).Get([]byte("boonga")))

		if err != nil {
			return err
		}

		if diff := cmp.Diff([]string{"boonga.testtag"}, names); diff != "" {
			t.Fatalf("tag mismatch (-want +got):\n%s", diff)
		}

		return nil
	})

	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestAnimationTags(t *testing.T) {
	got := animationTags([]AnimationMeta{
		{Name: "hero.walk", Tag: "hero"},
		{Name: "slime.idle", Tag: "enemies"},
		{Name: "hero.jump", Tag: "hero"},
	})

	want := map[string][]string{
		"hero":    {"hero.walk", "hero.jump"},
		"enemies": {"slime.idle"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestPackTags(t *testing.T) {
	tags := map[string][]string{"hero": {"hero.walk", "hero.jump"}}

	if err := packTags(openResourceFile(t), tags); err == nil ||
		!strings.Contains(err.Error(), "no tags bucket present") {
		t.Fatalf("expected a missing bucket error, got %v", err)
	}

	db := openResourceFile(t, "tags")

	if err := packTags(db, tags); err != nil {
		t.Fatalf("packTags: %v", err)
	}

	err := db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte("tags")).Get([]byte("hero")) == nil {
			t.Fatal("tag 'hero' was not stored")
		}

		return nil
	})

	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
