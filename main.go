package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/ase-packer/aseprite"
)

var (
	spritesheetsPath         string
	animationsIndexPath      string
	spritesheetsMetadataPath string
	resourceFilePath         string
	indexOnly                bool
	workers                  int
)

func parseFlags() {
	flag.StringVar(&spritesheetsPath, "spritesheets", "./spritesheets",
		"Path to the directory where Aseprite JSON exports are stored.")
	flag.StringVar(&animationsIndexPath, "animations-meta", "./animations-meta.yml",
		"Path to the file the animation descriptions are written to.")
	flag.StringVar(&spritesheetsMetadataPath, "spritesheets-meta",
		"./spritesheets-meta.yml", "Path to the spritesheets metadata file.")
	flag.StringVar(&resourceFilePath, "out", "./stage.res",
		"Resource file to store animations and tags.")
	flag.BoolVar(&indexOnly, "index-only", false,
		"Only write the animations index, don't touch the resource file.")
	flag.IntVar(&workers, "workers", 4,
		"Number of spritesheet exports read at once.")

	flag.Parse()
}

func main() {
	parseFlags()

	ctx := context.Background()

	// Read spritesheet bindings.
	bindings := map[string]SpritesheetBinding{}
	contents, err := os.ReadFile(spritesheetsMetadataPath)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("no spritesheets metadata, using sheet names",
			"path", spritesheetsMetadataPath)

	case err != nil:
		handleError(err)

	default:
		bindings, err = ReadSpritesheetBindings(contents)
		handleError(err)
	}

	// Read the exported spritesheets.
	sheets, err := LoadSheets(ctx, spritesheetsPath, workers)
	handleError(err)

	animationsMeta := make([]AnimationMeta, 0)
	sheetsData := make(map[string]aseprite.SpritesheetData, len(sheets))

	for _, sheet := range sheets {
		handleError(checkSheet(sheet))
		sheetsData[sheet.Name] = sheet.Data

		anims, err := BuildAnimationsMeta(
			bindingFor(sheet.Name, bindings), sheet.Data)
		handleError(err)

		slog.Info("spritesheet loaded", "sheet", sheet.Name,
			"frames", len(sheet.Data.Frames), "animations", len(anims))

		animationsMeta = append(animationsMeta, anims...)
	}

	// Write the animations index.
	index, err := WriteAnimationsData(animationsMeta)
	handleError(err)
	err = os.WriteFile(animationsIndexPath, index, 0666)
	handleError(err)

	slog.Info("animations index written",
		"path", animationsIndexPath, "animations", len(animationsMeta))

	if indexOnly {
		return
	}

	// Open the resource file.
	resourceFile, err := bolt.Open(resourceFilePath, 0666, nil)
	handleError(err)
	defer resourceFile.Close()

	// Save everything.
	err = packAnimations(resourceFile, sheetsData, animationsMeta)
	handleError(err)
	err = packTags(resourceFile, animationTags(animationsMeta))
	handleError(err)

	slog.Info("resource file packed", "path", resourceFilePath,
		"animations", len(animationsMeta))
}

func handleError(err error) {
	if err != nil {
		panic(err)
	}
}
