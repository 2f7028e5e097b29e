package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alacrity-engine/ase-packer/aseprite"
)

// LoadedSheet is an exported sheet description
// named after the file it was read from.
type LoadedSheet struct {
	Name string
	Data aseprite.SpritesheetData
}

// LoadSheets parses every JSON export found in dir. At most
// workers files are read at once; zero means no limit.
// The result is ordered by file name.
func LoadSheets(ctx context.Context, dir string, workers int) ([]LoadedSheet, error) {
	info, err := os.Stat(dir)

	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))

	if err != nil {
		return nil, err
	}

	sheets := make([]LoadedSheet, len(paths))
	group, ctx := errgroup.WithContext(ctx)

	if workers > 0 {
		group.SetLimit(workers)
	}

	for i, path := range paths {
		i, path := i, path

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			contents, err := os.ReadFile(path)

			if err != nil {
				return err
			}

			data, err := aseprite.Parse(contents)

			if err != nil {
				return fmt.Errorf("spritesheet '%s': %w", path, err)
			}

			sheets[i] = LoadedSheet{
				Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
				Data: data,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return sheets, nil
}

// checkSheet runs the consistency checks of the
// sheet and names it in the report.
func checkSheet(sheet LoadedSheet) error {
	if err := sheet.Data.Check(); err != nil {
		return fmt.Errorf("spritesheet '%s': %w", sheet.Name, err)
	}

	return nil
}
