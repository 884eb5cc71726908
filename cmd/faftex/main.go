// Command faftex loads one unit texture from a gamedata directory or a
// units.scd container and writes it as PNG into the target directory.
package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/Ejsstiil/faftex"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "faftex: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("faftex", pflag.ContinueOnError)
	root := flagSet.String("root", "", "gamedata directory or units.scd container")
	unit := flagSet.String("unit", "", "unit name, e.g. UEB0301")
	texture := flagSet.String("texture", "Albedo", "texture kind: Albedo, SpecTeam or NormalsTS")
	target := flagSet.String("target", ".", "directory the PNG is written into")
	verbose := flagSet.Bool("verbose", false, "enable debug logging")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *root == "" || *unit == "" {
		return fmt.Errorf("--root and --unit are required")
	}

	kind, err := faftex.ParseTextureKind(*texture)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	loader := faftex.NewLoader(faftex.DefaultChain(logger), logger)
	res, err := loader.Load(faftex.ImageSource{
		RootPath:  *root,
		UnitName:  *unit,
		Kind:      kind,
		TargetDir: *target,
	})
	if err != nil {
		return err
	}

	out := filepath.Join(res.TargetDir, res.FileName+".png")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, res.Raster.Image()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("%s (%dx%d, %d channels)\n", out, res.Raster.Width, res.Raster.Height, res.Raster.Channels)
	return nil
}
