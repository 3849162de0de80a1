package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"chosenoffset.com/tilecity/internal/placeholders"
)

func main() {
	out := pflag.StringP("out", "o", "data/tilecity/tileset.png", "output path of the tileset")
	size := pflag.IntP("tile-size", "s", 64, "tile size in pixels")
	pflag.Parse()

	fmt.Println("Tile City Placeholder Tileset Generator")
	fmt.Println("=======================================")

	if err := placeholders.GenerateAndSave(*out, *size); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %dx%d tiles of %dpx to %s\n", placeholders.TilesetCols, placeholders.TilesetRows, *size, *out)
}
