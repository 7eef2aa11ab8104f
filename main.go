package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jaunkst/vox-loader/vox"
)

func main() {
	app := &cli.App{
		Name:  "voxloader",
		Usage: "inspect and convert MagicaVoxel .vox files",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print the size and voxel layers of one or more .vox files",
				ArgsUsage: "<file>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "report unrecognized chunk tags while decoding",
					},
				},
				Action: runInfo,
			},
			{
				Name:      "palette",
				Usage:     "dump the 256-entry RGBA palette of a .vox file",
				ArgsUsage: "<file>",
				Action:    runPalette,
			},
			{
				Name:      "pack",
				Usage:     "convert a .vox file to a compressed VXSN snapshot",
				ArgsUsage: "<in.vox> <out.vxsn>",
				Action:    runPack,
			},
			{
				Name:      "scan",
				Usage:     "decode every .vox file in a directory and summarize",
				ArgsUsage: "<dir>",
				Action:    runScan,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInfo(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("info: expected at least one file", 1)
	}

	var onUnknown func(tag string, contentLen uint32)
	if c.Bool("verbose") {
		onUnknown = func(tag string, contentLen uint32) {
			fmt.Fprintf(os.Stderr, "skipping unsupported chunk %q (%d bytes)\n", tag, contentLen)
		}
	}

	for _, path := range c.Args().Slice() {
		model, err := openVoxFile(path, onUnknown)
		if err != nil {
			return err
		}
		printModelInfo(path, model)
	}
	return nil
}

func printModelInfo(path string, model *vox.Model) {
	fmt.Printf("%s: version %d, size %dx%dx%d, %d layer(s), %d voxel(s)\n",
		path, model.Version, model.Size.X, model.Size.Y, model.Size.Z,
		len(model.Layers), model.VoxelCount())
	for i, layer := range model.Layers {
		fmt.Printf("  layer %d: %d voxel(s)\n", i, len(layer))
	}
}

func runPalette(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("palette: expected exactly one file", 1)
	}

	model, err := OpenVoxFile(c.Args().First())
	if err != nil {
		return err
	}
	for i, color := range model.Palette {
		fmt.Printf("%3d: #%08x", i, color)
		if i%8 == 7 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	return nil
}

func runPack(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("pack: expected input and output paths", 1)
	}

	model, err := OpenVoxFile(c.Args().Get(0))
	if err != nil {
		return err
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return err
	}

	if err = WriteSnapshot(model, out); err != nil {
		out.Close()
		return fmt.Errorf("could not write snapshot: %w", err)
	}
	return out.Close()
}

func runScan(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("scan: expected a directory", 1)
	}

	collection, err := OpenVoxDir(c.Args().First())
	if err != nil {
		return err
	}
	for _, name := range collection.Names() {
		printModelInfo(name, collection.Model(name))
	}
	fmt.Printf("%d voxel(s) total\n", collection.TotalVoxels())
	return nil
}
