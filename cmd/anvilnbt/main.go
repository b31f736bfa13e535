package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/astei/anvilnbt/anvil"
	"github.com/astei/anvilnbt/nbt"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &cli.App{
		Name:  "anvilnbt",
		Usage: "inspect NBT files and Anvil region files",
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "pretty-print an NBT file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "compression",
						Value: "gzip",
						Usage: "file envelope: raw, gzip or zlib",
					},
				},
				Action: dumpFile,
			},
			{
				Name:      "region",
				Usage:     "summarize a region file's directory",
				ArgsUsage: "<file.mca>",
				Action:    regionInfo,
			},
			{
				Name:      "chunk",
				Usage:     "pretty-print one chunk of a region file",
				ArgsUsage: "<file.mca> <local-x> <local-z>",
				Action:    dumpChunk,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func dumpFile(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one file argument", 1)
	}
	path := c.Args().Get(0)

	var node *nbt.Node
	var err error
	switch c.String("compression") {
	case "raw":
		node, err = nbt.ReadRawFile(path)
	case "gzip":
		node, err = nbt.ReadGzipFile(path)
	case "zlib":
		node, err = nbt.ReadZlibFile(path)
	default:
		return cli.Exit("compression must be raw, gzip or zlib", 1)
	}
	if err != nil {
		return err
	}
	fmt.Println(node.Pretty())
	return nil
}

func regionInfo(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one region file argument", 1)
	}
	path := c.Args().Get(0)

	region, err := anvil.LoadRegionHeader(path)
	if err != nil {
		return err
	}
	fmt.Printf("region (%d, %d): %d chunks\n", region.X, region.Z, region.CountChunks())
	for z := 0; z < anvil.RegionDimension; z++ {
		for x := 0; x < anvil.RegionDimension; x++ {
			entry := region.Chunk(x, z)
			if !entry.Exists() {
				continue
			}
			fmt.Printf("  chunk %2d,%2d: offset %d, %d sectors, timestamp %d\n",
				x, z, entry.Offset, entry.SectorCount, entry.Timestamp)
		}
	}
	return nil
}

func dumpChunk(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.Exit("expected file, local x and local z arguments", 1)
	}
	path := c.Args().Get(0)
	x, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return err
	}
	z, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return err
	}

	node, err := anvil.LoadChunk(path, x, z)
	if err != nil {
		return err
	}
	fmt.Println(node.Pretty())
	return nil
}
