// m3gtool is a CLI utility for producing and inspecting JSR-184 (M3G)
// scene files.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mobigfx/m3gexport/internal/config"
	"github.com/mobigfx/m3gexport/internal/logger"
	"github.com/mobigfx/m3gexport/pkg/m3g"
	"github.com/mobigfx/m3gexport/pkg/sceneyaml"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export":
		cmdExport(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`m3gtool - JSR-184 (M3G) scene file utility

Usage:
  m3gtool <command> [options]

Commands:
  export [options] <scene.yaml> <out.m3g>  Encode a scene description
  info <file.m3g>                          Show container structure

Examples:
  m3gtool export scene.yaml scene.m3g
  m3gtool export -compress -version 1.1 scene.yaml scene.m3g
  m3gtool info scene.m3g`)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	lighting := fs.Bool("lighting", true, "Generate normals and lit materials")
	fog := fs.Bool("fog", true, "Carry the scene's fog block into appearances")
	autoscale := fs.Bool("autoscale", true, "Fit vertex quantization ranges to the data")
	compress := fs.Bool("compress", false, "Compress content sections with zlib")
	version := fs.String("version", "", `Pin the format version ("1.0" or "1.1")`)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: m3gtool export [options] <scene.yaml> <out.m3g>")
		os.Exit(1)
	}
	scenePath, outPath := fs.Arg(0), fs.Arg(1)

	overrides := config.Overrides{Debug: debug}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lighting":
			overrides.Lighting = lighting
		case "fog":
			overrides.Fog = fog
		case "autoscale":
			overrides.AutoScale = autoscale
		case "compress":
			overrides.Compress = compress
		case "version":
			overrides.Version = version
		}
	})

	cfg, err := config.Load(*cfgPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	pinned, err := cfg.Export.FormatVersion()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	world, err := sceneyaml.LoadFile(scenePath, sceneyaml.Options{
		Lighting:     cfg.Export.Lighting,
		AmbientLight: cfg.Export.AmbientLight,
		AutoScale:    cfg.Export.AutoScale,
		Fog:          cfg.Export.Fog,
	})
	if err != nil {
		logger.Fatal("loading scene", zap.String("path", scenePath), zap.Error(err))
	}
	logger.Debug("scene loaded",
		zap.String("path", scenePath),
		zap.Int("root_children", len(world.Children)))

	opts := m3g.Options{Version: pinned, Compress: cfg.Export.Compress}
	if err := m3g.WriteFile(outPath, world, opts); err != nil {
		logger.Fatal("encoding", zap.String("path", outPath), zap.Error(err))
	}

	st, err := os.Stat(outPath)
	if err != nil {
		logger.Fatal("stat output", zap.Error(err))
	}
	logger.Info("exported",
		zap.String("path", outPath),
		zap.Int64("bytes", st.Size()),
		zap.Bool("compressed", cfg.Export.Compress))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: m3gtool info <file.m3g>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	info, err := m3g.Inspect(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("Size:    %d bytes\n", len(data))
	fmt.Printf("Version: %s\n", info.Version)
	fmt.Println()
	fmt.Println("Sections:")
	fmt.Printf("  %-3s %-10s %-12s %-12s %-12s %-10s %s\n",
		"#", "offset", "scheme", "stored", "expanded", "objects", "checksum")

	ok := true
	for i, sec := range info.Sections {
		scheme := "raw"
		if sec.Compression == m3g.CompressionZlib {
			scheme = "zlib"
		}
		status := "ok"
		if !sec.ChecksumOK {
			status = "MISMATCH"
			ok = false
		}
		fmt.Printf("  %-3d %-10d %-12s %-12d %-12d %-10d %s\n",
			i, sec.Offset, scheme, sec.TotalLength, sec.UncompressedLength, sec.ObjectCount, status)
	}

	if !ok {
		fmt.Fprintln(os.Stderr, "checksum verification failed")
		os.Exit(1)
	}
}
