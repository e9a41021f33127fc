package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/jwaldner/greeksurface/internal/config"
	"github.com/jwaldner/greeksurface/internal/logger"
	"github.com/jwaldner/greeksurface/internal/render"
	"github.com/jwaldner/greeksurface/internal/surface"
)

type RunArgs struct {
	OutFile   string
	Width     float64
	Height    float64
	TableOnly bool
}

var runCmd = &cobra.Command{
	Use:   "go run cmd/render/main.go --out surface.png",
	Short: "Compute the call gamma surface colored by delta and write it as a PNG",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
			log.Fatalf("error initializing logging: %v", err)
		}

		outFile, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}
		if outFile == "" {
			outFile = cfg.Render.OutputFile
		}

		width, err := cmd.Flags().GetFloat64("width")
		if err != nil {
			log.Fatalf("error getting width: %v", err)
		}
		if width <= 0 {
			width = cfg.Render.WidthInches
		}

		height, err := cmd.Flags().GetFloat64("height")
		if err != nil {
			log.Fatalf("error getting height: %v", err)
		}
		if height <= 0 {
			height = cfg.Render.HeightInches
		}

		tableOnly, err := cmd.Flags().GetBool("table-only")
		if err != nil {
			log.Fatalf("error getting table-only: %v", err)
		}

		if err := Run(RunArgs{
			OutFile:   outFile,
			Width:     width,
			Height:    height,
			TableOnly: tableOnly,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	s := surface.Demo()

	if err := s.Table(os.Stdout); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	if args.TableOnly {
		return nil
	}

	opts := render.DefaultOptions()
	opts.Width = vg.Length(args.Width) * vg.Inch
	opts.Height = vg.Length(args.Height) * vg.Inch

	f, err := os.Create(args.OutFile)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", args.OutFile, err)
	}

	if err := render.New(opts).Render(f, s); err != nil {
		f.Close()
		return fmt.Errorf("error rendering surface: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", args.OutFile, err)
	}

	logger.Info.Printf("🖼️ Surface written to %s", args.OutFile)
	fmt.Println("Surface written to: ", args.OutFile)
	return nil
}

func main() {
	runCmd.PersistentFlags().String("out", "", "The PNG file to write. Defaults to render.output_file from config.")
	runCmd.PersistentFlags().Float64("width", 0, "Figure width in inches.")
	runCmd.PersistentFlags().Float64("height", 0, "Figure height in inches.")
	runCmd.PersistentFlags().Bool("table-only", false, "Print the summary table without rendering.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
