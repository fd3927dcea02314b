package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:           "recolor",
		Long:          `Tolerance-based color replacement over 8-bit RGBA images`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newPresetCmd())
	rootCmd.AddCommand(newSweepCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply --input <path> --output <path> --target <hex> --replacement <hex>",
		Short: "Recolor an image, optionally followed by blur, greyscale, or resample stages",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApply(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Path to the input image (PNG, JPEG, or GIF)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Path to write the output PNG")
	cmd.Flags().StringVar(&opts.target, "target", "", "Color to match, as hex (#rgb, #rrggbb, or #rrggbbaa)")
	cmd.Flags().StringVar(&opts.replacement, "replacement", "", "Color written over matching pixels, as hex")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", imaging.DefaultTolerance, "Per-channel match tolerance in [0,1]")
	cmd.Flags().Float64Var(&opts.blurSigma, "blur", 0, "Gaussian blur sigma applied after recoloring (0 disables)")
	cmd.Flags().BoolVar(&opts.greyscale, "greyscale", false, "Convert to greyscale after recoloring")
	cmd.Flags().BoolVar(&opts.resample, "resample", false, "Smooth edges with Catmull-Rom resampling")

	return cmd
}

func newPresetCmd() *cobra.Command {
	var opts presetOptions

	cmd := &cobra.Command{
		Use:   "preset --input <path> --output <path> --config <preset.yaml>",
		Short: "Run a YAML-defined stage pipeline against an image",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPreset(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Path to the input image (PNG, JPEG, or GIF)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Path to write the output PNG")
	cmd.Flags().StringVar(&opts.config, "config", "", "Path to the preset YAML file")

	return cmd
}

func newSweepCmd() *cobra.Command {
	var opts sweepOptions

	cmd := &cobra.Command{
		Use:   "sweep --input <path> --output <path> --target <hex> --replacement <hex>",
		Short: "Write an animated PNG stepping the tolerance from 0 to its maximum",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSweep(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Path to the input image (PNG, JPEG, or GIF)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Path to write the animated PNG")
	cmd.Flags().StringVar(&opts.target, "target", "", "Color to match, as hex")
	cmd.Flags().StringVar(&opts.replacement, "replacement", "", "Color written over matching pixels, as hex")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", imaging.DefaultTolerance, "Largest tolerance in the sweep, in [0,1]")
	cmd.Flags().IntVar(&opts.frames, "frames", 8, "Number of animation frames")
	cmd.Flags().Float64Var(&opts.delay, "delay", 0.5, "Seconds each frame is displayed")

	return cmd
}
