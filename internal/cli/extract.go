package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chromagen/chromagen/internal/colour"
	chromaimage "github.com/chromagen/chromagen/internal/image"
	"github.com/chromagen/chromagen/internal/optimizer"
)

// formatValue is a pflag.Value that validates the output format at
// parse time.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	switch s {
	case "hex", "rgb", "json", "table":
		*f = formatValue(s)
		return nil
	}
	return fmt.Errorf("must be one of: hex, rgb, json, table")
}

func (f *formatValue) Type() string { return "format" }

var (
	extractColours     int
	extractFormat      = formatValue("hex")
	extractOutput      string
	extractSeed        int64
	extractOptimizer   string
	extractShowPreview bool
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image using k-means clustering.

Large images are downscaled before clustering, so extraction stays fast
regardless of input size. Results are deterministic: the same image and
the same options always give the same palette.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 10 colours (default) from an image
  chromagen extract wallpaper.jpg

  # Extract 6 colours with terminal swatches
  chromagen extract --preview --colours 6 wallpaper.png

  # Extract colours as JSON
  chromagen extract --format json wallpaper.jpg

  # Extract from a URL and save to a file
  chromagen extract --output palette.txt https://example.com/photo.jpg

  # Run an optimizer plugin over the palette
  chromagen extract --optimizer vibrance wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", colour.DefaultColours, "number of colours to extract")
	extractCmd.Flags().VarP(&extractFormat, "format", "f", "output format (hex, rgb, json, table)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().Int64Var(&extractSeed, "seed", colour.DefaultSeed, "clustering seed")
	extractCmd.Flags().StringVar(&extractOptimizer, "optimizer", "", "optimizer plugin name or path")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imageArg := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	imagePath, err := chromaimage.ResolveImagePath(imageArg)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", imagePath)
	}

	loader := chromaimage.NewSmartLoader()
	data, err := loader.Read(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting %d colours...\n", extractColours)
	}

	seed := extractSeed
	palette, err := colour.ExtractPaletteWithOptions(data, extractColours, colour.ExtractorOptions{
		Seed: &seed,
	})
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d colours\n", palette.Len())
	}

	if extractOptimizer != "" {
		palette, err = runOptimizer(cmd, palette, verbose)
		if err != nil {
			return err
		}
	}

	showPreview := extractShowPreview
	if extractOutput != "" {
		// Never write ANSI escape sequences into output files.
		colour.DisableColourOutput = true
		showPreview = false
	}

	output, err := formatPalette(palette, string(extractFormat), showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote palette to %s\n", extractOutput)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

// runOptimizer resolves the configured optimizer plugin and applies it.
func runOptimizer(cmd *cobra.Command, palette *colour.Palette, verbose bool) (*colour.Palette, error) {
	path, err := optimizer.Resolve(extractOptimizer)
	if err != nil {
		return nil, err
	}

	exec, err := optimizer.NewExecutorWithVerbose(path, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to start optimizer: %w", err)
	}
	defer exec.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Running optimizer: %s\n", exec.Name())
	}

	return exec.Optimize(cmd.Context(), palette)
}

// formatPalette renders the palette in the requested format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex renders one hex code per line.
func formatHex(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, entry := range palette.Entries {
		if showPreview {
			rgb, err := colour.ParseHex(entry.Hex)
			if err == nil {
				output += colour.FormatColourWithPreview(rgb, 8) + "\n"
				continue
			}
		}
		output += entry.Hex + "\n"
	}
	return output
}

// formatRGB renders one rgb() value per line.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, entry := range palette.Entries {
		if showPreview {
			rgb, err := colour.ParseHex(entry.Hex)
			if err == nil {
				output += colour.ColourPreview(rgb, 8) + "  " + entry.RGB + "\n"
				continue
			}
		}
		output += entry.RGB + "\n"
	}
	return output
}

// formatTable renders the palette as an aligned table with frequencies.
func formatTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"HEX", "RGB", "HSL", "FREQUENCY"}
	if showPreview {
		headers = append([]string{""}, headers...)
	}

	table := NewTable(headers)
	for _, entry := range palette.Entries {
		row := []string{entry.Hex, entry.RGB, entry.HSL, strconv.Itoa(entry.Frequency)}
		if showPreview {
			preview := ""
			if rgb, err := colour.ParseHex(entry.Hex); err == nil {
				preview = colour.ColourPreview(rgb, 4)
			}
			row = append([]string{preview}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}
