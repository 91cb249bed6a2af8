package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mio "github.com/matzehuels/mosaic/pkg/io"
)

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan [image-dir]",
		Short: "Write an items file from a directory of images",
		Long: `Write an items file from a directory of images.

Each image's pixel size is read from its header and recorded as the item's
natural width and height. Edit the file to add labels, then pass it to the
mosaic command. Without --output the items are printed as YAML.`,
		Example: `  mosaic scan ./photos -o photos.yaml
  mosaic mosaic photos.yaml --width 1200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "items file to write (.json or .yaml)")

	return cmd
}

// runScan reads image headers under dir and exports the records.
func (c *CLI) runScan(ctx context.Context, dir, output string) error {
	recs, err := mio.ScanImagesContext(ctx, dir)
	if err != nil {
		return err
	}
	c.Logger.Debug("scanned images", "dir", dir, "count", len(recs))

	if output == "" {
		return mio.WriteYAML(recs, os.Stdout)
	}
	if err := mio.ExportFile(recs, output); err != nil {
		return err
	}

	printSuccess("Scanned %d images", len(recs))
	printFile(output)
	printNextStep("Lay them out", fmt.Sprintf("mosaic mosaic %s", output))
	return nil
}
