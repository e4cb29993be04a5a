package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cryptoboard/src/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the dashboard once and write both tables as Parquet",
	Long: `Fetch both panels with the configured pairs and write
<symbol>_<granularity>.parquet and <base>_usd_volume_<granularity>.parquet
into the output directory.

Example:
  cryptoboard export --out ./data`,
	RunE: runExport,
}

var exportDir string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Duration(a.cfg.Network.RequestTimeout)*time.Second)
	defer cancel()

	page, err := a.dash.Render(ctx)
	if err != nil {
		return err
	}

	primaryPath, crossPath, err := export.WriteDashboard(exportDir, page)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows to %s\n", len(page.Primary.Table), primaryPath)
	fmt.Printf("Wrote %d rows to %s\n", len(page.Cross.Table), crossPath)
	return nil
}
