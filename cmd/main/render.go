package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard once and print it as JSON",
	Long: `Fetch both panels with the configured pairs and print the derived tables
(and figures with --figures) to stdout. Missing values are printed as null.

Example:
  cryptoboard render --panel primary`,
	RunE: runRender,
}

var (
	renderPanel   string
	renderFigures bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderPanel, "panel", "all", "which panel to print: all, primary or cross")
	renderCmd.Flags().BoolVar(&renderFigures, "figures", false, "include the chart figures")
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Duration(a.cfg.Network.RequestTimeout)*time.Second)
	defer cancel()

	page, err := a.dash.Render(ctx)
	if err != nil {
		return err
	}

	var out interface{}
	switch renderPanel {
	case "all":
		if !renderFigures {
			out = map[string]interface{}{
				"title":       page.Title,
				"rendered_at": page.RenderedAt,
				"primary":     page.Primary.Table,
				"cross":       page.Cross.Table,
			}
		} else {
			out = page
		}
	case "primary":
		if renderFigures {
			out = page.Primary
		} else {
			out = page.Primary.Table
		}
	case "cross":
		if renderFigures {
			out = page.Cross
		} else {
			out = page.Cross.Table
		}
	default:
		return fmt.Errorf("unknown panel %q (want all, primary or cross)", renderPanel)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
