package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"maldash/adapters/excel"
	"maldash/domain/core"
	"maldash/domain/render"
	"maldash/domain/stats"
	"maldash/internal/analysis"
	"maldash/internal/config"
)

var (
	analyzeX      string
	analyzeY      string
	analyzeMatrix bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run correlation analysis on a surveillance file",
	Long: `Reads an Excel/CSV surveillance file and prints correlation results
without touching the database: one metric pair with --x/--y, or the
full pairwise matrix with --matrix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ds, err := excel.NewDataReader(args[0]).ReadDataset()
		if err != nil {
			return err
		}

		if analyzeMatrix {
			matrix, err := analysis.ComputeMatrix(cmd.Context(), ds, cfg.Analysis.MatrixWorkers)
			if err != nil {
				return err
			}
			printMatrix(matrix)
			return nil
		}

		if analyzeX == "" || analyzeY == "" {
			return fmt.Errorf("either --matrix or both --x and --y are required")
		}

		samples, err := ds.Pairs(core.MetricKey(analyzeX), core.MetricKey(analyzeY))
		if err != nil {
			return err
		}

		result := analysis.WithSignificance(stats.ComputeCorrelation(samples))
		fmt.Printf("%s vs %s over %d samples\n", analyzeX, analyzeY, result.SampleSize)
		fmt.Printf("  %s\n", render.FormatAnnotation(result))
		fmt.Printf("  trend: y = %.4f*x + %.4f\n", result.Slope, result.Intercept)
		if result.PValue != nil {
			fmt.Printf("  p-value: %.4g\n", *result.PValue)
		}
		return nil
	},
}

func printMatrix(matrix *analysis.Matrix) {
	fmt.Printf("%-20s", "")
	for _, m := range matrix.Metrics {
		fmt.Printf(" %12s", truncate(m.String(), 12))
	}
	fmt.Println()
	for i, m := range matrix.Metrics {
		fmt.Printf("%-20s", truncate(m.String(), 20))
		for j := range matrix.Metrics {
			fmt.Printf(" %12.3f", matrix.R[i][j])
		}
		fmt.Println()
	}
	if x, y, r, found := matrix.Strongest(); found {
		fmt.Printf("\nstrongest off-diagonal pair: %s vs %s (r = %.3f)\n", x, y, r)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
