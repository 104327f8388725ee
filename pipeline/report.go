package pipeline

import (
	"fmt"

	"assetpipe/logger"
)

// Report prints the run summary. The error row only appears when something
// failed.
func Report(console *logger.Console, stats Stats) {
	table := console.NewTable([]string{"Metric", "Value"})
	table.AddRow("Processed images", fmt.Sprintf("%d", stats.Processed))
	table.AddRow("Copied assets", fmt.Sprintf("%d", stats.Copied))

	if stats.OriginalBytes > 0 {
		ratio := float64(stats.OptimizedBytes) / float64(stats.OriginalBytes) * 100
		table.AddRow("Original size", fmt.Sprintf("%.2f MB", float64(stats.OriginalBytes)/1024/1024))
		table.AddRow("Optimized size", fmt.Sprintf("%.2f MB", float64(stats.OptimizedBytes)/1024/1024))
		table.AddRow("Compression ratio", fmt.Sprintf("%.1f%%", ratio))
	}

	if stats.Errors > 0 {
		table.AddAlertRow("Errors", fmt.Sprintf("%d", stats.Errors))
	}

	console.Log("Processing Summary:")
	table.Print()
}
