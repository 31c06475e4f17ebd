package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/imageclass"
)

var listKind string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered datasets",
	Long: `List the datasets registered under a kind, in registration order.

Listing does not materialize anything: it only reads the registry, so
it works before any dataset has been downloaded.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", imageclass.Kind, "Dataset kind to list")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	names := dataset.List(listKind)
	if len(names) == 0 {
		fmt.Printf("No datasets registered under kind %q\n", listKind)
		return nil
	}

	fmt.Printf("Datasets of kind %q:\n\n", listKind)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Fprintf(os.Stdout, "\n%d datasets registered\n", len(names))
	return nil
}
