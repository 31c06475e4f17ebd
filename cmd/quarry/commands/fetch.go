package commands

import (
	"github.com/spf13/cobra"

	"github.com/quarrydata/quarry/internal/printer"
	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/imageclass"
)

var fetchKind string

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Download and index a registered dataset",
	Long: `Materialize a registered dataset by name: download its archives if
they are not already present under the data root, extract them, and
index the files into the dataset's table.

Fetching is idempotent; data already on disk is reused.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchKind, "kind", imageclass.Kind, "Dataset kind")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	name := args[0]
	printer.Step("materializing %s", name)

	ds, err := dataset.Get(fetchKind, name)
	if err != nil {
		return err
	}

	printer.Success("%s ready: %d examples", name, ds.Len())
	return nil
}
