package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/imageclass"
	"github.com/quarrydata/quarry/pkg/table"
)

var describeKind string

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show the shape and labels of a dataset",
	Long: `Load a registered dataset and print its columns, example count and
label distribution. The dataset is downloaded first if it is not
already present under the data root.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringVar(&describeKind, "kind", imageclass.Kind, "Dataset kind")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	name := args[0]

	ds, err := dataset.Get(describeKind, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name:     %s\n", ds.Name)
	fmt.Fprintf(out, "kind:     %s\n", ds.Kind)
	fmt.Fprintf(out, "examples: %d\n", ds.Len())
	fmt.Fprintf(out, "columns:  %v\n", ds.Rows.Columns())

	labels, err := ds.Labels()
	if err != nil {
		// No label column configured; shape information alone is fine.
		return nil
	}

	counts := map[string]int{}
	for _, l := range labels {
		counts[fmt.Sprint(l)]++
	}
	classes := make([]string, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	rows := make([][]any, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, []any{c, counts[c]})
	}
	dist, err := table.New([]string{"class", "n_examples"}, rows)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	return writeTable(out, dist)
}
