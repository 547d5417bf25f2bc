package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/a11y-bridge/internal/hierarchy"
	"github.com/mj1618/a11y-bridge/internal/model"
	"github.com/mj1618/a11y-bridge/internal/output"
	"github.com/spf13/cobra"
)

var hierarchyCmd = &cobra.Command{
	Use:     "hierarchy",
	Aliases: []string{"read"},
	Short:   "Read the active window's UI hierarchy",
	Long: `Read the active window's UI hierarchy from the bridge.

By default the dump is printed as a YAML/JSON element tree. Use --xml for
the raw XML document the service produces.`,
	RunE: runHierarchy,
}

func init() {
	rootCmd.AddCommand(hierarchyCmd)
	hierarchyCmd.Flags().Bool("xml", false, "Print the raw XML dump")
	hierarchyCmd.Flags().String("text", "", "Only keep nodes whose text, content-desc or resource-id contains this")
	hierarchyCmd.Flags().Bool("focused", false, "Only keep the focused node and its ancestors")
	hierarchyCmd.Flags().Bool("prune", false, "Drop anonymous layout containers")
	hierarchyCmd.Flags().Bool("flat", false, "Print a flat list with path breadcrumbs")
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	rawXML, _ := cmd.Flags().GetBool("xml")
	text, _ := cmd.Flags().GetString("text")
	focused, _ := cmd.Flags().GetBool("focused")
	prune, _ := cmd.Flags().GetBool("prune")
	flat, _ := cmd.Flags().GetBool("flat")

	c, proxy, err := dialBridge()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := callContext(cmd)
	defer cancel()

	dump, err := proxy.GetUIHierarchy(ctx)
	if err != nil {
		return err
	}
	if dump == "" {
		return fmt.Errorf("no active window (is the accessibility service connected?)")
	}
	if rawXML {
		_, err := fmt.Fprintln(output.Stdout, dump)
		return err
	}

	activity, err := proxy.GetCurrentActivityName(ctx)
	if err != nil {
		return err
	}
	root, err := hierarchy.Parse(dump)
	if err != nil {
		return err
	}

	elements := []model.Element{root}
	if prune {
		elements = model.PruneAnonymous(elements)
	}
	if text != "" {
		elements = model.FilterByText(elements, text)
	}
	if focused {
		elements = model.FilterByFocused(elements)
	}

	if flat {
		return output.Print(output.HierarchyFlatResult{
			Activity: activity,
			TS:       time.Now().Unix(),
			Elements: model.FlattenElements(elements),
		})
	}
	if elements == nil {
		elements = []model.Element{}
	}
	return output.Print(output.HierarchyResult{
		Activity: activity,
		TS:       time.Now().Unix(),
		Elements: elements,
	})
}
