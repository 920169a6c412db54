package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/relay/pkg/event"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the demo cohort's event catalog",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	specs, err := demoSpecs()
	if err != nil {
		return err
	}
	fmt.Printf("%-20s %-30s %s\n", "NAME", "SUBJECT FILTER", "TITLE")
	for _, spec := range specs {
		fmt.Printf("%-20s %-30s %s\n", spec.Name(), spec.Filter(), titleOf(spec))
	}
	return nil
}

// titleOf reports a spec's title where available. AnySpec only guarantees
// Name/Filter/MatchSubject, so this type-asserts down to the concrete
// Spec's Title() accessor where present.
func titleOf(spec event.AnySpec) string {
	type titled interface {
		Title() string
	}
	if t, ok := spec.(titled); ok {
		return t.Title()
	}
	return spec.Name()
}
