// Package versioncmder
package versioncmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embedviz/embedviz/pkg/cliui"
	"github.com/embedviz/embedviz/pkg/utils"
)

type VersionCommander struct {
	short bool
}

func NewVersionCmd() *cobra.Command {
	cmder := &VersionCommander{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Long:  "print the embedviz version, git sha, and build time",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().BoolVar(&cmder.short, "short", false, "print only the version number")

	return cmd
}

func (c *VersionCommander) run() error {
	if c.short {
		fmt.Println(utils.Version)
		return nil
	}

	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Version: "), cliui.ValueStyle.Render(utils.Version))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Sha:     "), cliui.ValueStyle.Render(utils.Sha))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Built at:"), cliui.ValueStyle.Render(utils.Buildtime))
	return nil
}
