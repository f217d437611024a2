package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/LynnColeArt/sgemmbench"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version, _ := sgemmbench.Version()
			if version == "" {
				version = "(devel)"
			}
			fmt.Fprintf(a.out, "sgemmbench %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
