package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the build version, stamped via -ldflags at release time.
var Version = "dev"

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("llm-cli %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
