package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var preamble = `libsearch ` + Version + `

libsearch indexes a music library's tags and serves multi-term search
queries against it while an asynchronous library refresh runs alongside.

libsearch comes with ABSOLUTELY NO WARRANTY. This is free software, and you
are welcome to redistribute it under certain conditions. See the GNU
General Public Licence for details.`

var rootCmd = &cobra.Command{
	Use:     "libsearch",
	Short:   "libsearch library search tool",
	Long:    preamble,
	Version: Version,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
