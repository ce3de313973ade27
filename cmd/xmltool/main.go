// Command xmltool is a small front end for the xmltree packages: it
// parses a document, optionally reports the spans and structure the
// parser recorded, and re-serializes it as pretty-printed XML or as
// HTML5.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xmltool",
	Short: "Parse and serialize XML documents with xmltree",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openInput opens path for reading, treating "-" as stdin, the same
// convention the teacher's cmd/xsdgen uses for its file arguments.
func openInput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}
