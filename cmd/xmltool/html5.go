package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cedarxml/xmltree/internal/commandline"
	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/parse"
	"github.com/cedarxml/xmltree/xmltree/serialize"
)

var (
	html5Fragment     bool
	html5NoIndent     bool
	html5Normalize    string
	html5CDATAElement commandline.Strings
)

var html5Cmd = &cobra.Command{
	Use:   "html5 [file]",
	Short: "Parse an XML document and serialize it as HTML5",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		f, err := openInput(path)
		if err != nil {
			return err
		}
		defer f.Close()

		opts := parse.Options{TrackSpans: false}
		var tree *xmltree.Tree
		var root xmltree.Handle
		if html5Fragment {
			tree, root, _, err = parse.ParseFragment(f, opts)
		} else {
			tree, root, _, err = parse.Parse(f, opts)
		}
		if err != nil {
			return err
		}

		cdata := make(map[xmltree.NameID]bool, len(html5CDATAElement))
		for _, n := range html5CDATAElement {
			cdata[tree.AddName(n)] = true
		}

		out, err := serialize.HTML5String(tree, root, serialize.HTML5Options{
			Pretty:               !html5NoIndent,
			CDATASectionElements: cdata,
			Normalizer:           normalizerFor(html5Normalize),
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(html5Cmd)
	html5Cmd.Flags().BoolVar(&html5Fragment, "fragment", false, "parse as a content fragment instead of a well-formed document")
	html5Cmd.Flags().BoolVar(&html5NoIndent, "no-indent", false, "disable indentation, writing compact HTML5")
	html5Cmd.Flags().StringVar(&html5Normalize, "normalize", "", "Unicode normalization form to apply to text/attribute content (nfc, nfd, nfkc, nfkd)")
	html5Cmd.Flags().Var(&html5CDATAElement, "cdata-element", "unprefixed element name whose text content is written as a CDATA section (repeatable)")
}
