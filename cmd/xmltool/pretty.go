package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cedarxml/xmltree/internal/commandline"
	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/parse"
	"github.com/cedarxml/xmltree/xmltree/serialize"
	"github.com/cedarxml/xmltree/xmltree/serialize/unicodenorm"
)

var (
	prettyFragment     bool
	prettyNoIndent     bool
	prettyCreatePrefix bool
	prettyNormalize    string
	prettySuppress     commandline.Strings
	prettyExtraPrefix  commandline.Strings
)

var prettyCmd = &cobra.Command{
	Use:   "pretty [file]",
	Short: "Parse an XML document and re-serialize it, indented",
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
		if prettyFragment {
			tree, root, _, err = parse.ParseFragment(f, opts)
		} else {
			tree, root, _, err = parse.Parse(f, opts)
		}
		if err != nil {
			return err
		}

		extra, err := parseExtraPrefixes(tree, prettyExtraPrefix)
		if err != nil {
			return err
		}

		xopts := serialize.XMLOptions{
			Pretty:                !prettyNoIndent,
			Suppress:              suppressor(tree, prettySuppress),
			CreateMissingPrefixes: prettyCreatePrefix,
			Normalizer:            normalizerFor(prettyNormalize),
			ExtraPrefixes:         extra,
		}
		out, err := serialize.XMLString(tree, root, xopts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prettyCmd)
	prettyCmd.Flags().BoolVar(&prettyFragment, "fragment", false, "parse as a content fragment instead of a well-formed document")
	prettyCmd.Flags().BoolVar(&prettyNoIndent, "no-indent", false, "disable indentation, writing compact XML")
	prettyCmd.Flags().BoolVar(&prettyCreatePrefix, "create-missing-prefixes", false, "synthesize prefixes for namespaces used without one bound in scope")
	prettyCmd.Flags().StringVar(&prettyNormalize, "normalize", "", "Unicode normalization form to apply to text/attribute content (nfc, nfd, nfkc, nfkd)")
	prettyCmd.Flags().Var(&prettySuppress, "suppress", "element local name whose content is never reindented (repeatable)")
	prettyCmd.Flags().Var(&prettyExtraPrefix, "extra-prefix", `extra "prefix=uri" namespace binding to declare on the root element (repeatable)`)
}

func suppressor(tree *xmltree.Tree, names commandline.Strings) func(xmltree.NameID) bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name xmltree.NameID) bool { return set[tree.LocalName(name)] }
}

func normalizerFor(form string) serialize.Normalizer {
	switch strings.ToLower(form) {
	case "":
		return nil
	case "nfc":
		return unicodenorm.NFC()
	case "nfd":
		return unicodenorm.NFD()
	case "nfkc":
		return unicodenorm.NFKC()
	case "nfkd":
		return unicodenorm.NFKD()
	default:
		fmt.Fprintf(os.Stderr, "xmltool: unknown normalization form %q, ignoring\n", form)
		return nil
	}
}

func parseExtraPrefixes(tree *xmltree.Tree, raw commandline.Strings) ([]serialize.ExtraPrefix, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]serialize.ExtraPrefix, 0, len(raw))
	for _, s := range raw {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --extra-prefix %q, want prefix=uri", s)
		}
		out = append(out, serialize.ExtraPrefix{
			Prefix:    tree.AddPrefix(parts[0]),
			Namespace: tree.AddNamespace(parts[1]),
		})
	}
	return out, nil
}
