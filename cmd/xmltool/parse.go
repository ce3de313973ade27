package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/parse"
)

var (
	parseFragment         bool
	parseDetectCharset    bool
	parseIgnoreStandalone bool
	parseShowSpans        bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an XML document and print its structure",
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

		opts := parse.Options{
			DetectCharset:    parseDetectCharset,
			IgnoreStandalone: parseIgnoreStandalone,
			TrackSpans:       parseShowSpans,
		}
		var tree *xmltree.Tree
		var root xmltree.Handle
		var spans *parse.SpanMap
		if parseFragment {
			tree, root, spans, err = parse.ParseFragment(f, opts)
		} else {
			tree, root, spans, err = parse.Parse(f, opts)
		}
		if err != nil {
			return err
		}

		d := &dumper{w: cmd.OutOrStdout(), tree: tree, spans: spans}
		d.node(root, 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseFragment, "fragment", false, "parse as a content fragment instead of a well-formed document")
	parseCmd.Flags().BoolVar(&parseDetectCharset, "charset", false, "detect non-UTF-8 input encodings")
	parseCmd.Flags().BoolVar(&parseIgnoreStandalone, "ignore-standalone", false, `accept standalone="no" instead of rejecting it`)
	parseCmd.Flags().BoolVar(&parseShowSpans, "spans", false, "print recorded source spans alongside each node")
}

// dumper renders a parsed Tree as an indented outline, annotating each
// node with its recorded span when one was tracked.
type dumper struct {
	w     io.Writer
	tree  *xmltree.Tree
	spans *parse.SpanMap
}

func (d *dumper) node(h xmltree.Handle, depth int) {
	indent := strings.Repeat("  ", depth)
	switch d.tree.Kind(h) {
	case xmltree.KindDocument:
		for _, c := range d.tree.ContentChildren(h) {
			d.node(c, depth)
		}
	case xmltree.KindElement:
		name, _ := d.tree.ElementName(h)
		fmt.Fprintf(d.w, "%s<%s>%s\n", indent, d.label(name), d.span(parse.SpanElementName, h))
		for _, ah := range d.tree.Attributes(h).Handles() {
			av := d.tree.Value(ah)
			fmt.Fprintf(d.w, "%s  @%s=%q%s\n", indent, d.label(av.Name), av.Text, d.span(parse.SpanAttrValue, ah))
		}
		for _, c := range d.tree.ContentChildren(h) {
			d.node(c, depth+1)
		}
	case xmltree.KindText:
		text, _ := d.tree.Text(h)
		fmt.Fprintf(d.w, "%s#text %q%s\n", indent, text, d.span(parse.SpanText, h))
	case xmltree.KindComment:
		text, _ := d.tree.Text(h)
		fmt.Fprintf(d.w, "%s<!--%s-->%s\n", indent, text, d.span(parse.SpanComment, h))
	case xmltree.KindProcessingInstruction:
		v := d.tree.Value(h)
		data := ""
		if v.PIData != nil {
			data = *v.PIData
		}
		fmt.Fprintf(d.w, "%s<?%s %s?>%s\n", indent, d.tree.LocalName(v.Name), data, d.span(parse.SpanPIContent, h))
	}
}

func (d *dumper) label(name xmltree.NameID) string {
	n := d.tree.NameOf(name)
	if n.Namespace == xmltree.NoNamespace {
		return n.Local
	}
	return fmt.Sprintf("{%s}%s", d.tree.NamespaceString(n.Namespace), n.Local)
}

func (d *dumper) span(kind parse.SpanKind, h xmltree.Handle) string {
	sp, ok := d.spans.Span(kind, h)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" [%d,%d)", sp.Start, sp.End)
}
