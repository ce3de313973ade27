package serialize

import "github.com/cedarxml/xmltree/xmltree"

// Pretty is a direct translation of original_source/src/pretty.rs's
// Pretty type: a stack of Unmixed(Space)/Mixed frames walked in
// lockstep with an Event stream, deciding how much indentation (if
// any) and whether a trailing newline belongs before/after each
// event. "Mixed" (text directly alongside elements) and
// xml:space="preserve" both turn off indentation for everything
// nested inside, which is why this needs a stack rather than a single
// depth counter.
type Pretty struct {
	tree      *xmltree.Tree
	suppress  func(xmltree.NameID) bool
	isInline  func(xmltree.NameID) bool
	leaf      func(xmltree.Handle) bool
	spaceAttr xmltree.NameID
	stack     []prettyFrame
}

type spaceMode uint8

const (
	spaceEmpty spaceMode = iota
	spaceDefault
	spacePreserve
)

type prettyFrame struct {
	mixed bool
	space spaceMode
}

// NewPretty creates a Pretty printer. suppress reports whether an
// element's content should never be indented (e.g. a <pre>-like tag);
// isInline reports whether an element counts as inline/phrasing
// content for the purpose of "does this element have an inline
// child", the same test a text child satisfies. leaf reports whether
// an element never produces separate open/close output (XML's
// self-closing tags); nil defaults to "has no content children",
// which is wrong for HTML5's non-void empty elements (an empty <div>
// still gets a separate </div>) -- WriteHTML5 passes a void-aware
// leaf func to account for that. Any of the three may be nil.
func NewPretty(tree *xmltree.Tree, suppress, isInline func(xmltree.NameID) bool, leaf func(xmltree.Handle) bool) *Pretty {
	if suppress == nil {
		suppress = func(xmltree.NameID) bool { return false }
	}
	if isInline == nil {
		isInline = func(xmltree.NameID) bool { return false }
	}
	if leaf == nil {
		leaf = func(h xmltree.Handle) bool { return !tree.HasContentChildren(h) }
	}
	return &Pretty{
		tree:      tree,
		suppress:  suppress,
		isInline:  isInline,
		leaf:      leaf,
		spaceAttr: tree.AddNameNS("space", xmltree.XMLNamespace),
	}
}

func (p *Pretty) push(f prettyFrame) { p.stack = append(p.stack, f) }
func (p *Pretty) pop()               { p.stack = p.stack[:len(p.stack)-1] }

func (p *Pretty) inMixed() bool {
	for _, f := range p.stack {
		if f.mixed {
			return true
		}
	}
	return false
}

func (p *Pretty) inSpacePreserve() bool {
	for i := len(p.stack) - 1; i >= 0; i-- {
		f := p.stack[i]
		if f.mixed {
			return false
		}
		switch f.space {
		case spacePreserve:
			return true
		case spaceDefault:
			return false
		}
	}
	return false
}

func (p *Pretty) indentation() int {
	if p.inMixed() {
		return 0
	}
	count := 0
	inPreserve := false
	for _, f := range p.stack {
		if f.mixed {
			continue
		}
		switch f.space {
		case spaceDefault:
			inPreserve = false
			count++
		case spacePreserve:
			inPreserve = true
		case spaceEmpty:
			if !inPreserve {
				count++
			}
		}
	}
	return count
}

func (p *Pretty) newline() bool {
	return !p.inMixed() && !p.inSpacePreserve()
}

func (p *Pretty) hasInlineChild(elem xmltree.Handle) bool {
	for _, c := range p.tree.ContentChildren(elem) {
		switch p.tree.Kind(c) {
		case xmltree.KindText:
			return true
		case xmltree.KindElement:
			name, _ := p.tree.ElementName(c)
			if p.isInline(name) {
				return true
			}
		}
	}
	return false
}

func (p *Pretty) elementSpace(elem xmltree.Handle) spaceMode {
	v, ok := p.tree.Attributes(elem).Get(p.spaceAttr)
	if !ok {
		return spaceEmpty
	}
	switch v {
	case "preserve":
		return spacePreserve
	case "default":
		return spaceDefault
	default:
		return spaceEmpty
	}
}

// Prettify reports the indentation level to emit before ev and
// whether a newline should follow it.
func (p *Pretty) Prettify(ev Event) (indent int, newline bool) {
	switch ev.Kind {
	case EventStartTagOpen:
		return p.indentation(), false
	case EventComment, EventProcessingInstruction:
		return p.indentation(), p.newline()
	case EventStartTagClose:
		if p.leaf(ev.Node) {
			return 0, p.newline()
		}
		if p.hasInlineChild(ev.Node) {
			p.push(prettyFrame{mixed: true})
			return 0, false
		}
		name, _ := p.tree.ElementName(ev.Node)
		if p.suppress(name) {
			p.push(prettyFrame{mixed: true})
		} else {
			p.push(prettyFrame{space: p.elementSpace(ev.Node)})
		}
		return 0, p.newline()
	case EventEndTag:
		if p.leaf(ev.Node) {
			return 0, false
		}
		wasMixed := p.inMixed()
		p.pop()
		if wasMixed {
			return 0, p.newline()
		}
		return p.indentation(), p.newline()
	default:
		return 0, false
	}
}
