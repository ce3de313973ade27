package serialize

import (
	"sort"

	"github.com/cedarxml/xmltree/xmltree"
)

// This file is a direct translation of original_source/src/fullname.rs's
// FullnameSerializer: a stack of "namespaces known at this depth"
// frames, pushed on entering an element (adding its own declarations
// on top of the parent's) and popped on leaving. Resolving a name to
// its serialized fullname is then a lookup against the top frame
// rather than a walk up the tree, which is why the serializers push
// a frame for each element that declares namespaces as they descend
// the Event stream instead of
// calling xmltree.NamespacesInScope per name.

type prefixNS struct {
	Prefix xmltree.PrefixID
	NS     xmltree.NamespaceID
}

type nsFrame struct {
	all []prefixNS
}

// FullnameResolver resolves a NameID to the qualified name a
// serializer should write, given the namespace declarations in scope
// at the current point in the traversal.
type FullnameResolver struct {
	tree  *xmltree.Tree
	stack []nsFrame
}

// NewFullnameResolver creates a resolver with no bindings in scope.
func NewFullnameResolver(tree *xmltree.Tree) *FullnameResolver {
	return &FullnameResolver{tree: tree, stack: []nsFrame{{}}}
}

// NewFullnameResolverWithExtra seeds the resolver with bindings that
// are not declared anywhere in the tree -- the "extra prefixes" a
// fragment serializer supplies so that a subtree moved out of its
// original document can still resolve the namespaces it depends on.
func NewFullnameResolverWithExtra(tree *xmltree.Tree, extra []prefixNS) *FullnameResolver {
	r := NewFullnameResolver(tree)
	if len(extra) > 0 {
		r.stack = []nsFrame{{all: append([]prefixNS(nil), extra...)}}
	}
	return r
}

// Push enters a new element's scope, declared being the namespace
// declarations that element itself carries (its NamespaceMap
// contents). An empty declared list is a no-op, same as the Rust
// FullnameSerializer: Pop must be called exactly when Push actually
// grew the stack, which Push's result reports.
func (r *FullnameResolver) Push(declared []prefixNS) bool {
	if len(declared) == 0 {
		return false
	}
	top := r.stack[len(r.stack)-1]
	all := make([]prefixNS, 0, len(top.all)+len(declared))
	all = append(all, top.all...)
	all = append(all, declared...)
	r.stack = append(r.stack, nsFrame{all: all})
	return true
}

// Pop leaves the scope most recently entered via a Push that returned
// true.
func (r *FullnameResolver) Pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *FullnameResolver) top() nsFrame { return r.stack[len(r.stack)-1] }

// elementPrefix finds the prefix to use for an element in namespace
// ns: the empty prefix if it is bound to ns anywhere in scope,
// otherwise the nearest (most recently declared) non-empty prefix
// bound to ns. Reports false if no prefix at all is bound to ns.
func (r *FullnameResolver) elementPrefix(ns xmltree.NamespaceID) (xmltree.PrefixID, bool) {
	all := r.top().all
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].NS == ns && all[i].Prefix == xmltree.EmptyPrefix {
			return xmltree.EmptyPrefix, true
		}
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].NS == ns {
			return all[i].Prefix, true
		}
	}
	return 0, false
}

// attributePrefix is elementPrefix's attribute-context counterpart: an
// attribute without a prefix is never in a namespace, so the empty
// prefix can never stand for one here, even when it is bound to ns.
func (r *FullnameResolver) attributePrefix(ns xmltree.NamespaceID) (xmltree.PrefixID, bool) {
	all := r.top().all
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].NS == ns && all[i].Prefix != xmltree.EmptyPrefix {
			return all[i].Prefix, true
		}
	}
	return 0, false
}

// FullnameElement resolves name for use as an element tag name. ok is
// false when name is namespaced but no prefix for it is in scope.
func (r *FullnameResolver) FullnameElement(name xmltree.NameID) (fullname string, ok bool) {
	n := r.tree.NameOf(name)
	if n.Namespace == xmltree.NoNamespace {
		return n.Local, true
	}
	if n.Namespace == xmltree.XMLNamespace {
		return xmltree.XMLPrefixString + ":" + n.Local, true
	}
	prefix, found := r.elementPrefix(n.Namespace)
	if !found {
		return "", false
	}
	if prefix == xmltree.EmptyPrefix {
		return n.Local, true
	}
	return r.tree.PrefixString(prefix) + ":" + n.Local, true
}

// FullnameAttribute resolves name for use as an attribute name.
func (r *FullnameResolver) FullnameAttribute(name xmltree.NameID) (fullname string, ok bool) {
	n := r.tree.NameOf(name)
	if n.Namespace == xmltree.NoNamespace {
		return n.Local, true
	}
	if n.Namespace == xmltree.XMLNamespace {
		return xmltree.XMLPrefixString + ":" + n.Local, true
	}
	prefix, found := r.attributePrefix(n.Namespace)
	if !found {
		return "", false
	}
	return r.tree.PrefixString(prefix) + ":" + n.Local, true
}

// inheritedExtraPrefixes computes the namespace bindings a fragment
// root depends on but doesn't declare itself: NamespacesInScope at the
// root's parent, minus whatever the root already declares and the
// always-available xml: binding. Grounded on
// original_source/src/output/serializer.rs's get_extra_prefixes, which
// walks the fragment root's parent scope exactly this way so a
// detached subtree serializes as a self-contained document -- callers
// supplying their own ExtraPrefixes (for a root with no parent left in
// the tree, e.g. after Detach) are layered on top of this, not
// replaced by it. Returns nil when root is the document element (its
// parent is the Document, which carries no namespace scope of its
// own) or has no parent at all.
func inheritedExtraPrefixes(tree *xmltree.Tree, root xmltree.Handle) []prefixNS {
	parent := tree.Parent(root)
	if parent == (xmltree.Handle{}) || tree.Kind(parent) == xmltree.KindDocument {
		return nil
	}
	declared := tree.Namespaces(root)
	inScope := tree.NamespacesInScope(parent)
	prefixes := make([]int, 0, len(inScope))
	for prefix := range inScope {
		prefixes = append(prefixes, int(prefix))
	}
	sort.Ints(prefixes)

	var out []prefixNS
	for _, p := range prefixes {
		prefix := xmltree.PrefixID(p)
		if prefix == xmltree.XMLPrefix || declared.ContainsKey(prefix) {
			continue
		}
		out = append(out, prefixNS{Prefix: prefix, NS: inScope[prefix]})
	}
	return out
}

// declaredOf reads an element's own namespace declarations off the
// tree, in the shape Push expects.
func declaredOf(t *xmltree.Tree, elem xmltree.Handle) []prefixNS {
	handles := t.Namespaces(elem).Handles()
	if len(handles) == 0 {
		return nil
	}
	out := make([]prefixNS, len(handles))
	for i, h := range handles {
		v := t.Value(h)
		out[i] = prefixNS{Prefix: v.Prefix, NS: v.Namespace}
	}
	return out
}
