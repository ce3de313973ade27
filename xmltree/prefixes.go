package xmltree

import (
	"fmt"
	"sort"
)

// CreateMissingPrefixes walks root and declares a synthetic prefix
// (n0, n1, ...) on root for every namespace used by an element or
// attribute name under it that has no prefix bound in scope. This is
// the tree-mutating half of serialization's ErrMissingPrefix recovery
// path: a caller who built or moved elements programmatically, using
// AddNameNS directly rather than going through a parsed document's
// prefix declarations, can call this once before serializing instead
// of tracking prefixes by hand.
//
// Grounded on original_source's Xot::create_missing_prefixes (referenced
// throughout serialize.rs's doctests, though its own body lives outside
// the retrieved source); the behavior here -- synthesize the smallest
// unused "nN" prefix per missing namespace, in namespace-id order for
// determinism -- follows the description at error.rs's MissingPrefix
// doc comment.
func (t *Tree) CreateMissingPrefixes(root Handle) error {
	if t.Kind(root) != KindElement {
		return errNotElement(root)
	}

	scope := t.NamespacesInScope(root)
	bound := make(map[NamespaceID]bool, len(scope))
	usedPrefixes := make(map[string]bool, len(scope))
	for pfx, ns := range scope {
		bound[ns] = true
		usedPrefixes[t.PrefixString(pfx)] = true
	}

	missing := make(map[NamespaceID]bool)
	var walk func(Handle)
	walk = func(h Handle) {
		if t.Kind(h) == KindElement {
			name, _ := t.ElementName(h)
			if ns := t.NameOf(name).Namespace; ns != NoNamespace && ns != XMLNamespace && !bound[ns] {
				missing[ns] = true
			}
			for _, ah := range t.Attributes(h).Handles() {
				if ans := t.NameOf(t.n(ah).value.Name).Namespace; ans != NoNamespace && ans != XMLNamespace && !bound[ans] {
					missing[ans] = true
				}
			}
		}
		for _, c := range t.ContentChildren(h) {
			walk(c)
		}
	}
	walk(root)
	if len(missing) == 0 {
		return nil
	}

	ids := make([]NamespaceID, 0, len(missing))
	for ns := range missing {
		ids = append(ids, ns)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	n := 0
	for _, ns := range ids {
		var name string
		for {
			name = fmt.Sprintf("n%d", n)
			n++
			if !usedPrefixes[name] {
				break
			}
		}
		usedPrefixes[name] = true
		t.InsertNamespace(root, t.AddPrefix(name), ns)
	}
	return nil
}
