package xmltree

// NamespaceID, PrefixID and NameID are dense, 16-bit, monotonically
// assigned ids into the Tree's interner tables (spec.md §4.2). Ids are
// never recycled, so equality of ids implies equality of the
// underlying value, and two Trees never need to agree on ids: each
// Tree owns its own tables.
type NamespaceID uint16
type PrefixID uint16
type NameID uint16

// NoNamespace is the id of the empty string in the namespace table:
// names and prefix declarations without an explicit namespace use it.
const NoNamespace NamespaceID = 0

// EmptyPrefix is the id of the empty string in the prefix table: the
// default (unprefixed) binding.
const EmptyPrefix PrefixID = 0

// XMLNamespaceURI is the reserved namespace the "xml" prefix is always
// bound to, without ever needing a declaration.
const XMLNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// XMLPrefixString is the reserved prefix string bound to XMLNamespaceURI.
const XMLPrefixString = "xml"

// XMLPrefix and XMLNamespace are the well-known ids for the "xml"
// prefix and its reserved namespace. Every Tree seeds the empty
// string at id 0 and the "xml" reserved string immediately after, at
// id 1, so these ids are fixed across every Tree.
const (
	XMLPrefix    PrefixID    = 1
	XMLNamespace NamespaceID = 1
)

// stringTable is a bidirectional, append-only string interner: a
// dense id-indexed vector of owned strings and a string-keyed map back
// to ids. Grounded on original_source/src/idmap.rs's IdMap<K, V>
// (by_id vec + by_value map, get_id_mut vs. get_id), translated from
// the Rust generic-over-IdIndex shape into concrete types (this one
// for the namespace and prefix tables, nameTable below for names), since Go pre-generics idiom (and the teacher's own code)
// favors concrete small types over generic containers for this kind
// of thing.
type stringTable struct {
	byID    []string
	byValue map[string]uint16
}

func newStringTable(seed ...string) *stringTable {
	t := &stringTable{byValue: make(map[string]uint16)}
	for _, s := range seed {
		t.add(s)
	}
	return t
}

// add is lookup-or-insert: it returns the existing id for s, or
// allocates and returns a fresh one.
func (t *stringTable) add(s string) uint16 {
	if id, ok := t.byValue[s]; ok {
		return id
	}
	id := uint16(len(t.byID))
	t.byID = append(t.byID, s)
	t.byValue[s] = id
	return id
}

// lookup is a pure lookup: it never inserts, and reports whether s has
// ever been interned.
func (t *stringTable) lookup(s string) (uint16, bool) {
	id, ok := t.byValue[s]
	return id, ok
}

func (t *stringTable) get(id uint16) string {
	return t.byID[id]
}

// nameKey is the structural identity of a qualified name: local part
// plus namespace id. The prefix used at any particular declaration
// site is not part of this identity (spec.md §3/§9).
type nameKey struct {
	local string
	ns    NamespaceID
}

type nameTable struct {
	byID    []nameKey
	byValue map[nameKey]NameID
}

func newNameTable() *nameTable {
	t := &nameTable{byValue: make(map[nameKey]NameID)}
	t.add("", NoNamespace)
	return t
}

func (t *nameTable) add(local string, ns NamespaceID) NameID {
	k := nameKey{local, ns}
	if id, ok := t.byValue[k]; ok {
		return id
	}
	id := NameID(len(t.byID))
	t.byID = append(t.byID, k)
	t.byValue[k] = id
	return id
}

func (t *nameTable) lookup(local string, ns NamespaceID) (NameID, bool) {
	id, ok := t.byValue[nameKey{local, ns}]
	return id, ok
}

func (t *nameTable) get(id NameID) nameKey {
	return t.byID[id]
}

// Name is the pair (local, namespace) identifying a qualified name,
// exposed to callers who want to inspect an interned NameID without
// threading the Tree's tables around by hand.
type Name struct {
	Local     string
	Namespace NamespaceID
}

// interners bundles the three disjoint string-id tables a Tree owns.
type interners struct {
	namespaces *stringTable
	prefixes   *stringTable
	names      *nameTable
}

func newInterners() *interners {
	ns := newStringTable("", XMLNamespaceURI)
	pfx := newStringTable("", XMLPrefixString)
	names := newNameTable()

	return &interners{namespaces: ns, prefixes: pfx, names: names}
}

// AddNamespace interns uri, returning its id (creating one on first use).
func (t *Tree) AddNamespace(uri string) NamespaceID {
	return NamespaceID(t.interners.namespaces.add(uri))
}

// LookupNamespace returns the id for uri without interning it.
func (t *Tree) LookupNamespace(uri string) (NamespaceID, bool) {
	id, ok := t.interners.namespaces.lookup(uri)
	return NamespaceID(id), ok
}

// NamespaceString returns the URI string for a namespace id.
func (t *Tree) NamespaceString(id NamespaceID) string {
	return t.interners.namespaces.get(uint16(id))
}

// AddPrefix interns a prefix string, returning its id.
func (t *Tree) AddPrefix(prefix string) PrefixID {
	return PrefixID(t.interners.prefixes.add(prefix))
}

// LookupPrefix returns the id for a prefix string without interning it.
func (t *Tree) LookupPrefix(prefix string) (PrefixID, bool) {
	id, ok := t.interners.prefixes.lookup(prefix)
	return PrefixID(id), ok
}

// PrefixString returns the prefix string for a prefix id.
func (t *Tree) PrefixString(id PrefixID) string {
	return t.interners.prefixes.get(uint16(id))
}

// AddName interns an unqualified (no-namespace) local name.
func (t *Tree) AddName(local string) NameID {
	return t.interners.names.add(local, NoNamespace)
}

// AddNameNS interns a qualified name (local, namespace).
func (t *Tree) AddNameNS(local string, ns NamespaceID) NameID {
	return t.interners.names.add(local, ns)
}

// LookupName is the pure-lookup counterpart of AddName.
func (t *Tree) LookupName(local string) (NameID, bool) {
	return t.interners.names.lookup(local, NoNamespace)
}

// LookupNameNS is the pure-lookup counterpart of AddNameNS.
func (t *Tree) LookupNameNS(local string, ns NamespaceID) (NameID, bool) {
	return t.interners.names.lookup(local, ns)
}

// NameOf returns the (local, namespace) pair for an interned NameID.
func (t *Tree) NameOf(id NameID) Name {
	k := t.interners.names.get(id)
	return Name{Local: k.local, Namespace: k.ns}
}

// LocalName returns just the local-part string of a NameID.
func (t *Tree) LocalName(id NameID) string {
	return t.interners.names.get(id).local
}
