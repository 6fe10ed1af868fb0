package domain

// ContentKind discriminates the closed set of Content variants.
type ContentKind int

const (
	KindEmpty ContentKind = iota
	KindRaw
	KindSymbol
	KindRelation
	KindComposite
)

func (k ContentKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindRaw:
		return "Raw"
	case KindSymbol:
		return "Symbol"
	case KindRelation:
		return "Relation"
	case KindComposite:
		return "Composite"
	default:
		return "Unknown"
	}
}

// Content is a closed tagged variant: Empty, Raw, Symbol, Relation or
// Composite. Values are only ever produced by the constructors below, so
// a Content is never in an invalid intermediate state.
type Content struct {
	kind     ContentKind
	raw      []byte
	symID    string
	symRepr  []byte
	subject  *Content
	pred     string
	object   *Content
	children []Content
}

// Empty returns the empty Content.
func Empty() Content { return Content{kind: KindEmpty} }

// Raw wraps an opaque pre-linguistic byte payload.
func Raw(b []byte) Content {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Content{kind: KindRaw, raw: cp}
}

// Symbol wraps a named, represented symbol.
func Symbol(id string, representation []byte) Content {
	cp := make([]byte, len(representation))
	copy(cp, representation)
	return Content{kind: KindSymbol, symID: id, symRepr: cp}
}

// Relation wraps a subject-predicate-object triple.
func Relation(subject Content, predicate string, object Content) Content {
	return Content{kind: KindRelation, subject: &subject, pred: predicate, object: &object}
}

// Composite wraps an ordered sequence of child Content. A Composite may
// be constructed with zero children; Thought Assembly accepts such a
// Composite and sets Thought.CompositeFlagged on it, whatever the strategy.
func Composite(children ...Content) Content {
	cp := make([]Content, len(children))
	copy(cp, children)
	return Content{kind: KindComposite, children: cp}
}

// Kind reports which variant this Content holds.
func (c Content) Kind() ContentKind { return c.kind }

// IsEmpty reports whether this is the Empty variant.
func (c Content) IsEmpty() bool { return c.kind == KindEmpty }

// AsRaw returns the Raw payload and true if this Content is a Raw.
func (c Content) AsRaw() ([]byte, bool) {
	if c.kind != KindRaw {
		return nil, false
	}
	return c.raw, true
}

// AsSymbol returns the symbol id and representation if this Content is a Symbol.
func (c Content) AsSymbol() (id string, representation []byte, ok bool) {
	if c.kind != KindSymbol {
		return "", nil, false
	}
	return c.symID, c.symRepr, true
}

// AsRelation returns the subject, predicate and object if this Content is a Relation.
func (c Content) AsRelation() (subject Content, predicate string, object Content, ok bool) {
	if c.kind != KindRelation {
		return Content{}, "", Content{}, false
	}
	return *c.subject, c.pred, *c.object, true
}

// AsComposite returns the ordered children if this Content is a Composite.
func (c Content) AsComposite() (children []Content, ok bool) {
	if c.kind != KindComposite {
		return nil, false
	}
	return c.children, true
}

// IsEmptyComposite reports whether this is a Composite with no children —
// the case AssemblyStrategy Composite must flag rather than reject.
func (c Content) IsEmptyComposite() bool {
	return c.kind == KindComposite && len(c.children) == 0
}

// Representation renders Content to a comparable byte slice, used by
// Memory's linear-scan Recall and as the text the consolidation pool
// embeds (spec.md §4.2, §9 Open Question b).
func (c Content) Representation() []byte {
	switch c.kind {
	case KindEmpty:
		return nil
	case KindRaw:
		return c.raw
	case KindSymbol:
		return append([]byte(c.symID+":"), c.symRepr...)
	case KindRelation:
		out := append([]byte{}, c.subject.Representation()...)
		out = append(out, " "+c.pred+" "...)
		out = append(out, c.object.Representation()...)
		return out
	case KindComposite:
		var out []byte
		for i, child := range c.children {
			if i > 0 {
				out = append(out, ',')
			}
			out = append(out, child.Representation()...)
		}
		return out
	default:
		return nil
	}
}
