// SPDX-License-Identifier: MIT

package rcfile

// Builder assembles a Document programmatically, for rendering effective
// configuration that did not come from a single parsed file. Sections and
// keys keep insertion order; setting an existing key overwrites its value.
type Builder struct {
	doc     *Document
	current *Section
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		doc: &Document{index: make(map[string]*Section)},
	}
}

// Section selects (creating if needed) the section to set options in.
func (b *Builder) Section(name string) *Builder {
	if sec, ok := b.doc.index[name]; ok {
		b.current = sec
		return b
	}
	sec := &Section{
		name:   name,
		values: make(map[string]string),
		lines:  make(map[string]int),
	}
	b.doc.sections = append(b.doc.sections, sec)
	b.doc.index[name] = sec
	b.current = sec
	return b
}

// Set assigns key=value in the current section. Calling Set before any
// Section call is a programming error and panics.
func (b *Builder) Set(key, value string) *Builder {
	if b.current == nil {
		panic("rcfile: Builder.Set before Section")
	}
	k := normalizeKey(key)
	if _, exists := b.current.values[k]; !exists {
		b.current.keys = append(b.current.keys, k)
	}
	b.current.values[k] = value
	return b
}

// Build finalizes and returns the document. The Builder must not be used
// afterwards.
func (b *Builder) Build() *Document {
	doc := b.doc
	b.doc = nil
	b.current = nil
	return doc
}
