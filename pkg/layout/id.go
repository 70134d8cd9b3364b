package layout

import "fmt"

// ID identifies a keyboard layout. The low 16 bits hold the locale identifier
// (LCID); the high word may carry a host specific device handle.
type ID uint32

// LangID returns the locale identifier part of the layout.
func (id ID) LangID() uint16 {
	return uint16(id & 0xFFFF)
}

// SameLanguage reports whether both identifiers refer to the same locale.
func (id ID) SameLanguage(other ID) bool {
	return id.LangID() == other.LangID()
}

func (id ID) String() string {
	return fmt.Sprintf("0x%04X", id.LangID())
}
