package xkblayouts

import "encoding/xml"

// Registry is the subset of an xkb rules file (evdev.xml) needed to translate
// between layout codes and their human readable descriptions.
type Registry struct {
	XMLName xml.Name `xml:"xkbConfigRegistry"`
	Layouts []Layout `xml:"layoutList>layout"`
}

type ConfigItem struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Languages   []string `xml:"languageList>iso639Id"`
}

type Variant struct {
	ConfigItem ConfigItem `xml:"configItem"`
}

type Layout struct {
	ConfigItem ConfigItem `xml:"configItem"`
	Variants   []Variant  `xml:"variantList>variant"`
}

// Keymap is one entry of a keyboard's layout list.
type Keymap struct {
	Layout  string
	Variant string
}
