package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"os"
)

func ParseLayouts(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	registry := &Registry{}
	err = xml.NewDecoder(file).Decode(registry)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

// Description returns the pretty name of a keymap, or "" when unknown.
// A nil registry knows no names.
func (r *Registry) Description(km Keymap) string {
	if r == nil {
		return ""
	}

	for _, l := range r.Layouts {
		if l.ConfigItem.Name != km.Layout {
			continue
		}
		if km.Variant == "" {
			return l.ConfigItem.Description
		}
		for _, v := range l.Variants {
			if v.ConfigItem.Name == km.Variant {
				return v.ConfigItem.Description
			}
		}
	}

	return ""
}

// KeymapByDescription is the inverse of Description. Hyprland reports the
// active keymap by its description only.
func (r *Registry) KeymapByDescription(description string) (Keymap, bool) {
	if r == nil {
		return Keymap{}, false
	}

	for _, l := range r.Layouts {
		if l.ConfigItem.Description == description {
			return Keymap{Layout: l.ConfigItem.Name}, true
		}

		for _, v := range l.Variants {
			if v.ConfigItem.Description == description {
				return Keymap{Layout: l.ConfigItem.Name, Variant: v.ConfigItem.Name}, true
			}
		}
	}

	return Keymap{}, false
}
