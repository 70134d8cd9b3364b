package hyprland

import (
	"strings"

	"codeberg.org/miketth/win-ime-switch/pkg/xkblayouts"
)

type keyboard struct {
	Name              string `json:"name"`
	Layout            string `json:"layout"`
	Variant           string `json:"variant"`
	ActiveKeymap      string `json:"active_keymap"`
	ActiveLayoutIndex *int   `json:"active_layout_index"`
	Main              bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

// Keyboard is an input device together with its configured keymaps, in the
// order of the compositor's input:kb_layout setting.
type Keyboard struct {
	Name         string
	Keymaps      []xkblayouts.Keymap
	ActiveKeymap string
	ActiveIndex  int
	Main         bool
}

func (k keyboard) ToKeyboard() Keyboard {
	layouts := strings.Split(k.Layout, ",")
	variants := strings.Split(k.Variant, ",")

	keymaps := make([]xkblayouts.Keymap, 0, len(layouts))
	for i, l := range layouts {
		km := xkblayouts.Keymap{Layout: strings.TrimSpace(l)}
		if i < len(variants) {
			km.Variant = strings.TrimSpace(variants[i])
		}
		keymaps = append(keymaps, km)
	}

	activeIndex := -1
	if k.ActiveLayoutIndex != nil {
		activeIndex = *k.ActiveLayoutIndex
	}

	return Keyboard{
		Name:         k.Name,
		Keymaps:      keymaps,
		ActiveKeymap: k.ActiveKeymap,
		ActiveIndex:  activeIndex,
		Main:         k.Main,
	}
}
