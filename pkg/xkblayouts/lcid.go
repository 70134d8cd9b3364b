package xkblayouts

import (
	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"golang.org/x/text/language"
)

// xkb layout codes are mostly country codes; this maps them to the Windows
// locale of the language usually typed with them.
var layoutLocales = map[string]layout.ID{
	"us": 0x0409,
	"gb": 0x0809,
	"cn": 0x0804,
	"tw": 0x0404,
	"jp": 0x0411,
	"kr": 0x0412,
	"fr": 0x040C,
	"de": 0x0407,
	"ru": 0x0419,
	"ua": 0x0422,
	"es": 0x0C0A,
	"it": 0x0410,
	"pt": 0x0816,
	"br": 0x0416,
	"pl": 0x0415,
	"cz": 0x0405,
	"sk": 0x041B,
	"hu": 0x040E,
	"se": 0x041D,
	"no": 0x0414,
	"dk": 0x0406,
	"fi": 0x040B,
	"nl": 0x0413,
	"gr": 0x0408,
	"tr": 0x041F,
	"il": 0x040D,
	"ara": 0x0401,
	"th": 0x041E,
	"vn": 0x042A,
	"in": 0x0439,
}

// languageLocales maps ISO 639-1 codes to the primary locale of the language,
// for layouts evdev.xml tags with a language but the table above does not know.
var languageLocales = map[string]layout.ID{
	"ar": 0x0401,
	"be": 0x0423,
	"bg": 0x0402,
	"cs": 0x0405,
	"da": 0x0406,
	"de": 0x0407,
	"el": 0x0408,
	"en": 0x0409,
	"es": 0x0C0A,
	"et": 0x0425,
	"fa": 0x0429,
	"fi": 0x040B,
	"fr": 0x040C,
	"he": 0x040D,
	"hi": 0x0439,
	"hr": 0x041A,
	"hu": 0x040E,
	"hy": 0x042B,
	"is": 0x040F,
	"it": 0x0410,
	"ja": 0x0411,
	"ka": 0x0437,
	"kk": 0x043F,
	"ko": 0x0412,
	"lt": 0x0427,
	"lv": 0x0426,
	"mk": 0x042F,
	"nb": 0x0414,
	"nl": 0x0413,
	"no": 0x0414,
	"pl": 0x0415,
	"pt": 0x0816,
	"ro": 0x0418,
	"ru": 0x0419,
	"sk": 0x041B,
	"sl": 0x0424,
	"sq": 0x041C,
	"sv": 0x041D,
	"th": 0x041E,
	"tr": 0x041F,
	"uk": 0x0422,
	"vi": 0x042A,
	"zh": 0x0804,
}

// LocaleFor returns the layout identifier for a keymap. Known xkb layout codes
// win; otherwise the first language evdev.xml lists for the variant, then for
// the layout, is used. A nil registry only knows the layout codes.
func (r *Registry) LocaleFor(km Keymap) (layout.ID, bool) {
	if id, ok := layoutLocales[km.Layout]; ok {
		return id, true
	}

	for _, lang := range r.languages(km) {
		base, err := language.ParseBase(lang)
		if err != nil {
			continue
		}
		if id, ok := languageLocales[base.String()]; ok {
			return id, true
		}
	}

	return 0, false
}

func (r *Registry) languages(km Keymap) []string {
	if r == nil {
		return nil
	}

	var out []string
	for _, l := range r.Layouts {
		if l.ConfigItem.Name != km.Layout {
			continue
		}
		if km.Variant != "" {
			for _, v := range l.Variants {
				if v.ConfigItem.Name == km.Variant {
					out = append(out, v.ConfigItem.Languages...)
				}
			}
		}
		out = append(out, l.ConfigItem.Languages...)
	}

	return out
}
