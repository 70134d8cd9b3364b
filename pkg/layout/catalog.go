package layout

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	English            ID = 0x0409
	ChineseSimplified  ID = 0x0804
	ChineseTraditional ID = 0x0404
	Japanese           ID = 0x0411
	Korean             ID = 0x0412
	French             ID = 0x040C
	German             ID = 0x0407
)

type Entry struct {
	Tags []string
	ID   ID
	Lang language.Tag
}

var catalog = []Entry{
	{Tags: []string{"en"}, ID: English, Lang: language.AmericanEnglish},
	{Tags: []string{"zh", "zh-cn"}, ID: ChineseSimplified, Lang: language.SimplifiedChinese},
	{Tags: []string{"zh-tw"}, ID: ChineseTraditional, Lang: language.TraditionalChinese},
	{Tags: []string{"ja", "jp"}, ID: Japanese, Lang: language.Japanese},
	{Tags: []string{"ko"}, ID: Korean, Lang: language.Korean},
	{Tags: []string{"fr"}, ID: French, Lang: language.French},
	{Tags: []string{"de"}, ID: German, Lang: language.German},
}

var (
	byTag  = make(map[string]ID)
	byLang = make(map[uint16]language.Tag)
)

func init() {
	for _, e := range catalog {
		for _, tag := range e.Tags {
			byTag[tag] = e.ID
		}
		byLang[e.ID.LangID()] = e.Lang
	}
}

// Lookup returns the layout registered for tag. Tags are case-insensitive.
func Lookup(tag string) (ID, bool) {
	id, ok := byTag[normalizeTag(tag)]
	return id, ok
}

// Entries returns the catalog in its declaration order.
func Entries() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Name returns an English display name for the layout's locale.
func Name(id ID) string {
	tag, ok := byLang[id.LangID()]
	if !ok {
		return fmt.Sprintf("custom (%s)", id)
	}
	return TagName(tag)
}

// TagName renders a BCP 47 tag as an English display name.
func TagName(tag language.Tag) string {
	name := display.English.Tags().Name(tag)
	if name == "" {
		return tag.String()
	}
	return name
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.ReplaceAll(tag, "_", "-")
}
