package ime

import (
	"strconv"
	"unicode/utf8"

	"github.com/godbus/dbus/v5"
)

// IBus serializes its objects as structs whose first two fields are the
// type name and an attachment dictionary.

type ibusText struct {
	Name        string
	Attachments map[string]dbus.Variant
	Text        string
	Attrs       dbus.Variant
}

type ibusAttrList struct {
	Name        string
	Attachments map[string]dbus.Variant
	Attrs       []dbus.Variant
}

type ibusAttribute struct {
	Name        string
	Attachments map[string]dbus.Variant
	Type        uint32
	Value       uint32
	Start       uint32
	End         uint32
}

type ibusLookupTable struct {
	Name          string
	Attachments   map[string]dbus.Variant
	PageSize      uint32
	CursorPos     uint32
	CursorVisible bool
	Round         bool
	Orientation   int32
	Candidates    []dbus.Variant
	Labels        []dbus.Variant
}

const (
	attrTypeUnderline   = 1
	attrUnderlineSingle = 1

	// preeditClear drops the preedit on focus loss instead of letting
	// IBus commit it; the controller decides that.
	preeditClear = 0
)

func newText(s string) ibusText {
	return textWithAttrs(s, nil)
}

// newUnderlinedText marks the whole of s with a single underline.
func newUnderlinedText(s string) ibusText {
	var attrs []dbus.Variant
	if n := utf8.RuneCountInString(s); n > 0 {
		attrs = append(attrs, dbus.MakeVariant(ibusAttribute{
			Name:        "IBusAttribute",
			Attachments: map[string]dbus.Variant{},
			Type:        attrTypeUnderline,
			Value:       attrUnderlineSingle,
			Start:       0,
			End:         uint32(n),
		}))
	}
	return textWithAttrs(s, attrs)
}

func textWithAttrs(s string, attrs []dbus.Variant) ibusText {
	if attrs == nil {
		attrs = []dbus.Variant{}
	}
	return ibusText{
		Name:        "IBusText",
		Attachments: map[string]dbus.Variant{},
		Text:        s,
		Attrs: dbus.MakeVariant(ibusAttrList{
			Name:        "IBusAttrList",
			Attachments: map[string]dbus.Variant{},
			Attrs:       attrs,
		}),
	}
}

// newLookupTable converts t, labelling each page slot 1-9 then 0.
func newLookupTable(t LookupTable) ibusLookupTable {
	candidates := make([]dbus.Variant, 0, len(t.Candidates))
	for _, c := range t.Candidates {
		candidates = append(candidates, dbus.MakeVariant(newText(c)))
	}
	labels := make([]dbus.Variant, 0, t.PageSize)
	for i := 0; i < t.PageSize; i++ {
		labels = append(labels, dbus.MakeVariant(newText(strconv.Itoa((i+1)%10))))
	}
	return ibusLookupTable{
		Name:          "IBusLookupTable",
		Attachments:   map[string]dbus.Variant{},
		PageSize:      uint32(t.PageSize),
		CursorPos:     uint32(t.Cursor),
		CursorVisible: true,
		Round:         false,
		Orientation:   int32(t.Orientation),
		Candidates:    candidates,
		Labels:        labels,
	}
}
