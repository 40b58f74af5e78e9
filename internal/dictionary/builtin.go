package dictionary

import "sync"

var builtinWords = []string{
	"আমি", "আমরা", "আপনি", "তুমি", "সে", "এটা", "ওটা",
	"ভালো", "মন্দ", "বড়", "ছোট", "সুন্দর", "নতুন",
	"করি", "করো", "করেন", "করে", "করেছি", "করেছ",
	"খাই", "খাও", "যাই", "যাও", "বলি", "বলো",
	"জানি", "জানো", "দেখি", "দেখো", "শিখি", "শেখো",
	"বাংলাদেশ", "ঢাকা", "কলকাতা", "বাংলা", "ভাষা",
	"স্বাধীনতা", "মুক্তি", "দেশ", "জন্ম", "প্রেম",
	"গান", "গাচ্ছি", "বাংলায়", "কথা", "বলি",
	"আমরা", "বাংলা", "ভাষায়", "কথা", "বলি",
	"রাষ্ট্র", "স্বাধীন", "মুক্তির", "বিদেশ", "ফোন",
	"ছেলে", "মেয়ে", "ঘর", "বাঘ", "নাস্তা",
	"খানা", "পানি", "পাথ", "গাচ্ছি",
}

// BuiltinWords returns a copy of the built-in word list.
func BuiltinWords() []string {
	return append([]string(nil), builtinWords...)
}

var builtin = sync.OnceValue(func() *Index {
	idx, err := NewIndex(FromWords(builtinWords))
	if err != nil {
		panic("dictionary: invalid built-in word list: " + err.Error())
	}
	return idx
})

// Builtin returns the shared built-in index.
func Builtin() *Index {
	return builtin()
}
