package phonetic

import "sync"

// Built-in tables. Keys are lower case: the scan runs over the lower-cased
// buffer, so upper-case keys could never match.

var builtinVowels = []Vowel{
	{Key: "a", Standalone: "আ", Dependent: ""},
	{Key: "aa", Standalone: "আ", Dependent: "া"},
	{Key: "i", Standalone: "ই", Dependent: "ি"},
	{Key: "ee", Standalone: "ঈ", Dependent: "ী"},
	{Key: "u", Standalone: "উ", Dependent: "ু"},
	{Key: "oo", Standalone: "ঊ", Dependent: "ূ"},
	{Key: "ri", Standalone: "ঋ", Dependent: "ৃ"},
	{Key: "e", Standalone: "এ", Dependent: "ে"},
	{Key: "ai", Standalone: "ঐ", Dependent: "ৈ"},
	{Key: "oi", Standalone: "ঐ", Dependent: "ৈ"},
	{Key: "o", Standalone: "ও", Dependent: "ো"},
	{Key: "ou", Standalone: "ঔ", Dependent: "ৌ"},
}

// rh, hh and vh render through the conjunct table.
var builtinConsonants = []Entry{
	{"k", "ক"}, {"g", "গ"}, {"c", "চ"}, {"j", "জ"},
	{"t", "ত"}, {"d", "দ"}, {"n", "ন"},
	{"p", "প"}, {"b", "ব"}, {"v", "ভ"}, {"m", "ম"},
	{"y", "য"}, {"r", "র"}, {"l", "ল"}, {"s", "স"}, {"h", "হ"},

	{"kh", "খ"}, {"gh", "ঘ"}, {"ch", "ছ"}, {"jh", "ঝ"},
	{"th", "থ"}, {"dh", "ঢ"}, {"ph", "ফ"}, {"bh", "ভ"},
	{"sh", "শ"}, {"ng", "ং"}, {"ny", "ঞ"},

	{"rrh", "ঢ়"},
}

var builtinConjuncts = []Entry{
	{"ksh", "ক্ষ"}, {"str", "স্ত্র"}, {"skh", "স্খ"}, {"sth", "স্থ"},
	{"gyn", "জ্ঞ"}, {"rsh", "র্ষ"}, {"kkh", "ক্খ"},
	{"ngk", "ঙ্ক"}, {"ngg", "ঙ্গ"}, {"ngj", "ঙ্ঞ"},
	{"ttt", "ত্ত"}, {"tth", "ত্থ"}, {"tnn", "ত্ন"},
	{"ddd", "দ্দ"}, {"ddh", "দ্ধ"}, {"dnn", "দ্ন"},
	{"bhy", "ভ্য"}, {"lnn", "ল্ন"},
	{"shk", "শ্ক"}, {"shn", "শ্ন"}, {"shm", "শ্ম"}, {"shl", "শ্ল"}, {"shs", "শ্স"},
	{"spl", "স্প্ল"}, {"spr", "স্প্র"},
	{"khy", "খ্য"}, {"phl", "ফ্ল"}, {"gyy", "গ্য"},

	{"rk", "র্ক"}, {"rg", "র্গ"}, {"rt", "র্ত"}, {"rd", "র্দ"}, {"rn", "র্ন"},
	{"rm", "র্ম"}, {"rl", "র্ল"}, {"rs", "র্স"}, {"rh", "রহ"},
	{"kr", "ক্র"}, {"gr", "গ্র"}, {"dr", "দ্র"}, {"pr", "প্র"}, {"br", "ব্র"},
	{"mr", "ম্র"}, {"fr", "ফ্র"}, {"vr", "ভ্র"}, {"tr", "ত্র"}, {"nr", "ন্র"}, {"sr", "স্র"},

	{"kk", "ক্ক"}, {"kg", "ক্গ"}, {"kc", "ক্চ"}, {"kj", "ক্জ"}, {"kt", "ক্ট"},
	{"kn", "ক্ণ"}, {"kp", "ক্প"}, {"kb", "ক্ব"}, {"km", "ক্ম"}, {"kl", "ক্ল"}, {"ks", "ক্স"},
	{"gg", "গ্গ"}, {"gn", "গ্ন"}, {"gm", "গ্ম"}, {"gl", "গ্ল"},
	{"jj", "জ্জ"}, {"jn", "জ্ঞ"}, {"jm", "জ্ম"},
	{"tm", "ত্ম"}, {"tl", "ত্ল"}, {"ts", "ত্স"},
	{"dm", "দ্ম"}, {"dl", "দ্ল"},
	{"pp", "প্প"}, {"pl", "প্ল"}, {"pn", "প্ন"}, {"pm", "প্ম"},
	{"bb", "ব্ব"}, {"bj", "ব্জ"}, {"bd", "ব্দ"}, {"bm", "ব্ম"}, {"bl", "ব্ল"}, {"by", "ব্য"},
	{"mm", "ম্ম"}, {"ml", "ম্ল"},
	{"lk", "ল্ক"}, {"lg", "ল্গ"}, {"lj", "ল্জ"}, {"ld", "ল্ড"}, {"lm", "ল্ম"}, {"ll", "ল্ল"},
	{"sk", "স্ক"}, {"sn", "স্ন"}, {"sm", "স্ম"}, {"sl", "স্ল"}, {"sp", "স্প"},
	{"hh", "হ্হ"}, {"hm", "হ্ম"}, {"hn", "হ্ন"}, {"hl", "হ্ল"},
	{"st", "স্ত"}, {"ss", "স্স"}, {"vh", "ভ"}, {"gy", "জ্ঞ"}, {"sw", "স্ব"},
}

var builtinPunctuation = []Entry{
	{".", "।"}, {",", ","}, {"?", "?"}, {"!", "!"},
	{";", ";"}, {":", ":"}, {"-", "-"}, {"_", "_"},
	{"(", "("}, {")", ")"}, {"[", "["}, {"]", "]"}, {"{", "{"}, {"}", "}"},
	{"'", "'"}, {`"`, `"`}, {"`", "`"}, {"~", "~"},

	{"0", "০"}, {"1", "১"}, {"2", "২"}, {"3", "৩"}, {"4", "৪"},
	{"5", "৫"}, {"6", "৬"}, {"7", "৭"}, {"8", "৮"}, {"9", "৯"},
}

var builtinOverrides = []Entry{
	{"rastra", "রাষ্ট্র"},
	{"rastro", "রাষ্ট্র"},
	{"bhasha", "ভাষা"},
	{"bhashan", "ভাষণ"},
	{"shadin", "স্বাধীন"},
	{"meye", "মেয়ে"},
	{"ghor", "ঘর"},
	{"nasta", "নাস্তা"},
	{"nast", "নস্ত"},
	{"muktir", "মুক্তির"},
	{"mukti", "মুক্তি"},
	{"ami", "আমি"},
	{"amra", "আমরা"},
	{"bangla", "বাংলা"},
	{"banglay", "বাংলায়"},
	{"bhashai", "ভাষায়"},
	{"gan", "গান"},
	{"gacchi", "গাচ্ছি"},
	{"kotha", "কথা"},
	{"kothi", "কথি"},
	{"boli", "বলি"},
	{"bol", "বল"},
}

// BuiltinTableSet returns a copy of the built-in mapping tables.
func BuiltinTableSet() TableSet {
	return TableSet{
		Vowels:      append([]Vowel(nil), builtinVowels...),
		Consonants:  append([]Entry(nil), builtinConsonants...),
		Conjuncts:   append([]Entry(nil), builtinConjuncts...),
		Punctuation: append([]Entry(nil), builtinPunctuation...),
	}
}

// BuiltinOverrides returns a copy of the built-in whole-word overrides.
func BuiltinOverrides() []Entry {
	return append([]Entry(nil), builtinOverrides...)
}

type defaults struct {
	tables    *Tables
	overrides *Overrides
	err       error
}

var loadDefaults = sync.OnceValue(func() defaults {
	t, err := NewTables(BuiltinTableSet())
	if err != nil {
		return defaults{err: err}
	}
	o, err := NewOverrides(BuiltinOverrides())
	if err != nil {
		return defaults{err: err}
	}
	return defaults{tables: t, overrides: o}
})

// Default returns the shared built-in tables and overrides. They are
// built on first use.
func Default() (*Tables, *Overrides, error) {
	d := loadDefaults()
	return d.tables, d.overrides, d.err
}

// MustDefault is like Default but panics if the built-in data is invalid.
func MustDefault() (*Tables, *Overrides) {
	t, o, err := Default()
	if err != nil {
		panic("phonetic: invalid built-in tables: " + err.Error())
	}
	return t, o
}
