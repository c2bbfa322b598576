package archive

// langExt maps the language labels used by the submissions feed to file
// extensions. Unmapped labels abort archiving for that submission
var langExt = map[string]string{
	"PYTH 3":      "py",
	"PYTH 2":      "py",
	"PYTH":        "py",
	"C":           "c",
	"C++14":       "cpp",
	"C++17":       "cpp",
	"C++ 4.0.0-8": "cpp",
	"C++ 4.9.2":   "cpp",
	"C++ 4.3.2":   "cpp",
	"C++11":       "cpp",
	"PAS fpc":     "pp",
	"JAVA":        "java",
	"PYPY3":       "py",
	"PYPY2":       "py",
	"PYPY":        "py",
	"ADA":         "adb",
	"C#":          "cs",
	"NODEJS":      "js",
	"JS":          "js",
	"GO":          "go",
	"KTLN":        "kt",
	"RUBY":        "ruby",
	"rust":        "rs",
}

// Extension resolves a feed language label to a file extension
func Extension(lang string) (string, bool) {
	ext, ok := langExt[lang]
	return ext, ok
}

// commentPrefix returns the line-comment marker for ext. Pascal is the odd
// one out and is handled separately with a { } pair per header line
func commentPrefix(ext string) string {
	switch ext {
	case "py":
		return "#"
	case "adb":
		return "--"
	default:
		return "//"
	}
}
