package output

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultExtension is used for languages missing from the table.
const DefaultExtension = "txt"

var extensions = map[string]string{
	"bf":           "b",
	"c":            "c",
	"clojure":      "clj",
	"cobol":        "cob",
	"coffeescript": "coffee",
	"commonlisp":   "lisp",
	"cpp":          "cpp",
	"crystal":      "cr",
	"csharp":       "cs",
	"d":            "d",
	"dart":         "dart",
	"elixir":       "ex",
	"elm":          "elm",
	"erlang":       "erl",
	"factor":       "factor",
	"forth":        "fth",
	"fortran":      "f90",
	"fsharp":       "fs",
	"go":           "go",
	"groovy":       "groovy",
	"haskell":      "hs",
	"haxe":         "hx",
	"idris":        "idr",
	"java":         "java",
	"javascript":   "js",
	"julia":        "jl",
	"kotlin":       "kt",
	"lambdacalc":   "lc",
	"lean":         "lean",
	"lua":          "lua",
	"nasm":         "asm",
	"nim":          "nim",
	"objc":         "m",
	"ocaml":        "ml",
	"pascal":       "pas",
	"perl":         "pl",
	"php":          "php",
	"powershell":   "ps1",
	"prolog":       "pro",
	"purescript":   "purs",
	"python":       "py",
	"r":            "r",
	"racket":       "rkt",
	"raku":         "raku",
	"reason":       "re",
	"riscv":        "s",
	"ruby":         "rb",
	"rust":         "rs",
	"scala":        "scala",
	"shell":        "sh",
	"solidity":     "sol",
	"sql":          "sql",
	"swift":        "swift",
	"typescript":   "ts",
	"vb":           "vb",
}

// Extension returns the file extension for a language, without the dot.
func Extension(language string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}
	return DefaultExtension
}

// FileName returns the file name for the index-th variant of a problem:
// solution.<ext> for the first, solution_<index+1>.<ext> after that.
func FileName(language string, index int) string {
	ext := Extension(language)
	if index == 0 {
		return "solution." + ext
	}
	return fmt.Sprintf("solution_%d.%s", index+1, ext)
}

// Languages returns every known language, sorted.
func Languages() []string {
	langs := make([]string, 0, len(extensions))
	for lang := range extensions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
