package rules

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed languages/*.toml
var languages embed.FS

// List returns the names of the embedded languages.
func List() []string {
	entries, err := languages.ReadDir("languages")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Builtin parses the embedded table for name. Each call returns a new Table.
func Builtin(name string) (*Table, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	data, err := languages.ReadFile(path.Join("languages", name+".toml"))
	if err != nil {
		return nil, &ConfigurationError{
			Source:   name,
			Problems: []string{fmt.Sprintf("unknown language %q (available: %s)", name, strings.Join(List(), ", "))},
		}
	}
	return Parse("builtin:"+name, data)
}

// BuiltinSource returns the TOML text of an embedded table.
func BuiltinSource(name string) ([]byte, bool) {
	data, err := languages.ReadFile(path.Join("languages", strings.ToLower(name)+".toml"))
	return data, err == nil
}

// Resolve loads rulesPath when it is set, otherwise the builtin language.
func Resolve(language, rulesPath string) (*Table, error) {
	if strings.TrimSpace(rulesPath) != "" {
		return Load(rulesPath)
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return Builtin(language)
}

// DefaultLanguage is used when neither a language nor a table file is given.
const DefaultLanguage = "greek"
