package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders a Report into bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

var formatters = map[string]Formatter{}

// format aliases accepted on the command line
var formatAliases = map[string]string{
	"text":     "console",
	"table":    "console",
	"excel":    "xlsx",
	"markdown": "md",
}

func registerFormatter(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	registerFormatter(ConsoleFormatter{})
	registerFormatter(CSVFormatter{})
	registerFormatter(CSVSummarizer{})
	registerFormatter(JSONFormatter{Indent: true})
	registerFormatter(MarkdownFormatter{})
	registerFormatter(HTMLFormatter{})
	registerFormatter(XLSXFormatter{})
}

// GetFormatterByName resolves a formatter by name or alias; nil when unknown.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[name]; ok {
		name = alias
	}
	return formatters[name]
}

// IsBinaryFormat reports whether the named formatter produces non-text output.
func IsBinaryFormat(name string) bool {
	b, ok := GetFormatterByName(name).(interface{ Binary() bool })
	return ok && b.Binary()
}

// AvailableFormatterNames lists the registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders report with the named formatter into w.
func WriteFormatted(w io.Writer, name string, report *Report) error {
	f := GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
