package service

import (
	"fmt"
	"strings"
	"text/template"
)

// bytesPerLine keeps the emitted table literals reviewable and below editor
// line-length limits.
const bytesPerLine = 16

// primaryTemplate renders the primary artifact. Declaration order is
// load-bearing by convention (table first, fragments second) even though Go
// resolves package-level initialization by dependency order; the fragment
// table references the holder files' variables, so the compiler guarantees
// every fragment is assembled before the lookup entry point can run, and it
// rejects initialization cycles outright.
var primaryTemplate = template.Must(template.New("primary").Funcs(templateFuncs).Parse(
	`// Code generated by stringveil. DO NOT EDIT.

package {{.Package}}

import "github.com/allisson/stringveil/veil"

// veilData{{.Suffix}} is the encrypted string table, chunked at
// veil.MaxChunkLength bytes.
var veilData{{.Suffix}} = [][]byte{
{{- range .Chunks}}
	{{byteSlice .}},
{{- end}}
}

// veilKeyParts{{.Suffix}} gathers the scattered key fragments in index order
// at package initialization.
var veilKeyParts{{.Suffix}} = [][]uint32{
{{- range .FragmentIndexes}}
	veilKeyPart{{.}}{{$.Suffix}}[:],
{{- end}}
}

// VeilLookup{{.Suffix}} decrypts the string addressed by token from the
// embedded table, forwarding to the veil runtime.
func VeilLookup{{.Suffix}}(token uint64, table [][]byte, fragments [][]uint32) string {
	return veil.Lookup(token, table, fragments)
}
`))

// holderTemplate renders one holder artifact. Each holder publishes exactly
// one fragment and references nothing else.
var holderTemplate = template.Must(template.New("holder").Funcs(templateFuncs).Parse(
	`// Code generated by stringveil. DO NOT EDIT.

package {{.Package}}

// veilKeyPart{{.Index}}{{.Suffix}} is fragment {{.Index}} of the scattered build key.
var veilKeyPart{{.Index}}{{.Suffix}} = [...]uint32{{wordSlice .Words}}
`))

var templateFuncs = template.FuncMap{
	"byteSlice": formatByteSlice,
	"wordSlice": formatWordSlice,
}

// primaryData feeds primaryTemplate.
type primaryData struct {
	Package         string
	Suffix          string
	Chunks          [][]byte
	FragmentIndexes []int
}

// holderData feeds holderTemplate.
type holderData struct {
	Package string
	Suffix  string
	Index   int
	Words   []uint32
}

// formatByteSlice renders a []byte literal, wrapped at bytesPerLine and
// indented to sit inside the table literal.
func formatByteSlice(b []byte) string {
	if len(b) == 0 {
		return "[]byte{}"
	}

	var sb strings.Builder
	sb.WriteString("[]byte{")
	for i, v := range b {
		if i%bytesPerLine == 0 {
			sb.WriteString("\n\t\t")
		} else {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "0x%02x,", v)
	}
	sb.WriteString("\n\t}")
	return sb.String()
}

// formatWordSlice renders the fragment words on one line.
func formatWordSlice(words []uint32) string {
	if len(words) == 0 {
		return "{}"
	}

	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("0x%08x", w)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
