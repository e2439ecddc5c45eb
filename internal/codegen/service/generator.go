package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	codegenDomain "github.com/allisson/stringveil/internal/codegen/domain"
)

// identityMarker separates the fixed base names from the sanitized identity
// suffix in every emitted identifier.
const identityMarker = "_"

// packageNameRe matches a valid lower-case Go package name.
var packageNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type artifactGenerator struct{}

// NewArtifactGenerator creates the generator that writes holder and primary
// artifacts as Go source files.
func NewArtifactGenerator() ArtifactGenerator {
	return &artifactGenerator{}
}

// Generate renders every artifact in memory first, then writes all files
// concurrently. Rendering before writing means a template failure leaves the
// output directory untouched; a write failure aborts the whole build, there
// is no partial-success mode.
func (g *artifactGenerator) Generate(ctx context.Context, params Params) (*Result, error) {
	if !packageNameRe.MatchString(params.PackageName) {
		return nil, fmt.Errorf("%w: %q", codegenDomain.ErrInvalidPackageName, params.PackageName)
	}
	if params.Table == nil {
		return nil, codegenDomain.ErrNilTable
	}
	if len(params.Fragments) == 0 {
		return nil, codegenDomain.ErrNoFragments
	}

	suffix := SanitizeIdentity(params.Identity)

	result := &Result{
		Suffix:     suffix,
		LookupName: "VeilLookup" + suffix,
	}

	type artifact struct {
		path    string
		content []byte
	}
	artifacts := make([]artifact, 0, len(params.Fragments)+1)

	// Holder artifacts, one per fragment, in reassembly order.
	for i, words := range params.Fragments {
		content, err := render(holderTemplate, holderData{
			Package: params.PackageName,
			Suffix:  suffix,
			Index:   i,
			Words:   words,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to render holder artifact %d: %w", i, err)
		}
		path := filepath.Join(params.OutputDir, fmt.Sprintf("veil_key_part%d%s.go", i, strings.ToLower(suffix)))
		artifacts = append(artifacts, artifact{path: path, content: content})
		result.HolderPaths = append(result.HolderPaths, path)
	}

	// Primary artifact: table first, fragment assembly second, then the
	// lookup entry point.
	chunks := make([][]byte, params.Table.ChunkCount())
	for i := range chunks {
		chunks[i] = params.Table.ChunkBytes(i)
	}
	indexes := make([]int, len(params.Fragments))
	for i := range indexes {
		indexes[i] = i
	}
	content, err := render(primaryTemplate, primaryData{
		Package:         params.PackageName,
		Suffix:          suffix,
		Chunks:          chunks,
		FragmentIndexes: indexes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render primary artifact: %w", err)
	}
	result.PrimaryPath = filepath.Join(params.OutputDir, fmt.Sprintf("veil_table%s.go", strings.ToLower(suffix)))
	artifacts = append(artifacts, artifact{path: result.PrimaryPath, content: content})

	if err := os.MkdirAll(params.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	eg, _ := errgroup.WithContext(ctx)
	for _, a := range artifacts {
		a := a
		eg.Go(func() error {
			if err := os.WriteFile(a.path, a.content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", a.path, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// SanitizeIdentity reduces a caller-supplied build-unit identity to letters,
// digits and underscores, prefixed with a single marker character. An
// identity with nothing left after sanitization is omitted entirely and the
// emitted names carry no suffix.
func SanitizeIdentity(identity string) string {
	var sb strings.Builder
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return identityMarker + sb.String()
}

func render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
