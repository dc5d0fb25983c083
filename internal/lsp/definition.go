package lsp

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// referenceRoots are the variables expressions in a palette file can
// reference.
var referenceRoots = map[string]bool{"palette": true}

// Reference is a variable reference such as palette.highlight.low, split
// into its segments.
type Reference struct {
	Segments []RefSegment
}

// RefSegment is one name of a reference and where it appears.
type RefSegment struct {
	Name  string
	Range protocol.Range
}

// referencesIn collects the palette references of the given traversals.
// Index steps such as palette.list[0] end the reference.
func referencesIn(traversals []hcl.Traversal) []Reference {
	var refs []Reference
	for _, trav := range traversals {
		if len(trav) == 0 || !referenceRoots[trav.RootName()] {
			continue
		}

		var ref Reference
	steps:
		for _, step := range trav {
			switch s := step.(type) {
			case hcl.TraverseRoot:
				ref.Segments = append(ref.Segments, RefSegment{Name: s.Name, Range: hclRangeToLSP(s.SrcRange)})
			case hcl.TraverseAttr:
				// The range of an attribute step includes its leading dot.
				rng := hclRangeToLSP(s.SrcRange)
				if rng.End.Character-rng.Start.Character > uint32(len(s.Name)) {
					rng.Start.Character = rng.End.Character - uint32(len(s.Name))
				}
				ref.Segments = append(ref.Segments, RefSegment{Name: s.Name, Range: rng})
			default:
				break steps
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// pathAt returns the reference path up to and including the segment under
// pos. On "palette" in "palette.base" it returns "palette"; on "base" it
// returns "palette.base".
func (ref Reference) pathAt(pos protocol.Position) (string, bool) {
	for i, seg := range ref.Segments {
		if posInRange(pos, seg.Range) {
			names := make([]string, i+1)
			for j := range names {
				names[j] = ref.Segments[j].Name
			}
			return strings.Join(names, "."), true
		}
	}
	return "", false
}

// definition returns the definition location for a palette reference at the given cursor position.
// Returns nil if the cursor is not on a palette reference or if the symbol is not found.
func definition(result *AnalysisResult, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	for _, ref := range result.References {
		path, ok := ref.pathAt(pos)
		if !ok {
			continue
		}

		symRange, ok := result.Symbols[path]
		if !ok {
			return nil
		}
		return &protocol.Location{
			URI:   protocol.DocumentUri(uri),
			Range: symRange,
		}
	}

	return nil
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.docs.Result(uri)
	if result == nil {
		return nil, nil
	}

	return definition(result, uri, params.Position), nil
}
