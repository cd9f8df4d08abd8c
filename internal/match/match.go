// Package match pairs scene object names with catalog assets.
package match

import (
	"path"
	"regexp"
	"strings"

	"github.com/octave-engine/octconnect/internal/types"
)

// duplicateSuffix is the ".001" style suffix a DCC tool appends to copies.
var duplicateSuffix = regexp.MustCompile(`\.\d{3,}$`)

const (
	scoreNone = iota
	scoreContained
	scoreContains
	scoreFold
)

// BaseName strips a trailing duplicate suffix from an object name.
func BaseName(objectName string) string {
	return duplicateSuffix.ReplaceAllString(objectName, "")
}

// Best returns the engine path of the entry that best matches objectName,
// or "" when nothing matches. An exact leaf match wins immediately; after
// that a case-insensitive match beats a leaf containing the name, which
// beats the name containing the leaf. Ties keep the earliest entry.
func Best(objectName string, entries []types.AssetCatalogEntry) string {
	base := BaseName(objectName)
	lowerBase := strings.ToLower(base)

	best, bestScore := "", scoreNone
	for _, e := range entries {
		leaf := path.Base(e.EnginePath)
		if leaf == base {
			return e.EnginePath
		}
		lowerLeaf := strings.ToLower(leaf)
		score := scoreNone
		switch {
		case lowerLeaf == lowerBase:
			score = scoreFold
		case strings.Contains(lowerLeaf, lowerBase):
			score = scoreContains
		case strings.Contains(lowerBase, lowerLeaf):
			score = scoreContained
		}
		if score > bestScore {
			best, bestScore = e.EnginePath, score
		}
	}
	return best
}

// Object is the part of a scene object matching needs.
type Object struct {
	Name   string
	Camera bool
}

// Result pairs an object with its match.
type Result struct {
	Object string `json:"object"`
	Asset  string `json:"asset,omitempty"`
}

// Summary counts an All run.
type Summary struct {
	Matched   int      `json:"matched"`
	Unmatched int      `json:"unmatched"`
	Results   []Result `json:"results"`
}

// All matches every non-camera object.
func All(objects []Object, entries []types.AssetCatalogEntry) Summary {
	var s Summary
	for _, o := range objects {
		if o.Camera {
			continue
		}
		asset := Best(o.Name, entries)
		if asset == "" {
			s.Unmatched++
		} else {
			s.Matched++
		}
		s.Results = append(s.Results, Result{Object: o.Name, Asset: asset})
	}
	return s
}
