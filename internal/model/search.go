package model

import "regexp"

// SearchStage tells which tier of the search produced the result.
type SearchStage int

const (
	// StagePatternMatch is a case-insensitive substring match over
	// part number, part name and model name.
	StagePatternMatch SearchStage = iota + 1
	// StageRankedText is the relevance-ranked full-text search.
	StageRankedText
)

func (s SearchStage) String() string {
	switch s {
	case StagePatternMatch:
		return "pattern"
	case StageRankedText:
		return "text"
	default:
		return "unknown"
	}
}

var identifierShape = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ClassifyQuery picks the first stage to run for q. Identifier-shaped queries
// start with the pattern stage; everything else goes straight to ranked text.
func ClassifyQuery(q string) SearchStage {
	if identifierShape.MatchString(q) {
		return StagePatternMatch
	}
	return StageRankedText
}

// ScoredPart is a ranked-text hit.
type ScoredPart struct {
	Part  *Part
	Score float64
}

type SearchResult struct {
	Stage SearchStage
	Parts []*Part
	// Scores is parallel to Parts and only set for StageRankedText.
	Scores []float64
}
