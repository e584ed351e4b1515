package extraction

import (
	"fmt"

	"ai-coursekb-be/pkg/lexical"
)

// Mode selects how much of a session's knowledge is rebuilt.
type Mode string

const (
	// ModeAuto lets the planner choose from the chunk fingerprint diff.
	ModeAuto Mode = "auto"
	// ModeFull discards every topic and rebuilds from the full chunk set.
	ModeFull Mode = "full"
	// ModePartial keeps knowledge for topics whose titles still match and
	// schedules only new or changed ones.
	ModePartial Mode = "partial"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeAuto, ModeFull, ModePartial:
		return Mode(raw), nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown re-extraction mode %q", raw)
	}
}

const (
	// FullReextractThreshold is the chunk change ratio above which auto
	// mode falls back to a full rebuild.
	FullReextractThreshold = 0.4

	// TitleSimilarityThreshold is the token-set Jaccard score at which two
	// topic titles are considered the same topic.
	TitleSimilarityThreshold = 0.6
)

// ExistingTopic is the planner's view of an already extracted topic.
type ExistingTopic struct {
	Id    string
	Title string
}

// TopicDiff partitions topics after a partial re-extraction proposal.
// Added holds proposed titles with no existing counterpart. Reused holds
// existing topics whose knowledge survives untouched. Stale holds existing
// topics no proposal matched; they are re-extracted against fresh chunks.
type TopicDiff struct {
	Added  []string
	Reused []ExistingTopic
	Stale  []ExistingTopic
}

// Planner decides between full and partial re-extraction and diffs topic
// lists by title similarity.
type Planner struct {
	tokenizer      *lexical.Tokenizer
	fullThreshold  float64
	titleThreshold float64
}

func NewPlanner(tokenizer *lexical.Tokenizer) *Planner {
	return &Planner{
		tokenizer:      tokenizer,
		fullThreshold:  FullReextractThreshold,
		titleThreshold: TitleSimilarityThreshold,
	}
}

// ChooseMode resolves auto mode against the chunk fingerprint diff.
// Explicit full or partial requests are honored as given.
func (p *Planner) ChooseMode(requested Mode, previousChunkIds, currentChunkIds []string) Mode {
	if requested != ModeAuto {
		return requested
	}
	if ChunkChangeRatio(previousChunkIds, currentChunkIds) > p.fullThreshold {
		return ModeFull
	}
	return ModePartial
}

// DiffTopics matches proposed titles against existing topics. Each existing
// topic is claimed by at most one proposal, the best-scoring one at or above
// the similarity threshold.
func (p *Planner) DiffTopics(proposed []string, existing []ExistingTopic) TopicDiff {
	var diff TopicDiff
	claimed := make(map[int]bool, len(existing))

	for _, title := range proposed {
		best, bestScore := -1, 0.0
		for i, old := range existing {
			if claimed[i] {
				continue
			}
			score := p.TitleSimilarity(title, old.Title)
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 && bestScore >= p.titleThreshold {
			claimed[best] = true
			diff.Reused = append(diff.Reused, existing[best])
		} else {
			diff.Added = append(diff.Added, title)
		}
	}

	for i, old := range existing {
		if !claimed[i] {
			diff.Stale = append(diff.Stale, old)
		}
	}
	return diff
}

// TitleSimilarity is the Jaccard index over the two titles' token sets.
func (p *Planner) TitleSimilarity(a, b string) float64 {
	setA := tokenSet(p.tokenizer.Tokenize(a))
	setB := tokenSet(p.tokenizer.Tokenize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// ChunkChangeRatio measures how much of the chunk set changed between two
// extractions: the size of the symmetric difference over the size of the
// union. A session with no prior chunks scores 1.
func ChunkChangeRatio(previous, current []string) float64 {
	if len(previous) == 0 {
		return 1
	}

	prevSet := make(map[string]bool, len(previous))
	for _, id := range previous {
		prevSet[id] = true
	}

	intersection := 0
	currSet := make(map[string]bool, len(current))
	for _, id := range current {
		if currSet[id] {
			continue
		}
		currSet[id] = true
		if prevSet[id] {
			intersection++
		}
	}

	union := len(prevSet) + len(currSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(union-intersection) / float64(union)
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}
