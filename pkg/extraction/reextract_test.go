package extraction

import (
	"testing"

	"ai-coursekb-be/pkg/lexical"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner() *Planner {
	return NewPlanner(lexical.NewTokenizer())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    Mode
		wantErr bool
	}{
		{"auto", ModeAuto, false},
		{"full", ModeFull, false},
		{"partial", ModePartial, false},
		{"", ModeAuto, false},
		{"everything", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestChunkChangeRatio(t *testing.T) {
	tests := []struct {
		name     string
		previous []string
		current  []string
		want     float64
	}{
		{"identical sets", []string{"a", "b", "c"}, []string{"a", "b", "c"}, 0},
		{"no prior extraction", nil, []string{"a"}, 1},
		{"completely replaced", []string{"a", "b"}, []string{"c", "d"}, 1},
		{"one of four replaced", []string{"a", "b", "c", "d"}, []string{"a", "b", "c", "e"}, 0.4},
		{"pure addition", []string{"a", "b", "c"}, []string{"a", "b", "c", "d"}, 0.25},
		{"order does not matter", []string{"a", "b"}, []string{"b", "a"}, 0},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"b", "b", "a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ChunkChangeRatio(tt.previous, tt.current), 1e-9)
		})
	}
}

func TestChooseMode(t *testing.T) {
	p := newTestPlanner()
	previous := []string{"a", "b", "c", "d"}

	t.Run("explicit modes pass through", func(t *testing.T) {
		assert.Equal(t, ModeFull, p.ChooseMode(ModeFull, previous, previous))
		assert.Equal(t, ModePartial, p.ChooseMode(ModePartial, nil, previous))
	})

	t.Run("auto picks partial for small change", func(t *testing.T) {
		// One of four replaced: ratio 0.4, not above the threshold.
		current := []string{"a", "b", "c", "e"}
		assert.Equal(t, ModePartial, p.ChooseMode(ModeAuto, previous, current))
	})

	t.Run("auto picks full for structural change", func(t *testing.T) {
		current := []string{"a", "e", "f", "g"}
		assert.Equal(t, ModeFull, p.ChooseMode(ModeAuto, previous, current))
	})

	t.Run("auto picks full for first extraction", func(t *testing.T) {
		assert.Equal(t, ModeFull, p.ChooseMode(ModeAuto, nil, previous))
	})
}

func TestTitleSimilarity(t *testing.T) {
	p := newTestPlanner()
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Cell Membrane Structure", "Cell Membrane Structure", 1},
		{"case and stopwords ignored", "Osmosis and Diffusion", "osmosis diffusion", 1},
		{"partial overlap", "Cell Membrane Structure", "Cell Membrane Transport", 0.5},
		{"disjoint", "Photosynthesis", "Mitosis", 0},
		{"empty title", "", "Mitosis", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.TitleSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDiffTopics(t *testing.T) {
	p := newTestPlanner()
	existing := []ExistingTopic{
		{Id: "t1", Title: "Cell Membrane Structure"},
		{Id: "t2", Title: "Osmosis and Diffusion"},
		{Id: "t3", Title: "Photosynthesis Basics"},
	}

	proposed := []string{
		"Cell Membrane Structure", // exact: reused
		"Diffusion and Osmosis",   // same tokens, new order: reused
		"Active Transport",        // brand new: added
	}

	diff := p.DiffTopics(proposed, existing)

	assert.Equal(t, []string{"Active Transport"}, diff.Added)

	require.Len(t, diff.Reused, 2)
	assert.Equal(t, "t1", diff.Reused[0].Id)
	assert.Equal(t, "t2", diff.Reused[1].Id)

	// Photosynthesis no longer proposed: its knowledge is stale.
	require.Len(t, diff.Stale, 1)
	assert.Equal(t, "t3", diff.Stale[0].Id)
}

func TestDiffTopicsClaimsEachExistingOnce(t *testing.T) {
	p := newTestPlanner()
	existing := []ExistingTopic{{Id: "t1", Title: "Cell Membrane Structure"}}

	// Two proposals similar to the same existing topic: only the first
	// claims it, the second becomes a new topic.
	diff := p.DiffTopics([]string{"Cell Membrane Structure", "Membrane Structure Cell"}, existing)

	require.Len(t, diff.Reused, 1)
	assert.Equal(t, []string{"Membrane Structure Cell"}, diff.Added)
	assert.Empty(t, diff.Stale)
}

func TestDiffTopicsAllNew(t *testing.T) {
	p := newTestPlanner()
	diff := p.DiffTopics([]string{"Mitosis", "Meiosis"}, nil)
	assert.Equal(t, []string{"Mitosis", "Meiosis"}, diff.Added)
	assert.Empty(t, diff.Reused)
	assert.Empty(t, diff.Stale)
}
