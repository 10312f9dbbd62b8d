package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"/", Home()},
		{"", Home()},
		{"/roadmap", Roadmap()},
		{"/roadmap/", Roadmap()},
		{"/roadmap?topic=Python", RoadmapFor("Python")},
		{"/roadmap?experience=beginner&topic=Python", RoadmapMatching("Python", "beginner")},
		{"/quiz/42", Quiz(42)},
		{"/knowledge-graph", Graph("")},
		{"/knowledge-graph?highlight=title_42", Graph("title_42")},
		{"/history", History()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, in := range []string{"/quiz", "/quiz/abc", "/quiz/0", "/quiz/1/2", "/settings"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnknownRoute, in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "/", Home().String())
	assert.Equal(t, "/roadmap", Roadmap().String())
	assert.Equal(t, "/roadmap?topic=machine+learning", RoadmapFor(" machine learning ").String())
	assert.Equal(t, "/roadmap?experience=beginner&topic=Go", RoadmapMatching("Go", "beginner").String())
	assert.Equal(t, "/quiz/7", Quiz(7).String())
	assert.Equal(t, "/knowledge-graph?highlight=title_42", Graph("title_42").String())
	assert.Equal(t, "/knowledge-graph", Graph("").String())
	assert.Equal(t, "/history", History().String())
}

func TestRoundTrip(t *testing.T) {
	for _, r := range []Route{Home(), RoadmapFor("Go"), RoadmapMatching("Rust", "advanced"), Quiz(3), Graph("title_3"), History()} {
		got, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}
