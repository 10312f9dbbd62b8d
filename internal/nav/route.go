// Package nav models the locations the app can navigate to.
package nav

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnknownRoute is returned by Parse for paths no screen serves.
var ErrUnknownRoute = errors.New("unknown route")

// Kind identifies which screen a route opens.
type Kind int

const (
	KindHome Kind = iota
	KindRoadmap
	KindQuiz
	KindGraph
	KindHistory
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindRoadmap:
		return "roadmap"
	case KindQuiz:
		return "quiz"
	case KindGraph:
		return "knowledge-graph"
	case KindHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Route is a parsed location.
type Route struct {
	Kind       Kind
	ItemID     int    // KindQuiz
	Topic      string // KindRoadmap filter
	Experience string // KindRoadmap filter
	Highlight  string // KindGraph node id
}

// Home returns the landing route.
func Home() Route { return Route{Kind: KindHome} }

// Roadmap returns the unfiltered roadmap route.
func Roadmap() Route { return Route{Kind: KindRoadmap} }

// RoadmapFor returns the roadmap route filtered to topic.
func RoadmapFor(topic string) Route {
	return Route{Kind: KindRoadmap, Topic: strings.TrimSpace(topic)}
}

// RoadmapMatching returns the roadmap route filtered to topic and
// experience level. Empty values do not filter.
func RoadmapMatching(topic, experience string) Route {
	return Route{
		Kind:       KindRoadmap,
		Topic:      strings.TrimSpace(topic),
		Experience: strings.TrimSpace(experience),
	}
}

// Quiz returns the quiz route for a roadmap item.
func Quiz(itemID int) Route { return Route{Kind: KindQuiz, ItemID: itemID} }

// Graph returns the knowledge-graph route, highlighting a node if set.
func Graph(highlight string) Route { return Route{Kind: KindGraph, Highlight: highlight} }

// History returns the local completion history route.
func History() Route { return Route{Kind: KindHistory} }

// String renders the route as a path with query.
func (r Route) String() string {
	switch r.Kind {
	case KindRoadmap:
		q := url.Values{}
		if r.Topic != "" {
			q.Set("topic", r.Topic)
		}
		if r.Experience != "" {
			q.Set("experience", r.Experience)
		}
		if len(q) > 0 {
			return "/roadmap?" + q.Encode()
		}
		return "/roadmap"
	case KindQuiz:
		return "/quiz/" + strconv.Itoa(r.ItemID)
	case KindGraph:
		if r.Highlight != "" {
			return "/knowledge-graph?" + url.Values{"highlight": {r.Highlight}}.Encode()
		}
		return "/knowledge-graph"
	case KindHistory:
		return "/history"
	default:
		return "/"
	}
}

// Parse reads a route from a path such as "/quiz/42" or
// "/knowledge-graph?highlight=title_42".
func Parse(s string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", s, err)
	}

	path := strings.Trim(u.Path, "/")
	q := u.Query()
	segs := strings.Split(path, "/")

	switch {
	case path == "":
		return Home(), nil
	case path == "roadmap":
		return RoadmapMatching(q.Get("topic"), q.Get("experience")), nil
	case segs[0] == "quiz" && len(segs) == 2:
		id, err := strconv.Atoi(segs[1])
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("route %q: invalid quiz id %q: %w", s, segs[1], ErrUnknownRoute)
		}
		return Quiz(id), nil
	case path == "knowledge-graph":
		return Graph(q.Get("highlight")), nil
	case path == "history":
		return History(), nil
	}
	return Route{}, fmt.Errorf("route %q: %w", s, ErrUnknownRoute)
}
