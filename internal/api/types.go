package api

// QuizPayload is the body of GET /api/quiz/{id}.
type QuizPayload struct {
	RoadmapItemID int               `json:"roadmap_item_id"`
	Questions     []QuestionPayload `json:"questions"`
}

// QuestionPayload is one multiple-choice question as the backend sends it.
type QuestionPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// CompletionRequest is the body of POST /api/progress/complete.
type CompletionRequest struct {
	RoadmapItemID  int    `json:"roadmap_item_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	UserID         string `json:"user_id"`
}

// CompletionResponse is the backend's answer to a completion report.
type CompletionResponse struct {
	Success       bool `json:"success"`
	IsNewUnlock   bool `json:"is_new_unlock"`
	RoadmapItemID int  `json:"roadmap_item_id"`
}

// Roadmap is one generated learning plan.
type Roadmap struct {
	ID         int           `json:"id"`
	Topic      string        `json:"topic"`
	Experience string        `json:"experience"`
	CreatedAt  string        `json:"created_at,omitempty"`
	Items      []RoadmapItem `json:"items"`
}

// RoadmapItem is a single learning-plan entry (a "title").
type RoadmapItem struct {
	ID            int      `json:"id"`
	RoadmapID     int      `json:"roadmap_id"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Level         int      `json:"level"`
	Status        string   `json:"status"`
	Progress      *int     `json:"progress,omitempty"`
	StudyMaterial []string `json:"study_material"`
}

// Item status values used by the backend.
const (
	StatusDone       = "done"
	StatusInProgress = "in_progress"
)

// ProgressPercent returns the item's progress in [0, 100], deriving it from
// the status when the backend sent none.
func (it RoadmapItem) ProgressPercent() int {
	if it.Progress != nil {
		p := *it.Progress
		if p < 0 {
			return 0
		}
		if p > 100 {
			return 100
		}
		return p
	}
	if it.Status == StatusDone {
		return 100
	}
	return 0
}

// FindItem searches every item of every roadmap for id.
func FindItem(roadmaps []Roadmap, id int) (RoadmapItem, bool) {
	for _, r := range roadmaps {
		for _, it := range r.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return RoadmapItem{}, false
}

// Graph is the body of GET /api/knowledge-graph/.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Node types in the knowledge graph.
const (
	NodeTopic = "topic"
	NodeTitle = "title"
)

// GraphNode is a topic (roadmap) or title (roadmap item) in the graph.
type GraphNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	RoadmapID int    `json:"roadmap_id"`
	Group     int    `json:"group"`
}

// GraphEdge links two nodes. Relationship is "contains" for topic→title
// edges and one of prerequisite|complementary|conceptual|transfer otherwise.
type GraphEdge struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Weight       float64 `json:"weight"`
	Relationship string  `json:"relationship"`
}
