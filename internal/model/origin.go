package model

import "time"

// Role classifies a participant in the dissemination of a piece of content
type Role string

const (
	RoleContentOriginator    Role = "Content Originator"
	RolePrimaryPublisher     Role = "Primary Publisher"
	RoleIndependentAnalysis  Role = "Independent Analysis"
	RoleSecondaryReporter    Role = "Secondary Reporter"
	RoleAmplifier            Role = "Amplifier"
	RoleSecondaryChannel     Role = "Secondary Channel"
	RoleAutomatedDistributor Role = "Automated Distributor"
)

// Origin is the inferred earliest/primary publisher of the analyzed content.
// Exactly one Origin exists per analysis; it is the propagation graph's root.
type Origin struct {
	Source    string    `json:"source"` // Domain, handle, or sentinel
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	URL       string    `json:"url"` // "#" when no URL is known
}

// Sentinel source names emitted by origin detection
const (
	SourceDirectInput         = "Direct Input"
	SourceUnknown             = "Unknown"
	SourceIndependentAnalysis = "Independent Analysis"
	NoURL                     = "#"
)

// PropagationNode is one participant in the dissemination graph.
// Node identifiers are unique within a graph.
type PropagationNode struct {
	ID        string    `json:"id"` // Domain or synthetic identifier
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// PropagationEdge is a directed source -> target link between node ids
type PropagationEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// PropagationGraph models how content spread from its origin outward.
// Node order follows insertion order. Synthesized reports whether the
// downstream nodes were fabricated because search yielded no real mentions.
type PropagationGraph struct {
	Nodes       []PropagationNode `json:"nodes"`
	Edges       []PropagationEdge `json:"edges"`
	Synthesized bool              `json:"synthesized"`
}

// HasNode reports whether the graph already contains the given node id
func (g *PropagationGraph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// UniqueNodeCount returns the number of distinct node ids in the graph
func (g *PropagationGraph) UniqueNodeCount() int {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		seen[n.ID] = true
	}
	return len(seen)
}

// CountRole returns the number of nodes carrying the given role
func (g *PropagationGraph) CountRole(role Role) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Role == role {
			count++
		}
	}
	return count
}
