// Package propagation synthesizes a directed dissemination graph rooted at
// the content's origin. Downstream nodes come from web-search mentions when
// available, and from a deterministic synthetic network otherwise, so the
// graph is never a singleton.
package propagation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/infolens/infolens/internal/evidence"
	"github.com/infolens/infolens/internal/model"
)

const (
	mentionSearchResults = 5
	mentionTextPrefix    = 50
	maxReporterNodes     = 2

	mentionStep   = 10 * time.Minute
	syntheticStep = 15 * time.Minute
)

// syntheticNodeNames are the placeholder channels used when search finds no
// real mentions
var syntheticNodeNames = []string{"NewsAggregator", "SocialFeed", "Archiver", "Validator"}

// Builder constructs propagation graphs
type Builder struct {
	search evidence.Searcher
	now    func() time.Time
}

// NewBuilder creates a graph builder
func NewBuilder(search evidence.Searcher) *Builder {
	return &Builder{
		search: search,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewBuilderWithClock creates a builder with an injected clock
func NewBuilderWithClock(search evidence.Searcher, now func() time.Time) *Builder {
	return &Builder{search: search, now: now}
}

// Build constructs the graph for an origin and its article text
func (b *Builder) Build(ctx context.Context, origin model.Origin, text string) model.PropagationGraph {
	graph := model.PropagationGraph{
		Nodes: []model.PropagationNode{{
			ID:        origin.Source,
			Role:      origin.Role,
			Timestamp: origin.Timestamp,
		}},
	}

	b.addMentions(ctx, &graph, origin, text)

	if len(graph.Nodes) == 1 {
		b.addSyntheticNetwork(&graph, origin)
		graph.Synthesized = true
	}

	return graph
}

// addMentions searches for secondary reports of the content and links each
// newly seen domain to the origin
func (b *Builder) addMentions(ctx context.Context, graph *model.PropagationGraph, origin model.Origin, text string) {
	prefix := text
	if runes := []rune(prefix); len(runes) > mentionTextPrefix {
		prefix = string(runes[:mentionTextPrefix])
	}
	query := fmt.Sprintf("%q %s", origin.Source, prefix)

	results, err := b.search.Search(ctx, query, mentionSearchResults)
	if err != nil {
		return
	}

	added := 0
	for i, resultURL := range results {
		domain := hostOf(resultURL)
		if domain == "" || domain == origin.Source || graph.HasNode(domain) {
			continue
		}

		role := model.RoleSecondaryReporter
		if added >= maxReporterNodes {
			role = model.RoleAmplifier
		}

		graph.Nodes = append(graph.Nodes, model.PropagationNode{
			ID:        domain,
			Role:      role,
			Timestamp: b.now().Add(time.Duration(i) * mentionStep),
		})
		graph.Edges = append(graph.Edges, model.PropagationEdge{
			Source: origin.Source,
			Target: domain,
		})
		added++
	}
}

// addSyntheticNetwork fabricates four placeholder dissemination nodes. The
// origin-derived suffix keeps ids distinct across runs with different
// sources.
func (b *Builder) addSyntheticNetwork(graph *model.PropagationGraph, origin model.Origin) {
	suffix := sourceSuffix(origin.Source)

	for i, name := range syntheticNodeNames {
		role := model.RoleSecondaryChannel
		if i > 1 {
			role = model.RoleAutomatedDistributor
		}

		nodeID := name + "_" + suffix
		graph.Nodes = append(graph.Nodes, model.PropagationNode{
			ID:        nodeID,
			Role:      role,
			Timestamp: b.now().Add(time.Duration(i+1) * syntheticStep),
		})
		graph.Edges = append(graph.Edges, model.PropagationEdge{
			Source: origin.Source,
			Target: nodeID,
		})
	}
}

// sourceSuffix returns the first three characters of the source, uppercased
func sourceSuffix(source string) string {
	runes := []rune(source)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
