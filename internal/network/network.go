// Package network computes the reuse topology of a brief's evidence: which
// references carry many claims, which are cited once, and which claims rest
// on a single reference.
package network

import (
	"sort"

	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/extract"
	"github.com/ppiankov/briefcheck/internal/model"
)

// Analyzer computes evidence networks
type Analyzer struct {
	cfg model.NetworkConfig
}

// NewAnalyzer creates an analyzer; zero thresholds fall back to the defaults
func NewAnalyzer(cfg model.NetworkConfig) *Analyzer {
	defaults := model.DefaultConfig().Analysis.Network
	if cfg.CentralMinMentions <= 0 {
		cfg.CentralMinMentions = defaults.CentralMinMentions
	}
	if cfg.CentralTopN <= 0 {
		cfg.CentralTopN = defaults.CentralTopN
	}
	if cfg.CentralFallbackMinMentions <= 1 {
		cfg.CentralFallbackMinMentions = defaults.CentralFallbackMinMentions
	}
	if cfg.SPFMaxDependencies <= 0 {
		cfg.SPFMaxDependencies = defaults.SPFMaxDependencies
	}
	return &Analyzer{cfg: cfg}
}

// Compute analyzes b with the default thresholds
func Compute(b *model.Brief) model.EvidenceNetwork {
	return NewAnalyzer(model.NetworkConfig{}).Compute(b)
}

// Compute derives the evidence network of b. The brief is not modified.
func (a *Analyzer) Compute(b *model.Brief) model.EvidenceNetwork {
	network := model.EvidenceNetwork{
		CentralNodes:        []model.EvidenceNode{},
		IsolatedNodes:       []model.EvidenceNode{},
		SinglePointFailures: []model.SinglePointFailure{},
	}
	if b == nil {
		return network
	}

	index := evidence.NewIndex(b.EvidenceIndex)
	counts := MentionCounts(b, index)
	nodes := rankNodes(counts, index)

	network.CentralNodes = a.centralNodes(nodes)
	for _, node := range nodes {
		if node.MentionCount == 1 {
			network.IsolatedNodes = append(network.IsolatedNodes, node)
		}
	}
	sort.Slice(network.IsolatedNodes, func(i, j int) bool {
		return network.IsolatedNodes[i].ID < network.IsolatedNodes[j].ID
	})

	network.SinglePointFailures = a.singlePointFailures(b, index)
	return network
}

// MentionCounts tallies, per resolvable evidence ID, the number of distinct
// brief locations citing it
func MentionCounts(b *model.Brief, index *evidence.Index) map[string]int {
	counts := make(map[string]int)
	for _, c := range extract.Citations(b) {
		for _, id := range index.ResolveAll(c.Refs) {
			counts[id]++
		}
	}
	return counts
}

// rankNodes orders nodes by mention count, most cited first, then by ID
func rankNodes(counts map[string]int, index *evidence.Index) []model.EvidenceNode {
	nodes := make([]model.EvidenceNode, 0, len(counts))
	for id, n := range counts {
		nodes = append(nodes, model.EvidenceNode{
			ID:           id,
			MentionCount: n,
			Label:        index.Label(id),
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].MentionCount != nodes[j].MentionCount {
			return nodes[i].MentionCount > nodes[j].MentionCount
		}
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// centralNodes applies the dual rule: everything at or above the absolute
// threshold, widened by the top-N (ties included) when fewer than N qualify.
// The fallback never reaches below the fallback floor, so a node cited once
// is never central. nodes must be ranked.
func (a *Analyzer) centralNodes(nodes []model.EvidenceNode) []model.EvidenceNode {
	central := []model.EvidenceNode{}
	qualified := 0
	for _, node := range nodes {
		if node.MentionCount >= a.cfg.CentralMinMentions {
			qualified++
		}
	}

	cutoff := a.cfg.CentralMinMentions
	if qualified < a.cfg.CentralTopN {
		var candidates []model.EvidenceNode
		for _, node := range nodes {
			if node.MentionCount >= a.cfg.CentralFallbackMinMentions {
				candidates = append(candidates, node)
			}
		}
		if len(candidates) > 0 {
			last := len(candidates) - 1
			if last >= a.cfg.CentralTopN {
				last = a.cfg.CentralTopN - 1
			}
			if candidates[last].MentionCount < cutoff {
				cutoff = candidates[last].MentionCount
			}
		}
	}

	for _, node := range nodes {
		if node.MentionCount >= cutoff {
			central = append(central, node)
		}
	}
	return central
}

// singlePointFailures finds claims whose resolvable support has between one
// and SPFMaxDependencies distinct IDs
func (a *Analyzer) singlePointFailures(b *model.Brief, index *evidence.Index) []model.SinglePointFailure {
	spfs := []model.SinglePointFailure{}
	for _, claim := range extract.Claims(b) {
		ids := index.ResolveAll(claim.Refs...)
		if len(ids) == 0 || len(ids) > a.cfg.SPFMaxDependencies {
			continue
		}
		spf := model.SinglePointFailure{
			Area:         claim.Area,
			Claim:        claim.Description,
			Dependencies: ids,
		}
		if len(ids) == 1 {
			spf.Label = index.Label(ids[0])
		}
		spfs = append(spfs, spf)
	}
	return spfs
}
