package sqlitestore

import (
	"context"
	"fmt"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

// QueryLineageGraph performs a breadth-first expansion from seeds,
// alternating artifact <-> execution hops across Event edges, up to
// maxHops, honoring maxNodeSize as a hard cap on artifacts+executions
// visited. internal/mdstore's lineage driver (§4.H) is responsible for
// seed selection and clamping maxHops to K_MAX before calling this.
func (b *BoundStore) QueryLineageGraph(ctx context.Context, seeds []*mdtypes.Artifact, maxHops int32, maxNodeSize int32, stop accessobject.LineageStopConditions) (*accessobject.Subgraph, error) {
	visitedArtifacts := map[int64]bool{}
	visitedExecutions := map[int64]bool{}
	frontier := make([]int64, 0, len(seeds))
	for _, a := range seeds {
		visitedArtifacts[a.ID] = true
		frontier = append(frontier, a.ID)
	}

	nodeBudget := func() bool {
		if maxNodeSize <= 0 {
			return true
		}
		return int32(len(visitedArtifacts)+len(visitedExecutions)) < maxNodeSize
	}

	for hop := int32(0); hop < maxHops && len(frontier) > 0 && nodeBudget(); hop++ {
		executionFrontier, err := b.adjacentExecutions(ctx, frontier)
		if err != nil {
			return nil, err
		}
		var newExecutions []int64
		for _, id := range executionFrontier {
			if !visitedExecutions[id] && nodeBudget() {
				visitedExecutions[id] = true
				newExecutions = append(newExecutions, id)
			}
		}

		artifactFrontier, err := b.adjacentArtifacts(ctx, newExecutions)
		if err != nil {
			return nil, err
		}
		var newArtifacts []int64
		for _, id := range artifactFrontier {
			if !visitedArtifacts[id] && nodeBudget() {
				visitedArtifacts[id] = true
				newArtifacts = append(newArtifacts, id)
			}
		}

		frontier = newArtifacts
	}

	artifactIDs := keys(visitedArtifacts)
	executionIDs := keys(visitedExecutions)

	artifacts, err := b.FindArtifactsById(ctx, artifactIDs)
	if err != nil {
		return nil, err
	}
	executions, err := b.FindExecutionsById(ctx, executionIDs)
	if err != nil {
		return nil, err
	}
	events, err := b.FindEventsByArtifacts(ctx, artifactIDs)
	if err != nil {
		return nil, err
	}
	events = filterEventsByExecutions(events, visitedExecutions)

	contextIDs := map[int64]bool{}
	var attributions []*mdtypes.Attribution
	var associations []*mdtypes.Association
	for _, id := range artifactIDs {
		ctxs, err := b.FindContextsByArtifact(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, c := range ctxs {
			if !contextIDs[c.ID] {
				contextIDs[c.ID] = true
			}
			attributions = append(attributions, &mdtypes.Attribution{ContextID: c.ID, ArtifactID: id})
		}
	}
	for _, id := range executionIDs {
		ctxs, err := b.FindContextsByExecution(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, c := range ctxs {
			if !contextIDs[c.ID] {
				contextIDs[c.ID] = true
			}
			associations = append(associations, &mdtypes.Association{ContextID: c.ID, ExecutionID: id})
		}
	}
	contexts, err := b.FindContextsById(ctx, keys(contextIDs))
	if err != nil {
		return nil, err
	}

	return &accessobject.Subgraph{
		Artifacts:    artifacts,
		Executions:   executions,
		Events:       events,
		Contexts:     contexts,
		Attributions: attributions,
		Associations: associations,
	}, nil
}

func (b *BoundStore) adjacentExecutions(ctx context.Context, artifactIDs []int64) ([]int64, error) {
	events, err := b.FindEventsByArtifacts(ctx, artifactIDs)
	if err != nil {
		return nil, fmt.Errorf("adjacent executions: %w", err)
	}
	seen := map[int64]bool{}
	var out []int64
	for _, e := range events {
		if !seen[e.ExecutionID] {
			seen[e.ExecutionID] = true
			out = append(out, e.ExecutionID)
		}
	}
	return out, nil
}

func (b *BoundStore) adjacentArtifacts(ctx context.Context, executionIDs []int64) ([]int64, error) {
	events, err := b.FindEventsByExecutions(ctx, executionIDs)
	if err != nil {
		return nil, fmt.Errorf("adjacent artifacts: %w", err)
	}
	seen := map[int64]bool{}
	var out []int64
	for _, e := range events {
		if !seen[e.ArtifactID] {
			seen[e.ArtifactID] = true
			out = append(out, e.ArtifactID)
		}
	}
	return out, nil
}

func filterEventsByExecutions(events []*mdtypes.Event, allowed map[int64]bool) []*mdtypes.Event {
	var out []*mdtypes.Event
	for _, e := range events {
		if allowed[e.ExecutionID] {
			out = append(out, e)
		}
	}
	return out
}

func keys(m map[int64]bool) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
