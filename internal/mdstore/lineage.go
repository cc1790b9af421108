package mdstore

import (
	"context"
	"log"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
)

// kMax is the hard cap on lineage hop distance (§4.H).
const kMax = 20

// GetLineageGraph implements §4.H: resolve a seed artifact set from
// QueryNodes, clamp the hop budget to kMax, then delegate the actual
// expansion to the Access Object's QueryLineageGraph.
func GetLineageGraph(ctx context.Context, ao accessobject.AccessObject, req *GetLineageGraphRequest) (*GetLineageGraphResponse, error) {
	if req.QueryNodes == nil {
		return nil, mderrors.InvalidArgument("query_nodes is required")
	}

	maxHops, err := clampMaxHops(req.Options.MaxNumHops)
	if err != nil {
		return nil, err
	}

	seeds, _, err := ao.ListArtifacts(ctx, accessobject.ListOptions{FilterQuery: req.QueryNodes.FilterQuery})
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, mderrors.NotFound("query_nodes does not match any nodes")
	}
	if req.Options.MaxNodeSize > 0 && int32(len(seeds)) > req.Options.MaxNodeSize {
		seeds = seeds[:req.Options.MaxNodeSize]
	}

	stop := accessobject.LineageStopConditions{
		MaxNumHops:         maxHops,
		BoundaryArtifacts:  req.Options.BoundaryArtifacts,
		BoundaryExecutions: req.Options.BoundaryExecutions,
	}
	subgraph, err := ao.QueryLineageGraph(ctx, seeds, maxHops, req.Options.MaxNodeSize, stop)
	if err != nil {
		return nil, err
	}
	return &GetLineageGraphResponse{Subgraph: subgraph}, nil
}

// clampMaxHops implements §4.H's hop-budget rule: nil means omitted
// (use kMax); an explicit negative value is INVALID_ARGUMENT, distinct
// from omission; anything above kMax is clamped down with a warning.
func clampMaxHops(requested *int32) (int32, error) {
	if requested == nil {
		return kMax, nil
	}
	if *requested < 0 {
		return 0, mderrors.InvalidArgument("max_num_hops must not be negative")
	}
	if *requested > kMax {
		log.Printf("lineage max_num_hops=%d exceeds the hard cap; clamping to %d", *requested, kMax)
		return kMax, nil
	}
	return *requested, nil
}
