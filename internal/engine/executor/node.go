package executor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/progress" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/shell"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "engine.executor"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FilesystemNodeID,
			fs.HasherNodeID,
			shell.NodeID,
			logger.NodeID,
			progress.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			filesystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			sink, err := graft.Dep[ports.Progress](ctx)
			if err != nil {
				return nil, err
			}

			return New(filesystem, runner, hasher, log, sink), nil
		},
	})
}
