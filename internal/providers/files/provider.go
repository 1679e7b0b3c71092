package files

import (
	"context"
	"fmt"

	"github.com/filedeck/backend/internal/logging"
	"github.com/filedeck/backend/internal/shared/types"
)

// Provider implements the file-management engine service
type Provider struct {
	listing  *ListOps
	mutate   *MutateOps
	transfer *TransferOps
	archive  *ArchiveOps
	metadata *MetadataOps
	search   *SearchOps
}

// NewProvider creates a modular files provider
func NewProvider(log *logging.Logger) *Provider {
	ops := NewEngineOps(log)

	return &Provider{
		listing:  &ListOps{EngineOps: ops},
		mutate:   &MutateOps{EngineOps: ops},
		transfer: &TransferOps{EngineOps: ops},
		archive:  &ArchiveOps{EngineOps: ops},
		metadata: &MetadataOps{EngineOps: ops},
		search:   &SearchOps{EngineOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.listing.GetTools()...)
	tools = append(tools, p.mutate.GetTools()...)
	tools = append(tools, p.transfer.GetTools()...)
	tools = append(tools, p.archive.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.search.GetTools()...)

	return types.Service{
		ID:          "files",
		Name:        "Files Service",
		Description: "File and directory management (listing, mutation, transfer, archiving, search)",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list",
			"create",
			"rename",
			"delete",
			"copy",
			"move",
			"archive",
			"stat",
			"search",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate operation group
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Listing
	case "files.dir.list":
		return p.listing.List(ctx, params, appCtx)
	case "files.favourites":
		return p.listing.Favourites(ctx, params, appCtx)

	// Mutation
	case "files.dir.create":
		return p.mutate.CreateDirectory(ctx, params, appCtx)
	case "files.create":
		return p.mutate.CreateFile(ctx, params, appCtx)
	case "files.rename":
		return p.mutate.Rename(ctx, params, appCtx)
	case "files.delete":
		return p.mutate.Delete(ctx, params, appCtx)

	// Transfer
	case "files.copy":
		return p.transfer.Copy(ctx, params, appCtx)
	case "files.move":
		return p.transfer.Move(ctx, params, appCtx)

	// Archives
	case "files.zip.create":
		return p.archive.CreateZip(ctx, params, appCtx)
	case "files.zip.list":
		return p.archive.ListZip(ctx, params, appCtx)
	case "files.tar.create":
		return p.archive.CreateTar(ctx, params, appCtx)

	// Metadata
	case "files.stat":
		return p.metadata.Stat(ctx, params, appCtx)
	case "files.dir.size":
		return p.metadata.DirSize(ctx, params, appCtx)

	// Search
	case "files.find":
		return p.search.Find(ctx, params, appCtx)
	case "files.glob":
		return p.search.Glob(ctx, params, appCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
