package files

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/filedeck/backend/internal/shared/types"
	"go.uber.org/zap"
)

// searchResultLimit caps results so a runaway pattern cannot build an
// unbounded response.
const searchResultLimit = 1000

// SearchOps handles recursive name search and glob matching
type SearchOps struct {
	*EngineOps
}

// GetTools returns search tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.find",
			Name:        "Find Entries",
			Description: "Recursively find entries whose name contains a substring or matches a shell pattern",
			Parameters: []types.Parameter{
				{Name: "root", Type: "string", Description: "Directory to search under", Required: true},
				{Name: "query", Type: "string", Description: "Substring or shell pattern to match names against", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.glob",
			Name:        "Glob Entries",
			Description: "Match paths under a root with a doublestar glob pattern",
			Parameters: []types.Parameter{
				{Name: "root", Type: "string", Description: "Directory to match under", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern, ** crosses directories", Required: true},
			},
			Returns: "array",
		},
	}
}

// Find walks the subtree under root matching entry names against query.
// A query containing metacharacters is treated as a shell pattern,
// otherwise as a case-insensitive substring.
func (s *SearchOps) Find(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root, ok := params["root"].(string)
	if !ok || root == "" {
		return Failure("root parameter required")
	}
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return Failure("query parameter required")
	}

	isPattern := strings.ContainsAny(query, "*?[")
	lowered := strings.ToLower(query)

	var mu sync.Mutex
	matches := make([]string, 0, 16)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil
		}

		name := d.Name()
		var hit bool
		if isPattern {
			hit, _ = filepath.Match(query, name)
		} else {
			hit = strings.Contains(strings.ToLower(name), lowered)
		}
		if !hit {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(matches) < searchResultLimit {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		s.Log.Debug("find failed", zap.String("root", root), zap.Error(err))
		return Failure(fmt.Sprintf("find failed: %v", err))
	}

	return Success(map[string]interface{}{
		"root":    root,
		"query":   query,
		"matches": matches,
		"count":   len(matches),
	})
}

// Glob matches paths under root against a doublestar pattern. Patterns
// use / separators regardless of platform; ** matches across directories.
func (s *SearchOps) Glob(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root, ok := params["root"].(string)
	if !ok || root == "" {
		return Failure("root parameter required")
	}
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return Failure("pattern parameter required")
	}
	if !doublestar.ValidatePattern(pattern) {
		return Failure(fmt.Sprintf("invalid pattern: %s", pattern))
	}

	rels, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		s.Log.Debug("glob failed", zap.String("root", root), zap.Error(err))
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}

	matches := make([]string, 0, len(rels))
	for _, r := range rels {
		matches = append(matches, filepath.Join(root, filepath.FromSlash(r)))
		if len(matches) >= searchResultLimit {
			break
		}
	}

	return Success(map[string]interface{}{
		"root":    root,
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}
