package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateTable drops every cached read for one hierarchy table. Called on
// any write, including the generic import path and restore/clear.
func InvalidateTable(ctx context.Context, cm *CacheManager, table string) {
	SafeInvalidatePattern(ctx, cm.Hierarchy, fmt.Sprintf("%s:*", table))
	if table == "articulos" {
		SafeInvalidatePattern(ctx, cm.Articulo, "*")
	}
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateAll drops every cached read. Used by restore and clear, which
// rewrite the whole hierarchy at once.
func InvalidateAll(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Hierarchy, "*")
	SafeInvalidatePattern(ctx, cm.Articulo, "*")
	SafeInvalidatePattern(ctx, cm.Exists, "*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}
