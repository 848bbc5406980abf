// Package cache stores page plans in Redis so that successive builds can
// report which generated pages changed.
//
// A plan records, per page of a pagination run, the output path, the IDs
// of the items on the page and a SHA-256 digest of the page's render-time
// data. Comparing the plan of the current build with the stored one gives
// the pages that need to be rendered again.
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	// Diff and store the windows of a run
//	changed, removed, err := manager.Sync(ctx, "/srv/blog", "go", windows)
//
// The manager satisfies site.PlanStore and is passed to the generator with
// site.WithPlanCache.
//
// # Metrics
//
//   - paginate_plan_cache_hits_total - Stored plans found
//   - paginate_plan_cache_misses_total - Stored plans not found
//   - paginate_plan_cache_errors_total{operation} - Redis operation errors
//   - paginate_plan_cache_written_bytes_total - Bytes written
package cache
