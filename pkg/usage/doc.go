// Package usage maintains per-tenant API call counters scoped to calendar months.
//
// Every counter belongs to one (tenant, period) pair where the period is the UTC
// "YYYY-MM" key of the wall clock. When the month advances a fresh counter is
// started; the previous one is never reset in place, so a read right after the
// boundary can never return last month's count.
//
// Two Store implementations are provided:
//
//   - MemoryStore keeps counters in a process-local map guarded by a mutex.
//   - RedisStore keeps counters in Redis hashes so several instances share usage.
//
// Basic usage:
//
//	store := usage.NewMemoryStore()
//	defer store.Close()
//
//	c, err := store.Increment(ctx, "acme")
//	if err != nil {
//	    // store unavailable
//	}
//	fmt.Println(c.Period, c.Count, c.ResetAt())
//
// Period keys compare as plain strings, which orders them chronologically.
package usage
