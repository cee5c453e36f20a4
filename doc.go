// Package replaycache stores values under random keys in a key-value store
// and records how its Store method was called.
//
// Components:
//   - store.Client: string store (GET/SET/FLUSHDB). Adapters: store/redis,
//     store/local (in-process), store/bigcache.
//   - store.Ledger: a Client that also does INCR/RPUSH/LRANGE/EXISTS. Only a
//     Ledger gets call counting and history; the check happens once in New.
//   - CountCalls / CallHistory: generic wrappers around any Func, usable
//     outside the cache with a Recorder.
//   - Replay: prints the recorded history of a Method.
//
// Keys (per tracked method id, default "Cache.store"):
//
//	<id>          - call counter
//	<id>:inputs   - one entry per call, oldest first
//	<id>:outputs  - returned key, or "!error: <msg>" when the call failed
//
// New flushes the whole backing database unless Options.SkipFlush is set.
//
// Usage:
//
//	st, _ := redis.Dial(ctx, redis.DialConfig{Addr: "localhost:6379"})
//	cache, _ := replaycache.New(replaycache.Options{Store: st})
//	key, _ := cache.Store(ctx, "foo")
//	s, ok, _ := cache.GetStr(ctx, key)
//	_ = replaycache.Replay(ctx, cache.StoreMethod())
package replaycache
