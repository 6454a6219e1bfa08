// Package store 提供 core.Store / core.KeyValueStore 的实现，接口定义在 core 包。
//
//	var s core.KeyValueStore = store.NewMemoryStore()
//	var r core.KeyValueStore, _ = store.NewRedisStore(ctx, store.RedisConfig{Addr: "127.0.0.1:6379"})
package store
