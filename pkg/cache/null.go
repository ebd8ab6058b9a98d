package cache

import (
	"context"
	"time"
)

// Null is the cache a pipeline runner uses when none is configured. Every
// lookup misses and writes are dropped.
var Null Cache = nullCache{}

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (nullCache) Delete(context.Context, string) error { return nil }

func (nullCache) Close() error { return nil }
