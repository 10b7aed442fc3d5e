package queueutil

import (
	"sync"
	"sync/atomic"
)

func Producer[T any](items []T, out chan<- T) {
	defer close(out)
	for _, item := range items {
		out <- item
	}
}

func Consumer[T any](in <-chan T, ec chan<- error, wg *sync.WaitGroup, count *int32, fn func(item T) error) {
	defer wg.Done()
	for item := range in {
		atomic.AddInt32(count, 1)
		if err := fn(item); err != nil {
			ec <- err
		}
	}
}
