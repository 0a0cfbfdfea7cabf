// Package utils contains small concurrency helpers shared across posealign.
package utils

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ParallelFactor controls the default level of parallelization.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWorkFunc processes the work items in [from, to) for one group.
type GroupWorkFunc func(ctx context.Context, groupNum, from, to int) error

// GroupRange returns the half-open range of work items assigned to groupNum when totalSize items
// are split into numGroups contiguous groups. Earlier groups take the remainder, one extra each.
func GroupRange(totalSize, numGroups, groupNum int) (from, to int) {
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups
	from = groupNum*groupSize + min(groupNum, extra)
	to = from + groupSize
	if groupNum < extra {
		to++
	}
	return from, to
}

// GroupWorkParallel splits totalSize work items into at most numGroups contiguous ranges and runs
// each range on its own goroutine. Every group runs to completion; when groups fail, the error of the
// lowest numbered failing group is returned, so callers that stop at their first bad item get the
// lowest-index failure overall. A panic inside a group is returned as that group's error.
func GroupWorkParallel(ctx context.Context, totalSize, numGroups int, groupWork GroupWorkFunc) error {
	if totalSize == 0 {
		return nil
	}
	if numGroups <= 0 {
		numGroups = ParallelFactor
	}
	if numGroups > totalSize {
		numGroups = totalSize
	}

	groupErrs := make([]error, numGroups)
	var wait sync.WaitGroup
	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		from, to := GroupRange(totalSize, numGroups, groupNum)
		go func(groupNum, from, to int) {
			defer wait.Done()
			defer func() {
				if thePanic := recover(); thePanic != nil {
					groupErrs[groupNum] = errors.Errorf("got panic running group %d in parallel: %v", groupNum, thePanic)
				}
			}()
			groupErrs[groupNum] = groupWork(ctx, groupNum, from, to)
		}(groupNum, from, to)
	}
	wait.Wait()

	for _, err := range groupErrs {
		if err != nil {
			return err
		}
	}
	return nil
}
