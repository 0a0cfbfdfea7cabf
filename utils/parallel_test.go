package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.viam.com/test"
)

func TestGroupRange(t *testing.T) {
	covered := make([]int, 10)
	for groupNum := 0; groupNum < 3; groupNum++ {
		from, to := GroupRange(10, 3, groupNum)
		for i := from; i < to; i++ {
			covered[i]++
		}
	}
	for _, c := range covered {
		test.That(t, c, test.ShouldEqual, 1)
	}

	from, to := GroupRange(10, 3, 0)
	test.That(t, []int{from, to}, test.ShouldResemble, []int{0, 4})
	from, to = GroupRange(10, 3, 2)
	test.That(t, []int{from, to}, test.ShouldResemble, []int{7, 10})
}

func TestGroupWorkParallel(t *testing.T) {
	out := make([]int, 101)
	var groups int32
	err := GroupWorkParallel(context.Background(), len(out), 4, func(ctx context.Context, groupNum, from, to int) error {
		atomic.AddInt32(&groups, 1)
		for i := from; i < to; i++ {
			out[i] = i * i
		}
		return nil
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, atomic.LoadInt32(&groups), test.ShouldEqual, int32(4))
	for i, v := range out {
		test.That(t, v, test.ShouldEqual, i*i)
	}

	t.Run("more groups than work", func(t *testing.T) {
		var calls int32
		err := GroupWorkParallel(context.Background(), 2, 8, func(ctx context.Context, groupNum, from, to int) error {
			atomic.AddInt32(&calls, 1)
			test.That(t, to-from, test.ShouldEqual, 1)
			return nil
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, atomic.LoadInt32(&calls), test.ShouldEqual, int32(2))
	})

	t.Run("no work", func(t *testing.T) {
		err := GroupWorkParallel(context.Background(), 0, 4, func(ctx context.Context, groupNum, from, to int) error {
			return errors.New("should not run")
		})
		test.That(t, err, test.ShouldBeNil)
	})
}

func TestGroupWorkParallelErrors(t *testing.T) {
	err := GroupWorkParallel(context.Background(), 40, 4, func(ctx context.Context, groupNum, from, to int) error {
		if groupNum == 1 || groupNum == 3 {
			return errors.New("bad group " + string(rune('0'+groupNum)))
		}
		return nil
	})
	test.That(t, err, test.ShouldBeError, "bad group 1")

	err = GroupWorkParallel(context.Background(), 4, 2, func(ctx context.Context, groupNum, from, to int) error {
		panic("whoops")
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "got panic running group 0")
}
