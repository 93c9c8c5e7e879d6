package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	limit := 10
	funcs := []CheckerFunc{}
	var dones []interface{}
	for i := 0; i < limit; i++ {
		f := func(checker Checker, args ...interface{}) error {
			dones = append(dones, checker)
			return nil
		}
		funcs = append(funcs, f)
	}

	checker := &DefaultChecker{funcs}
	err := RunChecker(checker, DefaultDeferFunc)
	require.NoError(t, err)
	require.Equal(t, limit, len(dones))
}

type CheckerWithProperties struct {
	DefaultChecker

	P0 int
}

func TestCheckerWithProperties(t *testing.T) {
	funcs := []CheckerFunc{}
	f0 := func(c Checker, args ...interface{}) error {
		checker := c.(*CheckerWithProperties)
		checker.P0 = 99
		return nil
	}
	funcs = append(funcs, f0)

	f1 := func(c Checker, args ...interface{}) error {
		checker := c.(*CheckerWithProperties)
		if checker.P0 != 99 {
			return errors.New("failed to set property in Checker")
		}
		return nil
	}
	funcs = append(funcs, f1)

	checker := &CheckerWithProperties{DefaultChecker: DefaultChecker{funcs}}
	err := RunChecker(checker, DefaultDeferFunc)
	require.NoError(t, err)
	require.Equal(t, 99, checker.P0)
}

func TestCheckerStopsAtFirstError(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	var called []int
	funcs := []CheckerFunc{
		func(Checker, ...interface{}) error { called = append(called, 0); return nil },
		func(Checker, ...interface{}) error { called = append(called, 1); return errFirst },
		func(Checker, ...interface{}) error { called = append(called, 2); return errSecond },
	}

	var deferred []int
	deferFunc := func(i int, _ Checker, err error) {
		deferred = append(deferred, i)
	}

	err := RunChecker(&DefaultChecker{funcs}, deferFunc)
	require.Equal(t, errFirst, err)
	require.Equal(t, []int{0, 1}, called)
	require.Equal(t, []int{0, 1}, deferred)
}
