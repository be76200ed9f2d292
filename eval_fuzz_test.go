package arithtree_test

import (
	"strconv"
	"testing"

	"github.com/zephyrtronium/arithtree"
)

func FuzzEvalDigits(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(9007199254740993))
	f.Add(uint64(1<<64 - 1))
	f.Fuzz(func(t *testing.T, x uint64) {
		s := strconv.FormatUint(x, 10)
		want, _ := strconv.ParseFloat(s, 64)
		got, err := arithtree.Eval(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if got != want {
			t.Errorf("%s: want %v, got %v", s, want, got)
		}
	})
}

func FuzzEvalBig(f *testing.F) {
	f.Add("0/0")
	f.Add("1/3*3")
	f.Fuzz(func(t *testing.T, s string) {
		// Must not panic.
		arithtree.EvalBig(s, arithtree.Prec(100))
	})
}
