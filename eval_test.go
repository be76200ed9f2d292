package arithtree_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arithtree"
)

func TestEval(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"2+3+3*4", 17},
		{"5 + 3*4 - 2", 15},
		{"5+6+2/2*5-1", 15},
		{"(2+3+3*4)", 17},
		{"1+(2+3)*4", 21},
		{"(2+3)*4", 20},
		{"2*(3+4)", 14},
		{"8/4/2", 1},
		{"1-2-3", -4},
		{"10-(2-3)", 11},
		{"2*3+4*5", 26},
		{"7-2*3-1", 0},
		{"((1+2)*(3+4))/7", 3},
		{"3*(2+(4-1)*2)/4", 6},
		{"100", 100},
		{"1/4", 0.25},
		{"  12 \t*\n 3 ", 36},
		{"((((5))))", 5},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := arithtree.Eval(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEvalDigits(t *testing.T) {
	for _, s := range []string{"0", "7", "42", "007", "123456789012345", "9007199254740993", "18446744073709551616", "1" + strings.Repeat("0", 400)} {
		want, _ := strconv.ParseFloat(s, 64)
		got, err := arithtree.Eval(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

func TestEvalRepeatable(t *testing.T) {
	n, err := arithtree.Parse("5+6+2/2*5-1")
	require.NoError(t, err)
	s := n.String()
	for i := 0; i < 3; i++ {
		assert.Equal(t, 15.0, n.Eval())
		assert.Equal(t, s, n.String())
	}
}

func TestEvalConcurrent(t *testing.T) {
	n, err := arithtree.Parse("1+(2+3)*4-8/2")
	require.NoError(t, err)
	ctx := arithtree.NewContext(arithtree.Strict(), arithtree.Prec(200))
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < cap(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v := n.Eval(); v != 17 {
				errs <- errors.New("shared tree gave " + strconv.FormatFloat(v, 'g', -1, 64))
				return
			}
			v, err := ctx.EvalBig(n)
			if err != nil {
				errs <- err
				return
			}
			if f, _ := v.Float64(); f != 17 {
				errs <- errors.New("big evaluation gave " + v.String())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestEvalInputErrors(t *testing.T) {
	cases := []struct {
		src string
		pos int
		is  error
	}{
		{"3+a", 2, nil},
		{"1.5", 1, nil},
		{"", 0, arithtree.ErrMalformed},
		{"1+", 1, arithtree.ErrMalformed},
		{"(1", 0, arithtree.ErrMalformed},
		{"2 3", 2, arithtree.ErrMalformed},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := arithtree.Eval(c.src)
			var ie arithtree.InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, c.pos, ie.Position())
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			} else {
				assert.NotErrorIs(t, err, arithtree.ErrMalformed)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	cases := []struct {
		src  string
		want float64
		pos  int
	}{
		{"1/0", math.Inf(1), 1},
		{"(0-1)/0", math.Inf(-1), 5},
		{"1/(2-2)", math.Inf(1), 1},
		{"2+6/0*3", math.Inf(1), 3},
	}
	strict := arithtree.NewContext(arithtree.Strict())
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			n, err := arithtree.Parse(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, n.Eval())

			_, err = strict.Eval(n)
			require.ErrorIs(t, err, arithtree.ErrDivisionByZero)
			var de *arithtree.DivisionError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.pos, de.Pos)

			_, err = strict.EvalBig(n)
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.pos, de.Pos)
		})
	}

	v, err := arithtree.Eval("0/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
	_, err = arithtree.Eval("0/0", arithtree.Strict())
	assert.ErrorIs(t, err, arithtree.ErrDivisionByZero)
}

func TestEvalBig(t *testing.T) {
	third := new(big.Float).SetPrec(128).Quo(big.NewFloat(1).SetPrec(128), big.NewFloat(3).SetPrec(128))
	got, err := arithtree.EvalBig("1/3", arithtree.Prec(128))
	require.NoError(t, err)
	assert.Equal(t, uint(128), got.Prec())
	assert.Zero(t, third.Cmp(got), "want %v, got %v", third, got)

	got, err = arithtree.EvalBig("2+3+3*4")
	require.NoError(t, err)
	assert.Equal(t, uint(64), got.Prec())
	assert.Zero(t, got.Cmp(big.NewFloat(17)))

	got, err = arithtree.EvalBig("1/0")
	require.NoError(t, err)
	assert.True(t, got.IsInf())

	for _, src := range []string{"0/0", "1/0-1/0", "(1/0)*0"} {
		got, err = arithtree.EvalBig(src)
		assert.Nil(t, got, src)
		var nan big.ErrNaN
		assert.ErrorAs(t, err, &nan, src)
	}

	_, err = arithtree.EvalBig("1/0", arithtree.Strict())
	assert.ErrorIs(t, err, arithtree.ErrDivisionByZero)

	_, err = arithtree.EvalBig("3+a")
	var ic *arithtree.InvalidCharError
	assert.ErrorAs(t, err, &ic)
}

func TestContext(t *testing.T) {
	ctx := arithtree.NewContext()
	assert.Equal(t, uint(64), ctx.Prec())
	assert.False(t, ctx.Strict())

	ctx = arithtree.NewContext(arithtree.Prec(0), nil)
	assert.Equal(t, uint(64), ctx.Prec())

	ctx = arithtree.NewContext(arithtree.Prec(10), arithtree.Strict(), arithtree.Prec(300))
	assert.Equal(t, uint(300), ctx.Prec())
	assert.True(t, ctx.Strict())

	v, err := ctx.Eval(mustParse(t, "6/4"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func mustParse(t *testing.T, src string) *arithtree.Node {
	t.Helper()
	n, err := arithtree.Parse(src)
	require.NoError(t, err)
	return n
}
