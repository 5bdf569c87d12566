package unit

import (
	"strings"
	"testing"
	"time"
)

// =====================
// 共通ヘルパ
// =====================

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got %q", want, err.Error())
	}
}

// テスト用の固定部品（usecase.IDGenerator / Clock / RandomSource）

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

// 決められた数列を順に返す乱数源。使い切ったら最後の値を返し続ける。
type scriptedRandom struct {
	values []int
	pos    int
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.pos]
	if r.pos < len(r.values)-1 {
		r.pos++
	}
	return v % n
}
