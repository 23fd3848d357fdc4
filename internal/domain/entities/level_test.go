package entities

import (
	"math"
	"reflect"
	"testing"
)

// walkLadder is the reference level-by-level walk.
func walkLadder(xp int64) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	level := int64(1)
	total := int64(0)
	for total+level*100 <= xp {
		total += level * 100
		level++
	}

	forCurrent := xp - total
	toNext := (level + 1) * 100

	return LevelInfo{
		Level:             int(level),
		XP:                xp,
		XPToNextLevel:     toNext,
		XPForCurrentLevel: forCurrent,
		ProgressPercent:   int(math.Round(float64(forCurrent*100) / float64(toNext))),
	}
}

func TestCalculateLevel_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		xp   int64
		want LevelInfo
	}{
		{"zero", 0, LevelInfo{Level: 1, XP: 0, XPForCurrentLevel: 0, XPToNextLevel: 200, ProgressPercent: 0}},
		{"half tie rounds up", 1, LevelInfo{Level: 1, XP: 1, XPForCurrentLevel: 1, XPToNextLevel: 200, ProgressPercent: 1}},
		{"level one", 50, LevelInfo{Level: 1, XP: 50, XPForCurrentLevel: 50, XPToNextLevel: 200, ProgressPercent: 25}},
		{"end of level one", 99, LevelInfo{Level: 1, XP: 99, XPForCurrentLevel: 99, XPToNextLevel: 200, ProgressPercent: 50}},
		{"enter level two", 100, LevelInfo{Level: 2, XP: 100, XPForCurrentLevel: 0, XPToNextLevel: 300, ProgressPercent: 0}},
		{"inside level two", 200, LevelInfo{Level: 2, XP: 200, XPForCurrentLevel: 100, XPToNextLevel: 300, ProgressPercent: 33}},
		{"end of level two", 299, LevelInfo{Level: 2, XP: 299, XPForCurrentLevel: 199, XPToNextLevel: 300, ProgressPercent: 66}},
		{"enter level three", 300, LevelInfo{Level: 3, XP: 300, XPForCurrentLevel: 0, XPToNextLevel: 400, ProgressPercent: 0}},
		{"level three tie", 302, LevelInfo{Level: 3, XP: 302, XPForCurrentLevel: 2, XPToNextLevel: 400, ProgressPercent: 1}},
		{"level five", 1250, LevelInfo{Level: 5, XP: 1250, XPForCurrentLevel: 250, XPToNextLevel: 600, ProgressPercent: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevel(tt.xp)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CalculateLevel(%d) = %+v, want %+v", tt.xp, got, tt.want)
			}
		})
	}
}

func TestCalculateLevel_NegativeIsZero(t *testing.T) {
	zero := CalculateLevel(0)
	for _, xp := range []int64{-1, -99, -100, -1 << 40, math.MinInt64} {
		if got := CalculateLevel(xp); got != zero {
			t.Errorf("CalculateLevel(%d) = %+v, want %+v", xp, got, zero)
		}
	}
}

func TestCalculateLevel_MatchesLadderWalk(t *testing.T) {
	for xp := int64(-10); xp <= 200_000; xp++ {
		got := CalculateLevel(xp)
		want := walkLadder(xp)
		if got != want {
			t.Fatalf("CalculateLevel(%d) = %+v, walk gives %+v", xp, got, want)
		}
	}
}

func TestCalculateLevel_Monotonic(t *testing.T) {
	prev := CalculateLevel(0)
	for xp := int64(1); xp <= 100_000; xp += 7 {
		cur := CalculateLevel(xp)
		if cur.Level < prev.Level {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev.Level, cur.Level, xp)
		}
		if cur.Level < 1 {
			t.Fatalf("level %d < 1 at xp=%d", cur.Level, xp)
		}
		prev = cur
	}
}

func TestCalculateLevel_Invariants(t *testing.T) {
	inputs := []int64{0, 1, 99, 100, 5050, 5049, 1 << 20, 1 << 40, 1<<62 + 12345, math.MaxInt64}
	for _, xp := range inputs {
		li := CalculateLevel(xp)
		if li.XP != xp {
			t.Errorf("xp=%d: echoed %d", xp, li.XP)
		}
		if li.XPForCurrentLevel < 0 || li.XPForCurrentLevel >= int64(li.Level)*100 {
			t.Errorf("xp=%d: xpForCurrentLevel %d outside [0, %d)", xp, li.XPForCurrentLevel, int64(li.Level)*100)
		}
		if li.XPToNextLevel != int64(li.Level+1)*100 {
			t.Errorf("xp=%d: xpToNextLevel %d, want %d", xp, li.XPToNextLevel, int64(li.Level+1)*100)
		}
		if LevelThreshold(li.Level)+li.XPForCurrentLevel != xp {
			t.Errorf("xp=%d: threshold %d + %d does not add up", xp, LevelThreshold(li.Level), li.XPForCurrentLevel)
		}
	}
}

func TestCalculateLevel_Idempotent(t *testing.T) {
	for _, xp := range []int64{0, 42, 299, 300, 987654321} {
		if a, b := CalculateLevel(xp), CalculateLevel(xp); a != b {
			t.Errorf("CalculateLevel(%d) not idempotent: %+v vs %+v", xp, a, b)
		}
	}
}

func TestLevelThreshold(t *testing.T) {
	tests := map[int]int64{-3: 0, 0: 0, 1: 0, 2: 100, 3: 300, 4: 600, 5: 1000, 11: 5500}
	for level, want := range tests {
		if got := LevelThreshold(level); got != want {
			t.Errorf("LevelThreshold(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestLevelInfo_Remaining(t *testing.T) {
	if got := CalculateLevel(250).Remaining(); got != 50 {
		t.Errorf("Remaining() at 250 xp = %d, want 50", got)
	}
	if got := CalculateLevel(0).Remaining(); got != 100 {
		t.Errorf("Remaining() at 0 xp = %d, want 100", got)
	}
}
