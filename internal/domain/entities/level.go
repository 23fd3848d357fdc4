package entities

import "math"

// xpPerLevelStep is the requirement growth per level: level n needs n*100 xp to complete.
const xpPerLevelStep = 100

// LevelInfo describes where a cumulative xp total sits on the level ladder.
//
// XPToNextLevel is the requirement size of the level after the current one,
// (Level+1)*100, and not the xp still missing to reach the next level. The
// mini-app and the backend both read it this way, so it is kept as is; use
// Remaining for the amount a user still has to earn.
type LevelInfo struct {
	Level             int   `json:"level"`
	XP                int64 `json:"xp"`
	XPToNextLevel     int64 `json:"xpToNextLevel"`
	XPForCurrentLevel int64 `json:"xpForCurrentLevel"`
	ProgressPercent   int   `json:"progressPercent"`
}

// CalculateLevel maps a cumulative xp total to its level and progress.
//
// Negative xp is treated as zero. The percent is rounded half up.
func CalculateLevel(xp int64) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	completed := completedLevels(uint64(xp))
	level := completed + 1
	xpForCurrentLevel := xp - int64(cumulativeXP(completed))
	xpToNextLevel := int64(level+1) * xpPerLevelStep

	return LevelInfo{
		Level:             int(level),
		XP:                xp,
		XPToNextLevel:     xpToNextLevel,
		XPForCurrentLevel: xpForCurrentLevel,
		ProgressPercent:   roundPercent(xpForCurrentLevel, xpToNextLevel),
	}
}

// Remaining returns the xp still needed to complete the current level.
func (li LevelInfo) Remaining() int64 {
	return int64(li.Level)*xpPerLevelStep - li.XPForCurrentLevel
}

// LevelThreshold returns the cumulative xp at which the given level starts.
func LevelThreshold(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(cumulativeXP(uint64(level - 1)))
}

// cumulativeXP is the xp needed to complete levels 1..n: 100+200+...+n*100.
func cumulativeXP(n uint64) uint64 {
	return xpPerLevelStep / 2 * n * (n + 1)
}

// completedLevels returns the largest n with cumulativeXP(n) <= xp.
// It is the number of ladder steps a level-by-level walk would take.
func completedLevels(xp uint64) uint64 {
	// n = (sqrt(1 + 8*xp/100) - 1) / 2, corrected for float error below.
	n := uint64((math.Sqrt(1+float64(xp)*0.08) - 1) / 2)

	for n > 0 && cumulativeXP(n) > xp {
		n--
	}
	for cumulativeXP(n+1) <= xp {
		n++
	}

	return n
}

// roundPercent returns round(100*part/whole) with halves rounded up.
func roundPercent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int((200*part + whole) / (2 * whole))
}
