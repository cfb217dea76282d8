package economy

// MaxLevel is the progression ceiling.
const MaxLevel = 60

// levelThresholds[n] is the total XP required to reach level n. Index 0 is
// unused; levels 1..MaxLevel. The table is strictly monotonic: each level
// costs more than the one before it.
var levelThresholds = buildThresholds()

func buildThresholds() []int {
	t := make([]int, MaxLevel+1)
	total, step := 0, 100
	for lvl := 2; lvl <= MaxLevel; lvl++ {
		total += step
		t[lvl] = total
		step += 50
	}
	return t
}

// ThresholdFor returns the total XP required to reach the given level.
// Levels at or below 1 cost nothing; levels past the ceiling are clamped.
func ThresholdFor(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level]
}

// featureUnlocks maps a level to the feature it gates.
var featureUnlocks = map[int]string{
	2:  "part-equipping",
	5:  "daily-challenges",
	8:  "paint-shop",
	12: "hacker-archetype",
	20: "prestige-board",
}
