package betting

import "math/rand"

// commonScores are realistic NFL final-score values: combinations of
// touchdowns and field goals.
var commonScores = []int{0, 3, 6, 7, 10, 13, 14, 17, 20, 21, 23, 24, 27, 28, 30, 31, 34, 35, 38, 41, 42, 45}

// GenerateScores produces a final score for simulated settlement. The
// rng is injected so callers can pin the outcome.
func GenerateScores(rng *rand.Rand) (home, away int) {
	home = commonScores[rng.Intn(len(commonScores))]
	away = commonScores[rng.Intn(len(commonScores))]
	return home, away
}
