package controllers

// Action tags returned by the score submission endpoint so the client can
// render accurate state for every outcome.
const (
	actionInserted         = "inserted"
	actionUpdated          = "updated"
	actionRejectedScore    = "rejected_score"
	actionRejectedDisabled = "rejected_disabled"
	actionRejectedLimit    = "rejected_limit"
)

// isImprovement decides whether a new submission replaces the stored best.
// Higher score always wins; on a tie the faster run wins. A missing elapsed
// time reads as 0 upstream, so an untimed run ties at best.
func isImprovement(newScore, oldScore int, newTime, oldTime float64) bool {
	if newScore > oldScore {
		return true
	}
	return newScore == oldScore && newTime < oldTime
}

// canPlay reports whether one more attempt fits under the configured limit.
func canPlay(attemptsSoFar, playLimit int) bool {
	return attemptsSoFar+1 <= playLimit
}

// remainingPlays never goes negative even when the limit was lowered below the
// recorded attempt count.
func remainingPlays(attemptsSoFar, playLimit int) int {
	if r := playLimit - attemptsSoFar; r > 0 {
		return r
	}
	return 0
}
