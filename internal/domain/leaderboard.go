package domain

// LeaderboardEntry is one row of the XP leaderboard, ranked by TotalXPEarned
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	TotalXPEarned int64  `json:"total_xp_earned"`
}
