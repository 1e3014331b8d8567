package models

// Standing is one row of a derived round-robin table. It is recomputed from
// completed nodes on demand and never stored on the bracket itself.
type Standing struct {
	TeamID          string `json:"team_id"`
	TeamName        string `json:"team_name"`
	GamesPlayed     int    `json:"games_played"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	ScoreFor        int    `json:"score_for"`
	ScoreAgainst    int    `json:"score_against"`
	ScoreDifference int    `json:"score_difference"`
	Rank            int    `json:"rank"`
}
