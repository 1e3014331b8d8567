package models

type SeedingMethod string

const (
	SeedingPowerRating   SeedingMethod = "power_rating"
	SeedingWinPercentage SeedingMethod = "win_percentage"
	SeedingRandom        SeedingMethod = "random"
	SeedingManual        SeedingMethod = "manual"
)

// TeamRecord holds a team's season record as supplied by the roster subsystem.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// WinPercentage returns wins/(wins+losses). Teams with zero games played
// are treated as 0 so they seed last.
func (r *TeamRecord) WinPercentage() float64 {
	if r == nil {
		return 0
	}
	games := r.Wins + r.Losses
	if games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(games)
}

// Team is an immutable engine input. Seed is attached by the seeding
// assigner and never mutated after bracket generation.
type Team struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	PowerRating *float64    `json:"power_rating,omitempty" db:"power_rating"`
	Record      *TeamRecord `json:"record,omitempty" db:"-"`
	Seed        int         `json:"seed,omitempty" db:"-"`
}
