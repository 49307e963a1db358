package directory

// UserCard is the public search projection of a user.
type UserCard struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

// AthleteProfile joins a player row with its user display data.
type AthleteProfile struct {
	UserID      uint    `json:"user_id"`
	FullName    string  `json:"full_name"`
	Avatar      string  `json:"avatar"`
	Location    string  `json:"location"`
	Age         int     `json:"age"`
	Position    string  `json:"position"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	TeamID      *uint   `json:"team_id"`
	GamesPlayed int     `json:"games_played"`
	Points      int     `json:"points"`
}

// AthleteFilter carries the advanced search criteria. Zero values mean
// "no constraint".
type AthleteFilter struct {
	Position string
	Location string
	MinAge   int
	MaxAge   int
	Limit    int
}

// PlayerStats is the stored-counter projection of a player.
type PlayerStats struct {
	UserID      uint `json:"user_id"`
	GamesPlayed int  `json:"games_played"`
	Wins        int  `json:"wins"`
	Losses      int  `json:"losses"`
	Points      int  `json:"points"`
	Assists     int  `json:"assists"`
	Rebounds    int  `json:"rebounds"`
}

// UpdatePlayerStatsRequest patches the coach-maintained counters. Win/loss and
// games-played counters are not accepted here; only the game-completion flow
// moves those.
type UpdatePlayerStatsRequest struct {
	Points   *int `json:"points" binding:"omitempty,gte=0"`
	Assists  *int `json:"assists" binding:"omitempty,gte=0"`
	Rebounds *int `json:"rebounds" binding:"omitempty,gte=0"`
}

// VisibilityResponse reports whether a profile is publicly discoverable.
type VisibilityResponse struct {
	UserID   uint `json:"user_id"`
	IsPublic bool `json:"is_public"`
}
