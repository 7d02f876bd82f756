package player

// Record is one stored season snapshot of a player's statistics.
//
// Every field except ID is nullable: a nil pointer means the value is absent
// (a goalkeeper without shot stats, a row imported before passes were tracked).
type Record struct {
	ID int64 `json:"id,omitempty"`

	Player   *string `json:"player"`
	Team     *string `json:"team"`
	Number   *int    `json:"number"`
	Nation   *string `json:"nation"`
	Position *string `json:"position"`
	// Age keeps the source format "<years>-<days>", e.g. "29-343".
	Age *string `json:"age"`

	Minutes *int `json:"minutes"`
	Goals   *int `json:"goals"`
	Assists *int `json:"assists"`

	PenaltyShootOnGoal *int `json:"penaltyShootOnGoal"`
	PenaltyShoot       *int `json:"penaltyShoot"`
	TotalShoot         *int `json:"totalShoot"`
	ShootOnTarget      *int `json:"shootOnTarget"`

	YellowCards *int `json:"yellowCards"`
	RedCards    *int `json:"redCards"`

	Touches  *int `json:"touches"`
	Dribbles *int `json:"dribbles"`
	Tackles  *int `json:"tackles"`
	Blocks   *int `json:"blocks"`

	XG   *float64 `json:"xg"`
	NPXG *float64 `json:"npxg"`
	XAG  *float64 `json:"xag"`

	ShotCreatingActions *int `json:"shotCreatingActions"`
	GoalCreatingActions *int `json:"goalCreatingActions"`

	PassesCompleted *int     `json:"passesCompleted"`
	PassesAttempted *int     `json:"passesAttempted"`
	PassCompletion  *float64 `json:"passCompletion"`

	ProgressivePasses  *int `json:"progressivePasses"`
	Carries            *int `json:"carries"`
	ProgressiveCarries *int `json:"progressiveCarries"`
	DribbleAttempts    *int `json:"dribbleAttempts"`
	SuccessfulDribbles *int `json:"successfulDribbles"`

	Date *Date `json:"date"`
}

// OverwriteOnto returns r with the identity of stored. Every other field comes
// from r as-is, so fields r leaves nil clear the stored value.
func (r Record) OverwriteOnto(stored Record) Record {
	merged := r.Clone()
	merged.ID = stored.ID
	return merged
}

// Clone returns a deep copy that shares no pointers with r.
func (r Record) Clone() Record {
	return Record{
		ID:                  r.ID,
		Player:              clonePtr(r.Player),
		Team:                clonePtr(r.Team),
		Number:              clonePtr(r.Number),
		Nation:              clonePtr(r.Nation),
		Position:            clonePtr(r.Position),
		Age:                 clonePtr(r.Age),
		Minutes:             clonePtr(r.Minutes),
		Goals:               clonePtr(r.Goals),
		Assists:             clonePtr(r.Assists),
		PenaltyShootOnGoal:  clonePtr(r.PenaltyShootOnGoal),
		PenaltyShoot:        clonePtr(r.PenaltyShoot),
		TotalShoot:          clonePtr(r.TotalShoot),
		ShootOnTarget:       clonePtr(r.ShootOnTarget),
		YellowCards:         clonePtr(r.YellowCards),
		RedCards:            clonePtr(r.RedCards),
		Touches:             clonePtr(r.Touches),
		Dribbles:            clonePtr(r.Dribbles),
		Tackles:             clonePtr(r.Tackles),
		Blocks:              clonePtr(r.Blocks),
		XG:                  clonePtr(r.XG),
		NPXG:                clonePtr(r.NPXG),
		XAG:                 clonePtr(r.XAG),
		ShotCreatingActions: clonePtr(r.ShotCreatingActions),
		GoalCreatingActions: clonePtr(r.GoalCreatingActions),
		PassesCompleted:     clonePtr(r.PassesCompleted),
		PassesAttempted:     clonePtr(r.PassesAttempted),
		PassCompletion:      clonePtr(r.PassCompletion),
		ProgressivePasses:   clonePtr(r.ProgressivePasses),
		Carries:             clonePtr(r.Carries),
		ProgressiveCarries:  clonePtr(r.ProgressiveCarries),
		DribbleAttempts:     clonePtr(r.DribbleAttempts),
		SuccessfulDribbles:  clonePtr(r.SuccessfulDribbles),
		Date:                clonePtr(r.Date),
	}
}

// DisplayName is the player name or an empty string when absent.
func (r Record) DisplayName() string {
	if r.Player == nil {
		return ""
	}
	return *r.Player
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy for building records in code and tests.
func Ptr[T any](v T) *T {
	return &v
}
