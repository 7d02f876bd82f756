package httpapi

import "github.com/riskibarqy/premier-league/internal/domain/player"

type playerIDParam struct {
	ID int64 `validate:"gt=0"`
}

type playerQuery struct {
	Team     string `validate:"max=255"`
	Name     string `validate:"max=255"`
	Position string `validate:"max=255"`
	Nation   string `validate:"max=255"`
}

// playerRequest is the create/update body. Text fields are bounded by the
// VARCHAR(255) columns of player_data. Numeric values, negative ones
// included, are stored as sent.
type playerRequest struct {
	ID *int64 `json:"id" validate:"omitempty,gt=0"`

	Player   *string `json:"player" validate:"omitempty,max=255"`
	Team     *string `json:"team" validate:"omitempty,max=255"`
	Number   *int    `json:"number"`
	Nation   *string `json:"nation" validate:"omitempty,max=255"`
	Position *string `json:"position" validate:"omitempty,max=255"`
	Age      *string `json:"age" validate:"omitempty,max=255"`

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

	Date *player.Date `json:"date"`
}

func (req playerRequest) toRecord() player.Record {
	rec := player.Record{
		Player:              req.Player,
		Team:                req.Team,
		Number:              req.Number,
		Nation:              req.Nation,
		Position:            req.Position,
		Age:                 req.Age,
		Minutes:             req.Minutes,
		Goals:               req.Goals,
		Assists:             req.Assists,
		PenaltyShootOnGoal:  req.PenaltyShootOnGoal,
		PenaltyShoot:        req.PenaltyShoot,
		TotalShoot:          req.TotalShoot,
		ShootOnTarget:       req.ShootOnTarget,
		YellowCards:         req.YellowCards,
		RedCards:            req.RedCards,
		Touches:             req.Touches,
		Dribbles:            req.Dribbles,
		Tackles:             req.Tackles,
		Blocks:              req.Blocks,
		XG:                  req.XG,
		NPXG:                req.NPXG,
		XAG:                 req.XAG,
		ShotCreatingActions: req.ShotCreatingActions,
		GoalCreatingActions: req.GoalCreatingActions,
		PassesCompleted:     req.PassesCompleted,
		PassesAttempted:     req.PassesAttempted,
		PassCompletion:      req.PassCompletion,
		ProgressivePasses:   req.ProgressivePasses,
		Carries:             req.Carries,
		ProgressiveCarries:  req.ProgressiveCarries,
		DribbleAttempts:     req.DribbleAttempts,
		SuccessfulDribbles:  req.SuccessfulDribbles,
		Date:                req.Date,
	}
	if req.ID != nil {
		rec.ID = *req.ID
	}
	return rec
}
