package postgres

import (
	"time"

	"github.com/riskibarqy/premier-league/internal/domain/player"
)

const playerTable = "player_data"

// playerTableModel is the column manifest of player_data. Insert and save
// derive their column lists from these tags, so a new column only needs a
// field here and in the two mappers below.
type playerTableModel struct {
	ID                  int64      `db:"id"`
	Player              *string    `db:"player"`
	Team                *string    `db:"team"`
	Number              *int       `db:"number"`
	Nation              *string    `db:"nation"`
	Position            *string    `db:"position"`
	Age                 *string    `db:"age"`
	Minutes             *int       `db:"minutes"`
	Goals               *int       `db:"goals"`
	Assists             *int       `db:"assists"`
	PenaltyShootOnGoal  *int       `db:"penalty_shoot_on_goal"`
	PenaltyShoot        *int       `db:"penalty_shoot"`
	TotalShoot          *int       `db:"total_shoot"`
	ShootOnTarget       *int       `db:"shoot_on_target"`
	YellowCards         *int       `db:"yellow_cards"`
	RedCards            *int       `db:"red_cards"`
	Touches             *int       `db:"touches"`
	Dribbles            *int       `db:"dribbles"`
	Tackles             *int       `db:"tackles"`
	Blocks              *int       `db:"blocks"`
	XG                  *float64   `db:"xg"`
	NPXG                *float64   `db:"npxg"`
	XAG                 *float64   `db:"xag"`
	ShotCreatingActions *int       `db:"shot_creating_actions"`
	GoalCreatingActions *int       `db:"goal_creating_actions"`
	PassesCompleted     *int       `db:"passes_completed"`
	PassesAttempted     *int       `db:"passes_attempted"`
	PassCompletion      *float64   `db:"pass_completion"`
	ProgressivePasses   *int       `db:"progressive_passes"`
	Carries             *int       `db:"carries"`
	ProgressiveCarries  *int       `db:"progressive_carries"`
	DribbleAttempts     *int       `db:"dribble_attempts"`
	SuccessfulDribbles  *int       `db:"successful_dribbles"`
	Date                *time.Time `db:"date"`
}

func playerRowFromRecord(rec player.Record) playerTableModel {
	rec = rec.Clone()
	row := playerTableModel{
		ID:                  rec.ID,
		Player:              rec.Player,
		Team:                rec.Team,
		Number:              rec.Number,
		Nation:              rec.Nation,
		Position:            rec.Position,
		Age:                 rec.Age,
		Minutes:             rec.Minutes,
		Goals:               rec.Goals,
		Assists:             rec.Assists,
		PenaltyShootOnGoal:  rec.PenaltyShootOnGoal,
		PenaltyShoot:        rec.PenaltyShoot,
		TotalShoot:          rec.TotalShoot,
		ShootOnTarget:       rec.ShootOnTarget,
		YellowCards:         rec.YellowCards,
		RedCards:            rec.RedCards,
		Touches:             rec.Touches,
		Dribbles:            rec.Dribbles,
		Tackles:             rec.Tackles,
		Blocks:              rec.Blocks,
		XG:                  rec.XG,
		NPXG:                rec.NPXG,
		XAG:                 rec.XAG,
		ShotCreatingActions: rec.ShotCreatingActions,
		GoalCreatingActions: rec.GoalCreatingActions,
		PassesCompleted:     rec.PassesCompleted,
		PassesAttempted:     rec.PassesAttempted,
		PassCompletion:      rec.PassCompletion,
		ProgressivePasses:   rec.ProgressivePasses,
		Carries:             rec.Carries,
		ProgressiveCarries:  rec.ProgressiveCarries,
		DribbleAttempts:     rec.DribbleAttempts,
		SuccessfulDribbles:  rec.SuccessfulDribbles,
	}
	if rec.Date != nil {
		t := rec.Date.Time()
		row.Date = &t
	}
	return row
}

func playerRecordFromRow(row playerTableModel) player.Record {
	rec := player.Record{
		ID:                  row.ID,
		Player:              row.Player,
		Team:                row.Team,
		Number:              row.Number,
		Nation:              row.Nation,
		Position:            row.Position,
		Age:                 row.Age,
		Minutes:             row.Minutes,
		Goals:               row.Goals,
		Assists:             row.Assists,
		PenaltyShootOnGoal:  row.PenaltyShootOnGoal,
		PenaltyShoot:        row.PenaltyShoot,
		TotalShoot:          row.TotalShoot,
		ShootOnTarget:       row.ShootOnTarget,
		YellowCards:         row.YellowCards,
		RedCards:            row.RedCards,
		Touches:             row.Touches,
		Dribbles:            row.Dribbles,
		Tackles:             row.Tackles,
		Blocks:              row.Blocks,
		XG:                  row.XG,
		NPXG:                row.NPXG,
		XAG:                 row.XAG,
		ShotCreatingActions: row.ShotCreatingActions,
		GoalCreatingActions: row.GoalCreatingActions,
		PassesCompleted:     row.PassesCompleted,
		PassesAttempted:     row.PassesAttempted,
		PassCompletion:      row.PassCompletion,
		ProgressivePasses:   row.ProgressivePasses,
		Carries:             row.Carries,
		ProgressiveCarries:  row.ProgressiveCarries,
		DribbleAttempts:     row.DribbleAttempts,
		SuccessfulDribbles:  row.SuccessfulDribbles,
	}
	if row.Date != nil {
		d := player.NewDate(*row.Date)
		rec.Date = &d
	}
	return rec
}
