// Package statscsv decodes FBref-style season stat exports into player
// records.
package statscsv

import (
	"bufio"
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/usecase"
	"github.com/sourcegraph/conc/iter"
)

var ErrNoHeader = crerr.New("csv has no player header row")

// Options fill in values the export itself does not carry. Per-squad exports
// have no team column, and none of them carry a snapshot date.
type Options struct {
	Team string
	Date *player.Date
}

type setter func(rec *player.Record, raw string) error

// columns maps normalised header names to record setters. FBref
// abbreviations and the JSON field names are both accepted.
var columns = map[string]setter{
	"player":   setString(func(r *player.Record) **string { return &r.Player }),
	"squad":    setString(func(r *player.Record) **string { return &r.Team }),
	"team":     setString(func(r *player.Record) **string { return &r.Team }),
	"number":   setInt(func(r *player.Record) **int { return &r.Number }),
	"nation":   setString(func(r *player.Record) **string { return &r.Nation }),
	"pos":      setString(func(r *player.Record) **string { return &r.Position }),
	"position": setString(func(r *player.Record) **string { return &r.Position }),
	"age":      setString(func(r *player.Record) **string { return &r.Age }),
	"min":      setInt(func(r *player.Record) **int { return &r.Minutes }),
	"minutes":  setInt(func(r *player.Record) **int { return &r.Minutes }),
	"gls":      setInt(func(r *player.Record) **int { return &r.Goals }),
	"goals":    setInt(func(r *player.Record) **int { return &r.Goals }),
	"ast":      setInt(func(r *player.Record) **int { return &r.Assists }),
	"assists":  setInt(func(r *player.Record) **int { return &r.Assists }),

	"pk":                 setInt(func(r *player.Record) **int { return &r.PenaltyShootOnGoal }),
	"penaltyshootongoal": setInt(func(r *player.Record) **int { return &r.PenaltyShootOnGoal }),
	"pkatt":              setInt(func(r *player.Record) **int { return &r.PenaltyShoot }),
	"penaltyshoot":       setInt(func(r *player.Record) **int { return &r.PenaltyShoot }),
	"sh":                 setInt(func(r *player.Record) **int { return &r.TotalShoot }),
	"totalshoot":         setInt(func(r *player.Record) **int { return &r.TotalShoot }),
	"sot":                setInt(func(r *player.Record) **int { return &r.ShootOnTarget }),
	"shootontarget":      setInt(func(r *player.Record) **int { return &r.ShootOnTarget }),

	"crdy":        setInt(func(r *player.Record) **int { return &r.YellowCards }),
	"yellowcards": setInt(func(r *player.Record) **int { return &r.YellowCards }),
	"crdr":        setInt(func(r *player.Record) **int { return &r.RedCards }),
	"redcards":    setInt(func(r *player.Record) **int { return &r.RedCards }),

	"touches":  setInt(func(r *player.Record) **int { return &r.Touches }),
	"dribbles": setInt(func(r *player.Record) **int { return &r.Dribbles }),
	"tkl":      setInt(func(r *player.Record) **int { return &r.Tackles }),
	"tackles":  setInt(func(r *player.Record) **int { return &r.Tackles }),
	"blocks":   setInt(func(r *player.Record) **int { return &r.Blocks }),

	"xg":   setFloat(func(r *player.Record) **float64 { return &r.XG }),
	"npxg": setFloat(func(r *player.Record) **float64 { return &r.NPXG }),
	"xag":  setFloat(func(r *player.Record) **float64 { return &r.XAG }),

	"sca":                 setInt(func(r *player.Record) **int { return &r.ShotCreatingActions }),
	"shotcreatingactions": setInt(func(r *player.Record) **int { return &r.ShotCreatingActions }),
	"gca":                 setInt(func(r *player.Record) **int { return &r.GoalCreatingActions }),
	"goalcreatingactions": setInt(func(r *player.Record) **int { return &r.GoalCreatingActions }),

	"cmp":             setInt(func(r *player.Record) **int { return &r.PassesCompleted }),
	"passescompleted": setInt(func(r *player.Record) **int { return &r.PassesCompleted }),
	"att":             setInt(func(r *player.Record) **int { return &r.PassesAttempted }),
	"passesattempted": setInt(func(r *player.Record) **int { return &r.PassesAttempted }),
	"cmppct":          setFloat(func(r *player.Record) **float64 { return &r.PassCompletion }),
	"passcompletion":  setFloat(func(r *player.Record) **float64 { return &r.PassCompletion }),

	"prgp":               setInt(func(r *player.Record) **int { return &r.ProgressivePasses }),
	"progressivepasses":  setInt(func(r *player.Record) **int { return &r.ProgressivePasses }),
	"carries":            setInt(func(r *player.Record) **int { return &r.Carries }),
	"prgc":               setInt(func(r *player.Record) **int { return &r.ProgressiveCarries }),
	"progressivecarries": setInt(func(r *player.Record) **int { return &r.ProgressiveCarries }),
	"takeonsatt":         setInt(func(r *player.Record) **int { return &r.DribbleAttempts }),
	"dribbleattempts":    setInt(func(r *player.Record) **int { return &r.DribbleAttempts }),
	"succ":               setInt(func(r *player.Record) **int { return &r.SuccessfulDribbles }),
	"successfuldribbles": setInt(func(r *player.Record) **int { return &r.SuccessfulDribbles }),

	"date": setDate,
}

// Parse reads a CSV export. A header row (optionally preceded by one FBref
// group row) must contain a player column. Lines that fail to decode are
// returned in Rejected with their line number; they do not stop the parse.
func Parse(r io.Reader, opts Options) (usecase.ImportBatch, error) {
	br := bufio.NewReader(r)
	first, _ := br.Peek(4096)
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	if line, _, _ := strings.Cut(string(first), "\n"); strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}

	type lineInput struct {
		line   int
		fields []string
	}
	var (
		headers []string
		inputs  []lineInput
	)
	for n := 0; ; n++ {
		fields, err := reader.Read()
		if crerr.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return usecase.ImportBatch{}, crerr.Wrap(err, "read csv")
		}
		line, _ := reader.FieldPos(0)

		if headers == nil {
			if hasPlayerColumn(fields) {
				headers = normHeaders(fields)
				continue
			}
			if n >= 1 {
				return usecase.ImportBatch{}, ErrNoHeader
			}
			continue
		}
		if isBlank(fields) || isRepeatedHeader(fields) {
			continue
		}
		inputs = append(inputs, lineInput{line: line, fields: fields})
	}
	if headers == nil {
		return usecase.ImportBatch{}, ErrNoHeader
	}

	type lineOutput struct {
		row usecase.ImportRow
		err error
	}
	outputs := iter.Map(inputs, func(in *lineInput) lineOutput {
		rec, err := rowToRecord(headers, in.fields, opts)
		if err != nil {
			return lineOutput{err: crerr.Wrapf(err, "line %d", in.line)}
		}
		return lineOutput{row: usecase.ImportRow{Line: in.line, Record: rec}}
	})

	batch := usecase.ImportBatch{Rows: make([]usecase.ImportRow, 0, len(outputs))}
	for _, out := range outputs {
		if out.err != nil {
			batch.Rejected = append(batch.Rejected, out.err)
			continue
		}
		batch.Rows = append(batch.Rows, out.row)
	}

	return batch, nil
}

func rowToRecord(headers []string, fields []string, opts Options) (player.Record, error) {
	var rec player.Record
	for i, key := range headers {
		set, ok := columns[key]
		if !ok || i >= len(fields) {
			continue
		}
		raw := strings.TrimSpace(fields[i])
		if raw == "" {
			continue
		}
		if err := set(&rec, raw); err != nil {
			return player.Record{}, crerr.Wrapf(err, "column %s", key)
		}
	}

	if rec.Player == nil {
		return player.Record{}, crerr.New("player name is empty")
	}
	if rec.Team == nil && opts.Team != "" {
		rec.Team = player.Ptr(opts.Team)
	}
	if rec.Date == nil && opts.Date != nil {
		d := *opts.Date
		rec.Date = &d
	}

	return rec, nil
}

// normHeaders lowercases header names and keeps only letters and digits.
// "%" becomes "pct" and "#" becomes "number". A second "Att" column is the
// take-on attempts group in FBref exports.
func normHeaders(hdr []string) []string {
	out := make([]string, len(hdr))
	seen := make(map[string]bool, len(hdr))
	for i, h := range hdr {
		k := strings.ToLower(strings.TrimSpace(h))
		if k == "#" {
			k = "number"
		}
		var b strings.Builder
		for _, r := range k {
			switch {
			case r == '%':
				b.WriteString("pct")
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				b.WriteRune(r)
			}
		}
		k = b.String()
		if k == "att" && seen["att"] {
			k = "takeonsatt"
		}
		seen[k] = true
		out[i] = k
	}
	return out
}

func hasPlayerColumn(row []string) bool {
	for _, k := range normHeaders(row) {
		if k == "player" {
			return true
		}
	}
	return false
}

// FBref repeats the header row every 25 lines in long tables.
func isRepeatedHeader(row []string) bool {
	return hasPlayerColumn(row)
}

func isBlank(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}

func setString(field func(*player.Record) **string) setter {
	return func(rec *player.Record, raw string) error {
		*field(rec) = player.Ptr(raw)
		return nil
	}
}

func setInt(field func(*player.Record) **int) setter {
	return func(rec *player.Record, raw string) error {
		v, err := parseInt(raw)
		if err != nil {
			return err
		}
		*field(rec) = &v
		return nil
	}
}

func setFloat(field func(*player.Record) **float64) setter {
	return func(rec *player.Record, raw string) error {
		v, err := parseFloat(raw)
		if err != nil {
			return err
		}
		*field(rec) = &v
		return nil
	}
}

func setDate(rec *player.Record, raw string) error {
	d, err := player.ParseDate(raw)
	if err != nil {
		return err
	}
	rec.Date = &d
	return nil
}

var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}([., ]\d{3})+$`)

// parseInt accepts thousands separators ("2,890", "2.890", "1 245"). A
// separator not followed by exactly three digits makes the value fractional
// and it is rejected.
func parseInt(raw string) (int, error) {
	cleaned := raw
	if thousandsGrouped.MatchString(raw) {
		cleaned = strings.NewReplacer(",", "", ".", "", " ", "").Replace(raw)
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, crerr.Newf("invalid integer %q", raw)
	}
	return v, nil
}

// parseFloat accepts a decimal comma ("71,7") as well as a decimal point.
func parseFloat(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, crerr.Newf("invalid number %q", raw)
	}
	return v, nil
}
