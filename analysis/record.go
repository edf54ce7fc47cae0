package analysis

import "strings"

// ScoreKind says how a Score value is to be read.
type ScoreKind uint8

const (
	// ScoreCp is an evaluation in centipawns.
	ScoreCp ScoreKind = iota
	// ScoreMate is a forced mate in the given number of plies.
	ScoreMate
)

// Score is an engine evaluation, either centipawns or mate-in-plies.
type Score struct {
	Kind  ScoreKind
	Value int32
}

// Cp returns a centipawn score.
func Cp(v int32) Score {
	return Score{Kind: ScoreCp, Value: v}
}

// MateIn returns a mate score in plies, negative when the engine is mated.
func MateIn(plies int32) Score {
	return Score{Kind: ScoreMate, Value: plies}
}

// ScoreType qualifies a score as exact or as a bound. The zero value is
// Exact; Lowerbound/Upperbound are set only when the engine emitted the
// corresponding qualifier token on the line.
type ScoreType uint8

const (
	Exact ScoreType = iota
	Lowerbound
	Upperbound
)

func (t ScoreType) String() string {
	switch t {
	case Lowerbound:
		return "lowerbound"
	case Upperbound:
		return "upperbound"
	default:
		return "exact"
	}
}

// Info is the mutable snapshot of the most recent analysis state for one
// search. It is reset when a search begins and mutated line by line as the
// engine streams output; once Done is set it is copied out as the final
// result. Move strings live in fixed-capacity buffers, so an Info is a plain
// value with no heap references and copies with assignment.
type Info struct {
	// Done reports whether the terminal bestmove line has been seen.
	Done bool

	bestmove UciBuff
	ponder   UciBuff
	currmove UciBuff
	pv       PvBuff

	Depth          uint
	SelDepth       uint
	MultiPV        uint
	CurrMoveNumber uint
	HashFull       uint
	CPULoad        uint

	Nodes  uint64
	NPS    uint64
	TBHits uint64
	Time   uint64

	Score     Score
	ScoreType ScoreType
}

// BestMove returns the best move and whether one has been reported.
func (i Info) BestMove() (string, bool) {
	return i.bestmove.Value()
}

// Ponder returns the ponder move and whether one has been reported.
func (i Info) Ponder() (string, bool) {
	return i.ponder.Value()
}

// CurrMove returns the move currently being searched, if reported.
func (i Info) CurrMove() (string, bool) {
	return i.currmove.Value()
}

// PV returns the principal variation and whether one has been reported. The
// string is always a sequence of complete move tokens; variations that
// exceed the buffer lose whole trailing moves.
func (i Info) PV() (string, bool) {
	return i.pv.Value()
}

// ApplyBestmove applies a terminal line ("bestmove <move> [ponder <move>]")
// to the record: marks it done and stores the best and ponder moves. Lines
// in any other shape are ignored.
func (i *Info) ApplyBestmove(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 || parts[0] != "bestmove" {
		return
	}
	i.Done = true
	i.bestmove.Set(parts[1])
	if len(parts) > 3 {
		i.ponder.Set(parts[3])
	}
}
