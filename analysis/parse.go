package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidKey reports a key token that is not allowed in its position.
	ErrInvalidKey = errors.New("invalid key")

	// ErrScoreQualifier reports a score not followed by "cp" or "mate".
	ErrScoreQualifier = errors.New("invalid score qualifier")
)

// ParseError is a failure to parse one info line. Key names the field being
// parsed when the offending token was seen.
type ParseError struct {
	Key   string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse info %s: token %q: %v", e.Key, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseState tracks what the next token of an info line means.
type parseState uint8

const (
	stateKey parseState = iota
	stateDepth
	stateSelDepth
	stateTime
	stateNodes
	stateMultiPV
	stateCurrMoveNumber
	stateHashFull
	stateNPS
	stateTBHits
	stateCPULoad
	stateScore
	stateScoreCp
	stateScoreMate
	stateCurrMove
	statePvBestmove
	statePvPonder
	statePvRest
	stateUnknown
)

// numericKeys names the field each single-argument numeric state fills, for
// error reporting.
var numericKeys = map[parseState]string{
	stateDepth:          "depth",
	stateSelDepth:       "seldepth",
	stateTime:           "time",
	stateNodes:          "nodes",
	stateMultiPV:        "multipv",
	stateCurrMoveNumber: "currmovenumber",
	stateHashFull:       "hashfull",
	stateNPS:            "nps",
	stateTBHits:         "tbhits",
	stateCPULoad:        "cpuload",
}

// keyStates maps a key token to the state that consumes its argument.
var keyStates = map[string]parseState{
	"depth":          stateDepth,
	"seldepth":       stateSelDepth,
	"time":           stateTime,
	"nodes":          stateNodes,
	"multipv":        stateMultiPV,
	"currmovenumber": stateCurrMoveNumber,
	"hashfull":       stateHashFull,
	"nps":            stateNPS,
	"tbhits":         stateTBHits,
	"cpuload":        stateCPULoad,
	"score":          stateScore,
	"currmove":       stateCurrMove,
	"pv":             statePvBestmove,
}

// Parse consumes one engine output line and applies any analysis fields it
// carries to the record. Lines that do not start with "info", and
// "info string ..." annotation lines, are ignored and report success.
//
// Fields already applied before a malformed token stay applied; the rest of
// the line does not. Unknown keys are tolerated: they are assumed to carry a
// single argument, which is skipped. A future key with two arguments would
// desynchronize the rest of the line; that is accepted in exchange for not
// stalling on protocol extensions.
//
// Parse keeps no state across calls other than the record itself, so it may
// be called repeatedly on a live record while a search is running.
func (i *Info) Parse(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 || parts[0] != "info" {
		return nil
	}

	state := stateKey
	qualified := false
	var pv []string

	for n, tok := range parts[1:] {
		switch state {
		case stateKey:
			switch tok {
			case "string":
				// free-text annotation, only valid as the first key
				if n == 0 {
					return nil
				}
				return i.fail(&ParseError{Key: tok, Token: tok, Err: ErrInvalidKey})
			case "lowerbound":
				i.ScoreType = Lowerbound
				qualified = true
			case "upperbound":
				i.ScoreType = Upperbound
				qualified = true
			default:
				next, ok := keyStates[tok]
				if !ok {
					log.Debug().Str("key", tok).Msg("unknown info key, skipping one argument")
					state = stateUnknown
					break
				}
				if next == stateScore && !qualified {
					i.ScoreType = Exact
				}
				state = next
			}

		case stateScore:
			switch tok {
			case "cp":
				state = stateScoreCp
			case "mate":
				state = stateScoreMate
			default:
				return i.fail(&ParseError{Key: "score", Token: tok, Err: ErrScoreQualifier})
			}

		case stateScoreCp, stateScoreMate:
			v, err := strconv.ParseInt(tok, 10, 32)
			if err != nil {
				key := "score cp"
				if state == stateScoreMate {
					key = "score mate"
				}
				return i.fail(&ParseError{Key: key, Token: tok, Err: err})
			}
			if state == stateScoreCp {
				i.Score = Cp(int32(v))
			} else {
				i.Score = MateIn(int32(v))
			}
			state = stateKey

		case stateCurrMove:
			i.currmove.Set(tok)
			state = stateKey

		case statePvBestmove:
			i.bestmove.Set(tok)
			pv = append(pv, tok)
			state = statePvPonder

		case statePvPonder:
			i.ponder.Set(tok)
			pv = append(pv, tok)
			state = statePvRest

		case statePvRest:
			pv = append(pv, tok)

		case stateUnknown:
			state = stateKey

		default:
			v, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				return i.fail(&ParseError{Key: numericKeys[state], Token: tok, Err: err})
			}
			i.applyNumeric(state, v)
			state = stateKey
		}
	}

	// the pv runs to the end of the line and is committed in one piece, so
	// a line cut off mid-variation still stores whatever whole moves fit
	if len(pv) > 0 {
		i.pv.SetTrim(strings.Join(pv, " "), ' ')
	}

	return nil
}

func (i *Info) applyNumeric(state parseState, v uint64) {
	switch state {
	case stateDepth:
		i.Depth = uint(v)
	case stateSelDepth:
		i.SelDepth = uint(v)
	case stateTime:
		i.Time = v
	case stateNodes:
		i.Nodes = v
	case stateMultiPV:
		i.MultiPV = uint(v)
	case stateCurrMoveNumber:
		i.CurrMoveNumber = uint(v)
	case stateHashFull:
		i.HashFull = uint(v)
	case stateNPS:
		i.NPS = v
	case stateTBHits:
		i.TBHits = v
	case stateCPULoad:
		i.CPULoad = uint(v)
	}
}

// fail logs a parse error before handing it to the caller.
func (i *Info) fail(err *ParseError) error {
	log.Error().Str("key", err.Key).Str("token", err.Token).Err(err.Err).Msg("info line parse failed")
	return err
}
