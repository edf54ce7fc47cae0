// Package uciengine drives an external UCI chess engine process: it
// serializes go jobs from concurrent callers, feeds the engine's streamed
// analysis into a shared record, and correlates terminal bestmove lines back
// to the job awaiting them.
package uciengine

import (
	"fmt"
	"strconv"
)

// posSpec says how the job's position is given.
type posSpec uint8

const (
	posNone posSpec = iota
	posStartpos
	posFen
)

// Timecontrol holds clock settings in milliseconds.
type Timecontrol struct {
	Wtime int
	Winc  int
	Btime int
	Binc  int
}

// DefaultTimecontrol gives both sides one minute with no increment.
func DefaultTimecontrol() Timecontrol {
	return Timecontrol{Wtime: 60000, Btime: 60000}
}

// GoJob describes one unit of work for the engine: engine options, a
// position, search limits and ponder control. Build it with the chainable
// setters and submit it with UciEngine.Go. Exactly one of normal search,
// ponder start, ponderhit, pondermiss or custom command is in effect.
type GoJob struct {
	uciOptions map[string]string
	goOptions  map[string]string

	pos   posSpec
	fen   string
	moves string

	custom    string
	hasCustom bool

	ponder     bool
	ponderhit  bool
	pondermiss bool
}

// NewGoJob creates an empty job.
func NewGoJob() *GoJob {
	return &GoJob{
		uciOptions: make(map[string]string),
		goOptions:  make(map[string]string),
	}
}

// UciOption sets an engine configuration option. Keys are unique; setting a
// key again overwrites it.
func (j *GoJob) UciOption(key string, value interface{}) *GoJob {
	j.uciOptions[key] = fmt.Sprint(value)
	return j
}

// GoOption sets a search-limit option for the go command.
func (j *GoJob) GoOption(key string, value interface{}) *GoJob {
	j.goOptions[key] = fmt.Sprint(value)
	return j
}

// PosStartpos sets the position to the starting position.
func (j *GoJob) PosStartpos() *GoJob {
	j.pos = posStartpos
	return j
}

// PosFen sets the position from a FEN string.
func (j *GoJob) PosFen(fen string) *GoJob {
	j.pos = posFen
	j.fen = fen
	return j
}

// PosMoves sets the moves applied after the position, as a space-separated
// string of UCI moves.
func (j *GoJob) PosMoves(moves string) *GoJob {
	j.moves = moves
	return j
}

// Ponder makes the job start a ponder search. The engine keeps searching in
// the background and the job returns without waiting for a result.
func (j *GoJob) Ponder() *GoJob {
	j.ponder = true
	return j
}

// Ponderhit makes the job confirm the pondered position. All other job
// fields are ignored.
func (j *GoJob) Ponderhit() *GoJob {
	j.ponderhit = true
	return j
}

// Pondermiss makes the job abandon the running ponder search. All other job
// fields are ignored.
func (j *GoJob) Pondermiss() *GoJob {
	j.pondermiss = true
	return j
}

// Custom sets a literal command sent verbatim in place of everything else.
func (j *GoJob) Custom(command string) *GoJob {
	j.custom = command
	j.hasCustom = true
	return j
}

// Tc sets the four clock options from a time control.
func (j *GoJob) Tc(tc Timecontrol) *GoJob {
	j.goOptions["wtime"] = strconv.Itoa(tc.Wtime)
	j.goOptions["winc"] = strconv.Itoa(tc.Winc)
	j.goOptions["btime"] = strconv.Itoa(tc.Btime)
	j.goOptions["binc"] = strconv.Itoa(tc.Binc)
	return j
}

// Commands encodes the job as the ordered list of protocol lines to send.
// Ponderhit, pondermiss and custom jobs encode to their single line; any
// other job encodes to its setoption lines, a position line when a position
// was given, and a go line. Setoption order follows map iteration and is not
// significant.
func (j *GoJob) Commands() []string {
	if j.ponderhit {
		return []string{"ponderhit"}
	}

	if j.pondermiss {
		return []string{"stop"}
	}

	if j.hasCustom {
		return []string{j.custom}
	}

	var commands []string

	for key, value := range j.uciOptions {
		commands = append(commands, fmt.Sprintf("setoption name %s value %s", key, value))
	}

	var moves string
	if j.moves != "" {
		moves = " moves " + j.moves
	}

	switch j.pos {
	case posStartpos:
		commands = append(commands, "position startpos"+moves)
	case posFen:
		commands = append(commands, fmt.Sprintf("position fen %s%s", j.fen, moves))
	}

	goCommand := "go"
	for key, value := range j.goOptions {
		goCommand += fmt.Sprintf(" %s %s", key, value)
	}
	if j.ponder {
		goCommand += " ponder"
	}

	return append(commands, goCommand)
}

// expectsResult reports whether the job waits for a terminal bestmove line.
// Custom jobs never wait. A ponder start leaves the search running and
// returns immediately; the later ponderhit or pondermiss is what collects
// that search's terminal line.
func (j *GoJob) expectsResult() bool {
	return !j.hasCustom && !j.ponder
}
