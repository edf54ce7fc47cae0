package uciengine

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperchessbot/uciengine/analysis"
)

const (
	// jobQueueSize bounds how many submitted jobs can sit undispatched.
	jobQueueSize = 256

	// bestmoveQueueSize bounds buffered terminal lines. Only one job can
	// await a terminal line at a time, so depth beyond a few spare slots
	// is never used.
	bestmoveQueueSize = 16

	// subscriberBuffer is the per-subscriber backlog of analysis updates.
	subscriberBuffer = 64
)

// GoResult is the outcome of a job that awaited a terminal line: the best
// move and ponder move if the engine reported them, and the analysis record
// as it stood when the search finished.
type GoResult struct {
	Bestmove string
	Ponder   string
	Info     analysis.Info
}

type goRequest struct {
	job    *GoJob
	result chan GoResult
}

// UciEngine owns one engine process for its lifetime. Three goroutines run
// per engine: an exit reaper, the output reader (sole writer of the shared
// analysis record), and the dispatcher (sole writer of the input stream and
// sole consumer of the job queue). Jobs are dispatched strictly one at a
// time, which is what makes the ponder/ponderhit/pondermiss sequence
// compose: at most one job is ever awaiting a terminal line.
//
// There is no timeout or cancellation: a job awaiting a terminal line that
// never comes blocks its caller forever. Forcing termination is the
// caller's move, typically a pondermiss/stop job. An engine whose process
// exits is dead; it is not respawned.
type UciEngine struct {
	log zerolog.Logger

	stdin io.Writer

	jobs      chan goRequest
	bestmoves chan string

	mu   sync.Mutex
	info analysis.Info

	subMu     sync.Mutex
	subs      []chan analysis.Info
	subClosed bool
}

// NewUciEngine spawns the engine binary at path and starts driving it.
// Spawn and pipe failures surface as construction errors.
func NewUciEngine(path string) (*UciEngine, error) {
	return NewUciEngineWithLogger(path, log.Logger)
}

// NewUciEngineWithLogger is NewUciEngine with a caller-supplied logger.
func NewUciEngineWithLogger(path string, logger zerolog.Logger) (*UciEngine, error) {
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn engine '%s': %w", path, err)
	}

	// exit reaper: an engine whose process exits stays dead
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Error().Err(err).Str("engine", path).Msg("engine process exited abnormally")
			return
		}
		logger.Info().Str("engine", path).Msg("engine process exited")
	}()

	logger.Info().Str("engine", path).Msg("spawned uci engine")

	return newUciEngine(stdin, stdout, logger), nil
}

// newUciEngine builds the actor around a ready-to-write input stream and a
// ready-to-read output stream and starts the reader and dispatcher.
func newUciEngine(stdin io.Writer, stdout io.Reader, logger zerolog.Logger) *UciEngine {
	e := &UciEngine{
		log:       logger,
		stdin:     stdin,
		jobs:      make(chan goRequest, jobQueueSize),
		bestmoves: make(chan string, bestmoveQueueSize),
	}

	go e.readLoop(stdout)
	go e.dispatchLoop()

	return e
}

// Go submits a job and returns its single-use result channel. Submission
// enqueues and returns; the caller awaits the channel independently, so any
// number of callers can have jobs in flight without interfering. Jobs that
// expect no terminal line (ponder starts, custom commands) never deliver on
// the channel.
func (e *UciEngine) Go(job *GoJob) <-chan GoResult {
	req := goRequest{job: job, result: make(chan GoResult, 1)}
	e.jobs <- req
	return req.result
}

// Snapshot copies out the current analysis record. Safe to call from any
// goroutine at any time; the copy is never torn mid-line.
func (e *UciEngine) Snapshot() analysis.Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info
}

// Subscribe returns a channel of analysis record snapshots, one per applied
// engine output line. Delivery is best effort: a subscriber that falls
// behind misses updates rather than stalling the reader. The channel closes
// when the engine's output stream ends.
func (e *UciEngine) Subscribe() <-chan analysis.Info {
	ch := make(chan analysis.Info, subscriberBuffer)

	e.subMu.Lock()
	defer e.subMu.Unlock()

	if e.subClosed {
		close(ch)
		return ch
	}
	e.subs = append(e.subs, ch)
	return ch
}

// Quit asks the engine process to exit. It does not block and does not
// report whether the process actually exits; the exit reaper observes that.
func (e *UciEngine) Quit() {
	e.Go(NewGoJob().Custom("quit"))
}

// readLoop is the sole writer of the shared analysis record. Each line is
// parsed into the record under the lock, then published to subscribers;
// terminal lines are additionally forwarded to the dispatcher, best effort.
func (e *UciEngine) readLoop(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)

	for scanner.Scan() {
		line := scanner.Text()
		e.log.Debug().Str("line", line).Msg("uci engine out")

		terminal := len(line) >= 8 && line[0:8] == "bestmove"

		e.mu.Lock()
		// parse failures are logged by the parser; the line is dropped
		// and already-applied fields stand
		_ = e.info.Parse(line)
		if terminal {
			e.info.ApplyBestmove(line)
		}
		snapshot := e.info
		e.mu.Unlock()

		e.publish(snapshot)

		if terminal {
			select {
			case e.bestmoves <- line:
			default:
				e.log.Debug().Str("line", line).Msg("terminal line dropped, nothing awaiting")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		e.log.Error().Err(err).Msg("engine read error")
	}
	e.log.Debug().Msg("engine read terminated")

	e.closeSubscribers()
}

// dispatchLoop is the sole writer of the engine's input stream and the sole
// consumer of the job queue, so commands reach the process in submission
// order with no interleaving between jobs.
func (e *UciEngine) dispatchLoop() {
	for req := range e.jobs {
		for _, command := range req.job.Commands() {
			e.log.Debug().Str("command", command).Msg("issuing engine command")

			if _, err := io.WriteString(e.stdin, command+"\n"); err != nil {
				// best effort: the job may now wait for a terminal
				// line that never comes, which is the caller's cue
				// to intervene
				e.log.Error().Err(err).Str("command", command).Msg("engine write failed")
			}
		}

		if !req.job.expectsResult() {
			continue
		}

		// fresh record before waiting, so a snapshot taken mid-search
		// never shows the previous job's numbers
		e.mu.Lock()
		e.info = analysis.Info{}
		e.mu.Unlock()

		line, ok := <-e.bestmoves
		if !ok {
			return
		}

		e.mu.Lock()
		snapshot := e.info
		e.mu.Unlock()

		result := GoResult{Info: snapshot}

		parts := strings.Fields(line)
		if len(parts) > 1 {
			result.Bestmove = parts[1]
		}
		if len(parts) > 3 {
			result.Ponder = parts[3]
		}

		// result channel is buffered, delivery cannot block dispatch
		req.result <- result
	}
}

func (e *UciEngine) publish(info analysis.Info) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- info:
		default:
		}
	}
}

func (e *UciEngine) closeSubscribers() {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	e.subClosed = true
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
}
