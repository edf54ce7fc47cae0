package uciengine

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestGoJobCommands(t *testing.T) {
	// arrange
	cases := []struct {
		name string
		job  *GoJob
		want []string
	}{
		{
			name: "ponderhit ignores everything else",
			job:  NewGoJob().PosStartpos().GoOption("depth", 10).Ponderhit(),
			want: []string{"ponderhit"},
		},
		{
			name: "pondermiss encodes as stop",
			job:  NewGoJob().PosStartpos().Pondermiss(),
			want: []string{"stop"},
		},
		{
			name: "custom command is verbatim",
			job:  NewGoJob().PosStartpos().GoOption("depth", 10).Custom("quit"),
			want: []string{"quit"},
		},
		{
			name: "bare go",
			job:  NewGoJob(),
			want: []string{"go"},
		},
		{
			name: "startpos with moves",
			job:  NewGoJob().PosStartpos().PosMoves("e2e4 e7e5").GoOption("depth", 10),
			want: []string{"position startpos moves e2e4 e7e5", "go depth 10"},
		},
		{
			name: "fen with moves",
			job:  NewGoJob().PosFen("k7/8/8/8/8/8/R7/7K w - - 0 1").PosMoves("h1h2").GoOption("movetime", 500),
			want: []string{"position fen k7/8/8/8/8/8/R7/7K w - - 0 1 moves h1h2", "go movetime 500"},
		},
		{
			name: "ponder appends to the go line",
			job:  NewGoJob().PosStartpos().GoOption("depth", 10).Ponder(),
			want: []string{"position startpos", "go depth 10 ponder"},
		},
	}

	for _, c := range cases {
		// act
		got := c.job.Commands()

		// assert
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: want %v got %v", c.name, c.want, got)
		}
	}
}

func TestGoJobUciOptions(t *testing.T) {
	// arrange
	job := NewGoJob().
		UciOption("UCI_Variant", "atomic").
		UciOption("Hash", 128).
		UciOption("Threads", 4).
		PosStartpos()

	// act
	commands := job.Commands()

	// assert: option order is not significant, the rest of the order is
	if len(commands) != 5 {
		t.Fatalf("want 5 commands got %v", commands)
	}
	options := append([]string(nil), commands[:3]...)
	sort.Strings(options)
	wantOptions := []string{
		"setoption name Hash value 128",
		"setoption name Threads value 4",
		"setoption name UCI_Variant value atomic",
	}
	if !reflect.DeepEqual(options, wantOptions) {
		t.Errorf("want %v got %v", wantOptions, options)
	}
	if commands[3] != "position startpos" {
		t.Errorf("position line out of order: %v", commands)
	}
	if commands[4] != "go" {
		t.Errorf("go line out of order: %v", commands)
	}
}

func TestGoJobTc(t *testing.T) {
	// arrange
	job := NewGoJob().Tc(Timecontrol{Wtime: 15000, Winc: 100, Btime: 14000, Binc: 200})

	// act
	commands := job.Commands()

	// assert: the go line carries all four clock options, any order
	if len(commands) != 1 {
		t.Fatalf("want 1 command got %v", commands)
	}
	parts := strings.Fields(commands[0])
	if parts[0] != "go" || len(parts) != 9 {
		t.Fatalf("malformed go line %q", commands[0])
	}
	got := map[string]string{}
	for i := 1; i < len(parts); i += 2 {
		got[parts[i]] = parts[i+1]
	}
	want := map[string]string{"wtime": "15000", "winc": "100", "btime": "14000", "binc": "200"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v got %v", want, got)
	}
}

func TestDefaultTimecontrol(t *testing.T) {
	tc := DefaultTimecontrol()
	if tc.Wtime != 60000 || tc.Btime != 60000 || tc.Winc != 0 || tc.Binc != 0 {
		t.Errorf("unexpected default %+v", tc)
	}
}

func TestGoJobExpectsResult(t *testing.T) {
	cases := []struct {
		name string
		job  *GoJob
		want bool
	}{
		{name: "normal search", job: NewGoJob().PosStartpos().GoOption("depth", 5), want: true},
		{name: "ponder start", job: NewGoJob().PosStartpos().Ponder(), want: false},
		{name: "ponderhit", job: NewGoJob().Ponderhit(), want: true},
		{name: "pondermiss", job: NewGoJob().Pondermiss(), want: true},
		{name: "custom", job: NewGoJob().Custom("quit"), want: false},
	}

	for _, c := range cases {
		if got := c.job.expectsResult(); got != c.want {
			t.Errorf("%s: want %v got %v", c.name, c.want, got)
		}
	}
}
