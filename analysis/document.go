package analysis

import "fmt"

// infoDocument is the flat key-value rendering of an Info. Move strings are
// present-or-absent, the score is a pair of mutually exclusive cp/mate
// fields so both the value and the kind survive a round trip.
type infoDocument struct {
	Done           bool   `yaml:"done"`
	Bestmove       string `yaml:"bestmove,omitempty"`
	Ponder         string `yaml:"ponder,omitempty"`
	CurrMove       string `yaml:"currmove,omitempty"`
	PV             string `yaml:"pv,omitempty"`
	Depth          uint   `yaml:"depth"`
	SelDepth       uint   `yaml:"seldepth"`
	MultiPV        uint   `yaml:"multipv"`
	CurrMoveNumber uint   `yaml:"currmovenumber"`
	HashFull       uint   `yaml:"hashfull"`
	CPULoad        uint   `yaml:"cpuload"`
	Nodes          uint64 `yaml:"nodes"`
	NPS            uint64 `yaml:"nps"`
	TBHits         uint64 `yaml:"tbhits"`
	Time           uint64 `yaml:"time"`
	CP             *int32 `yaml:"cp,omitempty"`
	Mate           *int32 `yaml:"mate,omitempty"`
	ScoreType      string `yaml:"scoretype"`
}

// MarshalYAML renders the record as a flat key-value document.
func (i Info) MarshalYAML() (interface{}, error) {
	doc := infoDocument{
		Done:           i.Done,
		Bestmove:       i.bestmove.String(),
		Ponder:         i.ponder.String(),
		CurrMove:       i.currmove.String(),
		PV:             i.pv.String(),
		Depth:          i.Depth,
		SelDepth:       i.SelDepth,
		MultiPV:        i.MultiPV,
		CurrMoveNumber: i.CurrMoveNumber,
		HashFull:       i.HashFull,
		CPULoad:        i.CPULoad,
		Nodes:          i.Nodes,
		NPS:            i.NPS,
		TBHits:         i.TBHits,
		Time:           i.Time,
		ScoreType:      i.ScoreType.String(),
	}

	v := i.Score.Value
	switch i.Score.Kind {
	case ScoreMate:
		doc.Mate = &v
	default:
		doc.CP = &v
	}

	return doc, nil
}

// UnmarshalYAML restores a record from its flat key-value document.
func (i *Info) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc infoDocument
	if err := unmarshal(&doc); err != nil {
		return err
	}

	*i = Info{
		Done:           doc.Done,
		Depth:          doc.Depth,
		SelDepth:       doc.SelDepth,
		MultiPV:        doc.MultiPV,
		CurrMoveNumber: doc.CurrMoveNumber,
		HashFull:       doc.HashFull,
		CPULoad:        doc.CPULoad,
		Nodes:          doc.Nodes,
		NPS:            doc.NPS,
		TBHits:         doc.TBHits,
		Time:           doc.Time,
	}
	i.bestmove.Set(doc.Bestmove)
	i.ponder.Set(doc.Ponder)
	i.currmove.Set(doc.CurrMove)
	i.pv.Set(doc.PV)

	switch {
	case doc.Mate != nil:
		i.Score = MateIn(*doc.Mate)
	case doc.CP != nil:
		i.Score = Cp(*doc.CP)
	}

	scoreType, err := parseScoreType(doc.ScoreType)
	if err != nil {
		return err
	}
	i.ScoreType = scoreType

	return nil
}

func parseScoreType(s string) (ScoreType, error) {
	switch s {
	case "", "exact":
		return Exact, nil
	case "lowerbound":
		return Lowerbound, nil
	case "upperbound":
		return Upperbound, nil
	default:
		return Exact, fmt.Errorf("unknown scoretype %q", s)
	}
}
