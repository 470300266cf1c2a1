package selfplay

import (
	"encoding/json"
	"io"
)

// jsonRecord is the on-disk shape of one Position, independent of the
// move type M so it can be unmarshalled generically downstream. GameEnd
// marks a per-game sentinel record rather than a position: it carries no
// Encoded/Policy/Value, only GameIndex, so a reader can split the stream
// back into games without counting positions itself.
type jsonRecord struct {
	GameIndex int                `json:"game_index"`
	Encoded   []float32          `json:"encoded,omitempty"`
	Policy    map[string]float32 `json:"policy,omitempty"`
	Value     float32            `json:"value,omitempty"`
	GameEnd   bool               `json:"game_end,omitempty"`
}

// JSONLSink writes one JSON object per line, one line per position across
// every simulation plus a closing sentinel line per game — the
// newline-delimited layout a training pipeline would stream rather than
// load as one giant array. Grounded on Elvenson-alphabeth/agogo.go's use
// of encoding/json for its meta.json (gob is reserved there for the model
// weights themselves, which this module has none of).
type JSONLSink[M comparable] struct {
	w         io.WriteCloser
	enc       *json.Encoder
	moveLabel func(M) string
	nextGame  int
}

// NewJSONLSink wraps w (typically an *os.File) and moveLabel, which
// stringifies a move for the JSON policy map's keys.
func NewJSONLSink[M comparable](w io.WriteCloser, moveLabel func(M) string) *JSONLSink[M] {
	return &JSONLSink[M]{w: w, enc: json.NewEncoder(w), moveLabel: moveLabel}
}

// Write emits one line per position in sim followed by one GameEnd
// sentinel line, all tagged with the same GameIndex — the boundary marker
// a reader needs to recover "exactly N games" from the flat stream.
func (s *JSONLSink[M]) Write(sim Simulation[M]) error {
	idx := s.nextGame
	s.nextGame++

	for _, pos := range sim.Positions {
		policy := make(map[string]float32, len(pos.Policy))
		for _, mv := range pos.Policy {
			policy[s.moveLabel(mv.Move)] = mv.Share
		}
		rec := jsonRecord{GameIndex: idx, Encoded: pos.Encoded, Policy: policy, Value: pos.Value}
		if err := s.enc.Encode(rec); err != nil {
			return err
		}
	}
	return s.enc.Encode(jsonRecord{GameIndex: idx, GameEnd: true})
}

func (s *JSONLSink[M]) Close() error {
	return s.w.Close()
}
