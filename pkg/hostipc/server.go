package hostipc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/internal/logger"
	"github.com/glidetype/inputengine/pkg/decoder"
	"github.com/glidetype/inputengine/pkg/gesture"
)

// maxMessageBytes bounds a single incoming frame, guarding against a
// corrupt length prefix turning into an unbounded allocation.
const maxMessageBytes = 4 << 20

// Server handles msgpack IPC for the decoding engine over stdin/stdout.
// Each frame is a 4-byte big-endian length prefix followed by that many
// bytes of msgpack payload.
type Server struct {
	decoder  *decoder.Decoder
	sessions map[string]*gesture.Session

	reader *bufio.Reader
	writer io.Writer
	log    *log.Logger
}

// NewServer builds a Server around a ready-to-use Decoder.
func NewServer(d *decoder.Decoder) *Server {
	return &Server{
		decoder:  d,
		sessions: make(map[string]*gesture.Session),
		reader:   bufio.NewReader(os.Stdin),
		writer:   os.Stdout,
		log:      logger.Default("hostipc"),
	}
}

// Start reads frames from stdin until EOF, dispatching each to the
// matching handler and writing a response frame back to stdout.
func (s *Server) Start() error {
	s.log.Debug("starting hostipc server")

	for {
		payload, err := readFrame(s.reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("reading frame: %v", err)
			return err
		}

		s.dispatch(payload)
	}
}

// dispatch peeks at the payload to decide whether it is a DecodeRequest
// or a SessionRequest: a payload with a non-empty action field is handled
// as a SessionRequest, anything else as a DecodeRequest.
func (s *Server) dispatch(payload []byte) {
	var probe struct {
		Action string `msgpack:"action"`
	}
	if err := msgpack.Unmarshal(payload, &probe); err == nil && probe.Action != "" {
		var req SessionRequest
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.sendError("", "malformed session request", 400)
			return
		}
		s.handleSession(req)
		return
	}

	var req DecodeRequest
	if err := msgpack.Unmarshal(payload, &req); err != nil {
		s.sendError("", "malformed decode request", 400)
		return
	}
	s.handleDecode(req)
}

func (s *Server) handleDecode(req DecodeRequest) {
	if len(req.Points) < 2 {
		s.sendError(req.ID, "at least two points required", 400)
		return
	}

	path := make([]geo.Point, len(req.Points))
	for i, p := range req.Points {
		path[i] = geo.Clamp01(geo.Point{X: float32(p.X), Y: float32(p.Y)})
	}

	start := time.Now()
	candidates := s.decoder.Decode(path, req.Context)
	elapsed := time.Since(start)

	resp := DecodeResponse{
		ID:          req.ID,
		Candidates:  toCandidateResults(candidates),
		Count:       len(candidates),
		TimeTakenUs: elapsed.Microseconds(),
	}
	s.send(resp)
}

func (s *Server) handleSession(req SessionRequest) {
	p := geo.Clamp01(geo.Point{X: float32(req.Point.X), Y: float32(req.Point.Y)})

	switch req.Action {
	case "begin":
		sess := gesture.NewSession()
		sess.Begin(p, req.Point.T)
		s.sessions[req.ID] = sess
		s.send(SessionResponse{ID: req.ID, Status: "capturing"})

	case "continue":
		sess, ok := s.sessions[req.ID]
		if !ok {
			s.sendSessionError(req.ID, "unknown session")
			return
		}
		if err := sess.Continue(p, req.Point.T); err != nil {
			s.sendSessionError(req.ID, err.Error())
			return
		}
		s.send(SessionResponse{ID: req.ID, Status: "capturing"})

	case "end":
		sess, ok := s.sessions[req.ID]
		if !ok {
			s.sendSessionError(req.ID, "unknown session")
			return
		}
		delete(s.sessions, req.ID)

		g, err := sess.End(p, req.Point.T)
		if err != nil {
			s.sendSessionError(req.ID, err.Error())
			return
		}

		candidates := s.decoder.Decode(g.Path(), req.Context)
		s.send(SessionResponse{
			ID:         req.ID,
			Status:     "done",
			Candidates: toCandidateResults(candidates),
		})

	default:
		s.sendSessionError(req.ID, fmt.Sprintf("unknown action: %s", req.Action))
	}
}

func toCandidateResults(candidates []decoder.Candidate) []CandidateResult {
	out := make([]CandidateResult, len(candidates))
	for i, c := range candidates {
		out[i] = CandidateResult{
			Word:      c.Word,
			Score:     c.Combined,
			Geometric: c.Geometric,
			Language:  c.Language,
			WordID:    c.WordID,
		}
	}
	return out
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func (s *Server) sendSessionError(id, message string) {
	s.send(SessionResponse{ID: id, Status: "error", Error: message})
}

// send encodes response as msgpack and writes it as a length-prefixed
// frame to the server's writer.
func (s *Server) send(response interface{}) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		s.log.Errorf("marshaling response: %v", err)
		return
	}
	if err := writeFrame(s.writer, data); err != nil {
		s.log.Errorf("writing frame: %v", err)
	}
}

func readFrame(r *bufio.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxMessageBytes {
		return nil, fmt.Errorf("hostipc: frame of %d bytes exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
