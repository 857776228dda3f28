/*
Package hostipc implements the msgpack IPC contract between the decoding
engine and its host application (an on-screen keyboard, an editor
extension, whatever process is tracking the finger or stylus).

The server operates on a request/response model: the host writes a
length-prefixed msgpack DecodeRequest to the engine's stdin and reads a
length-prefixed msgpack DecodeResponse back from stdout. Framing is a
4-byte big-endian length prefix followed by that many bytes of msgpack
payload, since msgpack streams are not self-delimiting the way
newline-terminated JSON is.

A decode request carries the full sampled path plus optional preceding
context for language-model reranking:

	{id: "req_001", points: [{x:0.1,y:0.2,t:0.0}, ...], context: "hello"}

The response carries the ranked candidates:

	{id: "req_001", candidates: [{word:"query", score:0.91}, ...], time_us: 812}

Session control messages (begin/continue/end) let the host stream a
gesture point by point instead of buffering the whole path itself,
mirroring how the capture state machine in pkg/gesture works.
*/
package hostipc

// DecodePoint is one sampled point of a finger/stylus path.
type DecodePoint struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	T float64 `msgpack:"t"`
}

// DecodeRequest asks the engine to decode a complete gesture path.
type DecodeRequest struct {
	ID      string        `msgpack:"id"`
	Points  []DecodePoint `msgpack:"points"`
	Context string        `msgpack:"context,omitempty"`
}

// CandidateResult is one ranked word candidate in a DecodeResponse.
type CandidateResult struct {
	Word      string  `msgpack:"word"`
	Score     float64 `msgpack:"score"`
	Geometric float64 `msgpack:"geometric"`
	Language  float64 `msgpack:"language"`
	WordID    int32   `msgpack:"word_id"`
}

// DecodeResponse carries the ranked candidates for a DecodeRequest.
type DecodeResponse struct {
	ID          string            `msgpack:"id"`
	Candidates  []CandidateResult `msgpack:"candidates"`
	Count       int               `msgpack:"count"`
	TimeTakenUs int64             `msgpack:"time_us"`
}

// SessionRequest drives the incremental capture state machine for hosts
// that stream points as they happen instead of buffering a full path.
type SessionRequest struct {
	ID      string      `msgpack:"id"`
	Action  string      `msgpack:"action"` // "begin", "continue", "end"
	Point   DecodePoint `msgpack:"point"`
	Context string      `msgpack:"context,omitempty"`
}

// SessionResponse acknowledges a SessionRequest. Candidates is populated
// only for an "end" action, once the full gesture has been decoded.
type SessionResponse struct {
	ID         string            `msgpack:"id"`
	Status     string            `msgpack:"status"`
	Error      string            `msgpack:"error,omitempty"`
	Candidates []CandidateResult `msgpack:"candidates,omitempty"`
}

// ErrorResponse holds basic error information for a malformed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
	Code  int    `msgpack:"code"`
}
