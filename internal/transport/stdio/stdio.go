// Package stdio implements the newline-delimited JSON stdio transport
// (spec §4.7). One reader loop parses lines from stdin and dispatches each on
// its own goroutine; writes to stdout are serialized through a mutex so no
// two responses interleave, even with multiple requests in flight.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/go-logr/logr"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/rpc"
)

// Transport runs the dispatcher loop over stdin/stdout.
type Transport struct {
	in  io.Reader
	out io.Writer
	log logr.Logger

	writeMu sync.Mutex
}

// New creates a Transport over the given reader/writer (normally os.Stdin /
// os.Stdout; overridable for tests).
func New(in io.Reader, out io.Writer, log logr.Logger) *Transport {
	return &Transport{in: in, out: out, log: log}
}

// Serve reads newline-delimited JSON messages until EOF or ctx is canceled,
// dispatching each on its own goroutine (spec §5: "multiple requests may be
// in flight"). Responses are written atomically and in the order they
// complete, not necessarily request order (spec §4.6/§5 ordering guarantees).
func (t *Transport) Serve(ctx context.Context, d *rpc.Dispatcher) error {
	sess := rpc.NewSession()
	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		// Copy the line: scanner.Bytes() is reused on the next Scan call and
		// the dispatch below may run concurrently with the next read.
		msg := make([]byte, len(line))
		copy(msg, line)

		req, parseErr := decode(msg)
		if parseErr != nil {
			t.writeResponse(rpc.NewError(nil, rpc.CodeParseError, "Parse error", parseErr.Error()))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := d.Handle(ctx, sess, req)
			if resp != nil {
				t.writeResponse(resp)
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

func decode(line []byte) (*rpc.Request, error) {
	var req rpc.Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// writeResponse serializes resp as one JSON object followed by a single
// newline, flushing immediately, with writes serialized through writeMu so
// no two responses' bytes interleave (spec §4.7, §8 transport properties).
func (t *Transport) writeResponse(resp *rpc.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		t.log.Error(err, "failed to marshal response")
		return
	}
	data = append(data, '\n')

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := t.out.Write(data); err != nil {
		t.log.Error(err, "failed to write response")
		return
	}
	if f, ok := t.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	if f, ok := t.out.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}
