package comm

import "fmt"

// Send delivers a copy of buf to rank `to`, labeled with tag. The copy is
// taken before the send completes, so the caller may overwrite buf freely
// afterwards. Blocks only if a previous message to the same peer has not
// been received yet.
func (r *Rank) Send(to, tag int, buf []float64) error {
	if err := r.checkPeer(to); err != nil {
		return err
	}
	payload := make([]float64, len(buf))
	copy(payload, buf)
	select {
	case r.world.links[to][r.id] <- packet{tag: tag, data: payload}:
		return nil
	case <-r.ctx.Done():
		return fmt.Errorf("rank %d send to %d (tag %d): %w", r.id, to, tag, ErrAborted)
	}
}

// Recv is a posted receive: the destination buffer and expected (peer, tag)
// are registered up front, and Wait completes the transfer. Posting before
// the partner's matching send is the protocol the exchange schedule relies
// on; the buffered links make it safe either way.
type Recv struct {
	rank *Rank
	from int
	tag  int
	buf  []float64
	err  error
	done bool
}

// StartRecv posts a receive of len(buf) values from rank `from` with the
// given tag. The buffer must not be read until Wait returns nil.
func (r *Rank) StartRecv(from, tag int, buf []float64) *Recv {
	rv := &Recv{rank: r, from: from, tag: tag, buf: buf}
	rv.err = r.checkPeer(from)
	return rv
}

// Wait blocks until the matching message arrives, verifies its tag and
// length, and copies it into the posted buffer. Idempotent: repeated calls
// return the first outcome.
func (rv *Recv) Wait() error {
	if rv.done || rv.err != nil {
		rv.done = true
		return rv.err
	}
	rv.done = true
	r := rv.rank
	select {
	case pkt := <-r.world.links[r.id][rv.from]:
		if pkt.tag != rv.tag {
			rv.err = fmt.Errorf("rank %d recv from %d: want tag %d, got %d: %w",
				r.id, rv.from, rv.tag, pkt.tag, ErrTagMismatch)
			return rv.err
		}
		if len(pkt.data) != len(rv.buf) {
			rv.err = fmt.Errorf("rank %d recv from %d (tag %d): want %d values, got %d: %w",
				r.id, rv.from, rv.tag, len(rv.buf), len(pkt.data), ErrLengthMismatch)
			return rv.err
		}
		copy(rv.buf, pkt.data)
		return nil
	case <-r.ctx.Done():
		rv.err = fmt.Errorf("rank %d recv from %d (tag %d): %w", r.id, rv.from, rv.tag, ErrAborted)
		return rv.err
	}
}

// SendRecv performs a combined exchange: send out to rank `to` and receive
// into in from rank `from`, both labeled with tag, returning once both
// transfers complete. The synchronous alternative to StartRecv/Send/Wait.
func (r *Rank) SendRecv(to int, out []float64, from int, in []float64, tag int) error {
	rv := r.StartRecv(from, tag, in)
	if err := r.Send(to, tag, out); err != nil {
		return err
	}
	return rv.Wait()
}
