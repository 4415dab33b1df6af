package comm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/npadmana/Kernels/comm"
)

// TestSendRecvPair moves one tagged payload between two ranks and verifies
// the send-side copy semantics.
func TestSendRecvPair(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		const tag = 3
		switch r.ID() {
		case 0:
			out := []float64{1, 2, 3}
			if err := r.Send(1, tag, out); err != nil {
				return err
			}
			// Sender may scribble on its buffer immediately after Send.
			out[0] = -99
		case 1:
			in := make([]float64, 3)
			rv := r.StartRecv(0, tag, in)
			if err := rv.Wait(); err != nil {
				return err
			}
			require.Equal(t, []float64{1, 2, 3}, in)
		}
		return nil
	})
	require.NoError(t, err)
}

// TestRecvTagMismatch verifies a wrong tag is a protocol error.
func TestRecvTagMismatch(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		switch r.ID() {
		case 0:
			return r.Send(1, 7, []float64{1})
		case 1:
			rv := r.StartRecv(0, 8, make([]float64, 1))
			werr := rv.Wait()
			require.ErrorIs(t, werr, comm.ErrTagMismatch)
		}
		return nil
	})
	require.NoError(t, err)
}

// TestRecvLengthMismatch verifies a short posted buffer is a protocol error.
func TestRecvLengthMismatch(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		switch r.ID() {
		case 0:
			return r.Send(1, 1, []float64{1, 2, 3})
		case 1:
			rv := r.StartRecv(0, 1, make([]float64, 2))
			werr := rv.Wait()
			require.ErrorIs(t, werr, comm.ErrLengthMismatch)
		}
		return nil
	})
	require.NoError(t, err)
}

// TestBadPeer verifies self-sends and out-of-world peers are rejected.
func TestBadPeer(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		require.ErrorIs(t, r.Send(r.ID(), 0, nil), comm.ErrBadPeer)
		require.ErrorIs(t, r.Send(99, 0, nil), comm.ErrBadPeer)
		require.ErrorIs(t, r.StartRecv(-1, 0, nil).Wait(), comm.ErrBadPeer)
		return nil
	})
	require.NoError(t, err)
}

// TestSendRecvCombined exercises the synchronous exchange on a full ring:
// every rank sends its id right and receives from the left, simultaneously.
func TestSendRecvCombined(t *testing.T) {
	const size = 4
	w, err := comm.NewWorld(size)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		right := (r.ID() + 1) % size
		left := (r.ID() + size - 1) % size
		out := []float64{float64(r.ID())}
		in := make([]float64, 1)
		if err := r.SendRecv(right, out, left, in, 5); err != nil {
			return err
		}
		require.Equal(t, float64(left), in[0])
		return nil
	})
	require.NoError(t, err)
}

// TestPhasedRingExchange runs the transpose kernel's ring schedule shape:
// size-1 phases, phase-tagged, receive posted before the matching send.
func TestPhasedRingExchange(t *testing.T) {
	const size = 4
	w, err := comm.NewWorld(size)
	require.NoError(t, err)

	err = w.Run(context.Background(), func(r *comm.Rank) error {
		for phase := 1; phase < size; phase++ {
			recvFrom := (r.ID() + phase) % size
			sendTo := (r.ID() - phase + size) % size
			in := make([]float64, 2)
			rv := r.StartRecv(recvFrom, phase, in)
			out := []float64{float64(r.ID()), float64(phase)}
			if err := r.Send(sendTo, phase, out); err != nil {
				return err
			}
			if err := rv.Wait(); err != nil {
				return err
			}
			require.Equal(t, float64(recvFrom), in[0], "phase %d", phase)
			require.Equal(t, float64(phase), in[1], "phase %d", phase)
		}
		return nil
	})
	require.NoError(t, err)
}
