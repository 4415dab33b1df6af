package transpose

import (
	"fmt"
	"math"
	"time"

	"github.com/npadmana/Kernels/colblock"
	"github.com/npadmana/Kernels/comm"
	"github.com/npadmana/Kernels/workpool"
)

// Runner executes the benchmark on one rank. Construction validates the
// configuration and performs all allocation behind the world's Agree gate,
// so a failure on any rank aborts every rank before the run starts.
type Runner struct {
	plan *Plan
	opts Options
	rank *comm.Rank
	pool *workpool.Pool

	// a holds this rank's columns of the original matrix, b the transposed
	// result; both order×BlockOrder, column-major.
	a, b *colblock.ColBlock
	// workOut stages the Block in flight to this phase's partner, workIn
	// lands the Block arriving from the other partner. Two halves of one
	// backing slice, owned exclusively by the phase loop, nil when Procs==1.
	workIn, workOut *colblock.ColBlock

	stage    localTranspose
	exchange func(phase int) error
}

// NewRunner builds the per-rank state for a transpose of the given order.
// Configuration errors and allocation failures on any rank surface on every
// rank: the local outcome passes through comm.Agree before the runner is
// considered live.
func NewRunner(rank *comm.Rank, order int, opts Options) (*Runner, error) {
	plan, planErr := NewPlan(order, rank.Size(), rank.ID(), opts)
	if err := rank.Agree(planErr); err != nil {
		return nil, err
	}

	r := &Runner{plan: plan, opts: opts, rank: rank}
	if err := rank.Agree(r.allocate()); err != nil {
		return nil, err
	}

	r.pool = workpool.New(plan.Workers)
	if plan.Tiled() {
		r.stage = tiledTranspose(r.pool, plan.TileOrder, plan.Collapse)
	} else {
		r.stage = untiledTranspose(r.pool)
	}
	if opts.Exchange == Synchronous {
		r.exchange = r.exchangeSynchronous
	} else {
		r.exchange = r.exchangeNonBlocking
	}

	fillColblock(r.pool, r.a, r.b, plan)
	return r, nil
}

// allocate creates the column blocks and, for multi-rank worlds, the
// double-buffered work pair.
func (r *Runner) allocate() error {
	var err error
	if r.a, err = colblock.New(r.plan.Order, r.plan.BlockOrder); err != nil {
		return fmt.Errorf("original matrix: %w", err)
	}
	if r.b, err = colblock.New(r.plan.Order, r.plan.BlockOrder); err != nil {
		return fmt.Errorf("transposed matrix: %w", err)
	}
	if r.plan.Procs > 1 {
		bs := r.plan.BlockOrder * r.plan.BlockOrder
		buf := make([]float64, 2*bs)
		if r.workIn, err = colblock.FromSlice(buf[:bs], r.plan.BlockOrder, r.plan.BlockOrder, r.plan.BlockOrder); err != nil {
			return fmt.Errorf("work buffers: %w", err)
		}
		if r.workOut, err = colblock.FromSlice(buf[bs:], r.plan.BlockOrder, r.plan.BlockOrder, r.plan.BlockOrder); err != nil {
			return fmt.Errorf("work buffers: %w", err)
		}
	}
	return nil
}

// Plan exposes the resolved distribution (tile decision included).
func (r *Runner) Plan() *Plan { return r.plan }

// Close releases the worker team. The runner is unusable afterwards.
func (r *Runner) Close() {
	r.pool.Close()
}

// Run performs Iterations+1 full transposes — the first is warmup and is
// excluded from timing — then verifies B and reduces time (max) and error
// (sum) across the world. Every rank returns the same Result.
// Communication failures are fatal: they are returned as-is, no retry.
func (r *Runner) Run() (*Result, error) {
	var start time.Time
	for iter := 0; iter <= r.opts.Iterations; iter++ {
		// Start the clock after warmup, with all ranks lined up.
		if iter == 1 {
			if err := r.rank.Barrier(); err != nil {
				return nil, err
			}
			start = time.Now()
		}

		r.transposeDiagonal()
		for phase := 1; phase < r.plan.Procs; phase++ {
			if err := r.exchange(phase); err != nil {
				return nil, fmt.Errorf("phase %d: %w", phase, err)
			}
		}
	}
	local := time.Since(start).Seconds()

	maxTime, err := r.rank.MaxFloat64(local)
	if err != nil {
		return nil, err
	}
	totalErr, err := r.rank.SumFloat64(r.verify())
	if err != nil {
		return nil, err
	}

	avg := maxTime / float64(r.opts.Iterations)
	bytes := 2 * elemBytes * float64(r.plan.Order) * float64(r.plan.Order)
	return &Result{
		Plan:      *r.plan,
		Exchange:  r.opts.Exchange,
		Verbose:   r.opts.Verbose,
		Validated: totalErr < Epsilon,
		AbsErr:    totalErr,
		AvgTime:   avg,
		RateMBs:   1.0e-6 * bytes / avg,
	}, nil
}

// transposeDiagonal moves this rank's own Block straight into B: Block
// `Rank` of the Colblock transposes onto itself-shaped rows of the result.
func (r *Runner) transposeDiagonal() {
	src, _ := r.a.Window(r.plan.ColStart, r.plan.BlockOrder)
	dst, _ := r.b.Window(r.plan.ColStart, r.plan.BlockOrder)
	r.stage(dst, src)
}

// exchangeNonBlocking is one phase of the staged communication: post the
// receive (tagged with the phase so a straggler from another phase can never
// match), stage the outgoing Block while that receive is pending, send, wait
// for both, then scatter the arrival into B.
func (r *Runner) exchangeNonBlocking(phase int) error {
	sendTo, recvFrom := r.plan.SendTo(phase), r.plan.RecvFrom(phase)

	rv := r.rank.StartRecv(recvFrom, phase, r.workIn.Data)
	r.stageOutgoing(sendTo)
	if err := r.rank.Send(sendTo, phase, r.workOut.Data); err != nil {
		return err
	}
	if err := rv.Wait(); err != nil {
		return err
	}
	r.scatter(recvFrom)
	return nil
}

// exchangeSynchronous is the combined-call variant: same contract, one fewer
// transfer to track, no overlap between staging and the pending receive.
func (r *Runner) exchangeSynchronous(phase int) error {
	sendTo, recvFrom := r.plan.SendTo(phase), r.plan.RecvFrom(phase)

	r.stageOutgoing(sendTo)
	if err := r.rank.SendRecv(sendTo, r.workOut.Data, recvFrom, r.workIn.Data, phase); err != nil {
		return err
	}
	r.scatter(recvFrom)
	return nil
}

// stageOutgoing transposes Block `dest` of A into the outgoing work buffer.
// The buffer is fully written before the send referencing it is issued.
func (r *Runner) stageOutgoing(dest int) {
	src, _ := r.a.Window(dest*r.plan.BlockOrder, r.plan.BlockOrder)
	r.stage(r.workOut, src)
}

// scatter copies the incoming work buffer into Block `from` of B. Columns of
// the buffer land on columns of B at unit stride, so this is a plain copy
// with no need to tile.
func (r *Runner) scatter(from int) {
	b := r.plan.BlockOrder
	dst, _ := r.b.Window(from*b, b)
	r.pool.ParallelFor(b, func(start, end int) {
		for j := start; j < end; j++ {
			copy(dst.Data[dst.Stride*j:dst.Stride*j+b], r.workIn.Data[j*b:(j+1)*b])
		}
	})
}

// verify scans this rank's B against the closed-form transpose of the fill:
// expected(i,j) = order*i + j + colStart. Serial on purpose — it runs once
// and a fixed summation order keeps the local term deterministic.
func (r *Runner) verify() float64 {
	var abserr float64
	for j := 0; j < r.plan.BlockOrder; j++ {
		expected := float64(j + r.plan.ColStart)
		for i := 0; i < r.plan.Order; i++ {
			abserr += math.Abs(r.b.Data[r.b.Index(i, j)] - expected)
			expected += float64(r.plan.Order)
		}
	}
	return abserr
}
