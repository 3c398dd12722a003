package dataset

import (
	"context"
	"errors"
	"math/rand"
)

// StreamOptions configures a repeated, shuffled sample stream.
type StreamOptions struct {
	// Repeat is the number of passes over the samples; values <= 0 mean 1.
	Repeat int
	// ShuffleBuffer bounds the shuffle window. Values <= 1 keep input order.
	ShuffleBuffer int
	Seed          int64
}

// StartStream launches a producer that emits samples Repeat times through a
// bounded shuffle buffer. The channel is closed once every sample was sent or
// ctx is done.
func StartStream(ctx context.Context, samples []Sample, opts StreamOptions) (<-chan Sample, error) {
	if len(samples) == 0 {
		return nil, errors.New("stream: no samples provided")
	}
	if opts.Repeat <= 0 {
		opts.Repeat = 1
	}

	out := make(chan Sample, 64)
	go func() {
		defer close(out)
		src := repeated(samples, opts.Repeat)
		if opts.ShuffleBuffer <= 1 {
			for i := 0; i < src.len(); i++ {
				if !send(ctx, out, src.at(i)) {
					return
				}
			}
			return
		}
		shuffleInto(ctx, out, src, opts.ShuffleBuffer, rand.New(rand.NewSource(opts.Seed)))
	}()
	return out, nil
}

type repeatedView struct {
	samples []Sample
	times   int
}

func repeated(samples []Sample, times int) repeatedView {
	return repeatedView{samples: samples, times: times}
}

func (r repeatedView) len() int { return len(r.samples) * r.times }

func (r repeatedView) at(i int) Sample { return r.samples[i%len(r.samples)] }

// shuffleInto keeps a window of up to size pending samples, emits a random
// slot and refills that slot from the source. Once the source runs dry the
// window drains in random order.
func shuffleInto(ctx context.Context, out chan<- Sample, src repeatedView, size int, rng *rand.Rand) {
	total := src.len()
	window := make([]Sample, 0, size)
	next := 0
	for next < total && len(window) < size {
		window = append(window, src.at(next))
		next++
	}
	for len(window) > 0 {
		slot := rng.Intn(len(window))
		if !send(ctx, out, window[slot]) {
			return
		}
		if next < total {
			window[slot] = src.at(next)
			next++
			continue
		}
		last := len(window) - 1
		window[slot] = window[last]
		window = window[:last]
	}
}

func send(ctx context.Context, out chan<- Sample, s Sample) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- s:
		return true
	}
}
