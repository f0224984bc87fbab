package vector

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/serieskit/pkg/index"
	"github.com/ajitpratap0/serieskit/pkg/na"
)

// Factorizer assigns dense int32 codes to distinct labels. It is safe for
// concurrent use; codes are handed out in first-seen order.
type Factorizer struct {
	mu     sync.Mutex
	codes  map[any]int32
	labels []any
}

// NewFactorizer returns an empty Factorizer.
func NewFactorizer() *Factorizer {
	return &Factorizer{codes: make(map[any]int32)}
}

// Code returns the code of label, assigning the next code when label is new.
// NA maps to the int32 NA.
func (f *Factorizer) Code(label any) (int32, error) {
	if na.Is(label) {
		return na.Int32, nil
	}
	key, err := index.Normalize(label)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.codes[key]; ok {
		return c, nil
	}
	c := int32(len(f.labels))
	f.codes[key] = c
	f.labels = append(f.labels, label)
	return c, nil
}

// Len returns the number of distinct labels seen.
func (f *Factorizer) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.labels)
}

// Labels returns the labels in code order.
func (f *Factorizer) Labels() *Vector {
	f.mu.Lock()
	labels := append([]any(nil), f.labels...)
	f.mu.Unlock()
	return Of(labels...)
}

// Factorize returns an Int vector of the codes of v's values, keyed like v.
func (f *Factorizer) Factorize(v *Vector) (*Vector, error) {
	codes := make([]int32, v.Len())
	for i := range codes {
		c, err := f.Code(v.col.Get(i))
		if err != nil {
			return nil, err
		}
		codes[i] = c
	}
	out := Ints(codes...)
	out.idx = v.idx
	return out, nil
}

// FactorizeAll factorizes every vector concurrently against the shared label
// map. The first error cancels the remaining work.
func (f *Factorizer) FactorizeAll(ctx context.Context, vs ...*Vector) ([]*Vector, error) {
	out := make([]*Vector, len(vs))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range vs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			codes, err := f.Factorize(v)
			if err != nil {
				return err
			}
			out[i] = codes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
