package piece

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// A Bag deals pieces seven at a time: each refill is a shuffled
// permutation of all seven kinds, so every kind shows up exactly once per
// refill.
type Bag struct {
	rng     *frand.RNG
	pending []Kind
	dealt   int
}

// NewBag makes a bag whose sequence is fully determined by seed.
func NewBag(seed uint64) *Bag {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return &Bag{rng: frand.NewCustom(key, 1024, 12)}
}

// NewRandomBag makes a bag seeded from the system entropy source.
func NewRandomBag() (*Bag, uint64) {
	// Never 0, since a 0 seed means "pick a random one" to game.Options.
	seed := frand.Uint64n(1<<63-1) + 1
	return NewBag(seed), seed
}

func (b *Bag) refill() {
	perm := b.rng.Perm(NumKinds)
	for _, idx := range perm {
		b.pending = append(b.pending, Kind(idx))
	}
}

// Next deals the next kind, refilling the bag when it runs out.
func (b *Bag) Next() Kind {
	if len(b.pending) == 0 {
		b.refill()
	}
	k := b.pending[0]
	b.pending = b.pending[1:]
	b.dealt++
	return k
}

// Peek returns the kinds left in the current refill without dealing them.
func (b *Bag) Peek() []Kind {
	ret := make([]Kind, len(b.pending))
	copy(ret, b.pending)
	return ret
}

// Dealt is the number of pieces dealt so far.
func (b *Bag) Dealt() int {
	return b.dealt
}
