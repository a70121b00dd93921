package pack

import (
	"math/rand/v2"

	"github.com/matzehuels/leftysay/pkg/errors"
)

// Picker chooses images and messages. A seeded picker is reproducible:
// the same seed over the same pack always yields the same choices.
type Picker struct {
	rng *rand.Rand
}

// NewPicker returns a picker seeded with seed.
func NewPicker(seed uint64) *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomPicker returns an unseeded picker.
func NewRandomPicker() *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Index returns a value in [0, n). n must be positive.
func (p *Picker) Index(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeNoImages, "nothing to pick from")
	}
	return p.rng.IntN(n), nil
}

// Image picks one of the pack's images.
func (p *Picker) Image(pk *Pack) (string, error) {
	i, err := p.Index(len(pk.Images))
	if err != nil {
		return "", errors.New(errors.ErrCodeNoImages, "pack %s has no images", pk.Name)
	}
	return pk.Images[i], nil
}

// Message picks one of the pack's messages, or "" if it has none.
func (p *Picker) Message(pk *Pack) string {
	if pk == nil || len(pk.Messages) == 0 {
		return ""
	}
	i, _ := p.Index(len(pk.Messages))
	return pk.Messages[i]
}
