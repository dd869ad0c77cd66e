package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SplatGenerator synthesizes a short wet thud: decaying noise over a pitch
// drop. It never ends on its own; wrap it in beep.Take.
type SplatGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
}

func newSplatGenerator(sr beep.SampleRate) *SplatGenerator {
	return &SplatGenerator{sr: sr, seed: 0x2545f491}
}

func (g *SplatGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 18)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		freq := 180 * math.Exp(-t*6)
		thud := math.Sin(2 * math.Pi * freq * t)

		sample := envelope * (0.35*noise + 0.5*thud)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SplatGenerator) Err() error {
	return nil
}

// MusicGenerator synthesizes an endless plucked arpeggio.
type MusicGenerator struct {
	sr   beep.SampleRate
	pos  int
	note int
}

// A minor pentatonic, one octave plus the root.
var arpeggio = []float64{220.00, 261.63, 293.66, 329.63, 392.00, 440.00, 392.00, 329.63}

func newMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{sr: sr, note: sr.N(250 * time.Millisecond)}
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := g.pos / g.note
		freq := arpeggio[step%len(arpeggio)]
		t := float64(g.pos%g.note) / float64(g.sr)

		pluck := math.Exp(-t*6) * math.Sin(2*math.Pi*freq*t)
		bass := 0.3 * math.Sin(2*math.Pi*arpeggio[0]/2*float64(g.pos)/float64(g.sr))

		sample := 0.4*pluck + 0.2*bass

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}
