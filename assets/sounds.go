package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"gopkg.in/yaml.v3"
)

const soundBankFile = "sounds.yaml"

// Tone is a single synthesized cue. Freq glides linearly to Sweep when Sweep
// is set.
type Tone struct {
	Wave    string  `yaml:"wave"`
	Freq    float64 `yaml:"freq"`
	Sweep   float64 `yaml:"sweep"`
	Seconds float64 `yaml:"seconds"`
	Volume  float64 `yaml:"volume"`
	File    string  `yaml:"file"`
}

// Track is a looping sequence of equal-length notes.
type Track struct {
	Wave        string    `yaml:"wave"`
	NoteSeconds float64   `yaml:"note_seconds"`
	Volume      float64   `yaml:"volume"`
	Notes       []float64 `yaml:"notes"`
}

type SoundBank struct {
	Cues  map[string]Tone  `yaml:"cues"`
	Music map[string]Track `yaml:"music"`
}

// LoadSoundBank decodes the embedded sound bank.
func LoadSoundBank() (*SoundBank, error) {
	b, err := LoadFile(soundBankFile)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", soundBankFile, err)
	}
	return ParseSoundBank(b)
}

func ParseSoundBank(b []byte) (*SoundBank, error) {
	var bank SoundBank
	if err := yaml.Unmarshal(b, &bank); err != nil {
		return nil, fmt.Errorf("assets: decode sound bank: %w", err)
	}
	for name, cue := range bank.Cues {
		if cue.File == "" && (cue.Freq <= 0 || cue.Seconds <= 0) {
			return nil, fmt.Errorf("assets: cue %q: freq and seconds must be positive", name)
		}
	}
	for name, track := range bank.Music {
		if track.NoteSeconds <= 0 || len(track.Notes) == 0 {
			return nil, fmt.Errorf("assets: track %q: needs notes and note_seconds", name)
		}
	}
	return &bank, nil
}

// PCM renders the tone as 16-bit little-endian stereo at SampleRate.
func (t Tone) PCM() []byte {
	n := int(t.Seconds * SampleRate)
	out := make([]byte, 0, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq
		if t.Sweep > 0 {
			freq += (t.Sweep - t.Freq) * progress
		}
		phase += freq / SampleRate
		// Linear fade-out keeps the end of the cue from clicking.
		sample := oscillate(t.Wave, phase) * volume(t.Volume) * (1 - progress)
		out = appendSample(out, sample)
	}
	return out
}

// PCM renders one pass of the track.
func (t Track) PCM() []byte {
	perNote := int(t.NoteSeconds * SampleRate)
	out := make([]byte, 0, perNote*len(t.Notes)*4)
	for _, freq := range t.Notes {
		phase := 0.0
		for i := 0; i < perNote; i++ {
			phase += freq / SampleRate
			env := noteEnvelope(float64(i) / float64(perNote))
			out = appendSample(out, oscillate(t.Wave, phase)*volume(t.Volume)*env)
		}
	}
	return out
}

// NewCuePlayer builds a player for a cue, decoding File when set.
func NewCuePlayer(name string, t Tone) (*audio.Player, error) {
	if t.File != "" {
		b, err := LoadFile(t.File)
		if err != nil {
			return nil, fmt.Errorf("assets: cue %q: %w", name, err)
		}
		return LoadAudioPlayer(t.File, b)
	}
	return LoadAudioPlayer(name, t.PCM())
}

// NewMusicPlayer builds a player that loops the track forever.
func NewMusicPlayer(t Track) (*audio.Player, error) {
	pcm := t.PCM()
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	return AudioContext().NewPlayer(loop)
}

func oscillate(wave string, phase float64) float64 {
	frac := phase - math.Floor(phase)
	switch strings.ToLower(wave) {
	case "square":
		if frac < 0.5 {
			return 1
		}
		return -1
	case "triangle":
		return 4*math.Abs(frac-0.5) - 1
	case "saw":
		return 2*frac - 1
	}
	return math.Sin(2 * math.Pi * frac)
}

func noteEnvelope(p float64) float64 {
	const attack = 0.05
	if p < attack {
		return p / attack
	}
	return 1 - 0.6*(p-attack)/(1-attack)
}

func volume(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}

func appendSample(out []byte, s float64) []byte {
	s = math.Max(-1, math.Min(1, s))
	v := uint16(int16(s * math.MaxInt16))
	out = binary.LittleEndian.AppendUint16(out, v)
	return binary.LittleEndian.AppendUint16(out, v)
}
