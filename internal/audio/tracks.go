package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/flap/internal/config"
)

// gameOverLength is the length of the synthesized game-over sound.
const gameOverLength = 900 * time.Millisecond

// tracks holds decoded audio files. A nil buffer falls back to the
// synthesized track.
type tracks struct {
	musicBuf    *beep.Buffer
	gameOverBuf *beep.Buffer
}

// music returns a fresh, endless music stream.
func (t tracks) music() beep.Streamer {
	if t.musicBuf != nil {
		return beep.Loop(-1, t.musicBuf.Streamer(0, t.musicBuf.Len()))
	}
	return NewMelodyGenerator(sampleRate)
}

// gameOver returns a fresh, finite game-over stream.
func (t tracks) gameOver() beep.Streamer {
	if t.gameOverBuf != nil {
		return t.gameOverBuf.Streamer(0, t.gameOverBuf.Len())
	}
	return beep.Take(sampleRate.N(gameOverLength), NewFallGenerator(sampleRate))
}

// loadTracks decodes the configured WAV or MP3 files. Missing or broken files
// are logged and replaced by synthesized tracks.
func loadTracks(cfg config.Audio, logger *log.Logger) tracks {
	var t tracks

	if cfg.MusicTrack != "" {
		buf, err := loadTrack(cfg.MusicTrack)
		if err != nil {
			logger.Warn("could not load music track", "path", cfg.MusicTrack, "err", err)
		} else {
			t.musicBuf = buf
		}
	}

	if cfg.GameOverTrack != "" {
		buf, err := loadTrack(cfg.GameOverTrack)
		if err != nil {
			logger.Warn("could not load game-over track", "path", cfg.GameOverTrack, "err", err)
		} else {
			t.gameOverBuf = buf
		}
	}

	return t
}

// loadTrack decodes a WAV or MP3 file, picked by extension, into memory
// at the player's sample rate.
func loadTrack(path string) (*beep.Buffer, error) {
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	default:
		return nil, fmt.Errorf("audio: unsupported track format %q", ext)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open track: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: %s is empty", path)
	}
	return buf, nil
}

// melody is a looping arpeggio in semitones above A3.
var melody = []int{0, 7, 12, 7, 3, 10, 15, 10, 5, 12, 17, 12, 7, 14, 19, 14}

// MelodyGenerator generates the endless background music.
type MelodyGenerator struct {
	sr       beep.SampleRate
	pos      int
	noteSize int
}

// NewMelodyGenerator creates a music generator
func NewMelodyGenerator(sr beep.SampleRate) *MelodyGenerator {
	return &MelodyGenerator{
		sr:       sr,
		noteSize: sr.N(180 * time.Millisecond),
	}
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := melody[(g.pos/g.noteSize)%len(melody)]
		freq := 220 * math.Pow(2, float64(note)/12)

		notePos := g.pos % g.noteSize
		t := float64(g.pos) / float64(g.sr)

		// Pluck envelope per note
		envelope := math.Exp(-float64(notePos) / float64(g.noteSize) * 4)

		// Soft square: fundamental plus odd harmonics
		sample := math.Sin(2*math.Pi*freq*t) +
			math.Sin(2*math.Pi*freq*3*t)/3 +
			math.Sin(2*math.Pi*freq*5*t)/5
		sample *= 0.12 * envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MelodyGenerator) Err() error {
	return nil
}

// FallGenerator generates a descending tone for the end of a run.
type FallGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
}

// NewFallGenerator creates a game-over sound generator
func NewFallGenerator(sr beep.SampleRate) *FallGenerator {
	return &FallGenerator{sr: sr}
}

func (g *FallGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sweep from 660Hz down towards 110Hz
		freq := 110 + 550*math.Exp(-t*3)
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		envelope := math.Exp(-t * 2.5)
		sample := 0.3 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *FallGenerator) Err() error {
	return nil
}
