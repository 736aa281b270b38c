// Package audio plays the background music and the game-over sound.
// Audio is optional: every failure degrades to silence and is only logged.
package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Sink receives the game's audio cues.
type Sink interface {
	Unlock()
	StartMusic()
	StopMusic()
	PlayGameOver()
	StopGameOver()
}

// Follow plays the cues for one frame result: a started run restarts the
// music and silences the game-over sound, an ended run does the reverse.
func Follow(s Sink, res game.FrameResult) {
	if res.Started {
		s.StopGameOver()
		s.StartMusic()
	}
	if res.Ended {
		s.StopMusic()
		s.PlayGameOver()
	}
}

// Nop is a Sink that plays nothing.
type Nop struct{}

func (Nop) Unlock()       {}
func (Nop) StartMusic()   {}
func (Nop) StopMusic()    {}
func (Nop) PlayGameOver() {}
func (Nop) StopGameOver() {}

// output is the audio device. Streamers it plays may only be changed
// while it is locked.
type output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput plays through the system speaker.
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

func (speakerOutput) Lock()   { speaker.Lock() }
func (speakerOutput) Unlock() { speaker.Unlock() }

// sharedOutput initializes the wrapped output at most once; later calls
// report the first result. The speaker refuses a second Init in the same
// process, and every Player shares it.
type sharedOutput struct {
	output
	once sync.Once
	err  error
}

func (s *sharedOutput) Init(sr beep.SampleRate, bufferSize int) error {
	s.once.Do(func() {
		s.err = s.output.Init(sr, bufferSize)
	})
	return s.err
}

var speakerDevice = &sharedOutput{output: speakerOutput{}}

// Player mixes the music and game-over tracks onto the speaker.
// The device is opened lazily by Unlock; cues issued before it is ready
// are remembered and applied once it is.
type Player struct {
	mu       sync.Mutex
	cfg      config.Audio
	logger   *log.Logger
	out      output
	mixer    *beep.Mixer
	music    *beep.Ctrl
	gameOver *beep.Ctrl
	tracks   tracks

	wantMusic bool
	ready     atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// NewPlayer creates a player for cfg. Nothing is opened until Unlock.
func NewPlayer(cfg config.Audio, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		cfg:    cfg,
		logger: logger,
		out:    speakerDevice,
		mixer:  &beep.Mixer{},
		done:   make(chan struct{}),
	}
}

// Unlock opens the audio device in the background on first call.
// Later calls do nothing. Gameplay never waits for it.
func (p *Player) Unlock() {
	p.once.Do(func() {
		go p.unlock()
	})
}

func (p *Player) unlock() {
	defer close(p.done)

	if !p.cfg.Enabled {
		p.logger.Debug("audio disabled")
		return
	}

	t := loadTracks(p.cfg, p.logger)

	if err := p.out.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable", "err", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracks = t
	p.out.Play(p.mixer)
	p.ready.Store(true)
	p.logger.Debug("audio ready")

	if p.wantMusic {
		p.startMusicLocked()
	}
}

// StartMusic plays the looping music from the beginning.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantMusic = true
	if !p.ready.Load() {
		return
	}
	p.startMusicLocked()
}

func (p *Player) startMusicLocked() {
	p.stop(p.music)
	p.music = &beep.Ctrl{Streamer: p.volume(p.tracks.music())}
	p.add(p.music)
}

// StopMusic pauses the music.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantMusic = false
	p.stop(p.music)
}

// PlayGameOver plays the game-over sound once.
func (p *Player) PlayGameOver() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready.Load() {
		return
	}
	p.stop(p.gameOver)
	p.gameOver = &beep.Ctrl{Streamer: p.volume(p.tracks.gameOver())}
	p.add(p.gameOver)
}

// StopGameOver silences the game-over sound if it is still playing.
func (p *Player) StopGameOver() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stop(p.gameOver)
}

// Close silences everything and empties the mixer. The speaker stays
// open for the life of the process, so the player can serve another game.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stop(p.music)
	p.stop(p.gameOver)
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.wantMusic = false
}

// add starts c on the mixer.
func (p *Player) add(c *beep.Ctrl) {
	p.out.Lock()
	p.mixer.Add(c)
	p.out.Unlock()
}

// stop silences c. A Ctrl without a streamer drains, so the mixer drops it.
func (p *Player) stop(c *beep.Ctrl) {
	if c == nil {
		return
	}
	p.out.Lock()
	c.Paused = true
	c.Streamer = nil
	p.out.Unlock()
}

// volume scales s by the configured linear volume.
func (p *Player) volume(s beep.Streamer) beep.Streamer {
	v := p.cfg.Volume
	if v >= 1 {
		return s
	}
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
