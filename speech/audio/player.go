package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player plays wav artifacts through the system speaker. Pause and resume
// act on the loaded artifact in place; a new Play supersedes whatever is
// currently sounding and delivers a Stopped event to its listener.
type Player struct {
	mu sync.Mutex

	ctrl     *beep.Ctrl
	vol      *effects.Volume
	streamer beep.StreamSeekCloser
	done     chan Event

	playing bool
	paused  bool
	volume  float64

	// gen distinguishes the current playback from superseded ones so a late
	// completion callback cannot double-report.
	gen uint64

	speakerRate  beep.SampleRate
	speakerReady bool
}

// NewPlayer returns a Player at full volume. The output device is opened
// lazily on the first Play.
func NewPlayer() *Player {
	return &Player{volume: 1.0}
}

// Play decodes the wav at path and starts playback. The returned channel
// receives exactly one Event for this playback.
func (p *Player) Play(path string) (<-chan Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactMissing, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	p.mu.Lock()
	p.stopLocked()

	if err := p.ensureSpeakerLocked(format.SampleRate); err != nil {
		p.mu.Unlock()
		streamer.Close()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	p.gen++
	gen := p.gen
	done := make(chan Event, 1)
	ctrl := &beep.Ctrl{Streamer: streamer}
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   gainFor(p.volume),
		Silent:   p.volume <= 0,
	}
	p.ctrl, p.vol, p.streamer, p.done = ctrl, vol, streamer, done
	p.playing, p.paused = true, false
	p.mu.Unlock()

	// The callback runs on the speaker goroutine; state cleanup happens on
	// a fresh goroutine to keep lock ordering one-way.
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		go p.finish(gen, done)
	})))

	log.Debug("playback started", "artifact", path, "sample_rate", format.SampleRate)
	return done, nil
}

// Pause halts the current playback in place.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing || p.paused || p.ctrl == nil {
		return ErrNotPlaying
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.paused = true
	return nil
}

// Resume continues a paused playback from where it stopped.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused || p.ctrl == nil {
		return ErrNotPaused
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.paused = false
	p.playing = true
	return nil
}

// Stop tears down the current playback, delivering Stopped to its listener.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

// SetVolume sets the playback volume in [0, 1], applied to the current and
// all subsequent playbacks.
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.vol != nil {
		speaker.Lock()
		p.vol.Volume = gainFor(v)
		p.vol.Silent = v <= 0
		speaker.Unlock()
	}
}

// IsPlaying reports whether audio is actively sounding.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && !p.paused
}

func (p *Player) stopLocked() {
	if !p.playing && !p.paused {
		return
	}
	p.gen++
	done := p.done
	streamer := p.streamer
	p.ctrl, p.vol, p.streamer, p.done = nil, nil, nil, nil
	p.playing, p.paused = false, false

	speaker.Clear()
	if streamer != nil {
		streamer.Close()
	}
	if done != nil {
		done <- Event{Outcome: Stopped}
	}
}

func (p *Player) ensureSpeakerLocked(rate beep.SampleRate) error {
	if p.speakerReady && p.speakerRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	p.speakerRate = rate
	p.speakerReady = true
	return nil
}

func (p *Player) finish(gen uint64, done chan Event) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	streamer := p.streamer
	p.ctrl, p.vol, p.streamer, p.done = nil, nil, nil, nil
	p.playing, p.paused = false, false
	p.mu.Unlock()

	if streamer != nil {
		streamer.Close()
	}
	done <- Event{Outcome: Finished}
}

// gainFor maps the linear preference volume onto the logarithmic scale the
// volume effect expects; 1.0 is unity gain.
func gainFor(v float64) float64 {
	return (v - 1) * 6
}
