package speech

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lectorapp/lector/speech/audio"
	"github.com/lectorapp/lector/speech/prefs"
	"github.com/lectorapp/lector/speech/queue"
	"github.com/lectorapp/lector/speech/synth"
)

// Normalizer rewrites segment text before it is sent to synthesis. The
// pronunciation dictionary implements it.
type Normalizer interface {
	TransformText(string) string
}

// VoiceResolver maps a voice id from the preferences onto the model path
// the synthesis engine loads.
type VoiceResolver interface {
	Resolve(voiceID string) (modelPath string, err error)
}

// Orchestrator is the playback state machine. It owns the Status and the
// in-flight request token, holds the cursor through the queue Store, and
// reads Preferences exactly once per synthesis request.
//
// All state mutation is serialized behind one mutex. Gateway work happens
// on goroutines that re-enter through token-checked handlers, so an event
// from a superseded request can never move the machine.
type Orchestrator struct {
	mu sync.Mutex

	store    *queue.Store
	prefs    *prefs.Set
	synth    synth.Gateway
	player   audio.Gateway
	resolver VoiceResolver

	normalizer   Normalizer
	synthTimeout time.Duration

	status   Status
	err      error
	token    uint64
	cancel   context.CancelFunc // cancels the in-flight synthesis, nil when none
	artifact string             // artifact for the cursor segment, valid while playing or paused

	onChange func(Snapshot)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNormalizer applies n to segment text when building requests.
func WithNormalizer(n Normalizer) Option {
	return func(o *Orchestrator) { o.normalizer = n }
}

// WithSynthesisTimeout bounds each synthesis call.
func WithSynthesisTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.synthTimeout = d
		}
	}
}

// New creates an Orchestrator over the given store, preferences and
// gateways. It starts Idle.
func New(store *queue.Store, preferences *prefs.Set, gateway synth.Gateway, player audio.Gateway, resolver VoiceResolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:        store,
		prefs:        preferences,
		synth:        gateway,
		player:       player,
		resolver:     resolver,
		synthTimeout: synth.DefaultTimeout,
		status:       StatusIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnChange registers fn to receive a Snapshot after every observable state
// change. The callback runs synchronously inside the transition and must
// not call back into the Orchestrator.
func (o *Orchestrator) OnChange(fn func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onChange = fn
}

// PlayFrom starts playback at index, clamped into the queue range. It
// supersedes any in-flight synthesis or playback. On an empty queue it is
// a no-op that leaves the machine Idle.
func (o *Orchestrator) PlayFrom(index int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.startAtLocked(index)
}

// TogglePlayPause pauses a playing segment, resumes a paused one, and from
// Idle or Failed starts playback at the cursor. During synthesis it is a
// no-op: there is no audio to pause yet.
func (o *Orchestrator) TogglePlayPause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.status {
	case StatusPlaying:
		if err := o.player.Pause(); err != nil {
			// The artifact can finish in the instant before the pause
			// lands; the completion event will advance the machine.
			log.Debug("pause raced completion", "error", err)
			return
		}
		o.setStatusLocked(StatusPaused, nil)
	case StatusPaused:
		o.resumeLocked()
	case StatusIdle, StatusFailed:
		o.startAtLocked(o.store.Cursor())
	case StatusSynthesizing:
		// Nothing sounding yet; ignore.
	}
}

// PlayNext behaves like a playback-completion signal: it advances to the
// next segment when one exists and otherwise stops cleanly to Idle.
func (o *Orchestrator) PlayNext() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.advanceLocked()
}

// Stop cancels any in-flight work and returns to Idle. Results of the
// superseded request are dropped when they eventually land.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.token++
	o.cancelInFlightLocked()
	o.artifact = ""
	o.player.Stop()
	o.setStatusLocked(StatusIdle, nil)
}

// SetQueue replaces the reading queue wholesale, stopping any current
// playback and resetting the cursor to the first segment.
func (o *Orchestrator) SetQueue(segments []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.token++
	o.cancelInFlightLocked()
	o.artifact = ""
	o.player.Stop()
	o.store.ReplaceAll(segments)
	o.setStatusLocked(StatusIdle, nil)
}

// AppendQueue adds segments to the end of the queue without disturbing
// playback or the cursor.
func (o *Orchestrator) AppendQueue(segments []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.store.Append(segments)
	o.notifyLocked()
}

// Status returns the current playback status.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Err returns the retained failure reason, nil unless Failed.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Cursor returns the current segment index.
func (o *Orchestrator) Cursor() int {
	return o.store.Cursor()
}

// QueueLen returns the number of segments in the queue.
func (o *Orchestrator) QueueLen() int {
	return o.store.Len()
}

// Snapshot returns a consistent copy of the observable state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// startAtLocked begins the synthesize-then-play cycle for the segment at
// index. The token bump invalidates every outstanding request.
func (o *Orchestrator) startAtLocked(index int) {
	if o.store.Len() == 0 {
		o.token++
		o.cancelInFlightLocked()
		o.artifact = ""
		o.setStatusLocked(StatusIdle, nil)
		return
	}

	idx := o.store.SetCursor(index)
	segment, ok := o.store.At(idx)
	if !ok {
		o.setStatusLocked(StatusIdle, nil)
		return
	}

	o.token++
	tok := o.token
	o.cancelInFlightLocked()
	o.artifact = ""
	o.player.Stop()

	snapshot := o.prefs.Snapshot()
	modelPath, err := o.resolver.Resolve(snapshot.VoiceID)
	if err != nil {
		o.failLocked(fmt.Errorf("resolving voice %q: %w", snapshot.VoiceID, err))
		return
	}

	text := segment
	if o.normalizer != nil {
		text = o.normalizer.TransformText(text)
	}

	req := synth.Request{
		Text:          text,
		VoicePath:     modelPath,
		Rate:          snapshot.Rate,
		Pitch:         snapshot.Pitch,
		Volume:        snapshot.Volume,
		SentenceBreak: snapshot.SentenceBreak,
		LengthScale:   snapshot.LengthScale,
		NoiseScale:    snapshot.NoiseScale,
		NoiseW:        snapshot.NoiseW,
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.synthTimeout)
	o.cancel = cancel

	o.setStatusLocked(StatusSynthesizing, nil)
	log.Debug("synthesis requested", "segment", idx, "token", tok)
	go o.runSynthesis(ctx, tok, req, snapshot.Volume)
}

// runSynthesis performs the gateway call off the lock and re-enters
// through the token-checked handler. The context lives with the request
// token: superseding the request cancels it.
func (o *Orchestrator) runSynthesis(ctx context.Context, tok uint64, req synth.Request, volume float64) {
	artifact, err := o.synth.Synthesize(ctx, req)
	o.handleSynthesized(tok, artifact, err, volume)
}

func (o *Orchestrator) handleSynthesized(tok uint64, artifact string, err error, volume float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok != o.token {
		log.Debug("dropping stale synthesis result", "token", tok, "current", o.token)
		return
	}
	o.cancelInFlightLocked()
	if err != nil {
		o.failLocked(err)
		return
	}

	o.artifact = artifact
	o.player.SetVolume(volume)
	events, playErr := o.player.Play(artifact)
	if playErr != nil {
		o.failLocked(playErr)
		return
	}
	o.setStatusLocked(StatusPlaying, nil)
	go o.watchPlayback(tok, events)
}

func (o *Orchestrator) watchPlayback(tok uint64, events <-chan audio.Event) {
	ev, ok := <-events
	if !ok {
		return
	}
	o.handlePlaybackEvent(tok, ev)
}

func (o *Orchestrator) handlePlaybackEvent(tok uint64, ev audio.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok != o.token {
		log.Debug("dropping stale playback event", "token", tok, "current", o.token, "outcome", ev.Outcome)
		return
	}

	switch ev.Outcome {
	case audio.Stopped:
		// The machine that issued the stop already updated state.
	case audio.Failed:
		o.failLocked(fmt.Errorf("playback: %w", ev.Err))
	case audio.Finished:
		o.advanceLocked()
	}
}

// advanceLocked moves to the next segment or, at the end of the queue,
// returns cleanly to Idle.
func (o *Orchestrator) advanceLocked() {
	if next, ok := o.store.Advance(); ok {
		o.startAtLocked(next)
		return
	}
	o.token++
	o.cancelInFlightLocked()
	o.artifact = ""
	o.player.Stop()
	o.setStatusLocked(StatusIdle, nil)
}

// cancelInFlightLocked releases the context of the current synthesis, if
// any. Called whenever the request token moves on and once a result for
// the current token has landed.
func (o *Orchestrator) cancelInFlightLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// resumeLocked continues a paused segment: resume in place when the player
// still holds it, replay the artifact when only the file survives, and
// re-synthesize as the last resort.
func (o *Orchestrator) resumeLocked() {
	if err := o.player.Resume(); err == nil {
		o.setStatusLocked(StatusPlaying, nil)
		return
	}

	if o.artifact != "" {
		if events, err := o.player.Play(o.artifact); err == nil {
			o.setStatusLocked(StatusPlaying, nil)
			go o.watchPlayback(o.token, events)
			return
		}
	}

	o.startAtLocked(o.store.Cursor())
}

func (o *Orchestrator) failLocked(err error) {
	o.artifact = ""
	log.Error("playback halted", "error", err)
	o.setStatusLocked(StatusFailed, err)
}

func (o *Orchestrator) setStatusLocked(status Status, err error) {
	o.status = status
	o.err = err
	o.notifyLocked()
}

func (o *Orchestrator) notifyLocked() {
	if o.onChange != nil {
		o.onChange(o.snapshotLocked())
	}
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	return Snapshot{
		Status:   o.status,
		Cursor:   o.store.Cursor(),
		QueueLen: o.store.Len(),
		Err:      o.err,
	}
}
