package scope

import (
	"encoding/binary"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/epicycles/internal/cplx"
)

// loopReader serves one encoded cycle as 16-bit little endian PCM forever.
type loopReader struct {
	pcm []byte
	pos int
}

func newLoopReader(samples []int16) *loopReader {
	pcm := make([]byte, len(samples)*bitDepth)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*bitDepth:], uint16(s))
	}
	return &loopReader{pcm: pcm}
}

func (r *loopReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.pcm[r.pos:])
		n += c
		r.pos = (r.pos + c) % len(r.pcm)
	}
	return n, nil
}

const defaultVolume = 0.5

// Player loops an outline through the default audio device.
type Player struct {
	otoPlayer *oto.Player
	volume    float64
	paused    bool
	mu        sync.Mutex
	closed    bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// NewPlayer starts looping trace. See Encode for limit.
func NewPlayer(trace []cplx.Number, limit float64) (*Player, error) {
	samples, err := Encode(trace, limit, SampleRate, 1)
	if err != nil {
		return nil, err
	}
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}

	p := &Player{otoPlayer: ctx.NewPlayer(newLoopReader(samples))}
	p.SetVolume(defaultVolume)
	p.otoPlayer.Play()
	return p, nil
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if p.paused {
		p.otoPlayer.Play()
		p.paused = false
	} else {
		p.otoPlayer.Pause()
		p.paused = true
	}
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v = min(max(v, 0), 1)
	p.volume = v
	p.otoPlayer.SetVolume(v)
}

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.otoPlayer.Pause()
	_ = p.otoPlayer.Close()
}
