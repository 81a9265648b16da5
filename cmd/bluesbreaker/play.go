package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/internal/audiofile"
)

const bytesPerSample = 4

var errQuit = errors.New("quit")

func runPlay(args []string, stdout, stderr io.Writer) error {
	var (
		f        knobFlags
		block    int
		buffer   time.Duration
		duration time.Duration
	)

	fs := newFlagSet("play", "<in.wav>", stderr)
	f.register(fs)
	fs.IntVar(&block, "block", 256, "processing block size in frames")
	fs.DurationVar(&buffer, "buffer", 50*time.Millisecond, "output buffer length")
	fs.DurationVar(&duration, "duration", 0, "stop after this long (0 plays until q)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	logger := f.logger(stderr)

	paths, err := expandPaths(fs.Args())
	if err != nil {
		return err
	}

	clip, err := audiofile.ReadFile(paths[0])
	if err != nil {
		return err
	}

	p, err := f.processor(logger)
	if err != nil {
		return err
	}

	src, err := newLoopSource(p, clip, block)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	return play(ctx, src, buffer, stdout, logger)
}

func play(ctx context.Context, src *loopSource, buffer time.Duration, stdout io.Writer, logger *slog.Logger) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.clip.SampleRate,
		ChannelCount: len(src.views),
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(src)
	defer player.Close()

	player.Play()
	logger.Info("playing",
		slog.Int("sample_rate", src.clip.SampleRate),
		slog.Int("channels", len(src.views)),
		slog.Duration("buffer", buffer),
	)

	keys := make(chan byte)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()

		_, _ = fmt.Fprint(stdout, "g/G gain  t/T tone  v/V volume  b bypass  q quit\r\n")
		printKnobs(stdout, src.processor.Controls().Snapshot())

		// The read blocks until a key arrives, so it stays outside the group
		// and is abandoned when playback ends.
		go readKeys(os.Stdin, keys)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case key, ok := <-keys:
				if !ok {
					return nil
				}

				if !handleKey(src.processor, key) {
					return errQuit
				}

				printKnobs(stdout, src.processor.Controls().Snapshot())
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := player.Err(); err != nil {
					return fmt.Errorf("audio output: %w", err)
				}
			}
		}
	})

	err = g.Wait()
	_, _ = fmt.Fprint(stdout, "\r\n")

	if errors.Is(err, errQuit) {
		return nil
	}

	return err
}

func readKeys(r io.Reader, keys chan<- byte) {
	defer close(keys)

	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			keys <- buf[0]
		}

		if err != nil {
			return
		}
	}
}

// handleKey applies one keystroke to the processor's knobs. It reports
// false for the quit keys.
func handleKey(p *amp.Processor, key byte) bool {
	c := p.Controls()

	nudge := func(ctrl amp.Control, dir float64) {
		c.Set(ctrl, c.Get(ctrl)+dir*amp.ControlStep)
	}

	switch key {
	case 'g':
		nudge(amp.ControlGain, -1)
	case 'G':
		nudge(amp.ControlGain, 1)
	case 't':
		nudge(amp.ControlTone, -1)
	case 'T':
		nudge(amp.ControlTone, 1)
	case 'v':
		nudge(amp.ControlVolume, -1)
	case 'V':
		nudge(amp.ControlVolume, 1)
	case 'b', 'B':
		c.SetBypass(!c.Bypass())
	case 'q', 'Q', 3, 4: // ctrl-c and ctrl-d arrive as bytes in raw mode
		return false
	}

	return true
}

func printKnobs(w io.Writer, cs amp.ControlSet) {
	bypass := "off"
	if cs.Bypass {
		bypass = "on "
	}

	_, _ = fmt.Fprintf(w, "\rgain %4.1f  tone %4.1f  volume %4.1f  bypass %s", cs.Gain, cs.Tone, cs.Volume, bypass)
}

// loopSource is the io.Reader oto pulls from. Each Read processes as many
// blocks of the clip as it needs, wrapping at the end, and emits
// interleaved float32 little-endian frames.
type loopSource struct {
	processor *amp.Processor
	clip      *audiofile.Clip

	mu      sync.Mutex
	pos     int
	planar  [][]float64
	views   [][]float64
	pending []byte
	encoded []byte
}

func newLoopSource(p *amp.Processor, clip *audiofile.Clip, blockSize int) (*loopSource, error) {
	if clip.Frames() == 0 {
		return nil, errors.New("clip is empty")
	}

	nch := min(len(clip.Channels), core.MaxChannels)

	err := p.Prepare(core.NewProcessSpec(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(blockSize),
		core.WithChannels(nch),
	))
	if err != nil {
		return nil, err
	}

	block := p.Spec().MaxBlockSize
	s := &loopSource{
		processor: p,
		clip:      clip,
		planar:    make([][]float64, nch),
		views:     make([][]float64, nch),
		encoded:   make([]byte, 0, block*nch*bytesPerSample),
	}

	for ch := range s.planar {
		s.planar[ch] = make([]float64, block)
	}

	return s, nil
}

func (s *loopSource) Read(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(buf) {
		if len(s.pending) == 0 {
			s.nextBlock()
		}

		c := copy(buf[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	return n, nil
}

// nextBlock fills pending with one processed block.
func (s *loopSource) nextBlock() {
	frames := s.clip.Frames()
	block := len(s.planar[0])

	for ch := range s.planar {
		dst := s.planar[ch]
		src := s.clip.Channels[ch]

		pos := s.pos
		for i := range dst {
			dst[i] = src[pos]
			if pos++; pos == frames {
				pos = 0
			}
		}

		s.views[ch] = dst
	}

	s.pos = (s.pos + block) % frames
	s.processor.Process(s.views)

	out := s.encoded[:block*len(s.views)*bytesPerSample]
	for i := range block {
		for ch, v := range s.views {
			off := (i*len(s.views) + ch) * bytesPerSample
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(float32(v[i])))
		}
	}

	s.pending = out
}
