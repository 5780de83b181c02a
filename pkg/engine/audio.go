package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"phosphor/internal/noise"
	"phosphor/internal/util"
	"phosphor/pkg/config"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 1024
	numChannels     = 2
)

// AudioEngine synthesizes the optional CRT hum: mains buzz plus static
// whose level follows the noise control
type AudioEngine struct {
	config      config.AudioConfig
	noiseGen    *noise.Generator
	stream      *portaudio.Stream
	volume      float32
	staticLevel float32
	humPhase    float64
	clock       float32
	isRunning   bool
	mutex       sync.Mutex
}

// NewAudioEngine creates and starts the audio engine
func NewAudioEngine(cfg config.AudioConfig) (*AudioEngine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %v", err)
	}

	engine := &AudioEngine{
		config:   cfg,
		noiseGen: noise.NewGenerator(time.Now().UnixNano()),
		volume:   float32(cfg.Volume),
	}

	stream, err := portaudio.OpenDefaultStream(0, numChannels, sampleRate, framesPerBuffer, engine.audioCallback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open audio stream: %v", err)
	}
	engine.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start audio stream: %v", err)
	}
	engine.isRunning = true

	return engine, nil
}

// audioCallback fills the interleaved output buffer
func (ae *AudioEngine) audioCallback(out []float32) {
	ae.mutex.Lock()
	volume := ae.volume
	staticLevel := ae.staticLevel
	humHz := ae.config.HumHz
	ae.mutex.Unlock()

	phaseStep := 2 * math.Pi * humHz / sampleRate

	for i := 0; i < len(out); i += numChannels {
		// Mains hum with a touch of second harmonic
		hum := 0.6*math.Sin(ae.humPhase) + 0.25*math.Sin(2*ae.humPhase)

		// Static crackle: layered value noise so the hiss carries both
		// broadband fizz and slower sputter
		crackle := (ae.noiseGen.FBM2D(ae.clock*137.0, 0.5, 3, 2.0, 0.5) - 0.5) * 2

		sample := volume * (0.15*float32(hum) + staticLevel*0.5*crackle)

		for ch := 0; ch < numChannels; ch++ {
			out[i+ch] = sample
		}

		ae.humPhase += phaseStep
		if ae.humPhase > 2*math.Pi {
			ae.humPhase -= 2 * math.Pi
		}
		ae.clock += 1.0 / sampleRate
		if ae.clock > 64 {
			// Keep the lattice coordinate small so float precision holds
			ae.clock = 0
		}
	}
}

// SetStaticLevel sets the static intensity, normally tied to the noise
// control
func (ae *AudioEngine) SetStaticLevel(level float32) {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()

	ae.staticLevel = util.Clamp32(level, 0, 1)
}

// SetVolume sets the master volume
func (ae *AudioEngine) SetVolume(volume float32) {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()

	ae.volume = util.Clamp32(volume, 0, 1)
}

// Shutdown stops the stream and releases PortAudio
func (ae *AudioEngine) Shutdown() {
	ae.mutex.Lock()
	defer ae.mutex.Unlock()

	if !ae.isRunning {
		return
	}
	ae.isRunning = false

	ae.stream.Stop()
	ae.stream.Close()
	portaudio.Terminate()
}
