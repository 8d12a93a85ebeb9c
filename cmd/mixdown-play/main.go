// ABOUTME: Entry point for the mixdown playback tool
// ABOUTME: Mixes generated sources into a device or WAV file sink
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/devices"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/input"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/output"
)

// Config drives one playback session. Values come from defaults, an optional
// YAML config file, and command-line flags, in that order of precedence.
type Config struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Sink       string
	WAVPath    string
	Duration   time.Duration

	Tone struct {
		Frequency float64
		Waveform  string
		VolumeDB  int
		RampMs    int
	}

	Noise struct {
		Enabled  bool
		Color    string
		VolumeDB int
		Seed     int64
	}
}

var (
	configPath  = flag.String("c", "", "Path to YAML config file (optional)")
	sinkName    = flag.String("sink", "", "Output sink: malgo, oto or wav")
	wavPath     = flag.String("wav", "", "Output path for the wav sink")
	duration    = flag.Duration("duration", 0, "Stop after this long (0 = until Ctrl-C)")
	listDevices = flag.Bool("list-devices", false, "List audio devices and exit")
)

func main() {
	flag.Parse()

	if *listDevices {
		if err := printDevices(); err != nil {
			log.Fatalf("Device listing failed: %v", err)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}

func loadConfig(path string) (Config, error) {
	viper.SetDefault("samplerate", 44100)
	viper.SetDefault("channels", 2)
	viper.SetDefault("bitdepth", 16)
	viper.SetDefault("sink", "malgo")
	viper.SetDefault("wavpath", "mixdown.wav")
	viper.SetDefault("tone.frequency", 440.0)
	viper.SetDefault("tone.waveform", "sine")
	viper.SetDefault("tone.volumedb", -6)
	viper.SetDefault("tone.rampms", 0)
	viper.SetDefault("noise.enabled", true)
	viper.SetDefault("noise.color", "pink")
	viper.SetDefault("noise.volumedb", -18)
	viper.SetDefault("noise.seed", 1)

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Flags win over file and defaults.
	if *sinkName != "" {
		cfg.Sink = *sinkName
	}
	if *wavPath != "" {
		cfg.WAVPath = *wavPath
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	return cfg, nil
}

func run(cfg Config) error {
	format, err := audio.NewFormat(cfg.SampleRate, cfg.Channels, cfg.BitDepth, audio.SignedInt)
	if err != nil {
		return err
	}

	sink, err := buildSink(cfg)
	if err != nil {
		return err
	}

	mixer, err := output.NewMixer(format, sink)
	if err != nil {
		return err
	}
	defer mixer.Close()

	tone, err := buildTone(cfg, format)
	if err != nil {
		return err
	}
	if err := mixer.AddInput(tone); err != nil {
		return err
	}
	if err := tone.Start(); err != nil {
		return err
	}

	if cfg.Noise.Enabled {
		noise, err := buildNoise(cfg, format)
		if err != nil {
			return err
		}
		if err := mixer.AddInput(noise); err != nil {
			return err
		}
		if err := noise.Start(); err != nil {
			return err
		}
	}

	log.Printf("Playing %gHz %s tone via %s sink (%dch@%dHz, %d-bit)",
		cfg.Tone.Frequency, cfg.Tone.Waveform, cfg.Sink,
		format.Channels, format.SampleRate, format.BitDepth)
	if err := mixer.Start(); err != nil {
		return err
	}

	if cfg.Tone.RampMs > 0 {
		// Fade in from silence.
		tone.SetVolume(-60)
		tone.TransitionVolume(cfg.Tone.VolumeDB, time.Duration(cfg.Tone.RampMs)*time.Millisecond)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Duration > 0 {
		select {
		case <-time.After(cfg.Duration):
			log.Printf("Duration elapsed, stopping")
		case sig := <-sigChan:
			log.Printf("Received %v signal, stopping", sig)
		}
	} else {
		log.Printf("Press Ctrl-C to stop")
		sig := <-sigChan
		log.Printf("Received %v signal, stopping", sig)
	}

	return mixer.Stop()
}

func buildSink(cfg Config) (output.Sink, error) {
	switch strings.ToLower(cfg.Sink) {
	case "malgo":
		return output.NewMalgo(), nil
	case "oto":
		return output.NewOto(), nil
	case "portaudio":
		return output.NewPortAudio(), nil
	case "wav":
		return output.NewWAVFile(cfg.WAVPath), nil
	default:
		return nil, fmt.Errorf("unknown sink %q (want malgo, oto, portaudio or wav)", cfg.Sink)
	}
}

func buildTone(cfg Config, format audio.Format) (*input.Tone, error) {
	waveform, err := parseWaveform(cfg.Tone.Waveform)
	if err != nil {
		return nil, err
	}
	tone, err := input.NewTone(format.SampleRate, format.Channels, cfg.Tone.Frequency, waveform)
	if err != nil {
		return nil, err
	}
	tone.SetVolume(cfg.Tone.VolumeDB)
	return tone, nil
}

func buildNoise(cfg Config, format audio.Format) (*input.Noise, error) {
	color, err := parseNoiseColor(cfg.Noise.Color)
	if err != nil {
		return nil, err
	}
	noise, err := input.NewNoise(format.SampleRate, format.Channels, color, cfg.Noise.Seed)
	if err != nil {
		return nil, err
	}
	noise.SetVolume(cfg.Noise.VolumeDB)
	return noise, nil
}

func parseWaveform(name string) (input.Waveform, error) {
	switch strings.ToLower(name) {
	case "sine":
		return input.Sine, nil
	case "square":
		return input.Square, nil
	case "sawtooth", "saw":
		return input.Sawtooth, nil
	case "triangle":
		return input.Triangle, nil
	default:
		return 0, fmt.Errorf("unknown waveform %q (want sine, square, sawtooth or triangle)", name)
	}
}

func parseNoiseColor(name string) (input.NoiseColor, error) {
	switch strings.ToLower(name) {
	case "white":
		return input.White, nil
	case "pink":
		return input.Pink, nil
	case "brown":
		return input.Brown, nil
	default:
		return 0, fmt.Errorf("unknown noise color %q (want white, pink or brown)", name)
	}
}

func printDevices() error {
	lister, err := devices.NewMalgoLister()
	if err != nil {
		return err
	}
	defer lister.Close()

	for _, direction := range []devices.Direction{devices.Playback, devices.Capture} {
		list, err := lister.List(direction)
		if err != nil {
			return err
		}
		fmt.Printf("%s devices:\n", direction)
		for _, d := range list {
			marker := " "
			if d.IsDefault {
				marker = "*"
			}
			fmt.Printf("  %s [%d] %s\n", marker, d.ID, d.Name)
		}
	}
	return nil
}
