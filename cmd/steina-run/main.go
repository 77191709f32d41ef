// Package main provides the headless tick-loop runner: it loads a
// fixture of persisted targets, drives the sequencer for a fixed
// number of ticks, and reports the resulting target/play-queue state.
// It exercises the execution core without a real block-language
// front end.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"steinacore/internal/config"
	"steinacore/internal/debug"
	"steinacore/internal/motion"
	"steinacore/internal/runtime"
	"steinacore/internal/sequencer"
	"steinacore/internal/thread"
)

var (
	fixturePath string
	configFile  string
	ticks       int

	rootCmd = &cobra.Command{
		Use:   "steina-run",
		Short: "Run the Steina execution core headlessly over a target fixture",
		RunE:  run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a JSON fixture of persisted targets")
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a config file (yaml/json/toml)")
	rootCmd.Flags().IntVar(&ticks, "ticks", 60, "number of ticks to run")
}

// fixture is the on-disk shape steina-run loads: persisted video/audio
// targets plus the hat blocks to start as threads.
type fixture struct {
	VideoTargets []json.RawMessage `json:"videoTargets"`
	AudioTargets []json.RawMessage `json:"audioTargets"`
	Threads      []struct {
		ID       string `json:"id"`
		TargetID string `json:"targetId"`
		TopBlock string `json:"topBlock"`
	} `json:"threads"`
}

// staticBlockStore is a minimal BlockStore stand-in: every thread's
// top block has no successor, so stepThread retires it on the first
// tick. Real block parsing/storage/execution belongs to the host;
// this fixture exists to exercise the scheduler and media-queue
// advancement in isolation.
type staticBlockStore struct{}

func (staticBlockStore) Execute(_ *sequencer.Sequencer, th *thread.Thread) {}

func (staticBlockStore) NextBlock(string) (string, bool) { return "", false }

func (staticBlockStore) ResolveProcedure(string) (sequencer.ProcedureDef, bool) {
	return sequencer.ProcedureDef{}, false
}

type staticMotion struct{ snap motion.Snapshot }

func (m staticMotion) Snapshot() motion.Snapshot { return m.snap }

func run(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		config.SetDefaults()
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	cfg, err := config.LoadFromViper()
	if err != nil {
		return err
	}

	logger := debug.NewLogger(cfg.LogBufferEntries)
	defer logger.Shutdown()

	rt := runtime.New(staticBlockStore{}, staticMotion{}, logger, cfg.CurrentStepTimeMs())

	if fixturePath != "" {
		if err := loadFixture(rt, fixturePath); err != nil {
			return fmt.Errorf("loading fixture: %w", err)
		}
	}

	for i := 0; i < ticks; i++ {
		finished := rt.Tick()
		if len(finished) > 0 {
			log.Debug("threads finished", "tick", i, "count", len(finished))
		}
	}

	log.Info("run complete", "ticks", ticks,
		"activeVideoPlays", rt.VideoState().Count(),
		"activeAudioPlays", rt.AudioState().Count())
	return nil
}

func loadFixture(rt *runtime.Runtime, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, raw := range f.VideoTargets {
		t, err := runtime.UnmarshalVideoTarget(raw)
		if err != nil {
			return err
		}
		rt.AddVideoTarget(t)
	}
	for _, raw := range f.AudioTargets {
		t, err := runtime.UnmarshalAudioTarget(raw)
		if err != nil {
			return err
		}
		rt.AddAudioTarget(t)
	}
	for _, spec := range f.Threads {
		rt.AddThread(thread.New(spec.ID, spec.TargetID, spec.TopBlock))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
