package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joes9987/CreatorAssistant/internal/config"
	"github.com/joes9987/CreatorAssistant/internal/extract"
	"github.com/joes9987/CreatorAssistant/internal/highlight"
	"github.com/joes9987/CreatorAssistant/internal/logging"
	"github.com/joes9987/CreatorAssistant/internal/publish"
	"github.com/joes9987/CreatorAssistant/internal/riot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	eventsFile string
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "creatorassistant",
	Short: "CreatorAssistant - gameplay highlight detection and clipping",
	Long:  "Detects highlight moments in gameplay recordings from in-game kill events or audio/motion analysis, and cuts them into vertical clips.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.creatorassistant/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	detectCmd.Flags().StringVar(&eventsFile, "events", "", "game event log to use instead of the configured one")
	clipsCmd.Flags().StringVar(&eventsFile, "events", "", "game event log to use instead of the configured one")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(clipsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(configCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [videos...]",
	Short: "Detect highlight moments without cutting clips",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		detector, err := highlight.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		failed := 0
		for _, video := range args {
			candidates, err := detector.Detect(cmd.Context(), video, eventsFile)
			if err != nil {
				log.Error().Err(err).Str("video", video).Msg("detection failed")
				failed++
				continue
			}

			log.Info().
				Str("video", video).
				Int("highlights", len(candidates)).
				Msg("detection complete")

			if err := writeCandidates(os.Stdout, candidates); err != nil {
				return err
			}
		}

		if failed == len(args) {
			return fmt.Errorf("detection failed for all %d videos", failed)
		}
		return nil
	},
}

// writeCandidates prints a candidate list as a JSON array, always an array
// even when nothing was found.
func writeCandidates(w io.Writer, candidates []highlight.Candidate) error {
	if candidates == nil {
		candidates = []highlight.Candidate{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}

var clipsCmd = &cobra.Command{
	Use:   "clips [videos...]",
	Short: "Detect highlights and cut them into vertical clips",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		detector, err := highlight.New(log.Logger, cfg)
		if err != nil {
			return err
		}
		extractor := extract.New(log.Logger, detector.Executor(), cfg.Clip)
		counter := publish.NewCounter(cfg.Publish.ClipCounterFile, cfg.Publish.ClipCounterStart)

		total := 0
		failed := 0
		for _, video := range args {
			candidates, err := detector.Detect(cmd.Context(), video, eventsFile)
			if err != nil {
				log.Error().Err(err).Str("video", video).Msg("detection failed")
				failed++
				continue
			}
			if len(candidates) == 0 {
				log.Info().Str("video", video).Msg("no highlights found")
				continue
			}

			paths, err := extractor.ExtractAll(cmd.Context(), video, candidates)
			if err != nil {
				return err
			}

			nums, err := counter.Next(len(paths))
			if err != nil {
				return err
			}
			for i, path := range paths {
				log.Info().Str("clip", path).Int("number", nums[i]).Msg("clip ready")
			}
			total += len(paths)
		}

		log.Info().Int("clips", total).Msg("batch complete")

		if failed == len(args) {
			return fmt.Errorf("detection failed for all %d videos", failed)
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Game event logging commands",
}

var eventsLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record kill events from the League Live Client API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := riot.NewClient(riot.DefaultBaseURL)
		session := riot.NewSessionLogger(log.Logger, client, cfg.GameEvents.File)
		return session.Run(ctx)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		data, err := cfg.Dump()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	eventsCmd.AddCommand(eventsLogCmd)
	configCmd.AddCommand(configShowCmd)
}
