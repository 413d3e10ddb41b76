package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/foxpet/internal/art"
	"github.com/sethgrid/foxpet/internal/discovery"
	"github.com/sethgrid/foxpet/internal/geometry"
	"github.com/sethgrid/foxpet/internal/overlay"
	"github.com/sethgrid/foxpet/internal/pet"
	"github.com/sethgrid/foxpet/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath string
	verbose    bool
)

const Version = "v0.2.0"

var foxNames = []string{
	"Rusty",
	"Ember",
	"Maple",
	"Pip",
	"Sly",
	"Juniper",
}

func randomFoxName() string {
	return foxNames[rand.Intn(len(foxNames))]
}

var placeholderSize = art.FrameSize{Width: 100, Height: 100}

func main() {
	rootCmd := &cobra.Command{
		Use:   "foxpet",
		Short: "foxpet - A fox that lives on your desktop",
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Println(Version)
				return
			}
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to foxpet config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every state change")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves and reads the config in use. The returned path is
// empty when no file exists and the defaults apply.
func loadConfig() (pet.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return pet.Config{}, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	path, found, err := discovery.ResolveConfig(configPath, cwd)
	if err != nil {
		return pet.Config{}, "", err
	}
	if !found {
		return pet.DefaultConfig(), "", nil
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return pet.Config{}, "", err
	}
	return cfg, path, nil
}

// loadArt reads a sprite sheet from dir, or builds the placeholder sheet
// when dir is empty.
func loadArt(dir string) (*art.Sheet, art.Frames, error) {
	if dir == "" {
		sheet, frames := art.Placeholder(placeholderSize)
		return sheet, frames, nil
	}
	fsys := os.DirFS(dir)
	sheet, err := art.LoadSheet(fsys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sprite sheet: %w", err)
	}
	frames, err := art.LoadFrames(fsys, sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sprite frames: %w", err)
	}
	return sheet, frames, nil
}

// releaseFlag is a pflag.Value for the drag release policy.
type releaseFlag struct {
	policy pet.DragRelease
}

var _ pflag.Value = (*releaseFlag)(nil)

func (f *releaseFlag) String() string { return string(f.policy) }
func (f *releaseFlag) Type() string   { return "policy" }

func (f *releaseFlag) Set(v string) error {
	switch p := pet.DragRelease(v); p {
	case pet.DragReleaseRestore, pet.DragReleaseRestart:
		f.policy = p
		return nil
	}
	return fmt.Errorf("must be %q or %q", pet.DragReleaseRestore, pet.DragReleaseRestart)
}

func (f *releaseFlag) apply(cfg *pet.Config) {
	if f.policy != "" {
		cfg.DragRelease = f.policy
	}
}

func seededRand(seed int64) pet.Random {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

var runRelease releaseFlag

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Put the fox on the desktop",
	RunE: func(cmd *cobra.Command, args []string) error {
		assets, _ := cmd.Flags().GetString("assets")
		seed, _ := cmd.Flags().GetInt64("seed")
		skipIntro, _ := cmd.Flags().GetBool("skip-intro")
		log := newLogger()

		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		runRelease.apply(&cfg)

		sheet, frames, err := loadArt(assets)
		if err != nil {
			return err
		}

		player, err := storage.LoadPlayerState(discovery.PlayerStatePath(path))
		if err != nil {
			log.Warn("using default player state", "err", err)
			player = storage.DefaultPlayerState()
		}

		var watcher *overlay.Watcher
		if path != "" {
			watcher, err = overlay.NewWatcher(path)
			if err != nil {
				log.Warn("config live reload disabled", "path", path, "err", err)
			} else {
				defer watcher.Close()
			}
		}

		size := geometry.Size{Width: sheet.Size.Width, Height: sheet.Size.Height}
		game := overlay.New(overlay.Options{
			Frames:  frames,
			Size:    size,
			Logger:  log,
			Player:  player,
			Watcher: watcher,
			Reload:  storage.LoadConfig,
		})
		engine := pet.New(pet.Options{
			Config:  cfg,
			Frames:  sheet,
			Size:    size,
			Surface: game,
			Dialogs: game,
			Rand:    seededRand(seed),
			Logger:  log,
		})
		game.Attach(engine)

		log.Info("starting", "name", cfg.Name, "config", path, "sheet", sheet.Name)
		if skipIntro {
			engine.EnterMainLifecycle()
		} else {
			engine.StartIntro()
		}

		if err := game.Run(); err != nil {
			return fmt.Errorf("failed to run overlay: %w", err)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("assets", "", "Directory with sheet.yaml and frame PNGs (default: built-in placeholder art)")
	runCmd.Flags().Int64("seed", 0, "Random seed (0: seed from the clock)")
	runCmd.Flags().Bool("skip-intro", false, "Skip the greeting and mood check")
	runCmd.Flags().Var(&runRelease, "drag-release", "What the fox does after being dropped: restore or restart")
}

var simRelease releaseFlag

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the behavior engine headless against a virtual clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("duration")
		seed, _ := cmd.Flags().GetInt64("seed")
		rating, _ := cmd.Flags().GetInt("rating")
		drags, _ := cmd.Flags().GetDurationSlice("drag-at")
		suspends, _ := cmd.Flags().GetDurationSlice("suspend-at")

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		simRelease.apply(&cfg)

		sim := newSimulation(cmd.OutOrStdout(), simulationOptions{
			Config:   cfg,
			Seed:     seed,
			Rating:   rating,
			Drags:    drags,
			Suspends: suspends,
			Verbose:  verbose,
			Start:    time.Now(),
		})
		sim.Run(duration)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Duration("duration", 2*time.Minute, "Virtual time to simulate")
	simulateCmd.Flags().Int64("seed", 1, "Random seed")
	simulateCmd.Flags().Int("rating", 3, "Mood rating to answer the intro with (0 dismisses)")
	simulateCmd.Flags().DurationSlice("drag-at", nil, "Pick the fox up for a second at these offsets")
	simulateCmd.Flags().DurationSlice("suspend-at", nil, "Open the chat panel for ten seconds at these offsets")
	simulateCmd.Flags().Var(&simRelease, "drag-release", "What the fox does after being dropped: restore or restart")
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Write a default config for a new fox",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		var baseDir string
		if global {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = home
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			baseDir = cwd
		}

		name := randomFoxName()
		if len(args) == 1 {
			name = args[0]
		}

		path, err := storage.InitConfig(baseDir, name)
		if err != nil {
			return fmt.Errorf("failed to initialize fox: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fox '%s' lives in %s\n", name, path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("global", false, "Write the config to the home directory")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the behavior config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		out := cmd.OutOrStdout()
		if path == "" {
			fmt.Fprintln(out, "# defaults (no config file found)")
		} else {
			fmt.Fprintf(out, "# %s\n", path)
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Inspect or change the music player state",
}

func playerStatePath() (string, error) {
	_, path, err := loadConfig()
	if err != nil {
		return "", err
	}
	return discovery.PlayerStatePath(path), nil
}

func printPlayerState(cmd *cobra.Command, state storage.PlayerState) {
	out := cmd.OutOrStdout()
	track := state.Track
	if track == "" {
		track = "(none)"
	}
	fmt.Fprintf(out, "Track:    %s\n", track)
	fmt.Fprintf(out, "Position: %s\n", state.Position.Duration)
	fmt.Fprintf(out, "Volume:   %d%%\n", int(state.Volume*100+0.5))
	fmt.Fprintf(out, "Muted:    %t\n", state.Muted)
}

var playerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved player state",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := playerStatePath()
		if err != nil {
			return err
		}
		state, err := storage.LoadPlayerState(path)
		if err != nil {
			return err
		}
		printPlayerState(cmd, state)
		return nil
	},
}

var playerSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the saved player state",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("mute") && flags.Changed("unmute") {
			return fmt.Errorf("--mute and --unmute are mutually exclusive")
		}

		path, err := playerStatePath()
		if err != nil {
			return err
		}
		state, err := storage.LoadPlayerState(path)
		if err != nil {
			return err
		}

		if flags.Changed("volume") {
			state.Volume, _ = flags.GetFloat64("volume")
		}
		if flags.Changed("mute") {
			state.Muted = true
		}
		if flags.Changed("unmute") {
			state.Muted = false
		}
		if flags.Changed("track") {
			state.Track, _ = flags.GetString("track")
			state.Position = pet.D(0)
		}
		if flags.Changed("position") {
			pos, _ := flags.GetDuration("position")
			state.Position = pet.D(pos)
		}

		if err := storage.SavePlayerState(state, path); err != nil {
			return fmt.Errorf("failed to save player state: %w", err)
		}
		saved, err := storage.LoadPlayerState(path)
		if err != nil {
			return err
		}
		printPlayerState(cmd, saved)
		return nil
	},
}

func init() {
	playerSetCmd.Flags().Float64("volume", storage.DefaultVolume, "Volume from 0 to 1")
	playerSetCmd.Flags().Bool("mute", false, "Mute the player")
	playerSetCmd.Flags().Bool("unmute", false, "Unmute the player")
	playerSetCmd.Flags().String("track", "", "Track to play (resets the position)")
	playerSetCmd.Flags().Duration("position", 0, "Position within the track")
	playerCmd.AddCommand(playerShowCmd)
	playerCmd.AddCommand(playerSetCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands",
}

var adminCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for foxpet.

To load completions:

Bash:
  $ source <(foxpet admin completion bash)

Zsh:
  $ foxpet admin completion zsh > "${fpath[1]}/_foxpet"

Fish:
  $ foxpet admin completion fish | source

PowerShell:
  PS> foxpet admin completion powershell | Out-String | Invoke-Expression
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(out)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

var adminPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show where foxpet looks for its files",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, path, err := loadConfig()
		if err != nil {
			return err
		}
		label := path
		if label == "" {
			label = "(none, using defaults)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config:        %s\n", label)
		fmt.Fprintf(out, "Global config: %s\n", discovery.GlobalConfigPath())
		fmt.Fprintf(out, "Player state:  %s\n", discovery.PlayerStatePath(path))
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminCompletionCmd)
	adminCmd.AddCommand(adminPathsCmd)
}
