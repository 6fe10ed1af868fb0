package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/echocore/cogkernel/config"
	"github.com/echocore/cogkernel/core/attention"
	"github.com/echocore/cogkernel/core/loop"
	"github.com/echocore/cogkernel/domain"
)

const defaultShutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	var identityName string
	var configPath string

	root := &cobra.Command{
		Use:   "cogkernel",
		Short: "Run and inspect a cognitive pipeline runtime",
		Long: `cogkernel runs the five-component cognitive pipeline (Salience, Memory
Windows, Thought Assembly, Attention, Continuity) coordinated by the
Cognitive Loop.`,
	}
	root.PersistentFlags().StringVar(&identityName, "identity", "cogkernel", "fixed identity name for the Continuity component")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file overriding the built-in defaults")

	root.AddCommand(
		newRunCmd(&identityName, &configPath),
		newStatusCmd(&identityName, &configPath),
		newCheckpointCmd(&identityName, &configPath),
		newRestoreCmd(&identityName, &configPath),
	)
	return root
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.NewDefaultConfig(), nil
	}
	return config.Load(path)
}

func newLogger() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	return logger.Sugar(), nil
}

// newRunCmd starts one cognitive-loop session. Each stdin line is either a
// trigger (arbitrary text, ingested as a Raw Content into a window labeled
// "input") or the ":status" directive. A cycle runs after every line.
func newRunCmd(identityName, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the cognitive loop, reading triggers from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			sys, err := newSystem(ctx, cfg, *identityName, log)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
				defer cancel()
				if err := sys.Stop(shutdownCtx); err != nil {
					log.Warnw("actor system shutdown error", "error", err)
				}
			}()

			fmt.Println("cogkernel running. Type a line to trigger a cycle, or :status to inspect state. Ctrl+C to stop.")

			lines := make(chan string)
			go scanStdin(lines)

			for {
				select {
				case <-ctx.Done():
					fmt.Println("\nshutting down")
					return nil
				case line, ok := <-lines:
					if !ok {
						return nil
					}
					if err := handleLine(ctx, sys, line); err != nil {
						fmt.Fprintf(os.Stderr, "error: %v\n", err)
					}
				}
			}
		},
	}
}

func scanStdin(lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

func handleLine(ctx context.Context, sys *system, line string) error {
	switch {
	case strings.TrimSpace(line) == "":
		return nil
	case strings.HasPrefix(line, ":status"):
		return printStatus(ctx, sys)
	default:
		triggers := []loop.TriggerItem{{
			Content:  domain.Raw([]byte(line)),
			Label:    "input",
			HasLabel: true,
		}}
		report, err := sys.engine.RunCycle(ctx, triggers)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	}
}

func printReport(r loop.CycleReport) {
	if r.Halted {
		fmt.Printf("halted: %s\n", r.HaltReason)
		return
	}
	if !r.Focused {
		fmt.Println("cycle: no focus")
		return
	}
	if !r.Assembled {
		fmt.Printf("cycle: focused on window %s, nothing assembled\n", r.FocusWindow)
		return
	}
	fmt.Printf("cycle: focused %s, assembled thought %s, anchored=%v\n", r.FocusWindow, r.ThoughtID, r.Anchored)
}

func newStatusCmd(identityName, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print a fresh session's identity, windows, and focus",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			sys, err := newSystem(ctx, cfg, *identityName, log)
			if err != nil {
				return err
			}
			defer sys.Stop(ctx)

			return printStatus(ctx, sys)
		},
	}
}

// newCheckpointCmd demonstrates Continuity.Checkpoint against a fresh
// session: cogkernel carries no persistence layer of its own, so each CLI
// invocation is its own process-lifetime session (spec.md §9's Non-goal
// excludes a persistence format beyond the vector-store contract).
func newCheckpointCmd(identityName, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoint",
		Short: "Take a checkpoint of a fresh session's identity state",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			sys, err := newSystem(ctx, cfg, *identityName, log)
			if err != nil {
				return err
			}
			defer sys.Stop(ctx)

			id, err := sys.continuityClient.Checkpoint(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("checkpoint %s\n", id)
			return nil
		},
	}
}

func newRestoreCmd(identityName, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore CHECKPOINT_ID",
		Short: "Restore a fresh session to a previously taken checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			sys, err := newSystem(ctx, cfg, *identityName, log)
			if err != nil {
				return err
			}
			defer sys.Stop(ctx)

			if err := sys.continuityClient.Restore(ctx, domain.CheckpointId(args[0])); err != nil {
				return err
			}
			fmt.Printf("restored %s\n", args[0])
			return nil
		},
	}
}

func printStatus(ctx context.Context, sys *system) error {
	identity, err := sys.continuityClient.WhoAmI(ctx)
	if err != nil {
		return err
	}
	windows, maxWindows, err := sys.memoryClient.ListActiveWindows(ctx)
	if err != nil {
		return err
	}
	focus, err := sys.attentionClient.GetFocus(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"identity", identity.Name})
	table.Append([]string{"experiences", fmt.Sprintf("%d", identity.ExperienceCount)})
	table.Append([]string{"milestones", fmt.Sprintf("%d", identity.MilestoneCount)})
	table.Append([]string{"active windows", fmt.Sprintf("%d/%d", len(windows), maxWindows)})
	table.Append([]string{"focus", focusSummary(focus)})
	table.Render()
	return nil
}

func focusSummary(f attention.FocusState) string {
	if !f.HasFocus {
		return "none"
	}
	return fmt.Sprintf("%s (%s)", f.WindowID, f.DurationSoFar)
}
