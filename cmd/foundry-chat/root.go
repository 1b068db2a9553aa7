package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/foundryrelay/foundry"
	"github.com/hupe1980/foundryrelay/foundry/openai"
	"github.com/hupe1980/foundryrelay/logging"
	"github.com/hupe1980/foundryrelay/task"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information set at build time
var Version = "0.1.0"

type rootFlags struct {
	envFile    string
	logLevel   string
	logFormat  string
	apiVersion string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "foundry-chat",
		Short:         "Chat with an Azure AI Foundry agent",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(flags.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Optional dotenv file to load before reading configuration")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log format (text|json)")
	cmd.PersistentFlags().StringVar(&flags.apiVersion, "api-version", openai.DefaultAPIVersion, "Foundry OpenAI api-version")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 2*time.Minute, "Per-message timeout")

	cmd.AddCommand(newAskCmd(flags), newChatCmd(flags))
	return cmd
}

// loadEnv loads a dotenv file if it exists. Variables already set win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && path != ".env" {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func newAgent(flags *rootFlags) (*foundry.TaskAgent, error) {
	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    flags.logFormat,
		Component: "foundry",
	})

	cfg := foundry.LoadConfig(nil)
	connector := openai.NewConnector(func(o *openai.Options) { o.APIVersion = flags.apiVersion })

	return foundry.NewTaskAgent(cfg, task.NewInMemoryService(), connector, func(o *foundry.Options) {
		o.Logger = logger
	}), nil
}

func newAskCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := newAgent(flags)
			if err != nil {
				return err
			}
			defer func() { _ = agent.Cleanup(context.Background()) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			reply := agent.ProcessMessage(ctx, strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			return nil
		},
	}
}

func newChatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the configured agent.

Lines are sent to the agent as user messages. Commands:
  /tasks          list tasks
  /task <title>   add a task
  /done <id>      complete a task
  /quit           exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := newAgent(flags)
			if err != nil {
				return err
			}
			defer func() { _ = agent.Cleanup(context.Background()) }()

			r := &repl{
				agent:   agent,
				tasks:   agent.Tasks(),
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
				timeout: flags.timeout,
			}
			return r.run(cmd.Context())
		},
	}
}
