package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"remont/internal/api"
	"remont/internal/config"
	"remont/internal/logging"
	"remont/internal/models"
)

var (
	globalConfig *config.Config
	configPath   string
	logger       *slog.Logger
	debug        bool
)

// notifySignals cancel the command context; SIGKILL cannot be caught
var notifySignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var rootCmd = &cobra.Command{
	Use:   "remont",
	Short: "Ремонт - renovation projects, estimates and the ЯСЕН assistant",
	Long: `remont is a command-line client for the renovation marketplace.
It manages projects, room measurements and photos, builds cost estimates,
browses supplier catalogs and talks to the ЯСЕН voice assistant.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logger = logging.New(logging.Options{Level: "debug", Format: globalConfig.LogFormat, AddSource: true})
		}
	},
}

// Execute runs the root command
func Execute(ctx context.Context, cfg *config.Config, path string, log *slog.Logger, version string) error {
	globalConfig = cfg
	configPath = path
	logger = log
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(notifySignals...),
	)
}

// newClient creates an API client for the loaded configuration
func newClient() *api.Client {
	return api.NewClient(globalConfig, api.WithLogger(logger))
}

func sessionStore() (*models.SessionStore, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return models.NewSessionStore(dir, globalConfig.SessionTTL()), nil
}

// requireSession loads the stored session and attaches it to ctx
func requireSession(ctx context.Context) (context.Context, *models.Session, error) {
	store, err := sessionStore()
	if err != nil {
		return nil, nil, err
	}
	session, err := store.Load()
	if err != nil {
		if errors.Is(err, models.ErrNotLoggedIn) || errors.Is(err, models.ErrSessionExpired) {
			return nil, nil, fmt.Errorf("%w: run 'remont auth send-code' and 'remont auth verify'", err)
		}
		return nil, nil, fmt.Errorf("error loading session: %w", err)
	}
	return api.WithSession(ctx, session), session, nil
}

var stdin = bufio.NewReader(os.Stdin)

// prompt asks for a line of input
func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// parseID parses a positive numeric id argument
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", what, arg)
	}
	return id, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests and state changes")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(measurementCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(assistantCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(phoneCmd)
	rootCmd.AddCommand(configCmd)
}
