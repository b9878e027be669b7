package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// appName is the name of the application used in CLI usage output
	appName = "lqtester"
	// logFileMaxSizeMB is the size at which the log file is rotated
	logFileMaxSizeMB = 50
	// logFileMaxBackups is the number of rotated log files kept
	logFileMaxBackups = 3
	// logFileMaxAgeDays is how long rotated log files are kept
	logFileMaxAgeDays = 28
)

// k is the global koanf instance used for configuration and flag management
var k *koanf.Koanf

// logFile is the rotating log file shared by every logger setup
var logFile *lumberjack.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "classify websites as good, suspicious, or low quality",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		err := initCmdFlags(cmd)
		cobra.CheckErr(err)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down gracefully...")
	}()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

// init initializes the koanf instance and registers persistent flags on the root command
func init() {
	k = koanf.New(".")
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("pretty", false, "enable pretty (human readable) logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file, rotated by size")
	rootCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// initConfig reads in flags set for server startup
func initConfig() {
	if err := initCmdFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	setupLogging(k.Bool("debug"), k.Bool("pretty"))
}

// initCmdFlags loads the flags from the command line into the koanf instance
func initCmdFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging configures zerolog for the debug and pretty settings, adding the
// rotated log file when the log-file flag is set
func setupLogging(debug, pretty bool) {
	level := zerolog.InfoLevel

	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if path := k.String("log-file"); path != "" {
		if logFile == nil {
			logFile = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    logFileMaxSizeMB,
				MaxBackups: logFileMaxBackups,
				MaxAge:     logFileMaxAgeDays,
			}
		}

		out = zerolog.MultiLevelWriter(out, logFile)
	}

	log.Logger = log.Output(out)
}
