package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 创建 ecoterra 根命令
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecoterra",
		Short:         "EcoTerra sustainable travel service",
		Long:          "EcoTerra: carbon footprint estimates, trip history and eco travel recommendations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newEstimateCmd(),
		newTokenCmd(),
	)
	return cmd
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
