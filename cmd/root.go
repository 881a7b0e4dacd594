/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mikesmitty/smoothie/pkg/smoothie"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smoothie",
	Short: "Smooth a numeric stream with a windowed moving average",
	Long: `Smoothie reads a stream of numeric samples, maintains a simple moving
average over a fixed window, and writes the smoothed signal to stdout,
optionally publishing raw and smoothed readings over MQTT.

Strategies: recompute (reference accuracy), runningsum (fastest),
corrected (bounded drift, the default), sumtree (bounded drift,
O(log n) updates).`,
	Run: smoothie.Root(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.smoothie.yaml)")
	rootCmd.PersistentFlags().String("strategy", "corrected", "averaging strategy (recompute, runningsum, corrected, sumtree)")
	rootCmd.PersistentFlags().Int("window", 600, "number of samples in the averaging window")
	rootCmd.PersistentFlags().Int("resync-every", 0, "corrected strategy resync period (default window size)")
	rootCmd.PersistentFlags().String("source", "stdin", "sample source (stdin, synthetic)")
	rootCmd.PersistentFlags().Duration("interval", 100*time.Millisecond, "synthetic source sample interval")
	rootCmd.PersistentFlags().Float64("amplitude", 1.0, "synthetic source signal amplitude")
	rootCmd.PersistentFlags().Float64("noise", 0.1, "synthetic source noise amplitude")
	rootCmd.PersistentFlags().String("mqtt-broker", "", "mqtt broker url")
	rootCmd.PersistentFlags().Int("mqtt-sample-interval", 10, "publish every Nth reading to mqtt")
	rootCmd.PersistentFlags().Duration("watchdog-timeout", 10*time.Second, "pipeline shutdown timeout without samples (0 disables)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".smoothie" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".smoothie")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
