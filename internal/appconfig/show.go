package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	effective := Config{}
	if cfg != nil {
		effective = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Host URL:         %s\n", effective.EffectiveHostURL())
	fmt.Fprintf(out, "  Model:            %s\n", effective.EffectiveModel())
	fmt.Fprintf(out, "  Batch Size:       %d\n", effective.EffectiveBatchSize())
	fmt.Fprintf(out, "  Retry Batch Size: %d\n", effective.EffectiveRetryBatchSize())
	fmt.Fprintf(out, "  Retry Rounds:     %d\n", effective.RetryAttempts())
	fmt.Fprintf(out, "  Concurrency:      %d\n", effective.EffectiveConcurrency())
	fmt.Fprintf(out, "  Request Timeout:  %s\n", effective.RequestTimeout())
	fmt.Fprintf(out, "  Sleep Between:    %s\n", effective.SleepBetween())
	fmt.Fprintf(out, "  Streaming:        %v\n", effective.Streaming)
	fmt.Fprintf(out, "  Cleanup Enabled:  %v\n", !effective.NoClean)
	fmt.Fprintf(out, "  Debug:            %v\n", effective.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", effective.LogFilePath())
	if effective.Sampling.Temperature != nil {
		fmt.Fprintf(out, "  Temperature:      %g\n", *effective.Sampling.Temperature)
	}
	if effective.Sampling.TopP != nil {
		fmt.Fprintf(out, "  Top P:            %g\n", *effective.Sampling.TopP)
	}
}
