package kv

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/kvconn/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for Redis connections",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)

	// latency timers of all benchmarks, one per test
	perfTimers = gometrics.NewRegistry()
)

// perfTest is a single benchmark. If seed is set, all keys are written before the benchmark starts.
type perfTest struct {
	name string
	seed bool
	op   func(ctx context.Context, key string, i int) error
}

// perfResult is the outcome of one perfTest
type perfResult struct {
	bench testing.BenchmarkResult
	p50   time.Duration
	p99   time.Duration
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for Redis connections")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Hosts: %s\n", viper.GetString("hosts"))
	fmt.Print(kvManager.Config().String())
	fmt.Printf("Transport: %+v\n", util.GetTransportOptions())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("staring tests...")

	value := []byte("test")
	largeValue := make([]byte, perfLargeValueSizeKB*1024)

	tests := []perfTest{
		{name: "set", op: func(ctx context.Context, key string, _ int) error {
			return kvStore.Set(ctx, key, value)
		}},
		{name: "set-large", op: func(ctx context.Context, key string, _ int) error {
			return kvStore.Set(ctx, key, largeValue)
		}},
		{name: "get", seed: true, op: func(ctx context.Context, key string, _ int) error {
			_, _, err := kvStore.Get(ctx, key)
			return err
		}},
		{name: "delete", seed: true, op: func(ctx context.Context, key string, _ int) error {
			return kvStore.Delete(ctx, key)
		}},
		{name: "has", seed: true, op: func(ctx context.Context, key string, _ int) error {
			_, err := kvStore.Has(ctx, key)
			return err
		}},
		{name: "has-not", op: func(ctx context.Context, key string, _ int) error {
			_, err := kvStore.Has(ctx, key)
			return err
		}},
		{name: "mixed", seed: true, op: func(ctx context.Context, key string, i int) error {
			var err error
			switch i % 4 {
			case 0: // set
				err = kvStore.Set(ctx, key, value)
			case 1: // get
				_, _, err = kvStore.Get(ctx, key)
			case 2: // delete
				err = kvStore.Delete(ctx, key)
			case 3: // has
				_, err = kvStore.Has(ctx, key)
			}
			return err
		}},
	}

	// Create results map
	results := make(map[string]perfResult, len(tests))

	for _, test := range tests {
		result := runPerfTest(test)
		results[test.name] = result
		printResult(test.name, result)
	}

	// Print pool statistics if pooling is enabled
	if stats, ok := kvManager.PoolStats(); ok {
		fmt.Println()
		fmt.Println("Pool:")
		fmt.Print(stats.String())
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// runPerfTest benchmarks a single test and records the latency of every operation
func runPerfTest(test perfTest) perfResult {
	timer := gometrics.GetOrRegisterTimer(test.name, perfTimers)

	bench := testing.Benchmark(func(b *testing.B) {
		if shouldSkip(test.name) {
			return
		}

		ctx := context.Background()

		// prepare keys
		getKey, iter := getKeys(test.name)

		// set keys
		if test.seed {
			iter(func(k string) {
				if err := kvStore.Set(ctx, k, []byte("test")); err != nil {
					log.Printf("(%s) - error setting key: %v\n", test.name, err)
				}
			})
		}

		// cleanup
		b.Cleanup(func() {
			iter(func(k string) {
				if err := kvStore.Delete(ctx, k); err != nil {
					log.Printf("(%s) - error deleting key: %v\n", test.name, err)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				if err := test.op(ctx, getKey(counter), counter); err != nil {
					log.Printf("(%s) - error performing operation: %v\n", test.name, err)
				}
				timer.UpdateSince(start)
				counter++
			}
		})
	})

	result := perfResult{bench: bench}
	if timer.Count() > 0 {
		ps := timer.Percentiles([]float64{0.5, 0.99})
		result.p50 = time.Duration(ps[0])
		result.p99 = time.Duration(ps[1])
	}
	return result
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// opsPerSec returns nanoseconds and operations per second of a benchmark, or ok=false if it was skipped
func opsPerSec(result testing.BenchmarkResult) (nsPerOp, ops float64, ok bool) {
	if result.NsPerOp() == 0 {
		return 0, 0, false
	}
	nsPerOp = math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	return nsPerOp, 1.0 / (nsPerOp / 1e9), true
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result perfResult) {
	nsPerOp, ops, ok := opsPerSec(result.bench)
	if !ok {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp50=%s p99=%s\n",
		test, nsPerOp, time.Duration(nsPerOp), ops, result.p50, result.p99)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50", "P99", "Skipped",
		"Hosts", "Cluster", "Pooling", "PoolMaxTotal", "TimeoutSec",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	config := kvManager.Config()

	// Write test results
	for test, result := range results {
		nsPerOp, ops, ok := opsPerSec(result.bench)

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", ops),
			result.p50.String(),
			result.p99.String(),
			strconv.FormatBool(!ok),
			viper.GetString("hosts"),
			strconv.FormatBool(config.Cluster),
			strconv.FormatBool(config.Pooling),
			strconv.Itoa(config.Pool.MaxTotal),
			strconv.Itoa(viper.GetInt("timeout")),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
