package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3cc5ff")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#adadad"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#06cc00"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cc9500"))
)

func printBanner(cfg *Config) {
	fmt.Println(headerStyle.Render("========================================"))
	fmt.Println(headerStyle.Render("    DOUBLE HASHING BENCHMARK TOOL"))
	fmt.Println(headerStyle.Render("========================================"))

	policyLabel := cfg.policy
	if cfg.policy == "refuse" {
		policyLabel = warnStyle.Render(policyLabel)
	}

	fmt.Printf("%s %s per phase\n", labelStyle.Render("Operations:"), humanize.Comma(int64(cfg.ops)))
	fmt.Printf("%s %d\n", labelStyle.Render("Runs:      "), cfg.runs)
	fmt.Printf("%s %d\n", labelStyle.Render("Capacity:  "), cfg.capacity)
	fmt.Printf("%s [1, %s]\n", labelStyle.Render("Keyspace:  "), humanize.Comma(cfg.keyspace))
	fmt.Printf("%s %d\n", labelStyle.Render("Seed:      "), cfg.seed)
	fmt.Printf("%s %s\n", labelStyle.Render("Policy:    "), policyLabel)
}

func printBackendHeader(name string) {
	fmt.Printf("\n%s\n", headerStyle.Render("--- backend: "+name+" ---"))
}

func printRun(results []*phaseResult) {
	for _, r := range results {
		throughput := int64(float64(r.ops) / r.duration.Seconds())

		fmt.Printf("%s %s ops in %v (%s ops/s) | ok %s | p50 %s p99 %s max %s\n",
			labelStyle.Render(fmt.Sprintf("%-9s", r.name)),
			humanize.Comma(int64(r.ops)),
			r.duration.Round(time.Microsecond),
			humanize.Comma(throughput),
			okStyle.Render(humanize.Comma(int64(r.successes))),
			fmtLatency(r.latencies.ValueAtQuantile(50)),
			fmtLatency(r.latencies.ValueAtQuantile(99)),
			fmtLatency(r.latencies.Max()),
		)
	}
}

// printFinalState reports the table's state after a run, matching the
// size and count lines the workload's success counters are checked
// against.
func printFinalState(store kvStore) {
	if sp, ok := store.(statsProvider); ok {
		stats := sp.TableStats()
		fmt.Printf("%s capacity %d, count %d, load %.2f, growths %d\n",
			labelStyle.Render("final:   "), stats.Capacity, stats.Size, stats.LoadFactor, stats.Growths)
		return
	}

	fmt.Printf("%s count %d\n", labelStyle.Render("final:   "), store.Len())
}

func fmtLatency(ns int64) string {
	return time.Duration(ns).Round(10 * time.Nanosecond).String()
}
