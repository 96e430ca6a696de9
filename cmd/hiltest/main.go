// Command hiltest drives one run of the selftest firmware over a serial
// link and reports the verdicts. Exit status 0 means every check passed
// and no frames were lost or damaged.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"stm32h7x/hil"
	"stm32h7x/hil/hilserial"
)

var (
	device   = flag.String("device", "", "Serial device path (overrides config file)")
	baud     = flag.Int("baud", 0, "Baud rate, ignored on USB CDC (overrides config file)")
	deadline = flag.Int("deadline-ms", 0, "Whole-run deadline in milliseconds (overrides config file)")
	cfgPath  = flag.String("config", "", "YAML config file")
	verbose  = flag.Bool("verbose", false, "Print got/want values for passing checks too")
)

func main() {
	flag.Parse()

	cfg := hil.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := hil.LoadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *device != "" {
		cfg.Port = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *deadline != 0 {
		cfg.DeadlineMS = *deadline
	}

	fmt.Printf("Connecting to %s...\n", cfg.Port)
	port, err := hilserial.Open(&hilserial.Config{
		Device:      cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeoutMS,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// Drop whatever the board printed before we attached.
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	// Any byte starts a selftest run on the board.
	if _, err := port.Write([]byte{'\n'}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: start run: %v\n", err)
		os.Exit(1)
	}

	res, runErr := hil.Run(port, time.Duration(cfg.DeadlineMS)*time.Millisecond)
	printResult(res)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if !res.Ok() {
		os.Exit(1)
	}
}

func printResult(res *hil.Result) {
	for _, rep := range res.Reports {
		if rep.Status == hil.Pass && !*verbose {
			fmt.Printf("%-15s %s\n", hil.CheckName(rep.Check), rep.Status)
			continue
		}
		fmt.Printf("%-15s %s  got=%d want=%d\n",
			hil.CheckName(rep.Check), rep.Status, rep.Got, rep.Want)
	}
	fmt.Printf("summary: %d checks, %d failed, %d skipped, %d lost, %d malformed\n",
		len(res.Reports), res.Failed, res.Skipped, res.SeqGaps, res.Malformed)
}
