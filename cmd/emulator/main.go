// Command emulator runs a program image against the machine and
// presents its video output in a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"tilemach/internal/assets"
	"tilemach/internal/cpu"
	"tilemach/internal/debug"
	"tilemach/internal/hostui"
	"tilemach/internal/isa"
	"tilemach/internal/memfab"
)

const defaultDataDir = "data"

func main() {
	unlimited := flag.Bool("unlimited", false, "run the CPU without a present-loop handshake (no effect on CPU speed; kept for parity with the ambient flag set)")
	scale := flag.Int("scale", 2, "host window zoom (1-6); independent of the machine's own SCALE register")
	enableLogging := flag.Bool("log", false, "enable component logging (disabled by default)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("Usage: emulator <program.bin> [<data-directory>]")
		os.Exit(64)
	}
	if *scale < 1 || *scale > 6 {
		fmt.Fprintln(os.Stderr, "Error: -scale must be between 1 and 6")
		os.Exit(64)
	}

	romPath := args[0]
	dataDir := defaultDataDir
	if len(args) == 2 {
		dataDir = args[1]
	}
	_ = *unlimited

	program, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program image: %v\n", err)
		os.Exit(64)
	}

	var log *debug.Logger
	if *enableLogging {
		log = debug.NewLogger(10000)
		log.SetComponentEnabled(debug.ComponentCPU, true)
		log.SetComponentEnabled(debug.ComponentMemory, true)
		log.SetComponentEnabled(debug.ComponentRasterizer, true)
		log.SetComponentEnabled(debug.ComponentInput, true)
		log.SetComponentEnabled(debug.ComponentUI, true)
		log.SetComponentEnabled(debug.ComponentSystem, true)
		defer log.Shutdown()
	}

	bus := memfab.NewBus()
	bus.Log = log
	bus.LoadProgram(isa.DecodeImage(program))

	if err := assets.LoadInto(bus, dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		os.Exit(64)
	}

	var cpuLogger cpu.Logger
	if log != nil {
		cpuLogger = log
	}
	machine := cpu.New(bus, cpuLogger)
	go machine.Run(*enableLogging)

	win := hostui.New(bus, log, *scale)
	win.SetOnOpenROM(func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			if log != nil {
				log.LogSystem(debug.LogLevelError, "failed to load %s: %v", path, err)
			}
			return
		}
		bus.LoadProgram(isa.DecodeImage(data))
	})
	win.Run(true)
}
