// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/lc3/emulator"
	lc3io "github.com/ezrec/lc3/io"
)

func main() {
	var verbose bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-v] image-file [image-file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	console := lc3io.NewConsole(os.Stdin, os.Stdout)

	emu := emulator.NewEmulator(console)
	emu.Verbose = verbose

	for _, path := range flag.Args() {
		err := emu.LoadImageFile(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	err := console.Raw()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan error, 1)
	go func() {
		done <- emu.Run()
	}()

	select {
	case err = <-done:
		console.Restore()
		console.Flush()
		if err != nil {
			log.Printf("%v", err)
			log.Print(emu.Cpu.String())
			os.Exit(1)
		}
	case <-interrupt:
		console.Restore()
		os.Exit(130)
	}
}
