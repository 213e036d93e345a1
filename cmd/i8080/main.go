package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newhook/i8080/bdos"
	"github.com/newhook/i8080/cpu"
	"github.com/newhook/i8080/monitor"
)

const loadAddr = 0x0100

func main() {
	debug := flag.Bool("debug", false, "launch the interactive monitor instead of running headless")
	flag.BoolVar(debug, "d", false, "shorthand for -debug")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: i8080 [-debug|-d] <rom-path>")
		os.Exit(1)
	}

	mem := &cpu.Memory{}
	c := cpu.NewCPU(mem)
	c.PC = loadAddr

	if err := loadROM(mem, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "i8080: %v\n", err)
		os.Exit(1)
	}
	bdos.Install(c)

	if *debug {
		runMonitor(c)
		return
	}
	runHeadless(c)
}

func loadROM(mem *cpu.Memory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}
	if loadAddr+len(data) > len(mem) {
		return fmt.Errorf("ROM too large for available memory: %d bytes", len(data))
	}
	for i, b := range data {
		mem[loadAddr+i] = b
	}
	return nil
}

func runHeadless(c *cpu.CPU) {
	hook := bdos.Hook(os.Stdout)
	for {
		c.Step()
		if hook(c) {
			return
		}
	}
}

func runMonitor(c *cpu.CPU) {
	hook := bdos.Hook(os.Stdout)
	m := monitor.New(c, hook)
	p := tea.NewProgram(m)
	if err := p.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "i8080: monitor error: %v\n", err)
		os.Exit(1)
	}
}
