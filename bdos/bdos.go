// Package bdos implements the two CP/M BDOS functions that the
// standard zexdoc/cpudiag-style diagnostic ROMs call through
// CALL 0x0005: print string (C=9) and print character (C=2). It is a
// host collaborator, not part of the 8080 core — it only observes
// register and memory state after cpu.CPU.Step returns, exactly the
// hook contract described by the core's syscall interface.
package bdos

import (
	"io"

	"github.com/newhook/i8080/cpu"
)

// warmBoot is the CP/M BDOS function code diagnostic ROMs call to
// signal a clean exit.
const warmBoot = 0x00

// Install writes the RET opcode (0xC9) at address 0x0005, the
// trampoline the core's CALL/RET semantics need so "CALL 0x0005"
// returns immediately to the caller instead of running off into
// whatever garbage memory holds. Nothing else in the core writes this
// address; doing so is the host's responsibility.
func Install(c *cpu.CPU) {
	c.WriteMemory(0x0005, 0xC9)
}

// Hook returns a function the host's run loop should call after every
// cpu.CPU.Step. When the step just executed was "CALL 0x0005" — PC
// now points at the installed trampoline — it services the BDOS
// function named by register C, writing output to w, and reports
// whether the ROM asked to stop (warm boot, C=0) or whether PC has
// wrapped to 0x0000, the other conventional termination point for
// these ROMs.
func Hook(w io.Writer) func(c *cpu.CPU) bool {
	return func(c *cpu.CPU) bool {
		if c.PC == 0x0000 {
			return true
		}
		if c.PC != 0x0005 {
			return false
		}
		switch c.C {
		case warmBoot:
			return true
		case 0x02:
			w.Write([]byte{c.E})
		case 0x09:
			writeDollarString(c, w)
		}
		return false
	}
}

// writeDollarString prints the $-terminated string starting at DE, the
// C=9 BDOS convention. It never reads past the terminator.
func writeDollarString(c *cpu.CPU, w io.Writer) {
	addr := uint16(c.D)<<8 | uint16(c.E)
	for {
		b := c.ReadMemory(addr)
		if b == '$' {
			return
		}
		w.Write([]byte{b})
		addr++
	}
}
