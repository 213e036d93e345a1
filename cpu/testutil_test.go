package cpu

// load writes prog starting at the CPU's current PC (0x0100 after
// NewCPU) and returns the CPU ready to step through it. Shared by the
// internal-package instruction-family test files in this directory.
func load(prog ...byte) *CPU {
	mem := &Memory{}
	for i, b := range prog {
		mem[0x0100+i] = b
	}
	return NewCPU(mem)
}
