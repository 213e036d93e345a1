package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMOV_RegisterToRegister(t *testing.T) {
	c := load(MOV_B_C)
	c.C = 0x42
	c.Step()
	assert.Equal(t, byte(0x42), c.B)
}

func TestMOV_FromMemory(t *testing.T) {
	c := load(MOV_A_M)
	c.H, c.L = 0x20, 0x00
	c.WriteMemory(0x2000, 0x99)
	c.Step()
	assert.Equal(t, byte(0x99), c.A)
}

func TestMOV_ToMemory(t *testing.T) {
	c := load(MOV_M_A)
	c.H, c.L = 0x20, 0x00
	c.A = 0x55
	c.Step()
	assert.Equal(t, byte(0x55), c.ReadMemory(0x2000))
}

func TestMOV_M_M_IsActuallyHLT(t *testing.T) {
	c := load(HLT)
	before := c.PC
	c.Step()
	assert.Equal(t, before+1, c.PC)
}

func TestMVI_LoadsImmediateIntoRegister(t *testing.T) {
	c := load(MVI_D, 0x77)
	c.Step()
	assert.Equal(t, byte(0x77), c.D)
}

func TestMVI_M_WritesMemory(t *testing.T) {
	c := load(MVI_M, 0xAB)
	c.H, c.L = 0x21, 0x00
	c.Step()
	assert.Equal(t, byte(0xAB), c.ReadMemory(0x2100))
}

func TestLXI_LoadsAllPairsIncludingSP(t *testing.T) {
	c := load(LXI_B, 0x34, 0x12, LXI_D, 0x78, 0x56, LXI_H, 0xBC, 0x9A, LXI_SP, 0xF0, 0xDE)
	c.Step()
	assert.Equal(t, byte(0x12), c.B)
	assert.Equal(t, byte(0x34), c.C)

	c.Step()
	assert.Equal(t, byte(0x56), c.D)
	assert.Equal(t, byte(0x78), c.E)

	c.Step()
	assert.Equal(t, byte(0x9A), c.H)
	assert.Equal(t, byte(0xBC), c.L)

	c.Step()
	assert.Equal(t, uint16(0xDEF0), c.SP)
}

func TestSTA_LDA_RoundTrip(t *testing.T) {
	c := load(STA, 0x00, 0x40, LDA, 0x00, 0x40)
	c.A = 0x66
	c.Step()
	c.A = 0
	c.Step()
	assert.Equal(t, byte(0x66), c.A)
}

func TestSHLD_LHLD_RoundTrip(t *testing.T) {
	c := load(SHLD, 0x00, 0x50, LHLD, 0x00, 0x50)
	c.H, c.L = 0x12, 0x34
	c.Step()

	assert.Equal(t, byte(0x34), c.ReadMemory(0x5000))
	assert.Equal(t, byte(0x12), c.ReadMemory(0x5001))

	c.H, c.L = 0, 0
	c.Step()
	assert.Equal(t, byte(0x12), c.H)
	assert.Equal(t, byte(0x34), c.L)
}

func TestSTAX_LDAX_BCAndDE(t *testing.T) {
	c := load(STAX_B, LDAX_B, STAX_D, LDAX_D)
	c.B, c.C = 0x20, 0x00
	c.A = 0x11
	c.Step() // STAX B
	assert.Equal(t, byte(0x11), c.ReadMemory(0x2000))

	c.A = 0
	c.Step() // LDAX B
	assert.Equal(t, byte(0x11), c.A)

	c.D, c.E = 0x30, 0x00
	c.A = 0x22
	c.Step() // STAX D
	assert.Equal(t, byte(0x22), c.ReadMemory(0x3000))

	c.A = 0
	c.Step() // LDAX D
	assert.Equal(t, byte(0x22), c.A)
}

func TestXCHG_IsInvolution(t *testing.T) {
	c := load(XCHG, XCHG)
	c.D, c.E = 0x11, 0x22
	c.H, c.L = 0x33, 0x44

	c.Step()
	assert.Equal(t, byte(0x33), c.D)
	assert.Equal(t, byte(0x44), c.E)
	assert.Equal(t, byte(0x11), c.H)
	assert.Equal(t, byte(0x22), c.L)

	c.Step()
	assert.Equal(t, byte(0x11), c.D)
	assert.Equal(t, byte(0x22), c.E)
	assert.Equal(t, byte(0x33), c.H)
	assert.Equal(t, byte(0x44), c.L)
}

// TestMOV_FullMatrix walks every src/dst register combination in the
// 0x40-0x7F block (skipping M operands, covered separately, and 0x76
// which is HLT rather than MOV M,M).
func TestMOV_FullMatrix(t *testing.T) {
	regs := []struct {
		name string
		get  func(c *CPU) byte
		set  func(c *CPU, v byte)
	}{
		{"B", func(c *CPU) byte { return c.B }, func(c *CPU, v byte) { c.B = v }},
		{"C", func(c *CPU) byte { return c.C }, func(c *CPU, v byte) { c.C = v }},
		{"D", func(c *CPU) byte { return c.D }, func(c *CPU, v byte) { c.D = v }},
		{"E", func(c *CPU) byte { return c.E }, func(c *CPU, v byte) { c.E = v }},
		{"H", func(c *CPU) byte { return c.H }, func(c *CPU, v byte) { c.H = v }},
		{"L", func(c *CPU) byte { return c.L }, func(c *CPU, v byte) { c.L = v }},
		{"A", func(c *CPU) byte { return c.A }, func(c *CPU, v byte) { c.A = v }},
	}
	opcodes := [][]byte{
		{MOV_B_B, MOV_B_C, MOV_B_D, MOV_B_E, MOV_B_H, MOV_B_L, MOV_B_A},
		{MOV_C_B, MOV_C_C, MOV_C_D, MOV_C_E, MOV_C_H, MOV_C_L, MOV_C_A},
		{MOV_D_B, MOV_D_C, MOV_D_D, MOV_D_E, MOV_D_H, MOV_D_L, MOV_D_A},
		{MOV_E_B, MOV_E_C, MOV_E_D, MOV_E_E, MOV_E_H, MOV_E_L, MOV_E_A},
		{MOV_H_B, MOV_H_C, MOV_H_D, MOV_H_E, MOV_H_H, MOV_H_L, MOV_H_A},
		{MOV_L_B, MOV_L_C, MOV_L_D, MOV_L_E, MOV_L_H, MOV_L_L, MOV_L_A},
		{MOV_A_B, MOV_A_C, MOV_A_D, MOV_A_E, MOV_A_H, MOV_A_L, MOV_A_A},
	}

	for dst := range regs {
		for src := range regs {
			c := load(opcodes[dst][src])
			regs[src].set(c, 0x5A)
			c.Step()
			assert.Equalf(t, byte(0x5A), regs[dst].get(c), "MOV %s,%s", regs[dst].name, regs[src].name)
		}
	}
}
