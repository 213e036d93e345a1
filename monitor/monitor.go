// Package monitor is an interactive bubbletea TUI for stepping an
// i8080 program: a disassembly pane starting at PC, live register and
// flag state with change highlighting, a stack view, and a scrollable
// memory dump. It is the debugging front end cmd/i8080 launches when
// run with -d.
package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newhook/i8080/cpu"
	"github.com/newhook/i8080/disassembler"
)

// state is a snapshot of the fields the view highlights on change.
type state struct {
	A, B, C, D, E, H, L byte
	SP, PC              uint16
	F                   cpu.Flags
}

func snapshot(c *cpu.CPU) state {
	return state{A: c.A, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L, SP: c.SP, PC: c.PC, F: c.F}
}

type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg {
		return stepTick{}
	})
}

// Model is the bubbletea model driving the monitor's UI.
type Model struct {
	cpu    *cpu.CPU
	onStep func(*cpu.CPU) bool // returns true when the program asked to stop

	paused  bool
	halted  bool
	width   int
	height  int

	locations        []disassembler.Location
	selectedLocation int

	last       state
	lastMemory [64]byte

	memoryAddress uint16
	activePane    string
	gotoInput     textinput.Model
	showingGoto   bool

	breakpoints map[uint16]bool
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(32)

	stackStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(32)

	disasmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(44)

	memoryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(52)

	currentLineStyle  = lipgloss.NewStyle().Background(highlight).Foreground(lipgloss.Color("#ffffff"))
	selectedLineStyle = lipgloss.NewStyle().Foreground(highlight)
	changedStyle      = lipgloss.NewStyle().Foreground(changed).Bold(true)
	breakpointStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// New builds a monitor over c. onStep, if non-nil, is called after
// every executed instruction (the bdos.Hook contract); it returning
// true marks the program halted, after which step, run and pause keys
// do nothing (a breakpoint, by contrast, only pauses).
func New(c *cpu.CPU, onStep func(*cpu.CPU) bool) *Model {
	ti := textinput.New()
	ti.Placeholder = "hex address, e.g. 2000"
	ti.CharLimit = 4
	ti.Width = 8

	m := &Model{
		cpu:           c,
		onStep:        onStep,
		paused:        true,
		locations:     disassembler.Range(c.Memory, 0, 0x10000),
		activePane:    "disasm",
		gotoInput:     ti,
		breakpoints:   make(map[uint16]bool),
		memoryAddress: c.PC,
	}
	m.relocate()
	return m
}

func (m *Model) relocate() {
	for i, l := range m.locations {
		if l.PC == m.cpu.PC {
			m.selectedLocation = i
			return
		}
	}
}

func (m *Model) captureMemoryState() {
	for i := 0; i < 64; i++ {
		m.lastMemory[i] = m.cpu.ReadMemory(m.memoryAddress + uint16(i))
	}
}

func (m *Model) step() {
	m.last = snapshot(m.cpu)
	m.captureMemoryState()
	m.cpu.Step()
	if m.onStep != nil && m.onStep(m.cpu) {
		m.halted = true
		m.paused = true
	}
	m.relocate()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.paused || m.halted || m.breakpoints[m.cpu.PC] {
			m.paused = true
			return m, nil
		}
		m.step()
		return m, doStep()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.showingGoto {
			switch msg.Type {
			case tea.KeyEnter:
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					m.memoryAddress = uint16(addr)
					m.captureMemoryState()
				}
				m.showingGoto = false
				return m, nil
			case tea.KeyEsc:
				m.showingGoto = false
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "g":
			m.showingGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.paused && !m.halted {
				m.step()
			}
		case "b":
			addr := m.locations[m.selectedLocation].PC
			if m.breakpoints[addr] {
				delete(m.breakpoints, addr)
			} else {
				m.breakpoints[addr] = true
			}
		case "r":
			if m.paused && !m.halted {
				m.paused = false
				return m, doStep()
			}
		case "p":
			if !m.halted {
				m.paused = !m.paused
			}
		case "tab":
			if m.activePane == "disasm" {
				m.activePane = "memory"
			} else {
				m.activePane = "disasm"
			}
		case "up":
			if m.activePane == "disasm" {
				if m.selectedLocation > 0 {
					m.selectedLocation--
				}
			} else if m.memoryAddress >= 8 {
				m.memoryAddress -= 8
				m.captureMemoryState()
			}
		case "down":
			if m.activePane == "disasm" {
				if m.selectedLocation < len(m.locations)-1 {
					m.selectedLocation++
				}
			} else if m.memoryAddress <= 0xFFF7 {
				m.memoryAddress += 8
				m.captureMemoryState()
			}
		case "pgup":
			if m.activePane == "disasm" {
				m.selectedLocation -= 20
				if m.selectedLocation < 0 {
					m.selectedLocation = 0
				}
			} else if m.memoryAddress >= 64 {
				m.memoryAddress -= 64
				m.captureMemoryState()
			}
		case "pgdown":
			if m.activePane == "disasm" {
				m.selectedLocation += 20
				if m.selectedLocation > len(m.locations)-1 {
					m.selectedLocation = len(m.locations) - 1
				}
			} else if m.memoryAddress <= 0xFFC0 {
				m.memoryAddress += 64
				m.captureMemoryState()
			}
		}
	}
	return m, nil
}

func (m Model) formatReg8(name string, current, last byte) string {
	v := fmt.Sprintf("%s:$%02X", name, current)
	if current != last {
		return changedStyle.Render(v)
	}
	return v
}

func (m Model) formatReg16(name string, current, last uint16) string {
	v := fmt.Sprintf("%s:$%04X", name, current)
	if current != last {
		return changedStyle.Render(v)
	}
	return v
}

func (m Model) formatFlags() string {
	flags := []struct {
		name    string
		current bool
		last    bool
	}{
		{"S", m.cpu.F.S, m.last.F.S},
		{"Z", m.cpu.F.Z, m.last.F.Z},
		{"AC", m.cpu.F.AC, m.last.F.AC},
		{"P", m.cpu.F.P, m.last.F.P},
		{"CY", m.cpu.F.CY, m.last.F.CY},
	}
	var out strings.Builder
	for _, f := range flags {
		label := "-"
		if f.current {
			label = f.name
		}
		if f.current != f.last {
			out.WriteString(changedStyle.Render(label + " "))
		} else {
			out.WriteString(label + " ")
		}
	}
	if m.cpu.IE {
		out.WriteString(" IE")
	}
	return out.String()
}

func (m Model) formatMemory() string {
	var out strings.Builder
	addr := m.memoryAddress
	for row := 0; row < 8; row++ {
		out.WriteString(fmt.Sprintf("$%04X: ", addr))
		for col := 0; col < 8; col++ {
			offset := row*8 + col
			v := m.cpu.ReadMemory(addr + uint16(col))
			if v != m.lastMemory[offset] {
				out.WriteString(changedStyle.Render(fmt.Sprintf("%02X ", v)))
			} else {
				out.WriteString(fmt.Sprintf("%02X ", v))
			}
		}
		out.WriteString(" | ")
		for col := 0; col < 8; col++ {
			v := m.cpu.ReadMemory(addr + uint16(col))
			if v >= 32 && v <= 126 {
				out.WriteString(string(v))
			} else {
				out.WriteString(".")
			}
		}
		out.WriteString("\n")
		addr += 8
	}
	return out.String()
}

func (m Model) disassemble() string {
	var out strings.Builder
	start := m.selectedLocation
	end := start + 20
	if end > len(m.locations) {
		end = len(m.locations)
	}
	for i := start; i < end; i++ {
		l := m.locations[i]
		line := l.String()
		switch {
		case m.breakpoints[l.PC] && l.PC == m.cpu.PC:
			line = currentLineStyle.Render("* " + line)
		case m.breakpoints[l.PC]:
			line = breakpointStyle.Render("* " + line)
		case l.PC == m.cpu.PC:
			line = currentLineStyle.Render(line)
		case i == m.selectedLocation:
			line = selectedLineStyle.Render(line)
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

func (m Model) formatStack() string {
	var out strings.Builder
	for i := 0; i < 16; i++ {
		addr := m.cpu.SP + uint16(i)
		out.WriteString(fmt.Sprintf("$%04X: %02X\n", addr, m.cpu.ReadMemory(addr)))
	}
	return out.String()
}

func (m Model) View() string {
	disasm := disasmStyle.Render(fmt.Sprintf("Disassembly\n\n%s", m.disassemble()))

	cpuState := infoStyle.Render(fmt.Sprintf(
		"Registers\n\n%s %s %s %s\n%s %s %s\n%s  %s\n\nFlags: %s",
		m.formatReg8("A", m.cpu.A, m.last.A),
		m.formatReg8("B", m.cpu.B, m.last.B),
		m.formatReg8("C", m.cpu.C, m.last.C),
		m.formatReg8("D", m.cpu.D, m.last.D),
		m.formatReg8("E", m.cpu.E, m.last.E),
		m.formatReg8("H", m.cpu.H, m.last.H),
		m.formatReg8("L", m.cpu.L, m.last.L),
		m.formatReg16("PC", m.cpu.PC, m.last.PC),
		m.formatReg16("SP", m.cpu.SP, m.last.SP),
		m.formatFlags(),
	))

	stack := stackStyle.Render(fmt.Sprintf("Stack\n\n%s", m.formatStack()))
	memory := memoryStyle.Render(fmt.Sprintf("Memory (tab+arrows to scroll)\n\n%s", m.formatMemory()))

	right := lipgloss.JoinVertical(lipgloss.Left, cpuState, stack, memory)

	var help string
	switch {
	case m.halted:
		help = titleStyle.Render("program halted • q: quit")
	case !m.paused:
		help = titleStyle.Render("p: pause • q: quit")
	default:
		help = titleStyle.Render(
			"s: step • r: run to break • p: pause/resume • b: toggle break • " +
				"up/down: scroll • pgup/pgdn: page • tab: switch pane • g: goto • q: quit",
		)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, disasm, lipgloss.PlaceHorizontal(3, lipgloss.Left, right))

	if m.showingGoto {
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			Width(30).
			Render("Go to address:\n\n" + m.gotoInput.View())
		return lipgloss.JoinVertical(lipgloss.Center, content, help, dialog)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, help)
}
