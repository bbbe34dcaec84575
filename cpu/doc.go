// Package cpu implements the processor of the LC-3 virtual machine.
//
// The processor consists of eight 16-bit general purpose registers
// (r0-r7), a program counter, and a three flag condition register.
// Each tick fetches one instruction word from memory, decodes it by
// its top four bits, and executes it. System traps provide character
// I/O through an attached terminal.
package cpu
