// Package vm implements the Parallax register-based virtual machine.
//
// A program is a flat, immutable sequence of instructions organized into
// named functions. The machine has a 32-slot integer register bank (plus an
// optional floating point bank), a global instruction pointer, an additive
// stack pointer, and a return stack that records pending call resumptions.
// Jumps resolve only against the labels of the function they appear in, so
// control flow can never leave a function except through call and ret.
package vm
