// Package bytecode holds the compiled form of zlang functions.
//
// A Function is an immutable sequence of Instructions. Each Instruction is an
// opcode from the op package plus a single Operand, a tagged union whose
// active variant depends on the opcode:
//
//   - PUSH_LITERAL carries an integer, float, boolean, character, text or
//     null literal, or a raw integer count (argument or dimension count)
//   - LOAD_SLOT, STORE_SLOT, LOAD_ELEMENT and STORE_ELEMENT carry a slot
//   - the JUMP family carries a jump target (an instruction index)
//   - OPERATE carries an operator tag
//   - CALL and CALL_DISCARD carry a function name
//   - RESERVE carries the frame size
//
// An Image groups the functions of one compiled program for storage. Images
// can be encoded as JSON (Marshal/Unmarshal) or canonical CBOR
// (MarshalCBOR/UnmarshalCBOR).
package bytecode
