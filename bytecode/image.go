package bytecode

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/zlang-io/zlang/op"
)

// FormatVersion is the version of the serialized image layout.
const FormatVersion = 1

// Image is the storable form of one compiled program.
type Image struct {
	BuildID   string
	Source    string
	Compiler  string
	Functions []*Function
}

// Function returns the function with the given name and arity, if present.
func (img *Image) Function(name string, arity int) (*Function, bool) {
	for _, fn := range img.Functions {
		if fn.name == name && fn.arity == arity {
			return fn, true
		}
	}
	return nil, false
}

// Validate checks every function in the image, reporting all failures.
func (img *Image) Validate() error {
	var result *multierror.Error
	seen := map[string]bool{}
	for _, fn := range img.Functions {
		if seen[fn.Key()] {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate function", fn.Key()))
			continue
		}
		seen[fn.Key()] = true
		if err := Validate(fn); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Marshal converts an Image into a JSON representation.
func Marshal(img *Image) ([]byte, error) {
	return json.Marshal(stateFromImage(img))
}

// Unmarshal converts a JSON representation into an Image.
func Unmarshal(data []byte) (*Image, error) {
	var state imageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return imageFromState(&state)
}

// Serialization types, shared by the JSON and CBOR encodings.

type operandDef struct {
	Kind  string  `json:"kind" cbor:"kind"`
	Int   int64   `json:"int,omitempty" cbor:"int,omitempty"`
	Float float64 `json:"float,omitempty" cbor:"float,omitempty"`
	Text  string  `json:"text,omitempty" cbor:"text,omitempty"`
}

type instructionDef struct {
	Op      string      `json:"op" cbor:"op"`
	Operand *operandDef `json:"operand,omitempty" cbor:"operand,omitempty"`
}

type functionDef struct {
	Name         string           `json:"name" cbor:"name"`
	Arity        int              `json:"arity" cbor:"arity"`
	FrameSize    int              `json:"frame_size" cbor:"frame_size"`
	LocalNames   []string         `json:"local_names,omitempty" cbor:"local_names,omitempty"`
	Instructions []instructionDef `json:"instructions" cbor:"instructions"`
}

type imageState struct {
	Version   int            `json:"version" cbor:"version"`
	BuildID   string         `json:"build_id,omitempty" cbor:"build_id,omitempty"`
	Source    string         `json:"source,omitempty" cbor:"source,omitempty"`
	Compiler  string         `json:"compiler,omitempty" cbor:"compiler,omitempty"`
	Functions []*functionDef `json:"functions" cbor:"functions"`
}

func stateFromImage(img *Image) *imageState {
	state := &imageState{
		Version:   FormatVersion,
		BuildID:   img.BuildID,
		Source:    img.Source,
		Compiler:  img.Compiler,
		Functions: make([]*functionDef, 0, len(img.Functions)),
	}
	fns := make([]*Function, len(img.Functions))
	copy(fns, img.Functions)
	sort.SliceStable(fns, func(i, j int) bool {
		if fns[i].name != fns[j].name {
			return fns[i].name < fns[j].name
		}
		return fns[i].arity < fns[j].arity
	})
	for _, fn := range fns {
		def := &functionDef{
			Name:         fn.name,
			Arity:        fn.arity,
			FrameSize:    fn.frameSize,
			LocalNames:   fn.localNames,
			Instructions: make([]instructionDef, len(fn.instructions)),
		}
		for i, instr := range fn.instructions {
			def.Instructions[i] = instructionDef{
				Op:      instr.Op.String(),
				Operand: operandToDef(instr.Operand),
			}
		}
		state.Functions = append(state.Functions, def)
	}
	return state
}

func imageFromState(state *imageState) (*Image, error) {
	if state.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported image version %d", state.Version)
	}
	img := &Image{
		BuildID:   state.BuildID,
		Source:    state.Source,
		Compiler:  state.Compiler,
		Functions: make([]*Function, 0, len(state.Functions)),
	}
	for _, def := range state.Functions {
		if def == nil {
			return nil, fmt.Errorf("image contains an empty function entry")
		}
		instructions := make([]Instruction, len(def.Instructions))
		for i, instrDef := range def.Instructions {
			code, ok := op.Lookup(instrDef.Op)
			if !ok {
				return nil, fmt.Errorf("%s: unknown opcode %q at %d",
					FunctionKey(def.Name, def.Arity), instrDef.Op, i)
			}
			operand, err := operandFromDef(instrDef.Operand)
			if err != nil {
				return nil, fmt.Errorf("%s: instruction %d: %w",
					FunctionKey(def.Name, def.Arity), i, err)
			}
			instructions[i] = Instruction{Op: code, Operand: operand}
		}
		img.Functions = append(img.Functions, &Function{
			name:         def.Name,
			arity:        def.Arity,
			frameSize:    def.FrameSize,
			instructions: instructions,
			localNames:   def.LocalNames,
		})
	}
	return img, nil
}

func operandToDef(o Operand) *operandDef {
	def := &operandDef{Kind: o.kind.String()}
	switch o.kind {
	case KindNone:
		return nil
	case KindFloat:
		def.Float = o.flt
	case KindText, KindFunction:
		def.Text = o.str
	case KindNull:
	default:
		def.Int = o.num
	}
	return def
}

func operandFromDef(def *operandDef) (Operand, error) {
	if def == nil {
		return None(), nil
	}
	kind, ok := kindFromString(def.Kind)
	if !ok {
		return Operand{}, fmt.Errorf("unknown operand kind %q", def.Kind)
	}
	switch kind {
	case KindNone:
		return None(), nil
	case KindFloat:
		return Float(def.Float), nil
	case KindText, KindFunction:
		return Operand{kind: kind, str: def.Text}, nil
	case KindNull:
		return Null(), nil
	case KindBool:
		return Bool(def.Int != 0), nil
	default:
		return Operand{kind: kind, num: def.Int}, nil
	}
}
