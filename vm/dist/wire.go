// Package dist implements the wire format for Bananabread programs.
//
// Programs are serialized as a versioned CBOR envelope of tagged
// instruction records. The envelope is a storage and transport format
// for already-decoded instructions, not a bytecode ISA encoding.
package dist

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/minond/bananabread/instruction"
	"github.com/minond/bananabread/value"
)

// WireVersion is the current envelope version. Decoding any other
// version is an error.
const WireVersion = 1

// cborEncMode uses canonical mode for deterministic encoding, so equal
// programs always produce identical bytes (and identical content hashes).
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dist: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ---------------------------------------------------------------------------
// Wire model
// ---------------------------------------------------------------------------

// Instruction kind tags on the wire.
const (
	wireLabel = "label"
	wireValue = "value"
	wireHalt  = "halt"
)

type wireDatum struct {
	Kind uint8  `cbor:"k"`
	Data uint64 `cbor:"d,omitempty"`
	Text string `cbor:"t,omitempty"`
}

type wireCode struct {
	Kind  string     `cbor:"k"`
	Name  string     `cbor:"n,omitempty"` // label name
	Datum *wireDatum `cbor:"v,omitempty"` // value payload
}

type wireProgram struct {
	Version int        `cbor:"v"`
	Codes   []wireCode `cbor:"c"`
}

// ---------------------------------------------------------------------------
// Marshal / Unmarshal
// ---------------------------------------------------------------------------

// MarshalProgram serializes a program to canonical CBOR bytes.
func MarshalProgram(p *instruction.Program) ([]byte, error) {
	wp := wireProgram{Version: WireVersion, Codes: make([]wireCode, 0, p.Len())}

	for i, code := range p.Codes {
		switch c := code.(type) {
		case *instruction.Label:
			wp.Codes = append(wp.Codes, wireCode{Kind: wireLabel, Name: c.Name})
		case *instruction.Value:
			wp.Codes = append(wp.Codes, wireCode{Kind: wireValue, Datum: &wireDatum{
				Kind: uint8(c.Datum.Kind),
				Data: c.Datum.Data,
				Text: c.Datum.Text,
			}})
		case *instruction.Halt:
			wp.Codes = append(wp.Codes, wireCode{Kind: wireHalt})
		default:
			// Refusing beats writing a record the decoder cannot name.
			return nil, fmt.Errorf("dist: cannot encode instruction %d (%T)", i, code)
		}
	}

	return cborEncMode.Marshal(&wp)
}

// UnmarshalProgram deserializes a program from CBOR bytes, resolving
// labels as part of the load.
func UnmarshalProgram(data []byte) (*instruction.Program, error) {
	var wp wireProgram
	if err := cbor.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("dist: unmarshal program: %w", err)
	}
	if wp.Version != WireVersion {
		return nil, fmt.Errorf("dist: unsupported wire version %d (want %d)", wp.Version, WireVersion)
	}

	codes := make([]instruction.Code, 0, len(wp.Codes))
	for i, wc := range wp.Codes {
		switch wc.Kind {
		case wireLabel:
			if wc.Name == "" {
				return nil, fmt.Errorf("dist: label at %d has no name", i)
			}
			codes = append(codes, &instruction.Label{Name: wc.Name})
		case wireValue:
			if wc.Datum == nil {
				return nil, fmt.Errorf("dist: value at %d has no datum", i)
			}
			datum, err := decodeDatum(wc.Datum)
			if err != nil {
				return nil, fmt.Errorf("dist: value at %d: %w", i, err)
			}
			codes = append(codes, &instruction.Value{Datum: datum})
		case wireHalt:
			codes = append(codes, &instruction.Halt{})
		default:
			return nil, fmt.Errorf("dist: unknown instruction kind %q at %d", wc.Kind, i)
		}
	}

	return instruction.NewProgram(codes)
}

func decodeDatum(wd *wireDatum) (value.Value, error) {
	kind := value.Kind(wd.Kind)
	if kind > value.KindSymbol {
		return value.Nil, fmt.Errorf("unknown datum kind %d", wd.Kind)
	}
	return value.Value{Kind: kind, Data: wd.Data, Text: wd.Text}, nil
}
