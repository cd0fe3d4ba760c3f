// Package event defines the binary parameter event records exchanged between
// the control context, the processing context and the host.
package event

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record layout, little-endian:
//
//	header (16 bytes)
//	  uint32 size     // full record length in bytes, header included
//	  uint32 time     // sample offset within the block
//	  uint16 spaceID  // namespace, CoreSpaceID for everything in this package
//	  uint16 type
//	  uint32 flags
//
//	param value payload (40 bytes, record size 56)
//	  uint32 paramID @16, pad @20, uint64 cookie @24,
//	  int32 noteID @32, int16 portIndex @36, int16 channel @38, int16 key @40,
//	  pad @42, float64 value @48
//
//	param gesture payload (4 bytes, record size 20)
//	  uint32 paramID @16
const (
	HeaderSize       = 16
	ParamValueSize   = 56
	ParamGestureSize = 20

	// MaxSize is the largest record this package produces.
	MaxSize = ParamValueSize
)

// CoreSpaceID is the namespace of all events handled here. Records carrying
// any other namespace are ignored by consumers.
const CoreSpaceID uint16 = 0

// Type identifies the payload that follows the header.
type Type uint16

const (
	TypeParamValue        Type = 5
	TypeParamGestureBegin Type = 7
	TypeParamGestureEnd   Type = 8
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeParamValue:
		return "ParamValue"
	case TypeParamGestureBegin:
		return "GestureBegin"
	case TypeParamGestureEnd:
		return "GestureEnd"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Header flags
const (
	FlagIsLive     uint32 = 1 << 0
	FlagDontRecord uint32 = 1 << 1
)

// Unset is the sentinel for the note/port/channel/key addressing fields of a
// ParamValue. Plain automation always carries it.
const Unset = -1

// Header is the common prefix of every record.
type Header struct {
	Size    uint32
	Time    uint32
	SpaceID uint16
	Type    Type
	Flags   uint32
}

// ParamValue sets a parameter to a normalized value.
type ParamValue struct {
	Header
	ParamID   uint32
	Cookie    uint64 // opaque to this package, forwarded untouched
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Value     float64
}

// ParamGesture marks the beginning or end of a user gesture on a parameter.
type ParamGesture struct {
	Header
	ParamID uint32
}

// NewParamValue returns a plain automation value event with all addressing
// fields unset.
func NewParamValue(paramID uint32, value float64) ParamValue {
	return ParamValue{
		Header: Header{
			Size:    ParamValueSize,
			SpaceID: CoreSpaceID,
			Type:    TypeParamValue,
		},
		ParamID:   paramID,
		NoteID:    Unset,
		PortIndex: Unset,
		Channel:   Unset,
		Key:       Unset,
		Value:     value,
	}
}

// NewGestureBegin returns a gesture-begin event for paramID.
func NewGestureBegin(paramID uint32) ParamGesture {
	return newGesture(TypeParamGestureBegin, paramID)
}

// NewGestureEnd returns a gesture-end event for paramID.
func NewGestureEnd(paramID uint32) ParamGesture {
	return newGesture(TypeParamGestureEnd, paramID)
}

func newGesture(t Type, paramID uint32) ParamGesture {
	return ParamGesture{
		Header: Header{
			Size:    ParamGestureSize,
			SpaceID: CoreSpaceID,
			Type:    t,
		},
		ParamID: paramID,
	}
}

func putHeader(b []byte, h Header) {
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], h.Time)
	binary.LittleEndian.PutUint16(b[8:10], h.SpaceID)
	binary.LittleEndian.PutUint16(b[10:12], uint16(h.Type))
	binary.LittleEndian.PutUint32(b[12:16], h.Flags)
}

// Encode writes the record into b and returns the number of bytes written.
// It returns false if b is shorter than ParamValueSize. The size field is
// always written as ParamValueSize.
func (e ParamValue) Encode(b []byte) (int, bool) {
	if len(b) < ParamValueSize {
		return 0, false
	}
	e.Size = ParamValueSize
	putHeader(b, e.Header)
	binary.LittleEndian.PutUint32(b[16:20], e.ParamID)
	binary.LittleEndian.PutUint32(b[20:24], 0)
	binary.LittleEndian.PutUint64(b[24:32], e.Cookie)
	binary.LittleEndian.PutUint32(b[32:36], uint32(e.NoteID))
	binary.LittleEndian.PutUint16(b[36:38], uint16(e.PortIndex))
	binary.LittleEndian.PutUint16(b[38:40], uint16(e.Channel))
	binary.LittleEndian.PutUint16(b[40:42], uint16(e.Key))
	clear(b[42:48])
	binary.LittleEndian.PutUint64(b[48:56], math.Float64bits(e.Value))
	return ParamValueSize, true
}

// Encode writes the record into b and returns the number of bytes written.
// It returns false if b is shorter than ParamGestureSize.
func (e ParamGesture) Encode(b []byte) (int, bool) {
	if len(b) < ParamGestureSize {
		return 0, false
	}
	e.Size = ParamGestureSize
	putHeader(b, e.Header)
	binary.LittleEndian.PutUint32(b[16:20], e.ParamID)
	return ParamGestureSize, true
}

// DecodeHeader parses the header at the start of b. It fails if b is shorter
// than a header or than the size the header claims, or if that size is
// smaller than a header.
func DecodeHeader(b []byte) (Header, bool) {
	if len(b) < HeaderSize {
		return Header{}, false
	}
	h := Header{
		Size:    binary.LittleEndian.Uint32(b[0:4]),
		Time:    binary.LittleEndian.Uint32(b[4:8]),
		SpaceID: binary.LittleEndian.Uint16(b[8:10]),
		Type:    Type(binary.LittleEndian.Uint16(b[10:12])),
		Flags:   binary.LittleEndian.Uint32(b[12:16]),
	}
	if h.Size < HeaderSize || uint64(h.Size) > uint64(len(b)) {
		return Header{}, false
	}
	return h, true
}

// DecodeParamValue parses a ParamValue record. Records that are too short for
// the payload or carry another type are rejected.
func DecodeParamValue(b []byte) (ParamValue, bool) {
	h, ok := DecodeHeader(b)
	if !ok || h.Type != TypeParamValue || h.Size < ParamValueSize {
		return ParamValue{}, false
	}
	return ParamValue{
		Header:    h,
		ParamID:   binary.LittleEndian.Uint32(b[16:20]),
		Cookie:    binary.LittleEndian.Uint64(b[24:32]),
		NoteID:    int32(binary.LittleEndian.Uint32(b[32:36])),
		PortIndex: int16(binary.LittleEndian.Uint16(b[36:38])),
		Channel:   int16(binary.LittleEndian.Uint16(b[38:40])),
		Key:       int16(binary.LittleEndian.Uint16(b[40:42])),
		Value:     math.Float64frombits(binary.LittleEndian.Uint64(b[48:56])),
	}, true
}

// DecodeParamGesture parses a gesture begin or end record.
func DecodeParamGesture(b []byte) (ParamGesture, bool) {
	h, ok := DecodeHeader(b)
	if !ok || h.Size < ParamGestureSize {
		return ParamGesture{}, false
	}
	if h.Type != TypeParamGestureBegin && h.Type != TypeParamGestureEnd {
		return ParamGesture{}, false
	}
	return ParamGesture{
		Header:  h,
		ParamID: binary.LittleEndian.Uint32(b[16:20]),
	}, true
}

// IsPlainAutomation reports whether the value event is not addressed to a
// specific note, port, channel or key.
func (e ParamValue) IsPlainAutomation() bool {
	return e.NoteID == Unset && e.PortIndex == Unset && e.Channel == Unset && e.Key == Unset
}

func (e ParamValue) String() string {
	return fmt.Sprintf("ParamValue{id:%d, value:%.6f, time:%d}", e.ParamID, e.Value, e.Time)
}

func (e ParamGesture) String() string {
	return fmt.Sprintf("%s{id:%d, time:%d}", e.Type, e.ParamID, e.Time)
}
