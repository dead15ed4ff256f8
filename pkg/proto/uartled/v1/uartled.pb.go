// Source: uartled.proto
//
// Hand-maintained message types for the proto3 schema in uartled.proto,
// marshaled through the reflection path of github.com/golang/protobuf.
// Keep field numbers and tags in sync with the schema.

package uartled

import (
	proto "github.com/golang/protobuf/proto"
)

// Compile-time check of the proto package version.
const _ = proto.ProtoPackageIsVersion3

type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *Typed) Reset()         { *m = Typed{} }
func (m *Typed) String() string { return proto.CompactTextString(m) }
func (*Typed) ProtoMessage()    {}

func (m *Typed) GetTypeId() uint32 {
	if m != nil {
		return m.TypeId
	}
	return 0
}

func (m *Typed) GetSequence() uint32 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *Typed) GetMessage() []byte {
	if m != nil {
		return m.Message
	}
	return nil
}

type CommandOK struct {
}

func (m *CommandOK) Reset()         { *m = CommandOK{} }
func (m *CommandOK) String() string { return proto.CompactTextString(m) }
func (*CommandOK) ProtoMessage()    {}

type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *CommandErr) Reset()         { *m = CommandErr{} }
func (m *CommandErr) String() string { return proto.CompactTextString(m) }
func (*CommandErr) ProtoMessage()    {}

func (m *CommandErr) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

type LedSet struct {
	Led uint32 `protobuf:"varint,1,opt,name=led,proto3" json:"led,omitempty"`
	On  bool   `protobuf:"varint,2,opt,name=on,proto3" json:"on,omitempty"`
}

func (m *LedSet) Reset()         { *m = LedSet{} }
func (m *LedSet) String() string { return proto.CompactTextString(m) }
func (*LedSet) ProtoMessage()    {}

func (m *LedSet) GetLed() uint32 {
	if m != nil {
		return m.Led
	}
	return 0
}

func (m *LedSet) GetOn() bool {
	if m != nil {
		return m.On
	}
	return false
}

type LedStatusQuery struct {
}

func (m *LedStatusQuery) Reset()         { *m = LedStatusQuery{} }
func (m *LedStatusQuery) String() string { return proto.CompactTextString(m) }
func (*LedStatusQuery) ProtoMessage()    {}

type LedEntry struct {
	Led uint32 `protobuf:"varint,1,opt,name=led,proto3" json:"led,omitempty"`
	On  bool   `protobuf:"varint,2,opt,name=on,proto3" json:"on,omitempty"`
}

func (m *LedEntry) Reset()         { *m = LedEntry{} }
func (m *LedEntry) String() string { return proto.CompactTextString(m) }
func (*LedEntry) ProtoMessage()    {}

func (m *LedEntry) GetLed() uint32 {
	if m != nil {
		return m.Led
	}
	return 0
}

func (m *LedEntry) GetOn() bool {
	if m != nil {
		return m.On
	}
	return false
}

type LedStatus struct {
	Leds           []*LedEntry `protobuf:"bytes,1,rep,name=leds,proto3" json:"leds,omitempty"`
	FramesAccepted uint64      `protobuf:"varint,2,opt,name=frames_accepted,json=framesAccepted,proto3" json:"frames_accepted,omitempty"`
	FramesRejected uint64      `protobuf:"varint,3,opt,name=frames_rejected,json=framesRejected,proto3" json:"frames_rejected,omitempty"`
}

func (m *LedStatus) Reset()         { *m = LedStatus{} }
func (m *LedStatus) String() string { return proto.CompactTextString(m) }
func (*LedStatus) ProtoMessage()    {}

func (m *LedStatus) GetLeds() []*LedEntry {
	if m != nil {
		return m.Leds
	}
	return nil
}

func (m *LedStatus) GetFramesAccepted() uint64 {
	if m != nil {
		return m.FramesAccepted
	}
	return 0
}

func (m *LedStatus) GetFramesRejected() uint64 {
	if m != nil {
		return m.FramesRejected
	}
	return 0
}

type ParseRequest struct {
	Input []byte `protobuf:"bytes,1,opt,name=input,proto3" json:"input,omitempty"`
	Apply bool   `protobuf:"varint,2,opt,name=apply,proto3" json:"apply,omitempty"`
}

func (m *ParseRequest) Reset()         { *m = ParseRequest{} }
func (m *ParseRequest) String() string { return proto.CompactTextString(m) }
func (*ParseRequest) ProtoMessage()    {}

func (m *ParseRequest) GetInput() []byte {
	if m != nil {
		return m.Input
	}
	return nil
}

func (m *ParseRequest) GetApply() bool {
	if m != nil {
		return m.Apply
	}
	return false
}

type ParseReply struct {
	Success bool   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Led     uint32 `protobuf:"varint,2,opt,name=led,proto3" json:"led,omitempty"`
	On      bool   `protobuf:"varint,3,opt,name=on,proto3" json:"on,omitempty"`
	Changed bool   `protobuf:"varint,4,opt,name=changed,proto3" json:"changed,omitempty"`
}

func (m *ParseReply) Reset()         { *m = ParseReply{} }
func (m *ParseReply) String() string { return proto.CompactTextString(m) }
func (*ParseReply) ProtoMessage()    {}

func (m *ParseReply) GetSuccess() bool {
	if m != nil {
		return m.Success
	}
	return false
}

func (m *ParseReply) GetLed() uint32 {
	if m != nil {
		return m.Led
	}
	return 0
}

func (m *ParseReply) GetOn() bool {
	if m != nil {
		return m.On
	}
	return false
}

func (m *ParseReply) GetChanged() bool {
	if m != nil {
		return m.Changed
	}
	return false
}

type LedChanged struct {
	Led    uint32 `protobuf:"varint,1,opt,name=led,proto3" json:"led,omitempty"`
	On     bool   `protobuf:"varint,2,opt,name=on,proto3" json:"on,omitempty"`
	Source string `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
}

func (m *LedChanged) Reset()         { *m = LedChanged{} }
func (m *LedChanged) String() string { return proto.CompactTextString(m) }
func (*LedChanged) ProtoMessage()    {}

func (m *LedChanged) GetLed() uint32 {
	if m != nil {
		return m.Led
	}
	return 0
}

func (m *LedChanged) GetOn() bool {
	if m != nil {
		return m.On
	}
	return false
}

func (m *LedChanged) GetSource() string {
	if m != nil {
		return m.Source
	}
	return ""
}

type FrameRejected struct {
	Input  []byte `protobuf:"bytes,1,opt,name=input,proto3" json:"input,omitempty"`
	Source string `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
}

func (m *FrameRejected) Reset()         { *m = FrameRejected{} }
func (m *FrameRejected) String() string { return proto.CompactTextString(m) }
func (*FrameRejected) ProtoMessage()    {}

func (m *FrameRejected) GetInput() []byte {
	if m != nil {
		return m.Input
	}
	return nil
}

func (m *FrameRejected) GetSource() string {
	if m != nil {
		return m.Source
	}
	return ""
}
