package msgs

import (
	"errors"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
	pb "github.com/robotalks/uartled/pkg/proto/uartled/v1"
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
	pb.CommandOK
}

// NewCommandOK creates a CommandOK.
func NewCommandOK() *CommandOK {
	return &CommandOK{}
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() fx.Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// Serializable implements SerializableMessage.
func (m *CommandOK) Serializable() proto.Message { return &m.CommandOK }

// CommandErr is the generic message representing command error.
type CommandErr struct {
	pb.CommandErr
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{CommandErr: pb.CommandErr{Message: err.Error()}}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fx.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return &m.CommandErr }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// LedSet command.
type LedSet struct {
	pb.LedSet
}

// LedSetFrom creates a LedSet from a parsed command.
func LedSetFrom(cmd ledcmd.Command) *LedSet {
	return &LedSet{LedSet: pb.LedSet{Led: uint32(cmd.Led), On: cmd.State.IsOn()}}
}

// NewMessage implements Message.
func (m *LedSet) NewMessage() fx.Message { return &LedSet{} }

// TypeID implements SerializableMessage.
func (m *LedSet) TypeID() uint32 { return LedSetTypeID }

// Serializable implements SerializableMessage.
func (m *LedSet) Serializable() proto.Message { return &m.LedSet }

// Command converts into a successful ledcmd.Command.
func (m *LedSet) Command() (ledcmd.Command, error) {
	led := ledcmd.Led(m.Led)
	if m.Led > ledcmd.LedCount || !led.IsValid() {
		return ledcmd.Rejected(), ErrInvalidLed
	}
	return ledcmd.Command{Success: true, Led: led, State: ledcmd.StateOf(m.On)}, nil
}

// LedStatusQuery command.
type LedStatusQuery struct {
	pb.LedStatusQuery
}

// NewMessage implements Message.
func (m *LedStatusQuery) NewMessage() fx.Message { return &LedStatusQuery{} }

// TypeID implements SerializableMessage.
func (m *LedStatusQuery) TypeID() uint32 { return LedStatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *LedStatusQuery) Serializable() proto.Message { return &m.LedStatusQuery }

// LedStatus reply.
type LedStatus struct {
	pb.LedStatus
}

// NewMessage implements Message.
func (m *LedStatus) NewMessage() fx.Message { return &LedStatus{} }

// TypeID implements SerializableMessage.
func (m *LedStatus) TypeID() uint32 { return LedStatusTypeID }

// Serializable implements SerializableMessage.
func (m *LedStatus) Serializable() proto.Message { return &m.LedStatus }

// AddLed appends the state of a LED.
func (m *LedStatus) AddLed(led ledcmd.Led, state ledcmd.LedState) *LedStatus {
	m.Leds = append(m.Leds, &pb.LedEntry{Led: uint32(led), On: state.IsOn()})
	return m
}

// ParseRequest command.
type ParseRequest struct {
	pb.ParseRequest
}

// NewParseRequest creates a ParseRequest.
func NewParseRequest(input []byte, apply bool) *ParseRequest {
	return &ParseRequest{ParseRequest: pb.ParseRequest{Input: input, Apply: apply}}
}

// NewMessage implements Message.
func (m *ParseRequest) NewMessage() fx.Message { return &ParseRequest{} }

// TypeID implements SerializableMessage.
func (m *ParseRequest) TypeID() uint32 { return ParseRequestTypeID }

// Serializable implements SerializableMessage.
func (m *ParseRequest) Serializable() proto.Message { return &m.ParseRequest }

// ParseReply reply.
type ParseReply struct {
	pb.ParseReply
}

// ParseReplyFrom creates a ParseReply from a parse result.
func ParseReplyFrom(cmd ledcmd.Command, changed bool) *ParseReply {
	return &ParseReply{ParseReply: pb.ParseReply{
		Success: cmd.Success,
		Led:     uint32(cmd.Led),
		On:      cmd.State.IsOn(),
		Changed: changed,
	}}
}

// NewMessage implements Message.
func (m *ParseReply) NewMessage() fx.Message { return &ParseReply{} }

// TypeID implements SerializableMessage.
func (m *ParseReply) TypeID() uint32 { return ParseReplyTypeID }

// Serializable implements SerializableMessage.
func (m *ParseReply) Serializable() proto.Message { return &m.ParseReply }

// Command converts back into a ledcmd.Command.
func (m *ParseReply) Command() ledcmd.Command {
	if !m.Success {
		return ledcmd.Rejected()
	}
	return ledcmd.Command{Success: true, Led: ledcmd.Led(m.Led), State: ledcmd.StateOf(m.On)}
}

// LedChanged event.
type LedChanged struct {
	pb.LedChanged
}

// NewLedChanged creates a LedChanged.
func NewLedChanged(led ledcmd.Led, state ledcmd.LedState, source string) *LedChanged {
	return &LedChanged{LedChanged: pb.LedChanged{Led: uint32(led), On: state.IsOn(), Source: source}}
}

// NewMessage implements Message.
func (m *LedChanged) NewMessage() fx.Message { return &LedChanged{} }

// TypeID implements SerializableMessage.
func (m *LedChanged) TypeID() uint32 { return LedChangedTypeID }

// Serializable implements SerializableMessage.
func (m *LedChanged) Serializable() proto.Message { return &m.LedChanged }

// FrameRejected event.
type FrameRejected struct {
	pb.FrameRejected
}

// NewFrameRejected creates a FrameRejected. The input is copied.
func NewFrameRejected(input []byte, source string) *FrameRejected {
	return &FrameRejected{FrameRejected: pb.FrameRejected{
		Input:  append([]byte(nil), input...),
		Source: source,
	}}
}

// NewMessage implements Message.
func (m *FrameRejected) NewMessage() fx.Message { return &FrameRejected{} }

// TypeID implements SerializableMessage.
func (m *FrameRejected) TypeID() uint32 { return FrameRejectedTypeID }

// Serializable implements SerializableMessage.
func (m *FrameRejected) Serializable() proto.Message { return &m.FrameRejected }

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupLed     uint32 = 0x00010000
	GroupCustom  uint32 = 0x7f000000 // base group id for custom messages.
)

// TypeIDs
const (
	CommandOKTypeID      uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID     uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	LedSetTypeID         uint32 = GroupLed | 0x0000
	LedStatusQueryTypeID uint32 = GroupLed | 0x0001
	LedStatusTypeID      uint32 = LedStatusQueryTypeID | TypeIDMaskReply
	ParseRequestTypeID   uint32 = GroupLed | 0x0002
	ParseReplyTypeID     uint32 = ParseRequestTypeID | TypeIDMaskReply
	LedChangedTypeID     uint32 = TypeIDKindEvent | GroupLed | 0x0010
	FrameRejectedTypeID  uint32 = TypeIDKindEvent | GroupLed | 0x0011
)

// MessageTypes are predefined mapping of type ID to messages.
var MessageTypes = map[uint32]SerializableMessage{
	CommandOKTypeID:      (*CommandOK)(nil),
	CommandErrTypeID:     (*CommandErr)(nil),
	LedSetTypeID:         (*LedSet)(nil),
	LedStatusQueryTypeID: (*LedStatusQuery)(nil),
	LedStatusTypeID:      (*LedStatus)(nil),
	ParseRequestTypeID:   (*ParseRequest)(nil),
	ParseReplyTypeID:     (*ParseReply)(nil),
	LedChangedTypeID:     (*LedChanged)(nil),
	FrameRejectedTypeID:  (*FrameRejected)(nil),
}

var typeNames = map[uint32]string{
	CommandOKTypeID:      "CommandOK",
	CommandErrTypeID:     "CommandErr",
	LedSetTypeID:         "LedSet",
	LedStatusQueryTypeID: "LedStatusQuery",
	LedStatusTypeID:      "LedStatus",
	ParseRequestTypeID:   "ParseRequest",
	ParseReplyTypeID:     "ParseReply",
	LedChangedTypeID:     "LedChanged",
	FrameRejectedTypeID:  "FrameRejected",
}

var (
	// ErrInvalidLed indicates the LED number is out of range.
	ErrInvalidLed = errors.New("invalid LED, expect 1-4")
)
