package lessproto

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MaxMessageSize is the largest message accepted by ReadMessage.
const MaxMessageSize = 32 << 20

// ByteReader is what ReadMessage reads from, typically a *bufio.Reader.
type ByteReader interface {
	io.Reader
	io.ByteReader
}

var (
	delimMarshal   = protodelim.MarshalOptions{MarshalOptions: proto.MarshalOptions{Deterministic: true}}
	delimUnmarshal = protodelim.UnmarshalOptions{MaxSize: MaxMessageSize}
)

// WriteMessage writes m preceded by its length in bytes as a varint.
// Nothing is written if m cannot be encoded.
func WriteMessage(w io.Writer, m Message) error {
	s, err := m.toStruct()
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	_, err = delimMarshal.MarshalTo(w, s)
	return err
}

// ReadMessage reads one message written by WriteMessage.
// It returns io.EOF if r is exhausted before the message starts.
func ReadMessage(r ByteReader) (Message, error) {
	var s structpb.Struct
	if err := delimUnmarshal.UnmarshalFrom(r, &s); err != nil {
		return Message{}, err
	}
	return fromStruct(&s)
}
