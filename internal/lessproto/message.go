package lessproto

import (
	"errors"
	"fmt"

	"github.com/bep/golessfunctions/functions"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request asks the host to call a function.
type Request struct {
	ID   uint32
	Name string
	Args []functions.Value
}

// Response is the host's answer to the Request with the same ID.
// Exactly one of Result and Error is set.
type Response struct {
	ID     uint32
	Result functions.Value
	Error  *functions.Error
}

// LogEvent is sent by the host outside of any call.
type LogEvent struct {
	Type    string
	Message string
}

// Message is a single framed message. Exactly one field is set.
type Message struct {
	Request  *Request
	Response *Response
	Log      *LogEvent
}

var marshalOptions = proto.MarshalOptions{Deterministic: true}

// CallKey returns a stable key for a call, usable for caching results.
func CallKey(name string, args []functions.Value) (string, error) {
	list, err := EncodeValues(args)
	if err != nil {
		return "", err
	}
	b, err := marshalOptions.Marshal(&structpb.Struct{Fields: map[string]*structpb.Value{
		"name": structpb.NewStringValue(name),
		"args": structpb.NewListValue(list),
	}})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m Message) toStruct() (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value)

	switch {
	case m.Request != nil:
		args, err := EncodeValues(m.Request.Args)
		if err != nil {
			return nil, err
		}
		fields["request"] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"id":   structpb.NewNumberValue(float64(m.Request.ID)),
			"name": structpb.NewStringValue(m.Request.Name),
			"args": structpb.NewListValue(args),
		}})
	case m.Response != nil:
		rf := map[string]*structpb.Value{
			"id": structpb.NewNumberValue(float64(m.Response.ID)),
		}
		if m.Response.Error != nil {
			rf["error"] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
				"kind":    structpb.NewStringValue(m.Response.Error.Kind.String()),
				"message": structpb.NewStringValue(m.Response.Error.Message),
			}})
		} else {
			result, err := EncodeValue(m.Response.Result)
			if err != nil {
				return nil, err
			}
			rf["result"] = result
		}
		fields["response"] = structpb.NewStructValue(&structpb.Struct{Fields: rf})
	case m.Log != nil:
		fields["log"] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"type":    structpb.NewStringValue(m.Log.Type),
			"message": structpb.NewStringValue(m.Log.Message),
		}})
	default:
		return nil, errors.New("lessproto: empty message")
	}

	return &structpb.Struct{Fields: fields}, nil
}

func fromStruct(s *structpb.Struct) (Message, error) {
	f := s.GetFields()

	if req := f["request"].GetStructValue(); req != nil {
		rf := req.GetFields()
		args, err := DecodeValues(rf["args"].GetListValue())
		if err != nil {
			return Message{}, err
		}
		return Message{Request: &Request{
			ID:   uint32(rf["id"].GetNumberValue()),
			Name: rf["name"].GetStringValue(),
			Args: args,
		}}, nil
	}

	if resp := f["response"].GetStructValue(); resp != nil {
		rf := resp.GetFields()
		r := &Response{ID: uint32(rf["id"].GetNumberValue())}
		if e := rf["error"].GetStructValue(); e != nil {
			ef := e.GetFields()
			r.Error = &functions.Error{
				Kind:    functions.ParseErrorKind(ef["kind"].GetStringValue()),
				Message: ef["message"].GetStringValue(),
			}
		} else {
			result, ok := rf["result"]
			if !ok {
				return Message{}, fmt.Errorf("lessproto: response %d has neither result nor error", r.ID)
			}
			v, err := DecodeValue(result)
			if err != nil {
				return Message{}, err
			}
			r.Result = v
		}
		return Message{Response: r}, nil
	}

	if log := f["log"].GetStructValue(); log != nil {
		lf := log.GetFields()
		return Message{Log: &LogEvent{
			Type:    lf["type"].GetStringValue(),
			Message: lf["message"].GetStringValue(),
		}}, nil
	}

	return Message{}, errors.New("lessproto: unknown message")
}
