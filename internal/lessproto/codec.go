// Package lessproto encodes function values and host messages as protobuf
// Structs, framed with a varint length prefix.
package lessproto

import (
	"fmt"

	"github.com/bep/golessfunctions/functions"
	"google.golang.org/protobuf/types/known/structpb"
)

// Value kinds on the wire.
const (
	kindColor     = "color"
	kindDimension = "dimension"
	kindQuoted    = "quoted"
	kindKeyword   = "keyword"
	kindAnonymous = "anonymous"
	kindURL       = "url"
	kindList      = "list"
	kindStop      = "stop"
)

// UnsupportedValueError is returned when encoding a Value implementation
// that has no wire form.
type UnsupportedValueError struct {
	Value functions.Value
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("lessproto: unsupported value %T", e.Value)
}

// EncodeValue converts v to its wire form.
func EncodeValue(v functions.Value) (*structpb.Value, error) {
	fields := make(map[string]*structpb.Value)
	switch vv := v.(type) {
	case functions.Color:
		fields["kind"] = structpb.NewStringValue(kindColor)
		fields["rgb"] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(vv.RGB[0]),
			structpb.NewNumberValue(vv.RGB[1]),
			structpb.NewNumberValue(vv.RGB[2]),
		}})
		fields["alpha"] = structpb.NewNumberValue(vv.Alpha)
	case functions.Dimension:
		fields["kind"] = structpb.NewStringValue(kindDimension)
		fields["value"] = structpb.NewNumberValue(vv.Value)
		fields["unit"] = structpb.NewStringValue(vv.Unit)
	case functions.Quoted:
		fields["kind"] = structpb.NewStringValue(kindQuoted)
		fields["raw"] = structpb.NewStringValue(vv.Raw)
		fields["value"] = structpb.NewStringValue(vv.Value)
	case functions.Keyword:
		fields["kind"] = structpb.NewStringValue(kindKeyword)
		fields["text"] = structpb.NewStringValue(string(vv))
	case functions.Anonymous:
		fields["kind"] = structpb.NewStringValue(kindAnonymous)
		fields["text"] = structpb.NewStringValue(string(vv))
	case functions.URL:
		fields["kind"] = structpb.NewStringValue(kindURL)
		fields["text"] = structpb.NewStringValue(string(vv))
	case functions.List:
		items, err := EncodeValues(vv)
		if err != nil {
			return nil, err
		}
		fields["kind"] = structpb.NewStringValue(kindList)
		fields["items"] = structpb.NewListValue(items)
	case functions.GradientStop:
		fields["kind"] = structpb.NewStringValue(kindStop)
		fields["position"] = structpb.NewStringValue(vv.Position)
		fields["color"] = structpb.NewStringValue(vv.Color)
	default:
		return nil, &UnsupportedValueError{Value: v}
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
}

// EncodeValues encodes a list of values.
func EncodeValues(values []functions.Value) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(values))}
	for _, v := range values {
		pv, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, pv)
	}
	return list, nil
}

// DecodeValue is the inverse of EncodeValue.
func DecodeValue(pv *structpb.Value) (functions.Value, error) {
	s := pv.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("lessproto: value is not a struct")
	}
	f := s.GetFields()
	kind := f["kind"].GetStringValue()

	switch kind {
	case kindColor:
		rgb := f["rgb"].GetListValue().GetValues()
		if len(rgb) != 3 {
			return nil, fmt.Errorf("lessproto: color has %d channels", len(rgb))
		}
		return functions.NewColor(
			rgb[0].GetNumberValue(),
			rgb[1].GetNumberValue(),
			rgb[2].GetNumberValue(),
			f["alpha"].GetNumberValue(),
		), nil
	case kindDimension:
		return functions.Dimension{Value: f["value"].GetNumberValue(), Unit: f["unit"].GetStringValue()}, nil
	case kindQuoted:
		return functions.Quoted{Raw: f["raw"].GetStringValue(), Value: f["value"].GetStringValue()}, nil
	case kindKeyword:
		return functions.Keyword(f["text"].GetStringValue()), nil
	case kindAnonymous:
		return functions.Anonymous(f["text"].GetStringValue()), nil
	case kindURL:
		return functions.URL(f["text"].GetStringValue()), nil
	case kindList:
		items, err := DecodeValues(f["items"].GetListValue())
		if err != nil {
			return nil, err
		}
		return functions.List(items), nil
	case kindStop:
		return functions.GradientStop{Position: f["position"].GetStringValue(), Color: f["color"].GetStringValue()}, nil
	default:
		return nil, fmt.Errorf("lessproto: unknown value kind %q", kind)
	}
}

// DecodeValues decodes a list of values.
func DecodeValues(list *structpb.ListValue) ([]functions.Value, error) {
	values := make([]functions.Value, 0, len(list.GetValues()))
	for _, pv := range list.GetValues() {
		v, err := DecodeValue(pv)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
