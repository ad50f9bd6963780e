package proto

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/model"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldEvent   = "event"
	fieldPayload = "payload"
)

// DeletePayload is the body of a delete_profile event.
type DeletePayload struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
}

// UpdatePayload is the body of an update_profile event.
type UpdatePayload struct {
	Index   int           `json:"index"`
	ID      string        `json:"id,omitempty"`
	Profile model.Profile `json:"profile"`
}

// EncodeEvent wraps a named event and its JSON-serializable payload in a Struct.
func EncodeEvent(name string, payload any) (*structpb.Struct, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", name, err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, fmt.Errorf("reshape %s payload: %w", name, err)
	}
	s, err := structpb.NewStruct(map[string]any{
		fieldEvent:   name,
		fieldPayload: generic,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s struct: %w", name, err)
	}
	return s, nil
}

// DecodeEvent returns the event name and its payload re-encoded as JSON.
func DecodeEvent(s *structpb.Struct) (string, json.RawMessage, error) {
	if s == nil {
		return "", nil, common.ErrorInvalidEvent
	}
	name := s.GetFields()[fieldEvent].GetStringValue()
	if name == "" {
		return "", nil, common.ErrorInvalidEvent
	}
	v, ok := s.GetFields()[fieldPayload]
	if !ok {
		return name, json.RawMessage("null"), nil
	}
	b, err := protojson.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrorInvalidPayload, err)
	}
	return name, b, nil
}

// DecodePayload unmarshals an event payload into dst.
func DecodePayload(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidPayload, err)
	}
	return nil
}

// EncodeSnapshot builds a profiles_updated event.
func EncodeSnapshot(profiles []model.Profile) (*structpb.Struct, error) {
	if profiles == nil {
		profiles = []model.Profile{}
	}
	return EncodeEvent(common.EventProfilesUpdated, profiles)
}

// DecodeSnapshot reads a profiles_updated event. Category lists are never nil
// in the result.
func DecodeSnapshot(s *structpb.Struct) ([]model.Profile, error) {
	name, raw, err := DecodeEvent(s)
	if err != nil {
		return nil, err
	}
	if name != common.EventProfilesUpdated {
		return nil, fmt.Errorf("%w: unexpected event %q", common.ErrorInvalidEvent, name)
	}
	var profiles []model.Profile
	if err := DecodePayload(raw, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	for i := range profiles {
		profiles[i].Normalize()
	}
	return profiles, nil
}

// UploadResponse builds the UploadPhoto reply.
func UploadResponse(id string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		common.UploadIDField: structpb.NewStringValue(id),
	}}
}

// UploadID extracts the stored photo identifier, or "" when the reply lacks it.
func UploadID(s *structpb.Struct) string {
	return s.GetFields()[common.UploadIDField].GetStringValue()
}
