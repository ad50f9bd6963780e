package proto

import (
	"testing"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleProfile() model.Profile {
	p := model.NewBlank()
	p.ID = "3f1c"
	p.Version = 7
	p.Name = "Gretchen"
	p.InfluenceSuccesses = 2
	p.SuccessesNeeded = 5
	p.Biases = []model.Item{{Text: "Greedy", Revealed: true}, {Text: "Vain"}}
	return p
}

func TestSnapshotCodec(t *testing.T) {
	in := []model.Profile{sampleProfile(), model.NewBlank()}

	s, err := EncodeSnapshot(in)
	require.NoError(t, err)
	assert.Equal(t, common.EventProfilesUpdated, s.Fields["event"].GetStringValue())

	out, err := DecodeSnapshot(s)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(in, out))
}

func TestEncodeSnapshot_NilIsEmptyList(t *testing.T) {
	s, err := EncodeSnapshot(nil)
	require.NoError(t, err)

	out, err := DecodeSnapshot(s)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDecodeSnapshot_NormalizesMissingLists(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"event":   common.EventProfilesUpdated,
		"payload": []any{map[string]any{"name": "bare"}},
	})
	require.NoError(t, err)

	out, err := DecodeSnapshot(s)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "bare", out[0].Name)
	assert.NotNil(t, out[0].Biases)
}

func TestDecodeSnapshot_WrongEvent(t *testing.T) {
	s, err := EncodeEvent(common.EventDeleteProfile, DeletePayload{Index: 1})
	require.NoError(t, err)

	_, err = DecodeSnapshot(s)
	assert.ErrorIs(t, err, common.ErrorInvalidEvent)
}

func TestUpdatePayloadCodec(t *testing.T) {
	s, err := EncodeEvent(common.EventUpdateProfile, UpdatePayload{Index: 3, ID: "abc", Profile: sampleProfile()})
	require.NoError(t, err)

	name, raw, err := DecodeEvent(s)
	require.NoError(t, err)
	assert.Equal(t, common.EventUpdateProfile, name)

	var got UpdatePayload
	require.NoError(t, DecodePayload(raw, &got))
	assert.Equal(t, 3, got.Index)
	assert.Equal(t, "abc", got.ID)
	assert.Empty(t, cmp.Diff(sampleProfile(), got.Profile))
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, _, err := DecodeEvent(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidEvent)

	_, _, err = DecodeEvent(&structpb.Struct{})
	assert.ErrorIs(t, err, common.ErrorInvalidEvent)
}

func TestDecodePayload_TypeMismatch(t *testing.T) {
	var p DeletePayload
	err := DecodePayload([]byte(`{"index":"two"}`), &p)
	assert.ErrorIs(t, err, common.ErrorInvalidPayload)
}

func TestUploadID(t *testing.T) {
	assert.Equal(t, "abc_face.png", UploadID(UploadResponse("abc_face.png")))
	assert.Equal(t, "", UploadID(&structpb.Struct{}))
	assert.Equal(t, "", UploadID(nil))
}
