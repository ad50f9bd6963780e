package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/model"
	pb "github.com/dmitrijs2005/influence/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type fakeProfiles struct {
	created []model.Profile
	updated []pb.UpdatePayload
	deleted []pb.DeletePayload
	err     error
}

func (f *fakeProfiles) Create(_ context.Context, p model.Profile) (model.Profile, error) {
	if f.err != nil {
		return model.Profile{}, f.err
	}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeProfiles) Update(_ context.Context, index int, id string, p model.Profile) (model.Profile, error) {
	if f.err != nil {
		return model.Profile{}, f.err
	}
	f.updated = append(f.updated, pb.UpdatePayload{Index: index, ID: id, Profile: p})
	return p, nil
}

func (f *fakeProfiles) Delete(_ context.Context, index int, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, pb.DeletePayload{Index: index, ID: id})
	return nil
}

type fakeUploader struct {
	filename string
	data     []byte
	key      string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, filename string, data []byte) (string, error) {
	f.filename, f.data = filename, data
	return f.key, f.err
}

func mustEvent(t *testing.T, name string, payload any) *structpb.Struct {
	t.Helper()
	s, err := pb.EncodeEvent(name, payload)
	require.NoError(t, err)
	return s
}

func TestLogin(t *testing.T) {
	s := newTestServer()

	resp, err := s.Login(context.Background(), wrapperspb.String("gretchen"))
	require.NoError(t, err)
	assert.Equal(t, "tok-op", resp.GetValue())

	_, err = s.Login(context.Background(), wrapperspb.String("nope"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestPing(t *testing.T) {
	_, err := newTestServer().Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
}

func TestEmit_RoutesEvents(t *testing.T) {
	fp := &fakeProfiles{}
	s := newTestServer()
	s.profiles = fp
	ctx := context.Background()

	blank := model.NewBlank()
	_, err := s.Emit(ctx, mustEvent(t, common.EventCreateProfile, blank))
	require.NoError(t, err)

	upd := model.NewBlank()
	upd.Name = "Gretchen"
	upd.Version = 3
	_, err = s.Emit(ctx, mustEvent(t, common.EventUpdateProfile, pb.UpdatePayload{Index: 2, ID: "id-2", Profile: upd}))
	require.NoError(t, err)

	_, err = s.Emit(ctx, mustEvent(t, common.EventDeleteProfile, pb.DeletePayload{Index: 1}))
	require.NoError(t, err)

	require.Len(t, fp.created, 1)
	assert.Equal(t, blank, fp.created[0])
	require.Len(t, fp.updated, 1)
	assert.Equal(t, 2, fp.updated[0].Index)
	assert.Equal(t, "id-2", fp.updated[0].ID)
	assert.Equal(t, upd, fp.updated[0].Profile)
	assert.Equal(t, []pb.DeletePayload{{Index: 1}}, fp.deleted)
}

func TestEmit_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown event", func(t *testing.T) {
		_, err := newTestServer().Emit(ctx, mustEvent(t, "rename_profile", map[string]any{}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("missing event name", func(t *testing.T) {
		_, err := newTestServer().Emit(ctx, &structpb.Struct{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("bad payload", func(t *testing.T) {
		_, err := newTestServer().Emit(ctx, mustEvent(t, common.EventDeleteProfile, "not an object"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestServer()
		s.profiles = &fakeProfiles{err: common.ErrorNotFound}
		_, err := s.Emit(ctx, mustEvent(t, common.EventDeleteProfile, pb.DeletePayload{Index: 9}))
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("internal", func(t *testing.T) {
		s := newTestServer()
		s.profiles = &fakeProfiles{err: errors.New("disk full")}
		_, err := s.Emit(ctx, mustEvent(t, common.EventCreateProfile, model.NewBlank()))
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.NotContains(t, err.Error(), "disk full")
	})
}

func TestUploadPhoto(t *testing.T) {
	fu := &fakeUploader{key: "abc_face.png"}
	s := newTestServer()
	s.photos = fu

	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(common.PhotoFilenameHeaderName, "face.png"))

	resp, err := s.UploadPhoto(ctx, wrapperspb.Bytes([]byte("img")))
	require.NoError(t, err)
	assert.Equal(t, "abc_face.png", pb.UploadID(resp))
	assert.Equal(t, "face.png", fu.filename)
	assert.Equal(t, []byte("img"), fu.data)
}

func TestUploadPhoto_Errors(t *testing.T) {
	s := newTestServer()

	_, err := s.UploadPhoto(context.Background(), wrapperspb.Bytes([]byte("img")))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(common.PhotoFilenameHeaderName, "notes.txt"))

	s.photos = &fakeUploader{err: common.ErrorInvalidPayload}
	_, err = s.UploadPhoto(ctx, wrapperspb.Bytes([]byte("x")))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	s.photos = &fakeUploader{err: common.ErrorInternal}
	_, err = s.UploadPhoto(ctx, wrapperspb.Bytes([]byte("x")))
	assert.Equal(t, codes.Internal, status.Code(err))
}
