package common

// AccessTokenHeaderName is the gRPC metadata key carrying the operator
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PhotoFilenameHeaderName carries the original file name of an uploaded photo.
const PhotoFilenameHeaderName = "x-photo-filename"

// Event names exchanged between client and server.
const (
	EventCreateProfile   = "create_profile"
	EventDeleteProfile   = "delete_profile"
	EventUpdateProfile   = "update_profile"
	EventProfilesUpdated = "profiles_updated"
)

// UploadIDField is the response field holding the identifier of a stored photo.
const UploadIDField = "driveId"
