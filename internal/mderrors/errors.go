// Package mderrors maps the facade's §6.4 error table onto canonical
// gRPC status codes, the way cubefs-inodedb's server and raft transport
// layers report failures (status.Error(codes.X, ...)) rather than a
// bespoke sentinel-error taxonomy.
package mderrors

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func InvalidArgument(format string, args ...any) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf(format, args...))
}

func AlreadyExists(format string, args ...any) error {
	return status.Error(codes.AlreadyExists, fmt.Sprintf(format, args...))
}

func FailedPrecondition(format string, args ...any) error {
	return status.Error(codes.FailedPrecondition, fmt.Sprintf(format, args...))
}

func Unimplemented(format string, args ...any) error {
	return status.Error(codes.Unimplemented, fmt.Sprintf(format, args...))
}

func Aborted(format string, args ...any) error {
	return status.Error(codes.Aborted, fmt.Sprintf(format, args...))
}

func Cancelled(format string, args ...any) error {
	return status.Error(codes.Canceled, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return status.Error(codes.NotFound, fmt.Sprintf(format, args...))
}

func Internal(format string, args ...any) error {
	return status.Error(codes.Internal, fmt.Sprintf(format, args...))
}

// Is reports whether err carries the given gRPC status code. A nil err
// never matches.
func Is(err error, code codes.Code) bool {
	if err == nil {
		return false
	}
	return status.Code(err) == code
}

func IsAlreadyExists(err error) bool      { return Is(err, codes.AlreadyExists) }
func IsNotFound(err error) bool           { return Is(err, codes.NotFound) }
func IsFailedPrecondition(err error) bool { return Is(err, codes.FailedPrecondition) }
func IsAborted(err error) bool            { return Is(err, codes.Aborted) }
func IsInvalidArgument(err error) bool    { return Is(err, codes.InvalidArgument) }
