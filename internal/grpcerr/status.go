// Package grpcerr maps domain errors to gRPC statuses.
package grpcerr

import (
	"context"
	"errors"
	"sort"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeOf = []struct {
	err  error
	code codes.Code
}{
	{model.ErrProductNotFound, codes.NotFound},
	{model.ErrOrderNotFound, codes.NotFound},
	{model.ErrInvalidQuantity, codes.InvalidArgument},
	{model.ErrInvalidStatusFilter, codes.InvalidArgument},
	{model.ErrOutOfStock, codes.FailedPrecondition},
	{model.ErrInsufficientStock, codes.FailedPrecondition},
	{model.ErrNegativeStock, codes.FailedPrecondition},
	{model.ErrEmptyCart, codes.FailedPrecondition},
	{model.ErrNoPendingUpdate, codes.FailedPrecondition},
	{model.ErrCommitInProgress, codes.FailedPrecondition},
	{model.ErrPaymentDeclined, codes.Aborted},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
	{context.Canceled, codes.Canceled},
}

// Code returns the status code for err.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if _, ok := model.AsValidationError(err); ok {
		return codes.InvalidArgument
	}
	for _, c := range codeOf {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return codes.Internal
}

// ToStatus converts err into a gRPC status error. Validation failures carry
// a BadRequest detail with one violation per field. Internal errors do not
// leak their message.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := Code(err)
	if code == codes.Internal {
		return status.Error(codes.Internal, "internal error")
	}

	st := status.New(code, err.Error())
	verr, ok := model.AsValidationError(err)
	if !ok {
		return st.Err()
	}

	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	br := &errdetails.BadRequest{}
	for _, f := range fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f,
			Description: verr.Fields[f],
		})
	}

	detailed, derr := st.WithDetails(br)
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FieldViolations extracts the BadRequest field map from a status error.
func FieldViolations(err error) map[string]string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	out := map[string]string{}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				out[v.GetField()] = v.GetDescription()
			}
		}
	}
	return out
}

// InvalidArgument reports a malformed request field.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
