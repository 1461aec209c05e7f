package fabric_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/service/fabric"
)

func TestMapChaincodeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "does not exist maps to not found",
			err:  fmt.Errorf("chaincode response 500: the record rec-1 does not exist"),
			want: types.ErrNotFound,
		},
		{
			name: "not found maps to not found",
			err:  fmt.Errorf("policy pol-1 not found"),
			want: types.ErrNotFound,
		},
		{
			name: "mixed case still matches",
			err:  fmt.Errorf("The Case Does Not Exist"),
			want: types.ErrNotFound,
		},
		{
			name: "access denied maps to access denial",
			err:  fmt.Errorf("chaincode response 500: access denied for Org2MSP"),
			want: types.ErrAccessDenied,
		},
		{
			name: "anything else maps to upstream unavailable",
			err:  fmt.Errorf("rpc error: code = Unavailable desc = connection refused"),
			want: types.ErrUpstreamUnavailable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := fabric.MapChaincodeError(tc.err, "QueryRecord")
			gt.Error(t, got)
			gt.Bool(t, errors.Is(got, tc.want)).True()
		})
	}
}
