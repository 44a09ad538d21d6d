package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiError(t *testing.T) {
	base := BadRequest("File is empty")
	e := base.WithDetail("upload had 0 bytes").WithRequestID("r1")

	assert.Equal(t, "400 File is empty: upload had 0 bytes", e.Error())
	assert.Empty(t, base.Detail)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":400,"message":"File is empty","detail":"upload had 0 bytes","request_id":"r1"}`, string(b))

	var target *ApiError
	assert.True(t, stderrors.As(error(Internal("x")), &target))
	assert.Equal(t, 500, target.Code)
	assert.Equal(t, "413 too big", TooLarge("too big").Error())
}
