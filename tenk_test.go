package tenk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/tenk"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := tenk.Errorf(tenk.ENOTFOUND, "ticker %q not found", "ZZZZ")

	assert.Equal(t, tenk.ENOTFOUND, tenk.ErrorCode(err))
	assert.Equal(t, "ticker \"ZZZZ\" not found", tenk.ErrorMessage(err))
	assert.Equal(t, "ticker \"ZZZZ\" not found", err.Error())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tenk.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tenk.ErrorMessage(nil))
}

func TestErrorCode_WrappedApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("lookup: %w", tenk.Errorf(tenk.EINVALID, "bad ticker"))

	assert.Equal(t, tenk.EINVALID, tenk.ErrorCode(err))
	assert.Equal(t, "bad ticker", tenk.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, tenk.EINTERNAL, tenk.ErrorCode(err))
	assert.Equal(t, "Internal error.", tenk.ErrorMessage(err))
}
