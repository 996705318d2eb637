package helper

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-network/models"
)

func TestGetStatusCode(t *testing.T) {
	h := &HTTPHelper{}

	assert.Equal(t, http.StatusOK, h.GetStatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, h.GetStatusCode(models.ErrorValidation{Message: "m"}))
	assert.Equal(t, http.StatusBadRequest, h.GetStatusCode(models.ErrorConflict{Message: "m"}))
	assert.Equal(t, http.StatusUnauthorized, h.GetStatusCode(models.ErrorUnauthorized{Message: "m"}))
	assert.Equal(t, http.StatusForbidden, h.GetStatusCode(models.ErrorForbidden{Message: "m"}))
	assert.Equal(t, http.StatusNotFound, h.GetStatusCode(models.ErrorNotFound{Message: "m"}))
	assert.Equal(t, http.StatusInternalServerError, h.GetStatusCode(models.ErrorInternalServer{Message: "m"}))
	assert.Equal(t, http.StatusInternalServerError, h.GetStatusCode(errors.New("driver exploded")))
}

func TestUnderscore(t *testing.T) {
	assert.Equal(t, "school_name", Underscore("SchoolName"))
	assert.Equal(t, "username", Underscore("Username"))
	assert.Equal(t, "email", Underscore("Email"))
}

func TestValidatorTranslatesFieldErrors(t *testing.T) {
	h, err := NewHTTPHelper()
	require.NoError(t, err)

	err = h.Validate.Struct(models.RegisterRequest{
		Username: "amy",
		Email:    "not-an-email",
		Password: "pw123456",
		Role:     models.RolePoster,
	})
	require.Error(t, err)
}

func TestValidatorAcceptsWellFormedRequest(t *testing.T) {
	h, err := NewHTTPHelper()
	require.NoError(t, err)

	assert.NoError(t, h.Validate.Struct(models.RegisterRequest{
		Username: "amy",
		Email:    "amy@x.com",
		Password: "pw123456",
		Role:     models.RolePoster,
	}))

	assert.Error(t, h.Validate.Struct(models.RegisterRequest{
		Username: "amy",
		Email:    "amy@x.com",
		Password: "pw123456",
		Role:     "admin",
	}), "role outside poster/jobseeker must fail")
}
