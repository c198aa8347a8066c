package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorListUsesJSONFieldNames(t *testing.T) {
	var req createTaxProfileRequest
	err := validate.Struct(&req)
	require.Error(t, err)

	list := validationErrorList(err)
	require.NotEmpty(t, list)

	fields := make(map[string]string, len(list))
	for _, fe := range list {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["fullName"])
	assert.Equal(t, "is required", fields["propertyValue"])
	assert.NotContains(t, fields, "FullName")
}

func TestValidationErrorListNonValidatorError(t *testing.T) {
	list := validationErrorList(errors.New("boom"))
	require.Len(t, list, 1)
	assert.Equal(t, "boom", list[0].Message)
}
