package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/registration-api/internal/types"
)

func validRequest() types.RegistrationRequest {
	return types.RegistrationRequest{
		Name:  "Lin Yu",
		Age:   18,
		Phone: "0912-345-678",
		Email: "lin@example.com",
	}
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	require.NoError(t, Struct(v, validRequest()))
}

func TestStruct_MissingFields(t *testing.T) {
	v := New()

	cases := map[string]func(r *types.RegistrationRequest){
		"name":  func(r *types.RegistrationRequest) { r.Name = "" },
		"age":   func(r *types.RegistrationRequest) { r.Age = 0 },
		"phone": func(r *types.RegistrationRequest) { r.Phone = "" },
		"email": func(r *types.RegistrationRequest) { r.Email = "" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validRequest()
			mutate(&req)

			err := Struct(v, req)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, ReasonMissingField, verr.Reason)
		})
	}
}

func TestStruct_AgeBoundaries(t *testing.T) {
	v := New()

	for _, age := range []types.Age{10, 11, 24, 25} {
		req := validRequest()
		req.Age = age
		assert.NoError(t, Struct(v, req), "age %d should be accepted", age)
	}

	for _, age := range []types.Age{-1, 9, 26, 120} {
		req := validRequest()
		req.Age = age

		var verr *Error
		require.ErrorAs(t, Struct(v, req), &verr, "age %d should be rejected", age)
		assert.Equal(t, ReasonAgeRange, verr.Reason)
	}
}

func TestStruct_EmailFormat(t *testing.T) {
	v := New()

	for _, email := range []string{"foo@bar", "foo.com", "a b@c.de", "a@@b.co", "@b.co"} {
		req := validRequest()
		req.Email = email

		var verr *Error
		require.ErrorAs(t, Struct(v, req), &verr, "email %q should be rejected", email)
		assert.Equal(t, ReasonEmailFormat, verr.Reason)
	}

	req := validRequest()
	req.Email = "a@b.co"
	assert.NoError(t, Struct(v, req))
}

func TestStruct_Priority(t *testing.T) {
	v := New()

	t.Run("missing beats age and email", func(t *testing.T) {
		req := validRequest()
		req.Age = 40
		req.Email = "nope"
		req.Phone = ""

		var verr *Error
		require.ErrorAs(t, Struct(v, req), &verr)
		assert.Equal(t, ReasonMissingField, verr.Reason)
		assert.Equal(t, "Phone", verr.Field)
	})

	t.Run("age beats email", func(t *testing.T) {
		req := validRequest()
		req.Age = 9
		req.Email = "nope"

		var verr *Error
		require.ErrorAs(t, Struct(v, req), &verr)
		assert.Equal(t, ReasonAgeRange, verr.Reason)
	})
}

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "please fill in all required fields", (&Error{Reason: ReasonMissingField}).Error())
	assert.Equal(t, "age must be between 10 and 25", (&Error{Reason: ReasonAgeRange}).Error())
	assert.Equal(t, "please enter a valid email address", (&Error{Reason: ReasonEmailFormat}).Error())
}
