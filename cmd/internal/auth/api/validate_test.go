package authapi

import (
	"slices"
	"testing"
)

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		name string
		req  signupRequest
		want []string
	}{
		{
			name: "valid",
			req:  validSignup(),
			want: nil,
		},
		{
			name: "missing first name",
			req: func() signupRequest {
				r := validSignup()
				r.FirstName = "   "
				return r
			}(),
			want: []string{"First Name is Required"},
		},
		{
			name: "bad email",
			req: func() signupRequest {
				r := validSignup()
				r.Email = "ada@nowhere"
				return r
			}(),
			want: []string{"Invalid Email Address"},
		},
		{
			name: "short password",
			req: func() signupRequest {
				r := validSignup()
				r.Password = "abc12"
				r.ConfirmPassword = "abc12"
				return r
			}(),
			want: []string{"Password must be at least 6 Characters"},
		},
		{
			name: "confirm mismatch",
			req: func() signupRequest {
				r := validSignup()
				r.ConfirmPassword = r.Password + "x"
				return r
			}(),
			want: []string{"Password and Confirm Password Do Not Match"},
		},
		{
			name: "contact wrong length",
			req: func() signupRequest {
				r := validSignup()
				r.ContactNumber = "12345"
				return r
			}(),
			want: []string{"Contact Number must be of 10 digits"},
		},
		{
			name: "contact non-numeric",
			req: func() signupRequest {
				r := validSignup()
				r.ContactNumber = "555123456x"
				return r
			}(),
			want: []string{"Contact Number must be of 10 digits"},
		},
		{
			name: "everything wrong aggregates in order",
			req: signupRequest{
				Email:           "bad",
				Password:        "pw",
				ConfirmPassword: "other",
				ContactNumber:   "1",
			},
			want: []string{
				"First Name is Required",
				"Invalid Email Address",
				"Password must be at least 6 Characters",
				"Password and Confirm Password Do Not Match",
				"Contact Number must be of 10 digits",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateSignup(tc.req)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("validateSignup = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateSignup_LastNameOptional(t *testing.T) {
	r := validSignup()
	r.LastName = ""
	if got := validateSignup(r); len(got) != 0 {
		t.Fatalf("last name should be optional, got %v", got)
	}
}

func TestValidateLogin(t *testing.T) {
	if got := validateLogin(loginRequest{Email: "ada@example.com", Password: "pw"}); len(got) != 0 {
		t.Fatalf("valid login rejected: %v", got)
	}
	got := validateLogin(loginRequest{Email: "nope", Password: ""})
	want := []string{"Invalid Email Address", "Password is Required"}
	if !slices.Equal(got, want) {
		t.Fatalf("validateLogin = %v, want %v", got, want)
	}
}
