package auth

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetupPasswordDTO exchanges an invite token for a stored credential.
type SetupPasswordDTO struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d SetupPasswordDTO) Validate() error {
	if d.Token == "" {
		return ValidationError{Msg: "token is required"}
	}
	if len(d.Password) < 6 {
		return ValidationError{Msg: "password must be at least 6 characters"}
	}
	return nil
}
