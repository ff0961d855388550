package api

// RegisterMemberRequest is the body of POST /register-member.
type RegisterMemberRequest struct {
	FirstName     string `json:"firstName"`
	LastName1     string `json:"lastName1"`
	LastName2     string `json:"lastName2"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	BirthDate     string `json:"birthDate"`
	Seccion       string `json:"seccion"`
	Grupo         string `json:"grupo"`
	ConsentGiven  bool   `json:"consentGiven"`
	ConsentDate   string `json:"consentDate"`
	CentroJuvenil string `json:"centro_juvenil"`
}

// RegisterMemberResponse is the success body of POST /register-member.
// Both fields are optional.
type RegisterMemberResponse struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// PasswordRequest is the body of the activation and password change calls.
type PasswordRequest struct {
	Password string `json:"password"`
}

// MessageResponse is the success body of the activation and password change calls.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}
