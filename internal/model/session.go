package model

// Session is the result of a successful registration or login: the signed
// capability plus the identity it was issued for.
type Session struct {
	Token    string
	MemberID int64
	Role     Role
}
