package auth

// Claims representa la identidad extraída del token del backend de identidad.
type Claims struct {
	UserID   string
	Email    string
	FamilyID string
}
