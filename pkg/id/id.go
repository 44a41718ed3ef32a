// Package id genera identificadores ordenables por tiempo (UUIDv7).
package id

import "github.com/google/uuid"

// New devuelve un UUIDv7 en texto. Los ids generados después ordenan después.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return v.String()
}
