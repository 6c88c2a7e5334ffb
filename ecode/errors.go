package ecode

import (
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	notExistMsg = "does not exist"
	expiredMsg  = "expired"
)

func withField(msg string, k []string) string {
	if len(k) > 0 && k[0] != "" {
		return fmt.Sprintf("%s %s", k[0], msg)
	}
	return msg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) == 0 {
		return emptyMsg
	}
	return withField(requiredMsg, k)
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string { return withField(invalidMsg, k) }

// NotExist returns not exist message
func NotExist(k ...string) string { return withField(notExistMsg, k) }

// Expired returns expired message
func Expired(k ...string) string { return withField(expiredMsg, k) }
