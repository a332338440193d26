package utils

import "fmt"

var (
	adjectives = []string{"Happy", "Clever", "Bright", "Swift", "Calm", "Bold", "Quiet", "Gentle", "Brave", "Wise"}
	nouns      = []string{"Panda", "Fox", "Eagle", "Dolphin", "Tiger", "Owl", "Wolf", "Lion", "Bear", "Hawk"}
)

// GenerateAnonymousName produces a random adjective+noun+number display name,
// e.g. "CleverOwl417". Uniqueness is enforced by the caller against storage.
func GenerateAnonymousName() string {
	return fmt.Sprintf("%s%s%d", adjectives[secureIntn(len(adjectives))], nouns[secureIntn(len(nouns))], secureIntn(1000))
}

const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode produces a random uppercase alphanumeric referral code.
func GenerateReferralCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = referralCodeAlphabet[secureIntn(len(referralCodeAlphabet))]
	}
	return string(b)
}

// GenerateOTPCode produces a zero-padded numeric one-time code of the given length.
func GenerateOTPCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = byte('0' + secureIntn(10))
	}
	return string(b)
}
