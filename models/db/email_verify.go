package dbmodels

import "time"

// EmailVerify holds at most one live code per key: the key is the portal
// user id when the email belongs to a known user, otherwise the lowercased
// email itself.
type EmailVerify struct {
	VerifyKey     string `gorm:"primaryKey;type:varchar(255)"`
	Email         string `gorm:"type:varchar(255)"`
	Code          string `gorm:"type:varchar(6)"`
	DateGenerated time.Time
	DateExpires   time.Time
}
