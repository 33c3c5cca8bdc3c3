package emailverify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"employee-portal-backend/db"
	emailverifystore "employee-portal-backend/lib/email-verify/store"
	portaluserstore "employee-portal-backend/lib/portal-users/store"
	"employee-portal-backend/lib/smtp"
	"employee-portal-backend/lib/utils/helpers"
	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const codeLength = 6

type Provider interface {
	SendVerifyCode(email string) error
	VerifyCode(email, code string) error
	DeleteExpired(now time.Time) (int64, error)
}

var Instance Provider

func NewHandler(emailFrom string, ttl time.Duration, rateLimited bool, burst int) {
	Instance = newInstance(db.DB, emailFrom, ttl, rateLimited, burst)
}

func newInstance(DB *gorm.DB, emailFrom string, ttl time.Duration, rateLimited bool, burst int) *impl {
	return &impl{
		verifyStore: emailverifystore.NewInstance(DB),
		usersStore:  portaluserstore.NewInstance(DB),
		emailFrom:   emailFrom,
		ttl:         ttl,
		rateLimited: rateLimited,
		burst:       burst,
		limiters:    map[string]*rate.Limiter{},
	}
}

type impl struct {
	verifyStore emailverifystore.Provider
	usersStore  portaluserstore.Provider
	emailFrom   string
	ttl         time.Duration
	rateLimited bool
	burst       int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func (i *impl) SendVerifyCode(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.NewInvalidArgument("email is required")
	}
	key, err := i.verifyKey(email)
	if err != nil {
		return err
	}
	if !i.allowSend(key) {
		return models.NewInvalidArgument("too many verification codes requested, try again later")
	}
	now := time.Now()
	rec := dbmodels.EmailVerify{
		VerifyKey:     key,
		Email:         email,
		Code:          helpers.GenerateNumericCode(codeLength),
		DateGenerated: now,
		DateExpires:   now.Add(i.ttl),
	}
	err = i.verifyStore.Upsert(rec)
	if err != nil {
		log.WithField("email", email).WithError(err).Error("verification code save failed")
		return err
	}
	message := fmt.Sprintf("Your code is %s. Expires in %d minutes.", rec.Code, int(i.ttl.Minutes()))
	err = smtp.Instance.SendEMail(i.emailFrom, email, message, "Your verification code")
	if err != nil {
		return models.NewInternal("failed to send email")
	}
	return nil
}

func (i *impl) VerifyCode(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return models.NewInvalidArgument("email and code are required")
	}
	key, err := i.verifyKey(email)
	if err != nil {
		return err
	}
	rec, err := i.verifyStore.GetByKey(key)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFound("no code to verify")
	}
	if time.Now().After(rec.DateExpires) {
		// drop the stale record so the next attempt reports NOT_FOUND
		if delErr := i.verifyStore.DeleteByKey(key); delErr != nil {
			log.WithField("email", email).WithError(delErr).Error("expired verification code delete failed")
		}
		return models.NewDeadlineExceeded("code expired")
	}
	if rec.Code != code {
		// the stored code stays usable until expiry
		return models.NewInvalidArgument("incorrect code")
	}
	return i.verifyStore.DeleteByKey(key)
}

func (i *impl) DeleteExpired(now time.Time) (int64, error) {
	return i.verifyStore.DeleteExpired(now)
}

// verifyKey follows the code keying rule: account id for a known user,
// the raw email otherwise.
func (i *impl) verifyKey(email string) (string, error) {
	user, err := i.usersStore.FindByEmail(email)
	if err != nil {
		log.WithField("email", email).WithError(err).Error("user lookup failed")
		return "", err
	}
	if user != nil {
		return user.ID, nil
	}
	return email, nil
}

func (i *impl) allowSend(key string) bool {
	if !i.rateLimited {
		return true
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	limiter, ok := i.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(i.ttl), i.burst)
		i.limiters[key] = limiter
	}
	return limiter.Allow()
}
