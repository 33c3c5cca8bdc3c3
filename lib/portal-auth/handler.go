package portalauthhandler

import (
	"strings"

	"employee-portal-backend/db"
	portaluserstore "employee-portal-backend/lib/portal-users/store"
	authutils "employee-portal-backend/lib/utils/auth-utils"
	"employee-portal-backend/models"
	authapimodels "employee-portal-backend/models/api/auth"
	usersapimodels "employee-portal-backend/models/api/users"
	dbmodels "employee-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Provider interface {
	CreateAuthUser(payload authapimodels.CreateAuthUserRequest) (authapimodels.CreateAuthUserResponse, error)
	Login(payload authapimodels.LoginRequest) (authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	Me(userID string) (usersapimodels.PortalUserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = newInstance(db.DB)
}

func newInstance(DB *gorm.DB) *impl {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetLogger(email string) *log.Entry {
	return log.WithField("email", email)
}

// CreateAuthUser finishes registration for a verified email. Accounts
// provisioned through the admin roster get their password set; any
// other verified email self-registers as a regular employee.
func (i impl) CreateAuthUser(payload authapimodels.CreateAuthUserRequest) (authapimodels.CreateAuthUserResponse, error) {
	if err := payload.Validate(); err != nil {
		return authapimodels.CreateAuthUserResponse{}, err
	}
	logger := i.GetLogger(payload.Email)
	store := portaluserstore.NewInstance(i.db)
	user, err := store.FindByEmail(payload.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup failed")
		return authapimodels.CreateAuthUserResponse{}, err
	}
	if user != nil && user.Password != "" {
		return authapimodels.CreateAuthUserResponse{}, models.NewAlreadyExists("account is already registered")
	}
	if user == nil && strings.TrimSpace(payload.FullName) == "" {
		return authapimodels.CreateAuthUserResponse{}, models.NewInvalidArgument("full name is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("password hash failed")
		return authapimodels.CreateAuthUserResponse{}, models.NewInternal("registration failed")
	}
	if user == nil {
		userID, err := store.Create(dbmodels.PortalUser{
			Email:          payload.Email,
			FullName:       strings.TrimSpace(payload.FullName),
			Role:           models.EmployeeRole,
			Password:       string(hash),
			FirstLoginDone: true,
		})
		if err != nil {
			logger.WithError(err).Error("self-registration failed")
			return authapimodels.CreateAuthUserResponse{}, err
		}
		return authapimodels.CreateAuthUserResponse{UID: userID}, nil
	}
	err = store.Update(user.ID, map[string]interface{}{
		"password":         string(hash),
		"first_login_done": true,
	})
	if err != nil {
		logger.WithError(err).Error("password save failed")
		return authapimodels.CreateAuthUserResponse{}, err
	}
	return authapimodels.CreateAuthUserResponse{UID: user.ID}, nil
}

func (i impl) Login(payload authapimodels.LoginRequest) (authapimodels.JWTResponse, error) {
	if err := payload.Validate(); err != nil {
		return authapimodels.JWTResponse{}, err
	}
	logger := i.GetLogger(payload.Email)
	store := portaluserstore.NewInstance(i.db)
	user, err := store.FindByEmail(payload.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup failed")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || user.Password == "" {
		return authapimodels.JWTResponse{}, models.NewInvalidArgument("invalid email or password")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password))
	if err != nil {
		return authapimodels.JWTResponse{}, models.NewInvalidArgument("invalid email or password")
	}
	return i.issueTokens(user.ID, user.FullName, user.Role)
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, models.NewInvalidArgument("refresh token is invalid or expired")
	}
	store := portaluserstore.NewInstance(i.db)
	user, err := store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, models.NewNotFound("account no longer exists")
	}
	return i.issueTokens(user.ID, user.FullName, user.Role)
}

func (i impl) Me(userID string) (usersapimodels.PortalUserView, error) {
	store := portaluserstore.NewInstance(i.db)
	user, err := store.GetByID(userID)
	if err != nil {
		return usersapimodels.PortalUserView{}, err
	}
	if user == nil {
		return usersapimodels.PortalUserView{}, models.NewNotFound("account no longer exists")
	}
	return user.ToModel(), nil
}

func (i impl) issueTokens(userID, name string, role models.UserRole) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(userID, name, role)
	if err != nil {
		i.GetLogger("").WithError(err).Error("access token sign failed")
		return authapimodels.JWTResponse{}, models.NewInternal("sign in failed")
	}
	refreshToken, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		i.GetLogger("").WithError(err).Error("refresh token sign failed")
		return authapimodels.JWTResponse{}, models.NewInternal("sign in failed")
	}
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
