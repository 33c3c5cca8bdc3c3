package portalusershandler

import (
	"bytes"
	"strings"

	"employee-portal-backend/db"
	xlsexport "employee-portal-backend/lib/export/xls"
	portaluserstore "employee-portal-backend/lib/portal-users/store"
	requeststore "employee-portal-backend/lib/request/store"
	connectionhub "employee-portal-backend/lib/ws/hub/connection-hub"
	"employee-portal-backend/models"
	usersapimodels "employee-portal-backend/models/api/users"
	dbmodels "employee-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	CreateUser(payload usersapimodels.CreateUser) (usersapimodels.PortalUserView, error)
	UpdateUser(userID string, payload usersapimodels.UpdateUser) error
	DeleteUser(userID string) error
	GetUser(userID string) (usersapimodels.PortalUserView, error)
	GetList(page, limit int) ([]usersapimodels.PortalUserView, int64, error)
	BulkImport(fileName string, data []byte) (usersapimodels.BulkImportResult, error)
	Export() (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler(roleConflictPrompt bool) {
	Instance = newInstance(db.DB, roleConflictPrompt)
}

func newInstance(DB *gorm.DB, roleConflictPrompt bool) *impl {
	return &impl{
		db:                 DB,
		roleConflictPrompt: roleConflictPrompt,
	}
}

type impl struct {
	db *gorm.DB
	// roleConflictPrompt makes single-record adds over an existing email
	// with a different role require an explicit confirmation flag. Bulk
	// import always overwrites.
	roleConflictPrompt bool
}

func (i impl) GetLogger(email string) *log.Entry {
	return log.WithField("email", email)
}

// CreateUser upserts a roster record keyed by email.
func (i impl) CreateUser(payload usersapimodels.CreateUser) (usersapimodels.PortalUserView, error) {
	if err := payload.Validate(); err != nil {
		return usersapimodels.PortalUserView{}, err
	}
	logger := i.GetLogger(payload.Email)
	store := portaluserstore.NewInstance(i.db)
	role := models.UserRole(strings.ToLower(payload.Role))
	existing, err := store.FindByEmail(payload.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup failed")
		return usersapimodels.PortalUserView{}, err
	}
	if existing != nil {
		if existing.Role != role && i.roleConflictPrompt && !payload.ReplaceRole {
			return usersapimodels.PortalUserView{}, models.NewAlreadyExists("email is already registered with a different role")
		}
		err = store.Update(existing.ID, map[string]interface{}{
			"full_name": payload.FullName,
			"role":      role,
		})
		if err != nil {
			logger.WithError(err).Error("user update failed")
			return usersapimodels.PortalUserView{}, err
		}
		return i.GetUser(existing.ID)
	}
	rec := dbmodels.PortalUser{
		Email:    payload.Email,
		FullName: payload.FullName,
		Role:     role,
	}
	userID, err := store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("user create failed")
		return usersapimodels.PortalUserView{}, err
	}
	return i.GetUser(userID)
}

func (i impl) UpdateUser(userID string, payload usersapimodels.UpdateUser) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	store := portaluserstore.NewInstance(i.db)
	user, err := store.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFound("user not found")
	}
	return store.Update(userID, map[string]interface{}{
		"full_name": payload.FullName,
		"role":      models.UserRole(strings.ToLower(payload.Role)),
	})
}

// DeleteUser removes the roster record together with every request the
// user filed, and drops any live dashboard connection they hold.
func (i impl) DeleteUser(userID string) error {
	store := portaluserstore.NewInstance(i.db)
	user, err := store.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFound("user not found")
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		err := requeststore.NewInstance(tx).DeleteByUser(userID)
		if err != nil {
			return err
		}
		return portaluserstore.NewInstance(tx).Delete(userID)
	})
	if err != nil {
		return err
	}
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(userID) {
		connectionhub.Instance.SendClose(userID)
	}
	return nil
}

func (i impl) GetUser(userID string) (usersapimodels.PortalUserView, error) {
	store := portaluserstore.NewInstance(i.db)
	user, err := store.GetByID(userID)
	if err != nil {
		return usersapimodels.PortalUserView{}, err
	}
	if user == nil {
		return usersapimodels.PortalUserView{}, models.NewNotFound("user not found")
	}
	return user.ToModel(), nil
}

func (i impl) Export() (*bytes.Buffer, error) {
	store := portaluserstore.NewInstance(i.db)
	list, err := store.ListAll()
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportUserList(list)
}

func (i impl) GetList(page, limit int) ([]usersapimodels.PortalUserView, int64, error) {
	store := portaluserstore.NewInstance(i.db)
	list, err := store.GetList(page, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := store.Count()
	if err != nil {
		return nil, 0, err
	}
	result := make([]usersapimodels.PortalUserView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, count, nil
}
